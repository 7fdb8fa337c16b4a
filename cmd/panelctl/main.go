package main

import (
	"os"

	"github.com/isdelr/panel-console/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
