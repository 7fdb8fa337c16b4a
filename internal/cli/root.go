// Package cli implements panelctl, a terminal front end to the same backup
// manager and service control the web console drives.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/isdelr/panel-console/internal/panelapi"
	"github.com/spf13/cobra"
)

// Streams are the process stdio seen by the commands.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewRootCmd returns the root cobra command for panelctl.
func NewRootCmd(s Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "panelctl",
		Short:         "List and restore configuration backups, restart the service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetIn(s.In)
	cmd.SetOut(s.Out)
	cmd.SetErr(s.Err)

	upstream := os.Getenv("UPSTREAM_URL")
	if upstream == "" {
		upstream = "http://127.0.0.1:5000"
	}
	cmd.PersistentFlags().String("upstream", upstream, "Base URL of the config server (env UPSTREAM_URL)")
	cmd.PersistentFlags().Duration("timeout", 30*time.Second, "Timeout for each upstream request")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")

	cmd.AddCommand(newBackupsCmd(s))
	cmd.AddCommand(newServiceCmd(s))

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newClient(cmd *cobra.Command) *panelapi.Client {
	upstream, _ := cmd.Root().PersistentFlags().GetString("upstream")
	timeout, _ := cmd.Root().PersistentFlags().GetDuration("timeout")
	return panelapi.NewClient(upstream, timeout)
}

func assumeYes(cmd *cobra.Command) bool {
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return yes
}
