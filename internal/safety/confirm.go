package safety

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, question string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// Static answers every question the same way. The web page asks the user
// itself and forwards the answer.
type Static bool

func (s Static) Confirm(context.Context, string) (bool, error) {
	return bool(s), nil
}

// Prompt asks on a terminal.
// - If Yes is true, it returns true without prompting.
// - Anything other than "y" or "yes" declines.
type Prompt struct {
	In  io.Reader
	Out io.Writer
	Yes bool
}

func (p Prompt) Confirm(ctx context.Context, question string) (bool, error) {
	if p.Yes {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.Out != nil {
		fmt.Fprintf(p.Out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}
