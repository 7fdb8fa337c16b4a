package cli

import (
	"errors"
	"fmt"

	"github.com/isdelr/panel-console/internal/safety"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/spf13/cobra"
)

func newServiceCmd(s Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Control the managed service",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the managed service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := terminal{out: s.Out, err: s.Err}
			svc := services.NewServiceControl(newClient(cmd), term, term, nil)
			outcome, err := svc.Restart(cmd.Context(), safety.Prompt{In: s.In, Out: s.Out, Yes: assumeYes(cmd)})
			if err != nil {
				if outcome.Message != "" {
					return errors.New("restart failed")
				}
				return err
			}
			if !outcome.Done {
				fmt.Fprintln(s.Out, "Restart cancelled.")
			}
			return nil
		},
	})
	return cmd
}
