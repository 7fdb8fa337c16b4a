package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/isdelr/panel-console/internal/models"
	"github.com/isdelr/panel-console/internal/safety"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/spf13/cobra"
)

func newBackupsCmd(s Streams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Work with configuration backups",
	}
	cmd.AddCommand(newBackupsListCmd(s))
	cmd.AddCommand(newBackupsRestoreCmd(s))
	return cmd
}

func newBackupsListCmd(s Streams) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List backups in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backups, err := newClient(cmd).ListBackups(cmd.Context())
			if err != nil {
				return fmt.Errorf("load backup list: %w", err)
			}
			switch output {
			case "json":
				enc := json.NewEncoder(s.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(backups)
			case "table", "":
				return renderTable(s.Out, backups)
			default:
				return fmt.Errorf("unsupported --output: %s", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table|json")
	return cmd
}

func renderTable(w io.Writer, backups []models.BackupRecord) error {
	if len(backups) == 0 {
		_, err := fmt.Fprintln(w, "No backups available.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODIFIED\tSIZE")
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Name, view.FormatDate(b.Modified.Time, time.Local), view.FormatSize(b.Size))
	}
	return tw.Flush()
}

func newBackupsRestoreCmd(s Streams) *cobra.Command {
	return &cobra.Command{
		Use:   "restore NAME",
		Short: "Restore the configuration from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := terminal{out: s.Out, err: s.Err}
			svc := services.NewBackupService(newClient(cmd), services.Widgets{
				Notifier: term,
				Loading:  term,
				Dialog:   term,
				Reloader: term,
			}, nil, 0)

			st := svc.OpenBackupList(cmd.Context())
			if st.Phase == services.PhaseFailed {
				return errors.New("load backup list: " + st.Error)
			}

			outcome, err := svc.RestoreBackup(cmd.Context(), args[0], safety.Prompt{
				In:  s.In,
				Out: s.Out,
				Yes: assumeYes(cmd),
			})
			if errors.Is(err, services.ErrUnknownBackup) {
				return fmt.Errorf("no backup named %q", args[0])
			}
			if err != nil {
				if outcome.Result == services.RestoreFailed {
					// Already printed as a notification.
					return errors.New("restore failed")
				}
				return err
			}
			if outcome.Result == services.RestoreCanceled {
				fmt.Fprintln(s.Out, "Restore cancelled.")
			}
			return nil
		},
	}
}
