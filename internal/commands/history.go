package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connorq03-ops/personalfinancetracker/internal/auditlog"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past import runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			entries, err := auditlog.Read(a.cfg.DataDir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports recorded yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-30s %-10s %d imported, %d duplicates, %d unparsed\n",
					e.Timestamp.Format("2006-01-02 15:04"), e.File, e.Adapter, e.Imported, e.Duplicates, e.Unparsed)
			}
			return nil
		},
	}
}
