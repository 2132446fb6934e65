package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/connorq03-ops/personalfinancetracker/internal/auditlog"
	"github.com/connorq03-ops/personalfinancetracker/internal/importer"
)

func newImportCommand(configPath *string) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import one or more statement files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}
			return runImport(cmd, a, args, source)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "adapter to use (boa, venmo, robinhood, ofx); detected from content when empty")

	return cmd
}

func runImport(cmd *cobra.Command, a *app, paths []string, source string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc := importer.Document{Name: filepath.Base(path), Data: data}
		report, err := a.ingest.Import(cmd.Context(), doc, source)
		if err != nil {
			return fmt.Errorf("importing %s: %w", path, err)
		}

		entry := auditlog.Entry{
			Timestamp:  time.Now().UTC(),
			File:       doc.Name,
			Adapter:    report.Adapter,
			Imported:   report.Imported,
			Duplicates: report.SkippedDuplicates,
			Unparsed:   report.UnparsedRows,
		}
		if err := auditlog.Append(a.cfg.DataDir, []auditlog.Entry{entry}); err != nil {
			return fmt.Errorf("recording import log: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d imported, %d duplicates skipped, %d rows unparsed\n",
			doc.Name, report.Adapter, report.Imported, report.SkippedDuplicates, report.UnparsedRows)
		for _, txn := range report.Transactions {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s  %10s  %s\n",
				txn.ID, txn.Date.Format("2006-01-02"), txn.Amount.StringFixed(2), txn.Description)
		}
	}
	return nil
}
