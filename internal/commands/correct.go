package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCorrectCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "correct <transaction-id> <category>",
		Short: "Assign a transaction to a category and confirm it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			txn, err := a.recorder.RecordCorrection(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  now in %s\n",
				txn.ID, txn.Description, txn.CategoryName)
			return nil
		},
	}
}
