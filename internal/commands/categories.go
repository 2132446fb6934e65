package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List known categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			cats, err := a.store.Categories()
			if err != nil {
				return err
			}
			for _, cat := range cats {
				marker := " "
				if !cat.IsSystemDefault {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-20s %s\n", marker, cat.Name, cat.Group)
			}
			return nil
		},
	}
}
