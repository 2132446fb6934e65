package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newRetrainCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "retrain",
		Short: "Rebuild the categorization model from seed data and corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath)
			if err != nil {
				return err
			}

			stats, err := a.recorder.Retrain(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model trained on %d examples across %d categories\n",
				stats.ExampleCount, len(stats.CategoryDistribution))

			names := make([]string, 0, len(stats.CategoryDistribution))
			for name := range stats.CategoryDistribution {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %d\n", name, stats.CategoryDistribution[name])
			}
			return nil
		},
	}
}
