package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/connorq03-ops/personalfinancetracker/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "pft",
		Short:   "Personal finance statement import and categorization",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "pft.yaml", "path to the config file")

	rootCmd.AddCommand(newInitCommand(&configPath))
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newCorrectCommand(&configPath))
	rootCmd.AddCommand(newRetrainCommand(&configPath))
	rootCmd.AddCommand(newCategoriesCommand(&configPath))
	rootCmd.AddCommand(newHistoryCommand(&configPath))

	return rootCmd
}
