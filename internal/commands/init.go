package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/connorq03-ops/personalfinancetracker/internal/classify"
	"github.com/connorq03-ops/personalfinancetracker/internal/config"
	"github.com/connorq03-ops/personalfinancetracker/internal/store"
)

func newInitCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a finance tracker workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir)
		},
	}
}

func runInit(cmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.SeedCorpusPath = filepath.Join(dir, "seed_corpus.yaml")

	if err := config.Save(filepath.Join(dir, "pft.yaml"), cfg); err != nil {
		return err
	}

	if err := classify.WriteSeed(cfg.SeedCorpusPath, classify.DefaultSeed()); err != nil {
		return err
	}

	// Creating the store seeds the default categories on disk.
	if _, err := store.NewCSVStore(cfg.DataDir); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized finance tracker workspace at %s\n", dir)
	return nil
}
