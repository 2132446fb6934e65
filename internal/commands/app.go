package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/connorq03-ops/personalfinancetracker/internal/classify"
	"github.com/connorq03-ops/personalfinancetracker/internal/config"
	"github.com/connorq03-ops/personalfinancetracker/internal/feedback"
	"github.com/connorq03-ops/personalfinancetracker/internal/importer"
	"github.com/connorq03-ops/personalfinancetracker/internal/ingest"
	"github.com/connorq03-ops/personalfinancetracker/internal/logger"
	"github.com/connorq03-ops/personalfinancetracker/internal/store"
)

// app holds the wired services every subcommand works against.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *store.CSVStore
	engine   *classify.Engine
	registry *importer.Registry
	ingest   *ingest.Service
	recorder *feedback.Recorder
}

// loadApp builds the service graph from the config file at configPath,
// falling back to defaults when the file does not exist. The model is
// trained on startup from the seed corpus plus any stored corrections.
func loadApp(configPath string) (*app, error) {
	cfg := config.Default()
	if _, err := os.Stat(configPath); err == nil {
		cfg, err = config.Load(configPath)
		if err != nil {
			return nil, err
		}
	}

	log := logger.New(cfg.LogLevel)

	st, err := store.NewCSVStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	seed := classify.DefaultSeed()
	if cfg.SeedCorpusPath != "" {
		seed, err = classify.LoadSeed(cfg.SeedCorpusPath)
		if err != nil {
			return nil, err
		}
	}

	engine := classify.NewEngine()
	recorder := feedback.NewRecorder(st, engine, seed, cfg.RetrainThreshold, cfg.MinTrainingExamples, log)
	if _, err := recorder.Retrain(context.Background()); err != nil && !errors.Is(err, classify.ErrEmptyTrainingSet) {
		return nil, fmt.Errorf("training model: %w", err)
	}

	registry := importer.DefaultRegistry()
	registry.Reorder(cfg.AdapterPriority)

	return &app{
		cfg:      cfg,
		log:      log,
		store:    st,
		engine:   engine,
		registry: registry,
		ingest:   ingest.NewService(registry, st, engine, cfg.DefaultCategory, log),
		recorder: recorder,
	}, nil
}
