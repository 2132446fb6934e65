// Package ingest runs statement documents through the import pipeline:
// adapter dispatch, row normalization, duplicate suppression, and initial
// categorization.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/connorq03-ops/personalfinancetracker/internal/classify"
	"github.com/connorq03-ops/personalfinancetracker/internal/importer"
	"github.com/connorq03-ops/personalfinancetracker/internal/model"
	"github.com/connorq03-ops/personalfinancetracker/internal/store"
)

// Report summarizes one document import. Imported + SkippedDuplicates +
// UnparsedRows accounts for every row the adapter saw.
type Report struct {
	Adapter           string
	Imported          int
	SkippedDuplicates int
	UnparsedRows      int
	Transactions      []model.Transaction
}

// Service wires the adapter registry, the record store, and the
// categorization engine into a single import pipeline.
type Service struct {
	registry        *importer.Registry
	store           store.RecordStore
	engine          *classify.Engine
	defaultCategory string
	log             zerolog.Logger
}

// NewService creates an import service. defaultCategory names the category
// assigned when the engine has no trained model.
func NewService(reg *importer.Registry, st store.RecordStore, eng *classify.Engine, defaultCategory string, log zerolog.Logger) *Service {
	return &Service{
		registry:        reg,
		store:           st,
		engine:          eng,
		defaultCategory: defaultCategory,
		log:             log,
	}
}

// Import runs one document through the pipeline. hint optionally names the
// adapter to try first; an empty hint means detect by content. Rows that
// fail normalization are counted, logged, and skipped; the rest of the
// document still imports. Re-importing the same document is a no-op apart
// from the duplicate count.
func (s *Service) Import(ctx context.Context, doc importer.Document, hint string) (Report, error) {
	adapter, err := s.registry.Dispatch(doc, hint)
	if err != nil {
		return Report{}, err
	}

	result, err := adapter.Parse(doc)
	if err != nil {
		return Report{}, fmt.Errorf("parsing %s: %w", doc.Name, err)
	}

	report := Report{Adapter: adapter.Name(), UnparsedRows: result.Unparsed}
	for _, row := range result.Rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		txn, err := adapter.Normalize(row)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				s.log.Debug().Str("file", doc.Name).Int("line", row.Line).Err(verr).Msg("skipping row")
				report.UnparsedRows++
				continue
			}
			return report, fmt.Errorf("normalizing %s line %d: %w", doc.Name, row.Line, err)
		}

		exists, err := s.store.Exists(txn.SourceID, txn.AccountType)
		if err != nil {
			return report, fmt.Errorf("checking duplicate: %w", err)
		}
		if exists {
			report.SkippedDuplicates++
			continue
		}

		if err := s.categorize(&txn); err != nil {
			return report, err
		}

		txn.ID = uuid.NewString()
		txn.ImportedAt = time.Now().UTC()
		if err := s.store.Insert(txn); err != nil {
			return report, fmt.Errorf("inserting transaction: %w", err)
		}

		report.Imported++
		report.Transactions = append(report.Transactions, txn)
	}

	s.log.Info().
		Str("file", doc.Name).
		Str("adapter", report.Adapter).
		Int("imported", report.Imported).
		Int("duplicates", report.SkippedDuplicates).
		Int("unparsed", report.UnparsedRows).
		Msg("import complete")
	return report, nil
}

// categorize assigns a model-suggested category, falling back to the
// configured default when no model has been trained yet.
func (s *Service) categorize(txn *model.Transaction) error {
	name := s.defaultCategory
	pred, err := s.engine.Predict(txn.Description)
	switch {
	case err == nil:
		name = pred.Category
	case errors.Is(err, classify.ErrNotTrained):
		// Keep the default.
	default:
		return fmt.Errorf("predicting category: %w", err)
	}

	cat, err := s.store.EnsureCategory(name)
	if err != nil {
		return fmt.Errorf("resolving category %q: %w", name, err)
	}
	txn.CategoryID = cat.ID
	txn.CategoryName = cat.Name
	txn.IsCorrected = false
	return nil
}
