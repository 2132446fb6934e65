// Package feedback applies user category corrections and folds them back
// into the categorization model. Corrections are the system's training
// signal: every confirmed category becomes an example in the next retrain.
package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/connorq03-ops/personalfinancetracker/internal/classify"
	"github.com/connorq03-ops/personalfinancetracker/internal/model"
	"github.com/connorq03-ops/personalfinancetracker/internal/store"
)

// Recorder applies corrections and retrains the engine once enough new
// corrections accumulate. threshold <= 0 disables automatic retraining;
// Retrain can still be called explicitly.
type Recorder struct {
	store       store.RecordStore
	engine      *classify.Engine
	seed        []classify.Example
	threshold   int
	minExamples int
	log         zerolog.Logger

	mu      sync.Mutex
	pending int
}

// NewRecorder creates a correction recorder. seed is the base training
// corpus retained across every retrain so sparse early corrections cannot
// collapse the model. Corrections only join the training set once at least
// minExamples of them exist; until then retrains use the seed alone.
func NewRecorder(st store.RecordStore, eng *classify.Engine, seed []classify.Example, threshold, minExamples int, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:       st,
		engine:      eng,
		seed:        seed,
		threshold:   threshold,
		minExamples: minExamples,
		log:         log,
	}
}

// RecordCorrection assigns the named category to a transaction and marks it
// user-confirmed. Confirmation is permanent: later model assignments never
// clear it. Repeating an identical correction changes nothing and does not
// count toward the retrain threshold. The category is created on demand.
func (r *Recorder) RecordCorrection(ctx context.Context, txnID, categoryName string) (model.Transaction, error) {
	txn, err := r.store.Get(txnID)
	if err != nil {
		return model.Transaction{}, err
	}

	cat, err := r.store.EnsureCategory(categoryName)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("resolving category %q: %w", categoryName, err)
	}

	if txn.IsCorrected && txn.CategoryID == cat.ID {
		return txn, nil
	}

	if err := r.store.SetCategory(txnID, cat, true); err != nil {
		return model.Transaction{}, fmt.Errorf("recording correction: %w", err)
	}
	r.log.Info().
		Str("transaction", txnID).
		Str("category", cat.Name).
		Msg("correction recorded")

	r.mu.Lock()
	r.pending++
	due := r.threshold > 0 && r.pending >= r.threshold
	if due {
		r.pending = 0
	}
	r.mu.Unlock()

	if due {
		if _, err := r.Retrain(ctx); err != nil {
			r.log.Warn().Err(err).Msg("automatic retrain failed")
		}
	}

	return r.store.Get(txnID)
}

// Retrain rebuilds the model from the seed corpus plus every confirmed
// transaction. The same store contents always produce the same model.
func (r *Recorder) Retrain(ctx context.Context) (classify.Stats, error) {
	if err := ctx.Err(); err != nil {
		return classify.Stats{}, err
	}

	corrected, err := r.store.CorrectedTransactions()
	if err != nil {
		return classify.Stats{}, fmt.Errorf("loading corrections: %w", err)
	}
	if len(corrected) < r.minExamples {
		corrected = nil
	}

	examples := make([]classify.Example, 0, len(r.seed)+len(corrected))
	examples = append(examples, r.seed...)
	for _, txn := range corrected {
		examples = append(examples, classify.Example{
			Description: txn.Description,
			Category:    txn.CategoryName,
		})
	}

	stats, err := r.engine.Train(examples)
	if err != nil {
		return classify.Stats{}, err
	}
	r.log.Info().
		Int("examples", stats.ExampleCount).
		Int("corrections", len(corrected)).
		Msg("model retrained")
	return stats, nil
}
