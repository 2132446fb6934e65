package classify

import (
	"errors"
	"sync"
)

// ErrEmptyTrainingSet is returned when a retrain is requested with zero
// examples. The previous model, if any, stays in place.
var ErrEmptyTrainingSet = errors.New("training set is empty")

// ErrNotTrained is returned by Predict before the first successful Train.
var ErrNotTrained = errors.New("model has not been trained")

// Prediction is the classifier's answer for one description.
type Prediction struct {
	Category   string
	Confidence float64
}

// Stats summarizes the model produced by a training run.
type Stats struct {
	ExampleCount         int
	CategoryDistribution map[string]int
}

// snapshot pairs a vocabulary with the model trained on it. Snapshots are
// immutable once published.
type snapshot struct {
	vocab *Vocabulary
	model *Model
}

// Engine is the process-wide categorization model. Predictions may run
// concurrently with each other; Train builds a complete new snapshot and
// swaps it in under the write lock, so readers observe either the old model
// or the new one, never a partial state.
type Engine struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewEngine returns an untrained engine. Callers are expected to Train on
// the seed corpus before serving predictions.
func NewEngine() *Engine {
	return &Engine{}
}

// Train replaces the current model with one fitted on examples. This is a
// full batch retrain: given the same example slice, the resulting model and
// all subsequent predictions are identical across runs.
func (e *Engine) Train(examples []Example) (Stats, error) {
	if len(examples) == 0 {
		return Stats{}, ErrEmptyTrainingSet
	}

	docs := make([]string, len(examples))
	dist := make(map[string]int, 8)
	for i, ex := range examples {
		docs[i] = ex.Description
		dist[ex.Category]++
	}

	vocab := BuildVocabulary(docs)
	model := TrainModel(vocab, examples)

	e.mu.Lock()
	e.snap = &snapshot{vocab: vocab, model: model}
	e.mu.Unlock()

	return Stats{ExampleCount: len(examples), CategoryDistribution: dist}, nil
}

// Predict classifies a transaction description.
func (e *Engine) Predict(description string) (Prediction, error) {
	e.mu.RLock()
	snap := e.snap
	e.mu.RUnlock()

	if snap == nil {
		return Prediction{}, ErrNotTrained
	}

	vec := snap.vocab.Vectorize(description)
	category, confidence := snap.model.Predict(vec)
	return Prediction{Category: category, Confidence: confidence}, nil
}

// Trained reports whether the engine has a usable model.
func (e *Engine) Trained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap != nil
}
