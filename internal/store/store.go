// Package store defines the record store contract the ingestion and
// feedback services depend on, plus the bundled implementations. Anything
// beyond this read/write contract (query layers, web handlers) lives outside
// the core.
package store

import (
	"errors"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// ErrNotFound is returned when a transaction or category does not exist.
var ErrNotFound = errors.New("record not found")

// RecordStore is the persistence contract consumed by the core. Duplicate
// suppression relies on Exists being checked before Insert; implementations
// must also reject inserts that would violate (source_id, account_type)
// uniqueness so concurrent imports cannot race past the check.
type RecordStore interface {
	// Exists reports whether a transaction with the given dedupe identity
	// is already persisted.
	Exists(sourceID string, account model.AccountType) (bool, error)

	// Insert persists a new transaction.
	Insert(txn model.Transaction) error

	// Get returns a transaction by ID, or ErrNotFound.
	Get(id string) (model.Transaction, error)

	// SetCategory updates a transaction's category. When corrected is true
	// the transaction is marked user-confirmed; a transaction that is
	// already confirmed never reverts to unconfirmed.
	SetCategory(id string, category model.Category, corrected bool) error

	// CorrectedTransactions returns every transaction with a user-confirmed
	// category, in insertion order, for training-set generation.
	CorrectedTransactions() ([]model.Transaction, error)

	// Categories returns all known categories in insertion order.
	Categories() ([]model.Category, error)

	// EnsureCategory returns the category with the given name, creating a
	// user-defined one if it does not exist.
	EnsureCategory(name string) (model.Category, error)
}
