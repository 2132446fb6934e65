package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// MemoryStore is a map-backed RecordStore. It backs tests and is the
// starting state the CSV store loads into.
type MemoryStore struct {
	mu         sync.Mutex
	txns       map[string]model.Transaction
	order      []string          // transaction IDs in insertion order
	identity   map[string]string // identityKey -> transaction ID
	categories []model.Category
	catByName  map[string]int // name -> index into categories
}

// NewMemoryStore creates an empty store seeded with the system default
// categories.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		txns:      make(map[string]model.Transaction),
		identity:  make(map[string]string),
		catByName: make(map[string]int),
	}
	for _, c := range model.DefaultCategories() {
		c.ID = uuid.NewString()
		s.catByName[c.Name] = len(s.categories)
		s.categories = append(s.categories, c)
	}
	return s
}

func identityKey(sourceID string, account model.AccountType) string {
	return string(account) + "\x00" + sourceID
}

// Exists implements RecordStore.
func (s *MemoryStore) Exists(sourceID string, account model.AccountType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.identity[identityKey(sourceID, account)]
	return ok, nil
}

// Insert implements RecordStore. Inserting a transaction whose
// (source_id, account_type) identity is already present fails.
func (s *MemoryStore) Insert(txn model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(txn)
}

func (s *MemoryStore) insertLocked(txn model.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	key := identityKey(txn.SourceID, txn.AccountType)
	if _, ok := s.identity[key]; ok {
		return fmt.Errorf("duplicate transaction %s on %s account", txn.SourceID, txn.AccountType)
	}
	s.txns[txn.ID] = txn
	s.order = append(s.order, txn.ID)
	s.identity[key] = txn.ID
	return nil
}

// Get implements RecordStore.
func (s *MemoryStore) Get(id string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txns[id]
	if !ok {
		return model.Transaction{}, ErrNotFound
	}
	return txn, nil
}

// SetCategory implements RecordStore. IsCorrected is sticky: once true it
// survives any later update.
func (s *MemoryStore) SetCategory(id string, category model.Category, corrected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCategoryLocked(id, category, corrected)
}

func (s *MemoryStore) setCategoryLocked(id string, category model.Category, corrected bool) error {
	txn, ok := s.txns[id]
	if !ok {
		return ErrNotFound
	}
	txn.CategoryID = category.ID
	txn.CategoryName = category.Name
	txn.IsCorrected = txn.IsCorrected || corrected
	s.txns[id] = txn
	return nil
}

// CorrectedTransactions implements RecordStore.
func (s *MemoryStore) CorrectedTransactions() ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Transaction
	for _, id := range s.order {
		if txn := s.txns[id]; txn.IsCorrected {
			out = append(out, txn)
		}
	}
	return out, nil
}

// Categories implements RecordStore.
func (s *MemoryStore) Categories() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

// EnsureCategory implements RecordStore.
func (s *MemoryStore) EnsureCategory(name string) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureCategoryLocked(name)
}

func (s *MemoryStore) ensureCategoryLocked(name string) (model.Category, error) {
	if i, ok := s.catByName[name]; ok {
		return s.categories[i], nil
	}
	c := model.Category{ID: uuid.NewString(), Name: name}
	s.catByName[name] = len(s.categories)
	s.categories = append(s.categories, c)
	return c, nil
}
