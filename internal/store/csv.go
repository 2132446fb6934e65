package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// CSVStore is a file-backed RecordStore keeping the transaction ledger and
// category list as headered CSV files under a data directory. State is held
// in memory and written through on every mutation; at personal-finance scale
// a full rewrite on update is cheap.
type CSVStore struct {
	mem *MemoryStore
	dir string
}

const (
	txnFile = "transactions.csv"
	catFile = "categories.csv"
)

const txnHeader = "id,source_id,date,description,amount,account_type,source,category_id,category_name,is_corrected,imported_at"

const (
	txnNumFields       = 11
	txnColID           = 0
	txnColSourceID     = 1
	txnColDate         = 2
	txnColDescription  = 3
	txnColAmount       = 4
	txnColAccountType  = 5
	txnColSource       = 6
	txnColCategoryID   = 7
	txnColCategoryName = 8
	txnColIsCorrected  = 9
	txnColImportedAt   = 10
)

const catHeader = "id,name,group,is_system_default"

const (
	catNumFields  = 4
	catColID      = 0
	catColName    = 1
	catColGroup   = 2
	catColDefault = 3
)

// NewCSVStore opens (or initializes) a CSV store rooted at dir. A fresh
// directory is seeded with the system default categories.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &CSVStore{dir: dir}
	s.mem = &MemoryStore{
		txns:      make(map[string]model.Transaction),
		identity:  make(map[string]string),
		catByName: make(map[string]int),
	}

	if err := s.loadCategories(); err != nil {
		return nil, err
	}
	if err := s.loadTransactions(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CSVStore) loadCategories() error {
	path := filepath.Join(s.dir, catFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Fresh store: seed defaults and persist them.
		for _, c := range model.DefaultCategories() {
			c.ID = uuid.NewString()
			s.mem.catByName[c.Name] = len(s.mem.categories)
			s.mem.categories = append(s.mem.categories, c)
		}
		return s.writeCategories()
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", catFile, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = catNumFields
	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("reading %s: %w", catFile, err)
	}
	if len(records) <= 1 {
		return nil
	}
	for i, rec := range records[1:] {
		isDefault, err := strconv.ParseBool(rec[catColDefault])
		if err != nil {
			return fmt.Errorf("%s row %d: parsing is_system_default: %w", catFile, i+2, err)
		}
		c := model.Category{
			ID:              rec[catColID],
			Name:            rec[catColName],
			Group:           rec[catColGroup],
			IsSystemDefault: isDefault,
		}
		s.mem.catByName[c.Name] = len(s.mem.categories)
		s.mem.categories = append(s.mem.categories, c)
	}
	return nil
}

func (s *CSVStore) loadTransactions() error {
	path := filepath.Join(s.dir, txnFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", txnFile, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = txnNumFields
	records, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("reading %s: %w", txnFile, err)
	}
	if len(records) <= 1 {
		return nil
	}
	for i, rec := range records[1:] {
		txn, err := unmarshalTxn(rec)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", txnFile, i+2, err)
		}
		if err := s.mem.insertLocked(txn); err != nil {
			return fmt.Errorf("%s row %d: %w", txnFile, i+2, err)
		}
	}
	return nil
}

func marshalTxn(txn model.Transaction) []string {
	row := make([]string, txnNumFields)
	row[txnColID] = txn.ID
	row[txnColSourceID] = txn.SourceID
	row[txnColDate] = txn.Date.Format("2006-01-02")
	row[txnColDescription] = txn.Description
	row[txnColAmount] = txn.Amount.String()
	row[txnColAccountType] = string(txn.AccountType)
	row[txnColSource] = txn.Source
	row[txnColCategoryID] = txn.CategoryID
	row[txnColCategoryName] = txn.CategoryName
	row[txnColIsCorrected] = strconv.FormatBool(txn.IsCorrected)
	row[txnColImportedAt] = txn.ImportedAt.UTC().Format(time.RFC3339)
	return row
}

func unmarshalTxn(rec []string) (model.Transaction, error) {
	date, err := time.Parse("2006-01-02", rec[txnColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[txnColDate], err)
	}
	amount, err := decimal.NewFromString(rec[txnColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[txnColAmount], err)
	}
	corrected, err := strconv.ParseBool(rec[txnColIsCorrected])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing is_corrected: %w", err)
	}
	importedAt, err := time.Parse(time.RFC3339, rec[txnColImportedAt])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing imported_at: %w", err)
	}

	return model.Transaction{
		ID:           rec[txnColID],
		SourceID:     rec[txnColSourceID],
		Date:         date,
		Description:  rec[txnColDescription],
		Amount:       amount,
		AccountType:  model.AccountType(rec[txnColAccountType]),
		Source:       rec[txnColSource],
		CategoryID:   rec[txnColCategoryID],
		CategoryName: rec[txnColCategoryName],
		IsCorrected:  corrected,
		ImportedAt:   importedAt,
	}, nil
}

func (s *CSVStore) writeTransactions() error {
	s.mem.mu.Lock()
	rows := make([][]string, 0, len(s.mem.order))
	for _, id := range s.mem.order {
		rows = append(rows, marshalTxn(s.mem.txns[id]))
	}
	s.mem.mu.Unlock()
	return writeCSVFile(filepath.Join(s.dir, txnFile), txnHeader, rows)
}

func (s *CSVStore) writeCategories() error {
	s.mem.mu.Lock()
	cats := make([]model.Category, len(s.mem.categories))
	copy(cats, s.mem.categories)
	s.mem.mu.Unlock()

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		row := make([]string, catNumFields)
		row[catColID] = c.ID
		row[catColName] = c.Name
		row[catColGroup] = c.Group
		row[catColDefault] = strconv.FormatBool(c.IsSystemDefault)
		rows = append(rows, row)
	}
	return writeCSVFile(filepath.Join(s.dir, catFile), catHeader, rows)
}

func writeCSVFile(path, header string, rows [][]string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating %s: %w", tmp, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(strings.Split(header, ",")); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Exists implements RecordStore.
func (s *CSVStore) Exists(sourceID string, account model.AccountType) (bool, error) {
	return s.mem.Exists(sourceID, account)
}

// Insert implements RecordStore.
func (s *CSVStore) Insert(txn model.Transaction) error {
	if err := s.mem.Insert(txn); err != nil {
		return err
	}
	return s.writeTransactions()
}

// Get implements RecordStore.
func (s *CSVStore) Get(id string) (model.Transaction, error) {
	return s.mem.Get(id)
}

// SetCategory implements RecordStore.
func (s *CSVStore) SetCategory(id string, category model.Category, corrected bool) error {
	if err := s.mem.SetCategory(id, category, corrected); err != nil {
		return err
	}
	return s.writeTransactions()
}

// CorrectedTransactions implements RecordStore.
func (s *CSVStore) CorrectedTransactions() ([]model.Transaction, error) {
	return s.mem.CorrectedTransactions()
}

// Categories implements RecordStore.
func (s *CSVStore) Categories() ([]model.Category, error) {
	return s.mem.Categories()
}

// EnsureCategory implements RecordStore.
func (s *CSVStore) EnsureCategory(name string) (model.Category, error) {
	s.mem.mu.Lock()
	before := len(s.mem.categories)
	c, err := s.mem.ensureCategoryLocked(name)
	created := len(s.mem.categories) > before
	s.mem.mu.Unlock()
	if err != nil {
		return model.Category{}, err
	}
	if created {
		if err := s.writeCategories(); err != nil {
			return model.Category{}, err
		}
	}
	return c, nil
}
