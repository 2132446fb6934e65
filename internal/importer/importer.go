// Package importer turns raw statement exports into canonical transactions.
// One Adapter per institution format; the Registry picks the adapter for a
// given upload.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/connorq03-ops/personalfinancetracker/internal/model"
)

// Document is one uploaded statement export.
type Document struct {
	Name string // original filename, used for extension sniffing
	Data []byte
}

// Ext returns the lowercased filename extension including the dot.
func (d Document) Ext() string {
	return strings.ToLower(filepath.Ext(d.Name))
}

// RawRow is one extracted statement row before normalization. Keys are
// adapter-specific; an adapter only normalizes rows it produced itself.
type RawRow struct {
	Line   int
	Fields map[string]string
}

// ParseResult carries the extracted rows plus the count of rows the adapter
// had to drop because they matched no transaction heuristic.
type ParseResult struct {
	Rows     []RawRow
	Unparsed int
}

// Adapter converts one institution's export format into canonical
// transactions.
type Adapter interface {
	// Name identifies the adapter for hints and logs.
	Name() string
	// CanParse is a cheap structural check: extension plus a header or
	// signature sniff. It never runs a full parse.
	CanParse(doc Document) bool
	// Parse extracts raw rows. It fails only when the document does not
	// match the adapter's structure at all; row-level problems are dropped
	// and counted instead.
	Parse(doc Document) (ParseResult, error)
	// Normalize maps one raw row to the canonical shape, applying the
	// source's sign convention and date format.
	Normalize(row RawRow) (model.Transaction, error)
}

// UnsupportedFormatError means a document does not match the structural
// signature of the adapter that tried to parse it. Fatal to the import.
type UnsupportedFormatError struct {
	Adapter string
	Reason  string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Adapter, e.Reason)
}

// ErrNoMatchingAdapter means no registered adapter claimed the document.
var ErrNoMatchingAdapter = errors.New("no matching adapter for document")

// Registry holds adapters in priority order. When several adapters claim the
// same document, the one registered first wins, so detection is
// deterministic.
type Registry struct {
	adapters []Adapter
	byName   map[string]Adapter
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Adapter)}
}

// Register appends an adapter. Panics on duplicate name.
func (r *Registry) Register(a Adapter) {
	key := strings.ToLower(a.Name())
	if _, ok := r.byName[key]; ok {
		panic("duplicate adapter name: " + key)
	}
	r.byName[key] = a
	r.adapters = append(r.adapters, a)
}

// Get returns the adapter with the given name, or nil.
func (r *Registry) Get(name string) Adapter {
	return r.byName[strings.ToLower(name)]
}

// Adapters returns all adapters in priority order.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, len(r.adapters))
	copy(out, r.adapters)
	return out
}

// Reorder moves the named adapters to the front, in the given order. Names
// not in the registry are ignored; unnamed adapters keep their relative
// order behind the prioritized ones.
func (r *Registry) Reorder(priority []string) {
	if len(priority) == 0 {
		return
	}
	var front, back []Adapter
	moved := make(map[string]bool)
	for _, name := range priority {
		if a := r.Get(name); a != nil && !moved[strings.ToLower(name)] {
			front = append(front, a)
			moved[strings.ToLower(a.Name())] = true
		}
	}
	for _, a := range r.adapters {
		if !moved[strings.ToLower(a.Name())] {
			back = append(back, a)
		}
	}
	r.adapters = append(front, back...)
}

// Dispatch selects exactly one adapter for the document. A hint naming a
// known adapter is tried first; otherwise adapters are probed in priority
// order and the first positive CanParse wins.
func (r *Registry) Dispatch(doc Document, hint string) (Adapter, error) {
	if hint != "" {
		if a := r.Get(hint); a != nil && a.CanParse(doc) {
			return a, nil
		}
	}
	for _, a := range r.adapters {
		if a.CanParse(doc) {
			return a, nil
		}
	}
	return nil, ErrNoMatchingAdapter
}

// DefaultRegistry returns a registry with all built-in adapters. Priority
// order: boa, venmo, robinhood, ofx.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&BoAAdapter{})
	r.Register(&VenmoAdapter{})
	r.Register(&RobinhoodAdapter{})
	r.Register(&OFXAdapter{})
	return r
}
