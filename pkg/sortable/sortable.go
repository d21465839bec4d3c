// Package sortable implements a generic, stably sortable table over an
// arbitrary record type and a set of column descriptors. It holds only
// column metadata and sort state; the data itself is passed through Sort
// and is never mutated.
package sortable

import (
	"fmt"
	"slices"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column describes one table column. Key doubles as the sort key and must
// be unique within a table. Value extracts the raw field value from a
// record; Render, when set, maps the raw value to its display form and is
// never consulted for ordering.
type Column[T any] struct {
	Key    string
	Label  string
	Value  func(T) any
	Render func(any) string
}

// Table combines column descriptors with the current sort state.
type Table[T any] struct {
	mu        sync.Mutex
	columns   []Column[T]
	byKey     map[string]Column[T]
	sortField string // "" means input order
	ascending bool
	coll      *collate.Collator

	// OnSelect, when set, is invoked with the full record on row
	// selection. Selection never touches sort state.
	OnSelect func(T)
}

// New builds a table from the given columns. Keys must be non-empty and
// unique.
func New[T any](columns ...Column[T]) (*Table[T], error) {
	byKey := make(map[string]Column[T], len(columns))
	for _, col := range columns {
		if col.Key == "" {
			return nil, fmt.Errorf("sortable: column %q has an empty key", col.Label)
		}
		if col.Value == nil {
			return nil, fmt.Errorf("sortable: column %q has no value extractor", col.Key)
		}
		if _, ok := byKey[col.Key]; ok {
			return nil, fmt.Errorf("sortable: duplicate column key %q", col.Key)
		}
		byKey[col.Key] = col
	}
	return &Table[T]{
		columns:   columns,
		byKey:     byKey,
		ascending: true,
		coll:      collate.New(language.Und, collate.IgnoreCase),
	}, nil
}

// Columns returns the column descriptors in declaration order.
func (t *Table[T]) Columns() []Column[T] {
	return slices.Clone(t.columns)
}

// SortState returns the active sort column ("" when unsorted) and the
// direction flag.
func (t *Table[T]) SortState() (field string, ascending bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sortField, t.ascending
}

// ToggleSort activates sorting on the given column. Toggling the active
// column flips the direction; switching columns resets to ascending.
// Unknown keys are ignored.
func (t *Table[T]) ToggleSort(key string) {
	if _, ok := t.byKey[key]; !ok {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if key == t.sortField {
		t.ascending = !t.ascending
		return
	}
	t.sortField = key
	t.ascending = true
}

// Sort returns the rows ordered per the current sort state. The input is
// copied, never reordered in place. With no active sort column the copy
// keeps the input order. Records are compared by the case-insensitive
// collation of their stringified raw value; equal keys keep their relative
// input order.
func (t *Table[T]) Sort(rows []T) []T {
	out := slices.Clone(rows)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sortField == "" {
		return out
	}
	col := t.byKey[t.sortField]
	asc := t.ascending

	slices.SortStableFunc(out, func(a, b T) int {
		cmp := t.coll.CompareString(sortKey(col.Value(a)), sortKey(col.Value(b)))
		if !asc {
			cmp = -cmp
		}
		return cmp
	})
	return out
}

// Cells renders one record into display cells, one per column, applying
// Render where present.
func (t *Table[T]) Cells(row T) []string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		raw := col.Value(row)
		if col.Render != nil {
			cells[i] = col.Render(raw)
			continue
		}
		cells[i] = sortKey(raw)
	}
	return cells
}

// Select invokes the row-selection callback, if any, with the record.
func (t *Table[T]) Select(row T) {
	if t.OnSelect != nil {
		t.OnSelect(row)
	}
}

// sortKey normalizes a raw field value for comparison and default display.
// Missing values compare as the empty string.
func sortKey(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
