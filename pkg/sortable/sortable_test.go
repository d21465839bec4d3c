package sortable_test

import (
	"strings"
	"testing"

	"ratehub/pkg/sortable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rec struct {
	K string
	I int
}

func newRecTable(t *testing.T) *sortable.Table[rec] {
	t.Helper()
	tbl, err := sortable.New(
		sortable.Column[rec]{Key: "k", Label: "Key", Value: func(r rec) any { return r.K }},
		sortable.Column[rec]{Key: "i", Label: "Index", Value: func(r rec) any { return r.I }},
	)
	require.NoError(t, err)
	return tbl
}

func TestNew_RejectsBadColumns(t *testing.T) {
	_, err := sortable.New(
		sortable.Column[rec]{Key: "k", Label: "A", Value: func(r rec) any { return r.K }},
		sortable.Column[rec]{Key: "k", Label: "B", Value: func(r rec) any { return r.I }},
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column key")

	_, err = sortable.New(
		sortable.Column[rec]{Key: "", Label: "A", Value: func(r rec) any { return r.K }},
	)
	assert.Error(t, err)

	_, err = sortable.New(
		sortable.Column[rec]{Key: "k", Label: "A"},
	)
	assert.Error(t, err)
}

func TestTable_NoSortKeepsInputOrder(t *testing.T) {
	tbl := newRecTable(t)
	rows := []rec{{K: "c"}, {K: "a"}, {K: "b"}}

	assert.Equal(t, rows, tbl.Sort(rows))
}

func TestTable_ToggleSortFlipsDirection(t *testing.T) {
	tbl := newRecTable(t)

	tbl.ToggleSort("k")
	field, ascending := tbl.SortState()
	assert.Equal(t, "k", field)
	assert.True(t, ascending)

	// Same column again flips the direction without changing the field.
	tbl.ToggleSort("k")
	field, ascending = tbl.SortState()
	assert.Equal(t, "k", field)
	assert.False(t, ascending)

	// Switching columns always resets to ascending.
	tbl.ToggleSort("i")
	field, ascending = tbl.SortState()
	assert.Equal(t, "i", field)
	assert.True(t, ascending)
}

func TestTable_ToggleSortIgnoresUnknownColumn(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")

	tbl.ToggleSort("nope")

	field, ascending := tbl.SortState()
	assert.Equal(t, "k", field)
	assert.True(t, ascending)
}

func TestTable_SortIsStable(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")

	rows := []rec{{K: "b", I: 0}, {K: "a", I: 1}, {K: "a", I: 2}}
	sorted := tbl.Sort(rows)

	assert.Equal(t, []rec{{K: "a", I: 1}, {K: "a", I: 2}, {K: "b", I: 0}}, sorted)
}

func TestTable_SortIsIdempotent(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")

	rows := []rec{{K: "delta"}, {K: "alpha"}, {K: "charlie"}, {K: "bravo"}}
	once := tbl.Sort(rows)
	twice := tbl.Sort(once)

	assert.Equal(t, once, twice)
}

func TestTable_SortDoesNotMutateInput(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")

	rows := []rec{{K: "b"}, {K: "a"}}
	_ = tbl.Sort(rows)

	assert.Equal(t, []rec{{K: "b"}, {K: "a"}}, rows)
}

func TestTable_SortIsCaseInsensitive(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")

	rows := []rec{{K: "banana"}, {K: "Apple"}, {K: "cherry"}}
	sorted := tbl.Sort(rows)

	assert.Equal(t, []rec{{K: "Apple"}, {K: "banana"}, {K: "cherry"}}, sorted)
}

func TestTable_SortDescendingReverses(t *testing.T) {
	tbl := newRecTable(t)
	tbl.ToggleSort("k")
	tbl.ToggleSort("k") // descending

	rows := []rec{{K: "a"}, {K: "c"}, {K: "b"}}
	sorted := tbl.Sort(rows)

	assert.Equal(t, []rec{{K: "c"}, {K: "b"}, {K: "a"}}, sorted)
}

func TestTable_MissingValuesCompareAsEmpty(t *testing.T) {
	tbl, err := sortable.New(
		sortable.Column[rec]{Key: "k", Label: "Key", Value: func(r rec) any {
			if r.K == "" {
				return nil
			}
			return r.K
		}},
	)
	require.NoError(t, err)
	tbl.ToggleSort("k")

	rows := []rec{{K: "b"}, {K: ""}, {K: "a"}}
	sorted := tbl.Sort(rows)

	assert.Equal(t, []rec{{K: ""}, {K: "a"}, {K: "b"}}, sorted)
}

func TestTable_CellsAppliesRender(t *testing.T) {
	tbl, err := sortable.New(
		sortable.Column[rec]{Key: "k", Label: "Key", Value: func(r rec) any { return r.K }},
		sortable.Column[rec]{
			Key:    "loud",
			Label:  "Loud",
			Value:  func(r rec) any { return r.K },
			Render: func(v any) string { return strings.ToUpper(v.(string)) },
		},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"ab", "AB"}, tbl.Cells(rec{K: "ab"}))
}

func TestTable_RenderDoesNotAffectOrdering(t *testing.T) {
	// The render output reverses the natural order; sorting must still
	// follow the raw value.
	tbl, err := sortable.New(
		sortable.Column[rec]{
			Key:   "k",
			Label: "Key",
			Value: func(r rec) any { return r.K },
			Render: func(v any) string {
				if v.(string) == "a" {
					return "zzz"
				}
				return "aaa"
			},
		},
	)
	require.NoError(t, err)
	tbl.ToggleSort("k")

	rows := []rec{{K: "b"}, {K: "a"}}
	sorted := tbl.Sort(rows)

	assert.Equal(t, []rec{{K: "a"}, {K: "b"}}, sorted)
}

func TestTable_SelectInvokesCallback(t *testing.T) {
	tbl := newRecTable(t)
	var selected []rec
	tbl.OnSelect = func(r rec) { selected = append(selected, r) }

	tbl.ToggleSort("k")
	before, beforeAsc := tbl.SortState()

	tbl.Select(rec{K: "x", I: 7})

	assert.Equal(t, []rec{{K: "x", I: 7}}, selected)
	after, afterAsc := tbl.SortState()
	assert.Equal(t, before, after)
	assert.Equal(t, beforeAsc, afterAsc)
}

func TestTable_SelectWithoutCallbackIsNoop(t *testing.T) {
	tbl := newRecTable(t)
	assert.NotPanics(t, func() { tbl.Select(rec{K: "x"}) })
}
