package handlers

import (
	"strings"

	"ratehub/pkg/sortable"

	"github.com/gofiber/fiber/v2"
)

// tableView builds the JSON view model for a sortable list: column
// metadata, the active sort state, the raw records in display order and
// their rendered cells.
func tableView[T any](t *sortable.Table[T], rows []T) fiber.Map {
	sorted := t.Sort(rows)

	cols := t.Columns()
	colMeta := make([]fiber.Map, len(cols))
	for i, col := range cols {
		colMeta[i] = fiber.Map{"key": col.Key, "label": col.Label}
	}
	cells := make([][]string, len(sorted))
	for i, row := range sorted {
		cells[i] = t.Cells(row)
	}

	field, ascending := t.SortState()
	return fiber.Map{
		"columns":   colMeta,
		"sortField": field,
		"ascending": ascending,
		"records":   sorted,
		"rows":      cells,
	}
}

// matchesSearch is the case-insensitive substring filter the list views
// apply across their visible fields.
func matchesSearch(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(
		strings.ToLower(strings.Join(fields, " ")),
		strings.ToLower(search),
	)
}
