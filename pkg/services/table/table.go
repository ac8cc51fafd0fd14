// Package table holds the pure transformations applied to fetched reports
// before validation and before a report is handed to the agent.
package table

import (
	"strings"

	"github.com/de-tools/hostaway-atlas/pkg/models/domain"
)

// FilterZeroColumns drops every column whose cells are all zero. Empty cells
// count as zero. Retained columns keep their order; removed names are returned
// in column order. The input table is not modified.
func FilterZeroColumns(t *domain.Table) (*domain.Table, []string) {
	var keep []int
	var removed []string
	for col, name := range t.Columns {
		if allZero(t, col) {
			removed = append(removed, name)
			continue
		}
		keep = append(keep, col)
	}
	return project(t, keep), removed
}

func allZero(t *domain.Table, col int) bool {
	for row := range t.Rows {
		cell := t.Cell(row, col)
		if strings.TrimSpace(cell) == "" {
			continue
		}
		v, ok := domain.ParseNumber(cell)
		if !ok || v != 0 {
			return false
		}
	}
	return true
}

// Cap keeps the first maxRows rows. The flag reports whether rows were dropped.
// A non-positive maxRows disables the cap.
func Cap(t *domain.Table, maxRows int) (*domain.Table, bool) {
	if maxRows <= 0 || t.Len() <= maxRows {
		return t.Clone(), false
	}
	capped := &domain.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, maxRows),
	}
	for i := 0; i < maxRows; i++ {
		capped.Rows[i] = append([]string(nil), t.Rows[i]...)
	}
	return capped, true
}

// Select projects the table onto the named columns in the given order.
// Unknown names are skipped.
func Select(t *domain.Table, columns []string) *domain.Table {
	keep := make([]int, 0, len(columns))
	for _, name := range columns {
		if idx := t.ColumnIndex(name); idx >= 0 {
			keep = append(keep, idx)
		}
	}
	return project(t, keep)
}

// DefaultSelection is the column subset offered when a user asks to slim a
// report down without choosing columns.
func DefaultSelection(t *domain.Table, n int) []string {
	if len(t.Columns) <= n {
		return append([]string(nil), t.Columns...)
	}
	return append([]string(nil), t.Columns[:n]...)
}

func project(t *domain.Table, keep []int) *domain.Table {
	out := &domain.Table{
		Columns: make([]string, len(keep)),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, col := range keep {
		out.Columns[i] = t.Columns[col]
	}
	for row := range t.Rows {
		cells := make([]string, len(keep))
		for i, col := range keep {
			cells[i] = t.Cell(row, col)
		}
		out.Rows[row] = cells
	}
	return out
}

// Filter returns the rows for which keep reports true, sharing no storage with t.
func Filter(t *domain.Table, keep func(row int) bool) *domain.Table {
	out := &domain.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    [][]string{},
	}
	for row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, append([]string(nil), t.Rows[row]...))
		}
	}
	return out
}
