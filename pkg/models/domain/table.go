package domain

import (
	"math"
	"strconv"
	"strings"
)

// Table is a delimited report held in memory: ordered column names and rows of
// textual cells. Cells are interpreted as numbers on demand.
type Table struct {
	Columns []string
	Rows    [][]string
}

func NewTable(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) Empty() bool {
	return t.Len() == 0
}

// ColumnIndex returns the position of the named column or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the raw text of a cell; short rows read as empty.
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Float parses a cell as a number. Empty or non-numeric cells yield NaN and false.
func (t *Table) Float(row, col int) (float64, bool) {
	return ParseNumber(t.Cell(row, col))
}

// Clone returns a deep copy so derived tables never share row storage.
func (t *Table) Clone() *Table {
	columns := append([]string(nil), t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]string(nil), r...)
	}
	return &Table{Columns: columns, Rows: rows}
}

// ParseNumber reads a cell the way a tabular reader infers numeric columns.
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, true
}

// FormatNumber renders a computed value; NaN renders as an empty cell.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatBool renders a boolean cell in the capitalised form used by the exports.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
