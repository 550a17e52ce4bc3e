package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Column is one named column of a Table. Cells keep the raw CSV text.
type Column struct {
	Name  string
	Cells []string
}

// Table is an in-memory, column-oriented log. Rows are addressed by their
// 0-based position, which doubles as the row label.
type Table struct {
	Columns []Column
	rows    int
}

// NewTable builds a table from columns of equal length.
func NewTable(cols []Column) *Table {
	t := &Table{Columns: cols}
	if len(cols) > 0 {
		t.rows = len(cols[0].Cells)
	}
	return t
}

func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// Names returns the column names in file order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the first column called name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func (t *Table) Column(name string) (Column, bool) {
	i := t.Index(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Columns) || row < 0 || row >= t.rows {
		return ""
	}
	return t.Columns[col].Cells[row]
}

func (t *Table) Missing(row, col int) bool {
	return IsMissing(t.Cell(row, col))
}

// Float parses the cell as a number. Missing cells and text report false.
func (t *Table) Float(row, col int) (float64, bool) {
	return ParseFloat(t.Cell(row, col))
}

// Record returns row as a slice ordered like Columns.
func (t *Table) Record(row int) []string {
	out := make([]string, len(t.Columns))
	for i := range t.Columns {
		out[i] = t.Cell(row, i)
	}
	return out
}

// naTokens are the cell values treated as missing, on top of blank cells.
var naTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "n/a": {},
	"NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {},
	"1.#IND": {}, "-1.#IND": {}, "1.#QNAN": {}, "-1.#QNAN": {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := naTokens[s]
	return ok
}

// ParseFloat reads a finite number from a cell.
func ParseFloat(s string) (float64, bool) {
	if IsMissing(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
