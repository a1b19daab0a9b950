package domain

import (
	"strconv"
	"strings"
	"time"
)

// CellKind discriminates the value held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellString
	CellNumber
	CellDate
)

// Cell is a single spreadsheet value after parsing. Field parsers never fail:
// malformed input is represented as the empty cell, so a Cell is always valid.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Date time.Time
}

// EmptyCell returns the absent-value sentinel.
func EmptyCell() Cell {
	return Cell{Kind: CellEmpty}
}

// StringCell wraps a raw string value. Empty strings stay CellString so that
// "present but blank" and "absent" can be told apart before normalization.
func StringCell(s string) Cell {
	return Cell{Kind: CellString, Str: s}
}

// NumberCell wraps a parsed numeric value.
func NumberCell(f float64) Cell {
	return Cell{Kind: CellNumber, Num: f}
}

// DateCell wraps a parsed calendar date.
func DateCell(t time.Time) Cell {
	return Cell{Kind: CellDate, Date: t}
}

// IsEmpty reports whether the cell carries no value. A string cell that is
// blank after trimming counts as empty; this mirrors how blank spreadsheet
// cells behave.
func (c Cell) IsEmpty() bool {
	if c.Kind == CellEmpty {
		return true
	}
	if c.Kind == CellString {
		return strings.TrimSpace(c.Str) == ""
	}
	return false
}

// Display renders the cell the way it should appear in text output.
func (c Cell) Display() string {
	switch c.Kind {
	case CellString:
		return c.Str
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellDate:
		return c.Date.Format("02/01/2006")
	default:
		return ""
	}
}

// Table is an in-memory spreadsheet: ordered column names plus rows of cells.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex returns the position of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// CellAt returns the cell at the given row for the named column. Missing
// columns and out-of-range rows yield the empty cell.
func (t *Table) CellAt(row int, column string) Cell {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return EmptyCell()
	}
	return t.Rows[row][idx]
}

// SetCell stores a cell at the given row for the named column. Unknown
// columns are ignored.
func (t *Table) SetCell(row int, column string, cell Cell) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = cell
}
