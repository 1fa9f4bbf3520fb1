package models

import "fmt"

// Cell is a nullable text value. The zero Cell is NULL.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a non-NULL cell.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// String renders NULL as the empty string.
func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value
}

// Sheet is a rectangular grid of cells with named columns. Every row has
// exactly len(Columns) cells.
type Sheet struct {
	Columns []string
	Rows    [][]Cell
}

// NewSheet pads or truncates rows so the sheet is rectangular.
func NewSheet(columns []string, rows [][]Cell) *Sheet {
	s := &Sheet{Columns: append([]string(nil), columns...)}
	s.Rows = make([][]Cell, len(rows))
	for i, row := range rows {
		r := make([]Cell, len(columns))
		copy(r, row)
		s.Rows[i] = r
	}
	return s
}

// Dimensions returns row and column counts.
func (s *Sheet) Dimensions() (rows, cols int) {
	if s == nil {
		return 0, 0
	}
	return len(s.Rows), len(s.Columns)
}

// Cell returns the cell at (row, col), or NULL when out of range.
func (s *Sheet) Cell(row, col int) Cell {
	if s == nil || row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Columns) {
		return Cell{}
	}
	return s.Rows[row][col]
}

// Set overwrites one cell with text.
func (s *Sheet) Set(row, col int, value string) error {
	if s == nil || row < 0 || row >= len(s.Rows) || col < 0 || col >= len(s.Columns) {
		return fmt.Errorf("cell (%d, %d) out of range", row, col)
	}
	s.Rows[row][col] = Text(value)
	return nil
}

// Clone returns a deep copy.
func (s *Sheet) Clone() *Sheet {
	if s == nil {
		return nil
	}
	return NewSheet(s.Columns, s.Rows)
}
