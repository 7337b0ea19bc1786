package model

import "fmt"

// Frame is a small column-named table, the input shape every Scorer accepts.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// NewFrame builds a frame and checks that every row is as wide as columns.
func NewFrame(columns []string, rows ...[]any) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), len(columns), ErrSchemaMismatch)
		}
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of each column name.
func (f *Frame) Index() map[string]int {
	idx := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		idx[c] = i
	}
	return idx
}
