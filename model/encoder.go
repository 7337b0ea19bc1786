package model

import (
	"fmt"
	"math"
)

// ColumnEncoder turns a Frame into the numeric matrix the classifier graph
// expects: numeric columns are standardized, categorical columns one-hot
// encoded. Unknown categories encode to all zeros.
type ColumnEncoder struct {
	columns []ColumnSpec
	lookup  []map[string]int
	width   int
}

func NewColumnEncoder(columns []ColumnSpec) *ColumnEncoder {
	e := &ColumnEncoder{
		columns: columns,
		lookup:  make([]map[string]int, len(columns)),
	}
	for i, c := range columns {
		e.width += c.Width()
		if c.Type != ColumnCategorical {
			continue
		}
		m := make(map[string]int, len(c.Categories))
		for j, cat := range c.Categories {
			if _, dup := m[cat]; !dup {
				m[cat] = j
			}
		}
		e.lookup[i] = m
	}
	return e
}

// Width returns the encoded row width.
func (e *ColumnEncoder) Width() int {
	return e.width
}

// Transform encodes every row of f.
func (e *ColumnEncoder) Transform(f *Frame) ([][]float32, error) {
	if err := e.checkColumns(f); err != nil {
		return nil, err
	}
	idx := f.Index()

	out := make([][]float32, 0, f.Len())
	for r, row := range f.Rows {
		if len(row) != len(f.Columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", r, len(row), len(f.Columns), ErrSchemaMismatch)
		}
		vec := make([]float32, e.width)
		off := 0
		for i, c := range e.columns {
			v := row[idx[c.Name]]
			switch c.Type {
			case ColumnNumeric:
				x, err := toFloat(v)
				if err != nil {
					return nil, fmt.Errorf("column %q: %w", c.Name, err)
				}
				vec[off] = float32(standardize(x, c.Mean, c.Scale))
			case ColumnCategorical:
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("column %q: expected string, got %T", c.Name, v)
				}
				if j, known := e.lookup[i][s]; known {
					vec[off+j] = 1
				}
			}
			off += c.Width()
		}
		out = append(out, vec)
	}
	return out, nil
}

func (e *ColumnEncoder) checkColumns(f *Frame) error {
	if len(f.Columns) != len(e.columns) {
		return fmt.Errorf("got %d columns, want %d: %w", len(f.Columns), len(e.columns), ErrSchemaMismatch)
	}
	idx := f.Index()
	if len(idx) != len(f.Columns) {
		return fmt.Errorf("duplicate column in frame: %w", ErrSchemaMismatch)
	}
	for _, c := range e.columns {
		if _, ok := idx[c.Name]; !ok {
			return fmt.Errorf("missing column %q: %w", c.Name, ErrSchemaMismatch)
		}
	}
	return nil
}

func standardize(x, mean, scale float64) float64 {
	if scale == 0 {
		scale = 1
	}
	return (x - mean) / scale
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) {
			return 0, fmt.Errorf("NaN value")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
