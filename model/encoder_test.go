package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnEncoderTransform(t *testing.T) {
	enc := NewColumnEncoder(testColumns())
	require.Equal(t, 6, enc.Width())

	x, err := enc.Transform(testFrame(40, "female", "c"))
	require.NoError(t, err)
	require.Len(t, x, 1)
	assert.Equal(t, []float32{1, 0, 1, 0, 0, 1}, x[0])
}

func TestColumnEncoderColumnOrderIndependent(t *testing.T) {
	enc := NewColumnEncoder(testColumns())
	f := &Frame{
		Columns: []string{"Jobs", "Age", "Gender"},
		Rows:    [][]any{{"a", 30, "male"}},
	}

	x, err := enc.Transform(f)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 0, 1, 0, 0}, x[0])
}

func TestColumnEncoderUnknownCategoryIsZero(t *testing.T) {
	enc := NewColumnEncoder(testColumns())

	x, err := enc.Transform(testFrame(30, "", "unheard of"))
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0}, x[0])
}

func TestColumnEncoderZeroScale(t *testing.T) {
	enc := NewColumnEncoder([]ColumnSpec{{Name: "Age", Type: ColumnNumeric, Mean: 5}})

	x, err := enc.Transform(&Frame{Columns: []string{"Age"}, Rows: [][]any{{int64(7)}}})
	require.NoError(t, err)
	assert.Equal(t, []float32{2}, x[0])
}

func TestColumnEncoderSchemaMismatch(t *testing.T) {
	enc := NewColumnEncoder(testColumns())

	tests := []struct {
		name  string
		frame *Frame
	}{
		{"missing", &Frame{Columns: []string{"Age", "Gender"}, Rows: [][]any{{1, "male"}}}},
		{"extra", &Frame{Columns: []string{"Age", "Gender", "Jobs", "Extra"}, Rows: [][]any{{1, "male", "a", "x"}}}},
		{"renamed", &Frame{Columns: []string{"Age", "Sex", "Jobs"}, Rows: [][]any{{1, "male", "a"}}}},
		{"duplicate", &Frame{Columns: []string{"Age", "Age", "Jobs"}, Rows: [][]any{{1, 2, "a"}}}},
		{"short row", &Frame{Columns: []string{"Age", "Gender", "Jobs"}, Rows: [][]any{{1, "male"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := enc.Transform(tt.frame)
			assert.ErrorIs(t, err, ErrSchemaMismatch)
		})
	}
}

func TestColumnEncoderTypeErrors(t *testing.T) {
	enc := NewColumnEncoder(testColumns())

	_, err := enc.Transform(&Frame{Columns: []string{"Age", "Gender", "Jobs"}, Rows: [][]any{{"old", "male", "a"}}})
	assert.ErrorContains(t, err, `column "Age"`)

	_, err = enc.Transform(&Frame{Columns: []string{"Age", "Gender", "Jobs"}, Rows: [][]any{{1, []string{"male"}, "a"}}})
	assert.ErrorContains(t, err, `column "Gender"`)
}

func TestNewFrameChecksWidth(t *testing.T) {
	_, err := NewFrame([]string{"a", "b"}, []any{1})
	assert.ErrorIs(t, err, ErrSchemaMismatch)

	f, err := NewFrame([]string{"a"}, []any{1}, []any{2})
	require.NoError(t, err)
	assert.Equal(t, 2, f.Len())
}
