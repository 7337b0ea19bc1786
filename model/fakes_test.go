package model

import "errors"

// stubClassifier scores every row with the same probabilities.
type stubClassifier struct {
	classes []string
	proba   []float64
	seen    [][]float32
}

func (s *stubClassifier) Predict(x [][]float32) ([]string, error) {
	s.seen = append(s.seen, x...)
	out := make([]string, len(x))
	for i := range x {
		out[i] = s.classes[argmax(s.proba)]
	}
	return out, nil
}

func (s *stubClassifier) Classes() []string { return s.classes }

type stubProbaClassifier struct {
	*stubClassifier
}

func (s *stubProbaClassifier) PredictProba(x [][]float32) ([][]float64, error) {
	s.seen = append(s.seen, x...)
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = s.proba
	}
	return out, nil
}

var errTransform = errors.New("transform failed")

type failingTransformer struct{}

func (failingTransformer) Transform(*Frame) ([][]float32, error) { return nil, errTransform }

func testColumns() []ColumnSpec {
	return []ColumnSpec{
		{Name: "Age", Type: ColumnNumeric, Mean: 30, Scale: 10},
		{Name: "Gender", Type: ColumnCategorical, Categories: []string{"male", "female"}},
		{Name: "Jobs", Type: ColumnCategorical, Categories: []string{"a", "b", "c"}},
	}
}

func testFrame(age int, gender, jobs string) *Frame {
	return &Frame{
		Columns: []string{"Age", "Gender", "Jobs"},
		Rows:    [][]any{{age, gender, jobs}},
	}
}
