package model

import "errors"

var (
	// ErrSchemaMismatch is returned when a frame's columns differ from the trained schema.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	// ErrNoProbabilities is returned by probability operations on models that have none.
	ErrNoProbabilities = errors.New("model exposes no probabilities")
	// ErrInvalidMetadata is returned when the artifact metadata cannot describe a model.
	ErrInvalidMetadata = errors.New("invalid model metadata")
)

// Scorer is the minimum every loaded model provides.
type Scorer interface {
	// Predict returns one label per frame row.
	Predict(f *Frame) ([]string, error)
}

// ProbabilityScorer is a Scorer that can also score class probabilities.
// Columns of the result follow the ClassRegistry order.
type ProbabilityScorer interface {
	Scorer
	PredictProba(f *Frame) ([][]float64, error)
}

// ClassRegistry exposes the ordered class labels fixed at training time.
type ClassRegistry interface {
	Classes() []string
}

// Pipeline is a Scorer composed of named stages. It does not implement
// ProbabilityScorer itself: callers check the final stage's capability, then
// call ProbaThroughStages so preprocessing stays identical to Predict.
type Pipeline interface {
	Scorer
	Step(name string) (any, bool)
	ProbaThroughStages(f *Frame) ([][]float64, error)
}

// Transformer is a preprocessing stage.
type Transformer interface {
	Transform(f *Frame) ([][]float32, error)
}

// VectorClassifier is a classification stage over encoded rows.
type VectorClassifier interface {
	Predict(x [][]float32) ([]string, error)
	Classes() []string
}

// VectorProbabilityClassifier is a VectorClassifier with class probabilities.
type VectorProbabilityClassifier interface {
	VectorClassifier
	PredictProba(x [][]float32) ([][]float64, error)
}
