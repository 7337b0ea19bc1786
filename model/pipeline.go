package model

import "fmt"

// NamedStep is one named stage of a pipeline.
type NamedStep struct {
	Name  string
	Stage any
}

// StagePipeline runs a preprocessing stage followed by a final classifier stage.
type StagePipeline struct {
	pre   NamedStep
	final NamedStep
}

// NewStagePipeline checks that pre is a Transformer and final a VectorClassifier.
func NewStagePipeline(pre, final NamedStep) (*StagePipeline, error) {
	if _, ok := pre.Stage.(Transformer); !ok {
		return nil, fmt.Errorf("stage %q is not a transformer", pre.Name)
	}
	if _, ok := final.Stage.(VectorClassifier); !ok {
		return nil, fmt.Errorf("stage %q is not a classifier", final.Name)
	}
	if pre.Name == final.Name {
		return nil, fmt.Errorf("duplicate stage name %q", pre.Name)
	}
	return &StagePipeline{pre: pre, final: final}, nil
}

// Step looks up a stage by name.
func (p *StagePipeline) Step(name string) (any, bool) {
	switch name {
	case p.pre.Name:
		return p.pre.Stage, true
	case p.final.Name:
		return p.final.Stage, true
	}
	return nil, false
}

func (p *StagePipeline) Predict(f *Frame) ([]string, error) {
	x, err := p.pre.Stage.(Transformer).Transform(f)
	if err != nil {
		return nil, err
	}
	return p.final.Stage.(VectorClassifier).Predict(x)
}

// ProbaThroughStages preprocesses f and scores it with the final stage's
// probability operation.
func (p *StagePipeline) ProbaThroughStages(f *Frame) ([][]float64, error) {
	clf, ok := p.final.Stage.(VectorProbabilityClassifier)
	if !ok {
		return nil, fmt.Errorf("stage %q: %w", p.final.Name, ErrNoProbabilities)
	}
	x, err := p.pre.Stage.(Transformer).Transform(f)
	if err != nil {
		return nil, err
	}
	return clf.PredictProba(x)
}
