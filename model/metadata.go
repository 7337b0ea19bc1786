package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Model kinds recognised in the metadata sidecar.
const (
	KindPipeline   = "pipeline"
	KindClassifier = "classifier"
)

// Column types recognised by the encoder.
const (
	ColumnNumeric     = "numeric"
	ColumnCategorical = "categorical"
)

// DefaultFinalStep is the stage name a pipeline's classifier is registered under.
const DefaultFinalStep = "clf"

// PreprocessStep is the stage name of the pipeline's column encoder.
const PreprocessStep = "preprocess"

// ColumnSpec describes one trained input column.
type ColumnSpec struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Mean       float64  `json:"mean,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Width is the number of encoded features the column produces.
func (c ColumnSpec) Width() int {
	if c.Type == ColumnCategorical {
		return len(c.Categories)
	}
	return 1
}

// Metadata is the JSON sidecar shipped next to the .onnx graph.
type Metadata struct {
	Kind              string       `json:"kind"`
	FinalStep         string       `json:"final_step,omitempty"`
	InputName         string       `json:"input_name"`
	LabelOutput       string       `json:"label_output,omitempty"`
	ProbabilityOutput string       `json:"probability_output,omitempty"`
	Classes           []string     `json:"classes"`
	Columns           []ColumnSpec `json:"columns"`
}

// ReadMetadata loads and validates a metadata file.
func ReadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode model metadata: %w", err)
	}
	if err := meta.Validate(); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Validate checks the metadata and fills defaults.
func (m *Metadata) Validate() error {
	switch m.Kind {
	case KindPipeline, KindClassifier:
	case "":
		m.Kind = KindPipeline
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidMetadata, m.Kind)
	}
	if m.FinalStep == "" {
		m.FinalStep = DefaultFinalStep
	}
	if m.InputName == "" {
		return fmt.Errorf("%w: input_name is required", ErrInvalidMetadata)
	}
	if m.LabelOutput == "" && m.ProbabilityOutput == "" {
		return fmt.Errorf("%w: one of label_output or probability_output is required", ErrInvalidMetadata)
	}
	if len(m.Classes) == 0 {
		return fmt.Errorf("%w: classes are required", ErrInvalidMetadata)
	}
	if len(m.Columns) == 0 {
		return fmt.Errorf("%w: columns are required", ErrInvalidMetadata)
	}

	seen := make(map[string]bool, len(m.Columns))
	for _, c := range m.Columns {
		if c.Name == "" {
			return fmt.Errorf("%w: column without name", ErrInvalidMetadata)
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidMetadata, c.Name)
		}
		seen[c.Name] = true
		if c.Type != ColumnNumeric && c.Type != ColumnCategorical {
			return fmt.Errorf("%w: column %q has unknown type %q", ErrInvalidMetadata, c.Name, c.Type)
		}
	}
	return nil
}

// FeatureWidth is the total encoded width, the D of the [1, D] input tensor.
func (m *Metadata) FeatureWidth() int {
	w := 0
	for _, c := range m.Columns {
		w += c.Width()
	}
	return w
}
