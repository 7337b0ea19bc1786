package model

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// ONNXClassifier wraps an ONNX Runtime session for a tabular classifier.
// The graph takes one float32 input of shape [1, D] and yields a class index
// (int64 [1]) and/or class probabilities (float32 [1, C]).
//
// Tensors are preallocated and bound to the session, so Run is serialized.
type ONNXClassifier struct {
	mu          sync.Mutex
	session     *ort.AdvancedSession
	inputTensor *ort.Tensor[float32]
	labelTensor *ort.Tensor[int64]
	probaTensor *ort.Tensor[float32]
	inputShape  []int64
	classes     []string
}

// ONNXProbaClassifier is an ONNXClassifier whose graph has a probability output.
type ONNXProbaClassifier struct {
	*ONNXClassifier
}

// NewONNXClassifier creates a session for the graph at path, shaped by meta.
// The runtime environment must already be initialized.
//
// The returned classifier implements VectorProbabilityClassifier only when
// meta names a probability output.
func NewONNXClassifier(path string, meta *Metadata) (VectorClassifier, error) {
	width := meta.FeatureWidth()
	inputShape := []int64{1, int64(width)}
	outputShape := []int64{1, int64(len(meta.Classes))}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer options.Destroy()

	m := &ONNXClassifier{
		inputShape: inputShape,
		classes:    append([]string(nil), meta.Classes...),
	}

	m.inputTensor, err = ort.NewTensor(ort.NewShape(inputShape...), make([]float32, width))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	var (
		outputNames []string
		outputs     []ort.Value
	)
	if meta.LabelOutput != "" {
		m.labelTensor, err = ort.NewEmptyTensor[int64](ort.NewShape(1))
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to create label tensor: %w", err)
		}
		outputNames = append(outputNames, meta.LabelOutput)
		outputs = append(outputs, m.labelTensor)
	}
	if meta.ProbabilityOutput != "" {
		m.probaTensor, err = ort.NewEmptyTensor[float32](ort.NewShape(outputShape...))
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("failed to create probability tensor: %w", err)
		}
		outputNames = append(outputNames, meta.ProbabilityOutput)
		outputs = append(outputs, m.probaTensor)
	}

	m.session, err = ort.NewAdvancedSession(
		path,
		[]string{meta.InputName},
		outputNames,
		[]ort.Value{m.inputTensor},
		outputs,
		options,
	)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf(
			"failed to create session (check input/output node names): %w",
			err,
		)
	}

	if m.probaTensor != nil {
		return &ONNXProbaClassifier{ONNXClassifier: m}, nil
	}
	return m, nil
}

// Classes returns the class registry.
func (m *ONNXClassifier) Classes() []string {
	return m.classes
}

// Predict runs the graph once per row and maps the class index to its label.
// Without a label output the label is the most probable class.
func (m *ONNXClassifier) Predict(x [][]float32) ([]string, error) {
	labels := make([]string, 0, len(x))
	for _, row := range x {
		idx, _, err := m.run(row)
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= int64(len(m.classes)) {
			return nil, fmt.Errorf("class index %d outside registry of %d classes", idx, len(m.classes))
		}
		labels = append(labels, m.classes[idx])
	}
	return labels, nil
}

// PredictProba returns one probability vector per row, ordered like Classes.
func (m *ONNXProbaClassifier) PredictProba(x [][]float32) ([][]float64, error) {
	out := make([][]float64, 0, len(x))
	for _, row := range x {
		_, proba, err := m.run(row)
		if err != nil {
			return nil, err
		}
		out = append(out, proba)
	}
	return out, nil
}

func (m *ONNXClassifier) run(row []float32) (int64, []float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inputData := m.inputTensor.GetData()
	if len(row) != len(inputData) {
		return 0, nil, fmt.Errorf("input size mismatch: expected %d, got %d", len(inputData), len(row))
	}
	copy(inputData, row)

	if err := m.session.Run(); err != nil {
		return 0, nil, fmt.Errorf("failed to run inference: %w", err)
	}

	var proba []float64
	if m.probaTensor != nil {
		raw := m.probaTensor.GetData()
		proba = make([]float64, len(raw))
		for i, p := range raw {
			proba[i] = float64(p)
		}
	}

	if m.labelTensor != nil {
		return m.labelTensor.GetData()[0], proba, nil
	}
	return argmax(proba), proba, nil
}

func argmax(p []float64) int64 {
	if len(p) == 0 {
		return -1
	}
	maxIdx := 0
	for i := 1; i < len(p); i++ {
		if p[i] > p[maxIdx] {
			maxIdx = i
		}
	}
	return int64(maxIdx)
}

// Close releases the session and its tensors.
func (m *ONNXClassifier) Close() error {
	if m.inputTensor != nil {
		m.inputTensor.Destroy()
	}
	if m.labelTensor != nil {
		m.labelTensor.Destroy()
	}
	if m.probaTensor != nil {
		m.probaTensor.Destroy()
	}
	if m.session != nil {
		return m.session.Destroy()
	}
	return nil
}

// InputShape returns the shape of the input tensor, [1, D].
func (m *ONNXClassifier) InputShape() []int64 {
	return m.inputShape
}
