package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"favorite-app-service/data"
	"favorite-app-service/features"
	"favorite-app-service/model"
	"favorite-app-service/service"
)

// fakeModel echoes the Jobs column as its label and scores fixed probabilities.
type fakeModel struct {
	classes []string
	proba   []float64
}

func (m *fakeModel) Predict(f *model.Frame) ([]string, error) {
	jobs := f.Index()[features.ColJobs]
	out := make([]string, f.Len())
	for i, row := range f.Rows {
		out[i] = "app:" + row[jobs].(string)
	}
	return out, nil
}

func (m *fakeModel) PredictProba(f *model.Frame) ([][]float64, error) {
	if m.proba == nil {
		return nil, errors.New("no probabilities")
	}
	return [][]float64{m.proba}, nil
}

func (m *fakeModel) Classes() []string { return m.classes }

type failingPredictor struct{}

func (failingPredictor) Predict(features.FeatureRecord) (*service.PredictionResult, error) {
	return nil, errors.New("model exploded")
}

func testChoices(t *testing.T) *data.Choices {
	t.Helper()
	c, err := data.DefaultChoices()
	require.NoError(t, err)
	return c
}

func testService(proba []float64) *service.InferenceService {
	return service.NewInferenceService(&fakeModel{
		classes: []string{"Facebook", "Instagram", "TikTok", "YouTube"},
		proba:   proba,
	})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
