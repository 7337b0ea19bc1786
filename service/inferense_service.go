package service

import (
	"errors"
	"fmt"

	"favorite-app-service/features"
	"favorite-app-service/model"

	"go.uber.org/zap"
)

var (
	// ErrEmptyPrediction is returned when the model yields no label for the row.
	ErrEmptyPrediction = errors.New("model returned no prediction")
	// ErrRankingShape is returned when probabilities and classes cannot be paired.
	ErrRankingShape = errors.New("probabilities do not match class registry")
	// ErrUnknownStage is returned when the configured final stage is not in the pipeline.
	ErrUnknownStage = errors.New("unknown pipeline stage")
)

// PredictionResult is the outcome of one inference.
type PredictionResult struct {
	PredictedLabel string                 `json:"predicted_label"`
	Top3           Ranking                `json:"top3"`
	Echo           features.FeatureRecord `json:"echo"`
}

// InferenceService turns a normalized record into a prediction. It holds no
// per-request state and is safe for concurrent use.
type InferenceService struct {
	Model     model.Scorer
	finalStep string
	precision int
	log       *zap.Logger
}

type Option func(*InferenceService)

// WithPrecision sets how many decimals probabilities are rounded to.
func WithPrecision(p int) Option {
	return func(s *InferenceService) { s.precision = p }
}

// WithFinalStep sets the pipeline stage probabilities are looked up on.
func WithFinalStep(name string) Option {
	return func(s *InferenceService) { s.finalStep = name }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *InferenceService) { s.log = l }
}

func NewInferenceService(m model.Scorer, opts ...Option) *InferenceService {
	s := &InferenceService{
		Model:     m,
		finalStep: model.DefaultFinalStep,
		precision: DefaultPrecision,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict scores rec. A failing predict call is returned as an error; any
// failure while deriving probabilities only makes Top3 unavailable.
func (s *InferenceService) Predict(rec features.FeatureRecord) (*PredictionResult, error) {
	frame, err := model.NewFrame(features.Columns(), rec.Row())
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	labels, err := s.Model.Predict(frame)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("predict: %w", ErrEmptyPrediction)
	}

	return &PredictionResult{
		PredictedLabel: labels[0],
		Top3:           s.top3(frame),
		Echo:           rec,
	}, nil
}

func (s *InferenceService) top3(frame *model.Frame) (r Ranking) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Warn("probability derivation panicked", zap.Any("panic", p))
			r = Unavailable()
		}
	}()

	entries, err := s.rank(frame)
	if err != nil {
		if !errors.Is(err, model.ErrNoProbabilities) {
			s.log.Warn("probabilities unavailable", zap.Error(err))
		}
		return Unavailable()
	}
	return Ranked(entries)
}

func (s *InferenceService) rank(frame *model.Frame) ([]ClassProbability, error) {
	proba, classes, err := s.probabilities(frame)
	if err != nil {
		return nil, err
	}
	if len(proba) == 0 {
		return nil, fmt.Errorf("%w: empty probability output", ErrRankingShape)
	}
	return rankTop(classes, proba[0], TopK, s.precision)
}

// probabilities finds a probability source on the model: the model itself,
// or the final stage of a pipeline scored through the whole pipeline.
func (s *InferenceService) probabilities(frame *model.Frame) ([][]float64, []string, error) {
	if ps, ok := s.Model.(model.ProbabilityScorer); ok {
		reg, ok := s.Model.(model.ClassRegistry)
		if !ok {
			return nil, nil, fmt.Errorf("model has no class registry: %w", model.ErrNoProbabilities)
		}
		proba, err := ps.PredictProba(frame)
		return proba, reg.Classes(), err
	}

	if p, ok := s.Model.(model.Pipeline); ok {
		stage, ok := p.Step(s.finalStep)
		if !ok {
			return nil, nil, fmt.Errorf("pipeline has no %q stage: %w", s.finalStep, ErrUnknownStage)
		}
		clf, ok := stage.(model.VectorProbabilityClassifier)
		if !ok {
			return nil, nil, fmt.Errorf("stage %q: %w", s.finalStep, model.ErrNoProbabilities)
		}
		proba, err := p.ProbaThroughStages(frame)
		return proba, clf.Classes(), err
	}

	return nil, nil, model.ErrNoProbabilities
}
