package model

// Classifier is a bare model: encoding and classification behind one Scorer
// with no addressable stages.
type Classifier struct {
	enc Transformer
	clf VectorClassifier
}

// ProbaClassifier is a Classifier that also exposes probabilities.
type ProbaClassifier struct {
	*Classifier
}

// NewClassifier returns a *ProbaClassifier when clf has probabilities and a
// *Classifier otherwise.
func NewClassifier(enc Transformer, clf VectorClassifier) Scorer {
	c := &Classifier{enc: enc, clf: clf}
	if _, ok := clf.(VectorProbabilityClassifier); ok {
		return &ProbaClassifier{Classifier: c}
	}
	return c
}

func (c *Classifier) Predict(f *Frame) ([]string, error) {
	x, err := c.enc.Transform(f)
	if err != nil {
		return nil, err
	}
	return c.clf.Predict(x)
}

func (c *Classifier) Classes() []string {
	return c.clf.Classes()
}

func (c *ProbaClassifier) PredictProba(f *Frame) ([][]float64, error) {
	x, err := c.enc.Transform(f)
	if err != nil {
		return nil, err
	}
	return c.clf.(VectorProbabilityClassifier).PredictProba(x)
}
