package service

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// DefaultPrecision is the number of decimals probabilities are rounded to.
const DefaultPrecision = 4

// TopK is how many classes a Ranking keeps.
const TopK = 3

// ClassProbability pairs a class label with its probability.
type ClassProbability struct {
	Class       string  `json:"class"`
	Probability float64 `json:"probability"`
}

// Ranking is the top classes of one prediction. The zero value means no
// probability information could be derived, which is distinct from an empty
// or all-zero ranking.
type Ranking struct {
	entries   []ClassProbability
	available bool
}

// Unavailable returns the marker for "no probabilities".
func Unavailable() Ranking {
	return Ranking{}
}

// Ranked wraps computed entries.
func Ranked(entries []ClassProbability) Ranking {
	return Ranking{entries: entries, available: true}
}

// Available reports whether probabilities were derived.
func (r Ranking) Available() bool {
	return r.available
}

// Entries returns a copy of the ranked pairs, descending by probability.
func (r Ranking) Entries() []ClassProbability {
	if r.entries == nil {
		return nil
	}
	return append([]ClassProbability(nil), r.entries...)
}

// MarshalJSON encodes an unavailable ranking as null.
func (r Ranking) MarshalJSON() ([]byte, error) {
	if !r.available {
		return []byte("null"), nil
	}
	if r.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.entries)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Ranking) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Unavailable()
		return nil
	}
	var entries []ClassProbability
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}
	*r = Ranked(entries)
	return nil
}

// rankTop pairs classes with probabilities, keeps the k most probable and
// rounds them. Ties keep registry order.
func rankTop(classes []string, proba []float64, k, precision int) ([]ClassProbability, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: empty class registry", ErrRankingShape)
	}
	if len(classes) != len(proba) {
		return nil, fmt.Errorf("%w: %d classes, %d probabilities", ErrRankingShape, len(classes), len(proba))
	}

	pairs := make([]ClassProbability, len(classes))
	for i, c := range classes {
		pairs[i] = ClassProbability{Class: c, Probability: proba[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Probability > pairs[j].Probability
	})

	if len(pairs) > k {
		pairs = pairs[:k]
	}
	for i := range pairs {
		pairs[i].Probability = roundTo(pairs[i].Probability, precision)
	}
	return pairs, nil
}

// roundTo rounds half to even, the way numpy rounds.
func roundTo(x float64, precision int) float64 {
	scale := math.Pow(10, float64(precision))
	return math.RoundToEven(x*scale) / scale
}
