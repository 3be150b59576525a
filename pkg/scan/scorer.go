package scan

import (
	"fmt"
	"math"

	"github.com/painradar/painradar/pkg/domain"
)

// Scorer computes a deterministic priority score from engagement and the two
// match sets. The score is a pure function of a single item's fields, no
// cross-item normalization, so items can be scored in isolation and in any
// order. Monotonically non-decreasing in engagement, signal count and
// industry count.
type Scorer struct {
	weights domain.Weights
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights domain.Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the priority score:
//
//	w_engagement*log(1+engagement) + w_signal*|signals| + sum(strengths) + w_industry*|industries|
//
// Negative engagement means the item is malformed and is reported as an
// error, the caller skips the item rather than aborting the run.
func (s *Scorer) Score(engagement int, signals []domain.Signal, industries []string) (float64, error) {
	if engagement < 0 {
		return 0, fmt.Errorf("negative engagement %d", engagement)
	}

	score := s.weights.Engagement * math.Log1p(float64(engagement))
	score += s.weights.Signal * float64(len(signals))
	for _, sig := range signals {
		score += sig.Strength
	}
	score += s.weights.Industry * float64(len(industries))
	return score, nil
}
