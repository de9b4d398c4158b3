package scoring

import (
	"fmt"
	"math"
)

// Weights are the non-negative coefficients of the composite score.
type Weights struct {
	Skills     float64 `koanf:"skills" json:"skills"`
	Experience float64 `koanf:"experience" json:"experience"`
	Education  float64 `koanf:"education" json:"education"`
	Text       float64 `koanf:"text" json:"text"`
	Trending   float64 `koanf:"trending" json:"trending"`
	Rating     float64 `koanf:"rating" json:"rating"`
}

// JobWeights are the defaults for job postings. Raw sum is 1.2.
func JobWeights() Weights {
	return Weights{Skills: 0.5, Experience: 0.3, Education: 0.2, Text: 0.2}
}

// GigWeights are the static defaults for gigs when the adaptive feedback
// policy is off. They equal the policy's low-feedback split. Raw sum is 0.8.
func GigWeights() Weights {
	return DefaultFeedbackPolicy().weights(0)
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skills + w.Experience + w.Education + w.Text + w.Trending + w.Rating
}

// Validate rejects negative, non-finite or all-zero weights.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Skills, w.Experience, w.Education, w.Text, w.Trending, w.Rating} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidWeights, w)
		}
	}
	if w.Sum() == 0 {
		return fmt.Errorf("%w: all weights are zero", ErrInvalidWeights)
	}
	return nil
}

// Normalized scales the weights to sum to 1.
func (w Weights) Normalized() Weights {
	sum := w.Sum()
	if sum == 0 {
		return w
	}
	return Weights{
		Skills:     w.Skills / sum,
		Experience: w.Experience / sum,
		Education:  w.Education / sum,
		Text:       w.Text / sum,
		Trending:   w.Trending / sum,
		Rating:     w.Rating / sum,
	}
}
