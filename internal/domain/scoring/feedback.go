package scoring

import "fmt"

// FeedbackPolicy shifts weight toward community ratings once enough feedback
// exists. With feedback weight fw the gig weights are
// text = 0.5 - fw/2, trending = 0.3 - fw/2, rating = fw.
type FeedbackPolicy struct {
	Threshold     int     `koanf:"threshold" json:"threshold"`
	LowWeight     float64 `koanf:"low_weight" json:"low_weight"`
	HighWeight    float64 `koanf:"high_weight" json:"high_weight"`
	DefaultRating float64 `koanf:"default_rating" json:"default_rating"`
}

const (
	baseTextShare     = 0.5
	baseTrendingShare = 0.3
	maxRating         = 5.0
)

// DefaultFeedbackPolicy returns the 0.2 / 0.3 split around ten feedback rows
// and a neutral rating of 3.
func DefaultFeedbackPolicy() FeedbackPolicy {
	return FeedbackPolicy{Threshold: 10, LowWeight: 0.2, HighWeight: 0.3, DefaultRating: 3}
}

// Validate checks the policy keeps every derived weight non-negative.
func (p FeedbackPolicy) Validate() error {
	for _, fw := range []float64{p.LowWeight, p.HighWeight} {
		if fw < 0 || fw/2 > baseTrendingShare {
			return fmt.Errorf("%w: feedback weight %v out of range", ErrInvalidWeights, fw)
		}
	}
	if p.Threshold < 0 {
		return fmt.Errorf("%w: negative feedback threshold", ErrInvalidWeights)
	}
	if p.DefaultRating < 0 || p.DefaultRating > maxRating {
		return fmt.Errorf("%w: default rating %v out of range", ErrInvalidWeights, p.DefaultRating)
	}
	return nil
}

// FeedbackWeight returns the rating weight for the given number of rows.
func (p FeedbackPolicy) FeedbackWeight(rows int) float64 {
	if rows > p.Threshold {
		return p.HighWeight
	}
	return p.LowWeight
}

func (p FeedbackPolicy) weights(rows int) Weights {
	fw := p.FeedbackWeight(rows)
	return Weights{
		Text:     baseTextShare - fw/2,
		Trending: baseTrendingShare - fw/2,
		Rating:   fw,
	}
}
