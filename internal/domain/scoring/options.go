package scoring

import "github.com/okian/gigmatch/internal/domain/model"

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets static composite weights. They are normalized by New.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.raw = w
	}
}

// WithSimilarity sets the fitted text index used for the text sub-score.
func WithSimilarity(sim Similarity) Option {
	return func(s *Scorer) {
		s.sim = sim
	}
}

// WithTextField selects the text pairing: TextDescription compares the
// profile's experience details with the record description, TextSkills
// compares the joined skill lists.
func WithTextField(f model.TextField) Option {
	return func(s *Scorer) {
		s.field = f
	}
}

// WithTrendingSkills sets the skills counted by the trending sub-score.
func WithTrendingSkills(skills []string) Option {
	return func(s *Scorer) {
		s.trending = make(map[string]struct{}, len(skills))
		for _, sk := range model.NormalizeSkills(skills) {
			s.trending[sk] = struct{}{}
		}
	}
}

// WithFeedbackPolicy enables adaptive weights driven by the feedback row count.
// It replaces any static weights.
func WithFeedbackPolicy(p FeedbackPolicy) Option {
	return func(s *Scorer) {
		policy := p
		s.policy = &policy
	}
}
