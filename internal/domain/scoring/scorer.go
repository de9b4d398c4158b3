// Package scoring computes the composite match score of a profile against a
// record from normalized sub-scores.
package scoring

import (
	"fmt"
	"math"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Similarity is the text similarity contract satisfied by a fitted index.
type Similarity interface {
	Similarity(a, b string) float64
}

// Breakdown holds every sub-score and the composite, all in [0,1].
type Breakdown struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Text       float64 `json:"text"`
	Trending   float64 `json:"trending"`
	Rating     float64 `json:"rating"`
	Total      float64 `json:"total"`
}

// Scorer is immutable once built; use WithFeedback to derive a scorer bound
// to a feedback snapshot.
type Scorer struct {
	raw      Weights
	weights  Weights
	sim      Similarity
	field    model.TextField
	trending map[string]struct{}
	policy   *FeedbackPolicy
	feedback model.FeedbackSummary
}

// New builds a scorer. Without options it uses JobWeights and no text index.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		raw:      JobWeights(),
		field:    model.TextDescription,
		trending: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.policy != nil {
		if err := s.policy.Validate(); err != nil {
			return nil, err
		}
		s.raw = s.policy.weights(0)
	}
	if err := s.raw.Validate(); err != nil {
		return nil, fmt.Errorf("scorer: %w", err)
	}
	s.weights = s.raw.Normalized()
	return s, nil
}

// WithFeedback returns a copy bound to summary. When an adaptive policy is
// configured the weights follow the summary's row count.
func (s *Scorer) WithFeedback(summary model.FeedbackSummary) *Scorer {
	out := *s
	out.feedback = summary
	if s.policy != nil {
		out.raw = s.policy.weights(summary.Rows())
		out.weights = out.raw.Normalized()
	}
	return &out
}

// Weights returns the normalized weights in effect.
func (s *Scorer) Weights() Weights { return s.weights }

// RawWeights returns the weights before normalization.
func (s *Scorer) RawWeights() Weights { return s.raw }

// Score computes the breakdown for p against r. Sub-scores with zero weight
// are skipped.
func (s *Scorer) Score(p model.Profile, r model.Record) Breakdown {
	w := s.weights
	var b Breakdown

	if w.Skills > 0 {
		b.Skills = SkillOverlap(p.Skills, r.RequiredSkills)
	}
	if w.Experience > 0 {
		b.Experience = ExperienceFit(p.ExperienceYears, r.ExperienceLevel)
	}
	if w.Education > 0 {
		b.Education = EducationFit(p.Education, r.EducationLevel)
	}
	if w.Text > 0 && s.sim != nil {
		b.Text = clamp01(s.sim.Similarity(s.profileText(p), r.Text(s.field)))
	}
	if w.Trending > 0 {
		b.Trending = TrendingShare(r.RequiredSkills, s.trending)
	}
	if w.Rating > 0 {
		b.Rating = s.rating(r.ID)
	}

	b.Total = clamp01(w.Skills*b.Skills +
		w.Experience*b.Experience +
		w.Education*b.Education +
		w.Text*b.Text +
		w.Trending*b.Trending +
		w.Rating*b.Rating)
	return b
}

func (s *Scorer) profileText(p model.Profile) string {
	if s.field == model.TextSkills {
		return p.SkillText()
	}
	return p.ExperienceDetails
}

func (s *Scorer) rating(recordID string) float64 {
	mean, ok := s.feedback.Mean(recordID)
	if !ok {
		mean = DefaultFeedbackPolicy().DefaultRating
		if s.policy != nil {
			mean = s.policy.DefaultRating
		}
	}
	return clamp01(mean / maxRating)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
