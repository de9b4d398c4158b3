// Package ranking filters, scores and orders dataset records for a profile.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/internal/domain/scoring"
)

// Result is one ranked record.
type Result struct {
	Record    model.Record
	Score     float64
	Breakdown scoring.Breakdown
}

// Ranker ranks a dataset with a fixed scorer and filter set.
type Ranker struct {
	dataset *model.Dataset
	scorer  *scoring.Scorer
	filters []Filter
}

// NewRanker returns a ranker over ds.
func NewRanker(ds *model.Dataset, scorer *scoring.Scorer, filters ...Filter) *Ranker {
	return &Ranker{dataset: ds, scorer: scorer, filters: filters}
}

// Rank returns at most topN records ordered by descending score. Ties keep
// dataset order. No eligible record yields an empty, non-nil slice.
func (r *Ranker) Rank(ctx context.Context, p model.Profile, topN int) ([]Result, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidInput, topN)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	p = p.Normalize()

	candidates := r.dataset.Filter(func(rec model.Record) bool {
		return eligible(r.filters, p, rec)
	})

	results := make([]Result, 0, len(candidates))
	for _, rec := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rank cancelled: %w", err)
		}
		b := r.scorer.Score(p, rec)
		results = append(results, Result{Record: rec, Score: b.Total, Breakdown: b})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

// Scorer returns the scorer in use.
func (r *Ranker) Scorer() *scoring.Scorer { return r.scorer }
