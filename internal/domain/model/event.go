package model

import (
	"fmt"
	"time"
)

// Rating bounds accepted from clients.
const (
	MinRating = 1
	MaxRating = 5
)

// FeedbackEvent is a rating submitted by a user for a record.
type FeedbackEvent struct {
	EventID  string    // unique id for idempotency
	UserID   string    // rater
	RecordID string    // rated job or gig
	Rating   int       // 1..5
	TS       time.Time // submission time
}

// Validate checks the rating bounds and required ids.
func (e FeedbackEvent) Validate() error {
	if e.UserID == "" || e.RecordID == "" {
		return fmt.Errorf("%w: user and record ids are required", ErrInvalidFeedback)
	}
	if e.Rating < MinRating || e.Rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// FeedbackSummary is an immutable snapshot of community feedback.
type FeedbackSummary struct {
	mean map[string]float64
	rows int
}

// NewFeedbackSummary copies mean ratings per record and the total row count.
func NewFeedbackSummary(mean map[string]float64, rows int) FeedbackSummary {
	m := make(map[string]float64, len(mean))
	for k, v := range mean {
		m[k] = v
	}
	return FeedbackSummary{mean: m, rows: rows}
}

// Mean returns the mean rating for a record and whether any feedback exists.
func (s FeedbackSummary) Mean(recordID string) (float64, bool) {
	v, ok := s.mean[recordID]
	return v, ok
}

// Rows returns the number of feedback rows the summary was built from.
func (s FeedbackSummary) Rows() int { return s.rows }
