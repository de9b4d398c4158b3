// Package repository stores community feedback and saved records.
package repository

import (
	"context"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Store persists ratings per (user, record) and saved records per user.
type Store interface {
	// PutRating upserts the rating of e.UserID for e.RecordID.
	PutRating(ctx context.Context, e model.FeedbackEvent) error

	// Summary returns an immutable snapshot of mean ratings per record.
	Summary(ctx context.Context) (model.FeedbackSummary, error)

	// SaveRecord marks recordID as saved by userID. Saving twice is a no-op.
	SaveRecord(ctx context.Context, userID, recordID string) error

	// SavedRecords lists the records saved by userID in save order.
	SavedRecords(ctx context.Context, userID string) ([]string, error)

	// Count returns the number of stored ratings.
	Count(ctx context.Context) int

	Close() error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)
