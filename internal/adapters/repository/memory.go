package repository

import (
	"context"
	"sync"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/pkg/metrics"
)

type ratingKey struct {
	user   string
	record string
}

type tally struct {
	sum   int
	count int
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[ratingKey]int
	tallies map[string]tally
	saved   map[string][]string
	nsaved  int
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ratings: make(map[ratingKey]int),
		tallies: make(map[string]tally),
		saved:   make(map[string][]string),
	}
}

func (s *MemoryStore) PutRating(_ context.Context, e model.FeedbackEvent) error {
	if e.UserID == "" || e.RecordID == "" {
		return ErrInvalidKey
	}
	if e.Rating < model.MinRating || e.Rating > model.MaxRating {
		return model.ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := ratingKey{user: e.UserID, record: e.RecordID}
	t := s.tallies[e.RecordID]
	if old, ok := s.ratings[k]; ok {
		t.sum -= old
	} else {
		t.count++
	}
	t.sum += e.Rating
	s.tallies[e.RecordID] = t
	s.ratings[k] = e.Rating

	metrics.UpdateFeedbackRows(len(s.ratings))
	return nil
}

func (s *MemoryStore) Summary(_ context.Context) (model.FeedbackSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mean := make(map[string]float64, len(s.tallies))
	for id, t := range s.tallies {
		mean[id] = float64(t.sum) / float64(t.count)
	}
	return model.NewFeedbackSummary(mean, len(s.ratings)), nil
}

func (s *MemoryStore) SaveRecord(_ context.Context, userID, recordID string) error {
	if userID == "" || recordID == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.saved[userID] {
		if id == recordID {
			return nil
		}
	}
	s.saved[userID] = append(s.saved[userID], recordID)
	s.nsaved++
	metrics.UpdateSavedRecords(s.nsaved)
	return nil
}

func (s *MemoryStore) SavedRecords(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.saved[userID]...), nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings)
}

func (s *MemoryStore) Close() error { return nil }
