package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/gigmatch/internal/domain/model"
	"github.com/okian/gigmatch/pkg/metrics"
)

// FeedbackRow is one rating; the primary key makes ratings upsert per (user, record).
type FeedbackRow struct {
	UserID    string    `gorm:"primaryKey;size:128"`
	RecordID  string    `gorm:"primaryKey;size:128;index"`
	Rating    int       `gorm:"not null"`
	EventID   string    `gorm:"size:64"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName implements gorm's tabler.
func (FeedbackRow) TableName() string { return "feedback" }

// SavedRow is one saved record.
type SavedRow struct {
	UserID    string    `gorm:"primaryKey;size:128"`
	RecordID  string    `gorm:"primaryKey;size:128"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName implements gorm's tabler.
func (SavedRow) TableName() string { return "saved_records" }

type meanRow struct {
	RecordID string
	Mean     float64
	Ratings  int
}

// GormStore is a Store backed by MySQL through GORM.
type GormStore struct {
	db          *gorm.DB
	autoMigrate bool
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
}

// OpenMySQL connects to dsn and returns a store.
func OpenMySQL(dsn string, opts ...Option) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:      gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return NewGormStore(db, append([]Option{WithAutoMigrate(true)}, opts...)...)
}

// NewGormStore wraps an open gorm handle.
func NewGormStore(db *gorm.DB, opts ...Option) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: nil database handle", ErrUnavailable)
	}
	s := &GormStore{db: db, maxOpen: 10, maxIdle: 5, maxLifetime: 30 * time.Minute}
	for _, opt := range opts {
		opt(s)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(s.maxOpen)
		sqlDB.SetMaxIdleConns(s.maxIdle)
		sqlDB.SetConnMaxLifetime(s.maxLifetime)
	}

	if s.autoMigrate {
		if err := db.AutoMigrate(&FeedbackRow{}, &SavedRow{}); err != nil {
			return nil, fmt.Errorf("migrate feedback tables: %w", err)
		}
	}
	return s, nil
}

func upsertRating(tx *gorm.DB, row *FeedbackRow) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "record_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "event_id", "updated_at"}),
	}).Create(row)
}

func insertSaved(tx *gorm.DB, row *SavedRow) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
}

func (s *GormStore) PutRating(ctx context.Context, e model.FeedbackEvent) error {
	if e.UserID == "" || e.RecordID == "" {
		return ErrInvalidKey
	}
	if e.Rating < model.MinRating || e.Rating > model.MaxRating {
		return model.ErrInvalidRating
	}
	ts := e.TS
	if ts.IsZero() {
		ts = time.Now()
	}
	row := &FeedbackRow{UserID: e.UserID, RecordID: e.RecordID, Rating: e.Rating, EventID: e.EventID, UpdatedAt: ts}
	if err := upsertRating(s.db.WithContext(ctx), row).Error; err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	metrics.UpdateFeedbackRows(s.Count(ctx))
	return nil
}

// summaryQuery reads per-record means and row counts in one statement so the
// total always matches the means it is reported with.
func summaryQuery(tx *gorm.DB) *gorm.DB {
	return tx.Model(&FeedbackRow{}).
		Select("record_id, AVG(rating) AS mean, COUNT(*) AS ratings").
		Group("record_id")
}

func summarize(rows []meanRow) model.FeedbackSummary {
	mean := make(map[string]float64, len(rows))
	var total int
	for _, r := range rows {
		mean[r.RecordID] = r.Mean
		total += r.Ratings
	}
	return model.NewFeedbackSummary(mean, total)
}

func (s *GormStore) Summary(ctx context.Context) (model.FeedbackSummary, error) {
	var rows []meanRow
	if err := summaryQuery(s.db.WithContext(ctx)).Scan(&rows).Error; err != nil {
		return model.FeedbackSummary{}, fmt.Errorf("summarize feedback: %w", err)
	}
	return summarize(rows), nil
}

func (s *GormStore) SaveRecord(ctx context.Context, userID, recordID string) error {
	if userID == "" || recordID == "" {
		return ErrInvalidKey
	}
	row := &SavedRow{UserID: userID, RecordID: recordID, CreatedAt: time.Now()}
	if err := insertSaved(s.db.WithContext(ctx), row).Error; err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

func (s *GormStore) SavedRecords(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).Model(&SavedRow{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("record_id", &ids).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("list saved records: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Count returns the number of ratings, or 0 when the database is unreachable.
func (s *GormStore) Count(ctx context.Context) int {
	var n int64
	if err := s.db.WithContext(ctx).Model(&FeedbackRow{}).Count(&n).Error; err != nil {
		return 0
	}
	return int(n)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
