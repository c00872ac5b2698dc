package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Status values stored for each video
const (
	StatusUploaded = "uploaded"
	StatusFailed   = "failed"
	StatusDryRun   = "dry_run"
)

// Video is one pipeline outcome
type Video struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     string    `gorm:"size:36;not null;index"`
	Subject   string    `gorm:"size:255;not null"`
	Category  string    `gorm:"size:100"`
	Title     string    `gorm:"size:255"`
	VideoID   string    `gorm:"size:32"`
	URL       string    `gorm:"size:100"`
	Status    string    `gorm:"size:20;not null;index"`
	Error     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
}

// Store persists video outcomes in SQLite
type Store struct {
	db *gorm.DB
}

// Open opens (and migrates) the store at path. ":memory:" and sqlite URIs are passed through.
func Open(path string) (*Store, error) {
	if path != ":memory:" && filepath.Dir(path) != "." {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.AutoMigrate(&Video{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one outcome
func (s *Store) Record(ctx context.Context, v *Video) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("failed to record video: %w", err)
	}
	return nil
}

// RecentSubjects returns the subjects of videos uploaded since the given time, newest first
func (s *Store) RecentSubjects(ctx context.Context, since time.Time) ([]string, error) {
	var subjects []string
	err := s.db.WithContext(ctx).
		Model(&Video{}).
		Where("status = ? AND created_at >= ?", StatusUploaded, since).
		Order("created_at DESC").
		Pluck("subject", &subjects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent subjects: %w", err)
	}
	return subjects, nil
}

// List returns the latest outcomes, newest first
func (s *Store) List(ctx context.Context, limit int) ([]Video, error) {
	var videos []Video
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&videos).Error; err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return videos, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
