package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type entry struct {
	Key       string `gorm:"primaryKey;size:64;not null"`
	Value     string
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "session_entries"
}

// SQLiteStore persists session state in a local sqlite file so it survives
// across runs, the way browser local storage survives page loads.
type SQLiteStore struct {
	db *gorm.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var e entry
	err := s.db.Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	return s.db.Save(&entry{Key: key, Value: value, UpdatedAt: time.Now()}).Error
}

func (s *SQLiteStore) Delete(key string) error {
	return s.db.Delete(&entry{}, "key = ?", key).Error
}
