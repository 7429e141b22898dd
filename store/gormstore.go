package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// entry is one row of the shared namespace.
type entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (entry) TableName() string {
	return "shift_state"
}

// GormStore backs the shared namespace with a sqlite file so the app server
// and the widget binary can read it independently.
type GormStore struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite store at path.
func Open(path string, level LogLevel) (*GormStore, error) {
	gormLogLevel := logger.Silent
	switch level {
	case LogLevelError:
		gormLogLevel = logger.Error
	case LogLevelWarn:
		gormLogLevel = logger.Warn
	case LogLevelInfo:
		gormLogLevel = logger.Info
	case LogLevelSilent:
		gormLogLevel = logger.Silent
	default:
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	// Two processes share this file; keep writers from tripping over
	// sqlite's default immediate-lock errors.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	db.Exec("PRAGMA busy_timeout = 5000")

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e entry
	err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Save(&e).Error
}

func (s *GormStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&entry{}, "key IN ?", keys).Error
}

func (s *GormStore) RemoveIfRevision(ctx context.Context, revKey, rev string, keys ...string) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e entry
		err := tx.First(&e, "key = ?", revKey).Error
		current := ""
		if err == nil {
			current = e.Value
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if current != rev {
			// Another writer replaced the record; leave it alone.
			return nil
		}

		if err := tx.Delete(&entry{}, "key IN ?", keys).Error; err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}
