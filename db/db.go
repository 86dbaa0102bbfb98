// Package db keeps small launcher settings in a single key-value table.
package db

import (
	"errors"
	"fmt"
	"math"

	"github.com/d2r2/go-logger"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

var lg = logger.NewPackageLogger("db", logger.InfoLevel)

// KVStore represents the database schema
type KVStore struct {
	Key   string `gorm:"primaryKey;uniqueIndex"`
	Value any    `gorm:"serializer:json"`
}

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("key not found")

// Store wraps a gorm handle opened on the KVStore table.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite file at path and migrates the
// schema. Use ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := database.AutoMigrate(&KVStore{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	lg.Debugf("opened %s", path)
	return &Store{db: database}, nil
}

// Get loads the raw JSON-decoded value of key.
func (s *Store) Get(key string) (any, error) {
	if key == "" {
		return nil, ErrNotFound
	}
	var row KVStore
	err := s.db.Where(&KVStore{Key: key}).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return row.Value, nil
}

// Set writes value under key, replacing any previous value.
func (s *Store) Set(key string, value any) error {
	row := KVStore{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// GetInt reads an integer. Values come back from JSON as float64, so any
// numeric form is accepted; fractional values are truncated.
func (s *Store) GetInt(key string) (int, error) {
	v, err := s.Get(key)
	if err != nil {
		return 0, err
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("get %s: not a finite number", key)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("get %s: unexpected type %T", key, v)
	}
}

func (s *Store) SetInt(key string, v int) error {
	return s.Set(key, v)
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
