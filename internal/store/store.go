// Package store persists cockpits, checklists and attempt history in a
// SQLite database through GORM, using the pure-Go driver (no CGO).
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the GORM handle and provides access to repositories.
type Store struct {
	db *gorm.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and runs
// auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, p := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	} {
		if err := db.Exec(p).Error; err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	if err := db.AutoMigrate(
		&CockpitRecord{},
		&InstrumentRecord{},
		&ChecklistRecord{},
		&ChecklistItemRecord{},
		&AttemptRecord{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Cockpits returns the cockpit repository.
func (s *Store) Cockpits() CockpitRepo {
	return &cockpitRepo{db: s.db}
}

// Attempts returns the attempt repository.
func (s *Store) Attempts() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// DefaultDBPath resolves the database file path in priority order:
// 1. CHECKRIDE_DB environment variable
// 2. $XDG_DATA_HOME/checkride/checkride.db
// 3. ~/.local/share/checkride/checkride.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("CHECKRIDE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "checkride", "checkride.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
