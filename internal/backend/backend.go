// Package backend implements the remote collection boundary on top of
// a sqlite database through gorm. After every successful write it
// re-queries the full matching set and pushes it to live subscribers,
// which gives consumers the same full-snapshot contract a hosted
// document store would.
package backend

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/omarbek/taskflow/internal/models"
)

// Backend holds the database handle and the subscriber registry
type Backend struct {
	db  *gorm.DB
	log zerolog.Logger

	subs *registry
}

// Open connects to the sqlite database at path, creating the parent
// directory and running migrations as needed.
func Open(path string, log zerolog.Logger) (*Backend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	b := &Backend{db: db, log: log, subs: newRegistry()}
	if err := b.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return b, nil
}

// OpenMemory opens a throwaway in-memory database, used by tests
func OpenMemory(log zerolog.Logger) (*Backend, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	b := &Backend{db: db, log: log, subs: newRegistry()}
	if err := b.migrate(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Backend) migrate() error {
	return b.db.AutoMigrate(
		&models.Task{},
		&models.TimeLog{},
		&models.User{},
	)
}

// Close cancels every live subscription and closes the database
func (b *Backend) Close() error {
	b.subs.cancelAll()

	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
