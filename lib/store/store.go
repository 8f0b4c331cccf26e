// Package store holds the identity, journal and reporting queries over the
// shared gorm handle.
package store

import (
	"github.com/oliverisaac/gratitude/types"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	_ "github.com/ncruces/go-sqlite3/embed"
	sqlite "github.com/ncruces/go-sqlite3/gormlite"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the SQLite file at path and migrates the schema.
func Open(path string, cfg *gorm.Config) (*Store, error) {
	if cfg == nil {
		cfg = &gorm.Config{}
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	s := New(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Migrate() error {
	err := s.db.AutoMigrate(&types.User{}, &types.JournalEntry{}, &types.PushSubscription{})
	return errors.Wrap(err, "Failed to migrate")
}

// DB exposes the underlying handle, mostly so callers can close it.
func (s *Store) DB() *gorm.DB {
	return s.db
}
