// Package store holds every database operation the handlers need. A Store is
// built around one *gorm.DB so tests can run against an isolated database.
package store

import (
	"errors" // Sentinel errors

	"gorm.io/gorm" // ORM
)

// Errors handlers map onto client responses
var (
	ErrNotFound      = errors.New("record not found")         // No matching row, or bad credentials
	ErrEmailTaken    = errors.New("email already registered") // Unique email violated
	ErrUsernameTaken = errors.New("username already taken")   // Unique username violated
)

// Store wraps the database handle
type Store struct {
	db *gorm.DB // Database connection
}

// New returns a Store using db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for health checks
func (s *Store) DB() *gorm.DB {
	return s.db
}
