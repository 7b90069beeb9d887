package store

import "context"

// Store is the high-level data access layer. All reads and writes go
// through the configured Driver.
type Store struct {
	driver Driver
}

// New creates a Store backed by the given driver.
func New(driver Driver) *Store {
	return &Store{driver: driver}
}

// Migrate creates any missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.driver.Close()
}
