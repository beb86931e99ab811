package store

import (
	"context"
)

// DietEntry is the object representing a diet log entry.
type DietEntry struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Meal      string
	Items     string
}

// FindDietEntry is the find condition for diet entries.
type FindDietEntry struct {
	UserID *int32
	Since  *int64
	Limit  *int
}

// CreateDietEntry creates a new diet entry.
func (s *Store) CreateDietEntry(ctx context.Context, create *DietEntry) (*DietEntry, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateDietEntry(ctx, create)
}

// ListDietEntries lists diet entries with filter, newest first.
func (s *Store) ListDietEntries(ctx context.Context, find *FindDietEntry) ([]*DietEntry, error) {
	return s.driver.ListDietEntries(ctx, find)
}
