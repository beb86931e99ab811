package store

import (
	"context"
)

// ResearchItem is the object representing a saved research reference.
type ResearchItem struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Title     string
	Authors   string
	URL       string
	Summary   string
}

// FindResearchItem is the find condition for research items.
type FindResearchItem struct {
	UserID *int32
	Limit  *int
}

// CreateResearchItem creates a new research item.
func (s *Store) CreateResearchItem(ctx context.Context, create *ResearchItem) (*ResearchItem, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateResearchItem(ctx, create)
}

// ListResearchItems lists research items with filter, newest first.
func (s *Store) ListResearchItems(ctx context.Context, find *FindResearchItem) ([]*ResearchItem, error) {
	return s.driver.ListResearchItems(ctx, find)
}
