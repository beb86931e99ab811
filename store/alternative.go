package store

import (
	"context"
)

// AlternativeTreatment is the object representing a complementary or
// alternative treatment record (supplements, herbs, practices).
type AlternativeTreatment struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Name      string
	Kind      string
	Notes     string
}

// FindAlternativeTreatment is the find condition for alternative treatments.
type FindAlternativeTreatment struct {
	UserID *int32
	Limit  *int
}

// CreateAlternativeTreatment creates a new alternative treatment record.
func (s *Store) CreateAlternativeTreatment(ctx context.Context, create *AlternativeTreatment) (*AlternativeTreatment, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateAlternativeTreatment(ctx, create)
}

// ListAlternativeTreatments lists alternative treatments with filter, newest first.
func (s *Store) ListAlternativeTreatments(ctx context.Context, find *FindAlternativeTreatment) ([]*AlternativeTreatment, error) {
	return s.driver.ListAlternativeTreatments(ctx, find)
}
