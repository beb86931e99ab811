package store

import (
	"context"
	"time"
)

// Treatment is the object representing a conventional treatment record.
type Treatment struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Name      string
	Kind      string
	StartTs   int64
	EndTs     *int64
	Active    bool
	// SideEffects holds patient-reported side effects for this treatment.
	SideEffects []string
}

// FindTreatment is the find condition for treatments.
type FindTreatment struct {
	UserID *int32
	Active *bool
	Limit  *int
}

// CreateTreatment creates a new treatment record.
func (s *Store) CreateTreatment(ctx context.Context, create *Treatment) (*Treatment, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreateTreatment(ctx, create)
}

// ListTreatments lists treatments with filter, newest first.
func (s *Store) ListTreatments(ctx context.Context, find *FindTreatment) ([]*Treatment, error) {
	return s.driver.ListTreatments(ctx, find)
}

// ParseStartTime parses the treatment start time to time.Time.
func (t *Treatment) ParseStartTime() time.Time {
	return time.Unix(t.StartTs, 0)
}

// ParseEndTime parses the treatment end time to time.Time.
func (t *Treatment) ParseEndTime() *time.Time {
	if t.EndTs == nil {
		return nil
	}
	ts := time.Unix(*t.EndTs, 0)
	return &ts
}
