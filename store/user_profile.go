package store

import (
	"context"

	"github.com/pkg/errors"
)

// UserProfile is the object representing a patient profile.
// The profile is the one mandatory record for AI context assembly.
type UserProfile struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	UpdatedTs int64
	Name      string
	Diagnosis string
	Stage     string
	Allergies string
	Notes     string
}

// FindUserProfile is the find condition for user profile.
type FindUserProfile struct {
	ID     *int32
	UserID *int32
}

// UpsertUserProfile creates or updates a user profile.
func (s *Store) UpsertUserProfile(ctx context.Context, upsert *UserProfile) (*UserProfile, error) {
	upsert.UID = ensureUID(upsert.UID)
	return s.driver.UpsertUserProfile(ctx, upsert)
}

// GetUserProfile gets the profile for a user. Returns an error when the
// profile does not exist; callers treat that as fatal.
func (s *Store) GetUserProfile(ctx context.Context, userID int32) (*UserProfile, error) {
	profile, err := s.driver.GetUserProfile(ctx, &FindUserProfile{UserID: &userID})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.Errorf("profile not found for user %d", userID)
	}
	return profile, nil
}
