package store

import (
	"context"

	"github.com/lithammer/shortuuid/v4"

	"github.com/lumenhealth/lumen/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// ensureUID fills in a generated short UID when the caller did not supply one.
func ensureUID(uid string) string {
	if uid != "" {
		return uid
	}
	return shortuuid.New()
}

// Capability interfaces, one per record type. The context assembler depends
// on these instead of the concrete Store, so a deployment can substitute a
// no-op implementation for record types it does not support.

// ProfileStore reads patient profiles.
type ProfileStore interface {
	GetUserProfile(ctx context.Context, userID int32) (*UserProfile, error)
}

// PlanStore reads care-plan items.
type PlanStore interface {
	ListPlanItems(ctx context.Context, find *FindPlanItem) ([]*PlanItem, error)
}

// JournalStore reads journal entries.
type JournalStore interface {
	ListJournalEntries(ctx context.Context, find *FindJournalEntry) ([]*JournalEntry, error)
}

// DietStore reads diet entries.
type DietStore interface {
	ListDietEntries(ctx context.Context, find *FindDietEntry) ([]*DietEntry, error)
}

// TreatmentStore reads treatment records.
type TreatmentStore interface {
	ListTreatments(ctx context.Context, find *FindTreatment) ([]*Treatment, error)
}

// AlternativeStore reads alternative treatment records.
type AlternativeStore interface {
	ListAlternativeTreatments(ctx context.Context, find *FindAlternativeTreatment) ([]*AlternativeTreatment, error)
}

// ResearchStore reads saved research items.
type ResearchStore interface {
	ListResearchItems(ctx context.Context, find *FindResearchItem) ([]*ResearchItem, error)
}

// DocumentStore reads uploaded documents.
type DocumentStore interface {
	ListDocuments(ctx context.Context, find *FindDocument) ([]*Document, error)
}

// RecordStore is the full read surface consumed by the AI core.
type RecordStore interface {
	ProfileStore
	PlanStore
	JournalStore
	DietStore
	TreatmentStore
	AlternativeStore
	ResearchStore
	DocumentStore
}

var _ RecordStore = (*Store)(nil)
