package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// UserProfile model related methods.
	UpsertUserProfile(ctx context.Context, upsert *UserProfile) (*UserProfile, error)
	GetUserProfile(ctx context.Context, find *FindUserProfile) (*UserProfile, error)

	// PlanItem model related methods.
	CreatePlanItem(ctx context.Context, create *PlanItem) (*PlanItem, error)
	ListPlanItems(ctx context.Context, find *FindPlanItem) ([]*PlanItem, error)

	// JournalEntry model related methods.
	CreateJournalEntry(ctx context.Context, create *JournalEntry) (*JournalEntry, error)
	ListJournalEntries(ctx context.Context, find *FindJournalEntry) ([]*JournalEntry, error)

	// DietEntry model related methods.
	CreateDietEntry(ctx context.Context, create *DietEntry) (*DietEntry, error)
	ListDietEntries(ctx context.Context, find *FindDietEntry) ([]*DietEntry, error)

	// Treatment model related methods.
	CreateTreatment(ctx context.Context, create *Treatment) (*Treatment, error)
	ListTreatments(ctx context.Context, find *FindTreatment) ([]*Treatment, error)

	// AlternativeTreatment model related methods.
	CreateAlternativeTreatment(ctx context.Context, create *AlternativeTreatment) (*AlternativeTreatment, error)
	ListAlternativeTreatments(ctx context.Context, find *FindAlternativeTreatment) ([]*AlternativeTreatment, error)

	// ResearchItem model related methods.
	CreateResearchItem(ctx context.Context, create *ResearchItem) (*ResearchItem, error)
	ListResearchItems(ctx context.Context, find *FindResearchItem) ([]*ResearchItem, error)

	// Document model related methods.
	CreateDocument(ctx context.Context, create *Document) (*Document, error)
	ListDocuments(ctx context.Context, find *FindDocument) ([]*Document, error)
}
