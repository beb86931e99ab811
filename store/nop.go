package store

import (
	"context"
)

// NopStore is a null-object RecordStore. Every list method returns an empty
// collection and the profile is a bare record, so a deployment that does not
// support a given record type degrades to empty context instead of failing
// runtime method-existence checks.
type NopStore struct{}

// NewNopStore creates a new NopStore.
func NewNopStore() *NopStore {
	return &NopStore{}
}

func (*NopStore) GetUserProfile(_ context.Context, userID int32) (*UserProfile, error) {
	return &UserProfile{UserID: userID}, nil
}

func (*NopStore) ListPlanItems(context.Context, *FindPlanItem) ([]*PlanItem, error) {
	return nil, nil
}

func (*NopStore) ListJournalEntries(context.Context, *FindJournalEntry) ([]*JournalEntry, error) {
	return nil, nil
}

func (*NopStore) ListDietEntries(context.Context, *FindDietEntry) ([]*DietEntry, error) {
	return nil, nil
}

func (*NopStore) ListTreatments(context.Context, *FindTreatment) ([]*Treatment, error) {
	return nil, nil
}

func (*NopStore) ListAlternativeTreatments(context.Context, *FindAlternativeTreatment) ([]*AlternativeTreatment, error) {
	return nil, nil
}

func (*NopStore) ListResearchItems(context.Context, *FindResearchItem) ([]*ResearchItem, error) {
	return nil, nil
}

func (*NopStore) ListDocuments(context.Context, *FindDocument) ([]*Document, error) {
	return nil, nil
}

var _ RecordStore = (*NopStore)(nil)
