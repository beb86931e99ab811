// Package teststore provides an in-memory RecordStore for tests.
package teststore

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/lumenhealth/lumen/store"
)

// Store is an in-memory store.RecordStore. Each record type can be forced to
// fail to exercise degraded-context paths.
type Store struct {
	mu sync.RWMutex

	Profiles     map[int32]*store.UserProfile
	PlanItems    []*store.PlanItem
	Journal      []*store.JournalEntry
	Diet         []*store.DietEntry
	Treatments   []*store.Treatment
	Alternatives []*store.AlternativeTreatment
	Research     []*store.ResearchItem
	Documents    []*store.Document

	FailProfile      bool
	FailPlan         bool
	FailJournal      bool
	FailDiet         bool
	FailTreatments   bool
	FailAlternatives bool
	FailResearch     bool
	FailDocuments    bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		Profiles: make(map[int32]*store.UserProfile),
	}
}

func (s *Store) GetUserProfile(_ context.Context, userID int32) (*store.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailProfile {
		return nil, errors.New("profile store unavailable")
	}
	profile, ok := s.Profiles[userID]
	if !ok {
		return nil, errors.Errorf("profile not found for user %d", userID)
	}
	return profile, nil
}

func (s *Store) ListPlanItems(_ context.Context, find *store.FindPlanItem) ([]*store.PlanItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailPlan {
		return nil, errors.New("plan store unavailable")
	}
	list := make([]*store.PlanItem, 0)
	for _, item := range s.PlanItems {
		if find.UserID != nil && item.UserID != *find.UserID {
			continue
		}
		if find.Completed != nil && item.Completed != *find.Completed {
			continue
		}
		if len(find.Types) > 0 && !containsType(find.Types, item.Type) {
			continue
		}
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListJournalEntries(_ context.Context, find *store.FindJournalEntry) ([]*store.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailJournal {
		return nil, errors.New("journal store unavailable")
	}
	list := make([]*store.JournalEntry, 0)
	for _, entry := range s.Journal {
		if find.UserID != nil && entry.UserID != *find.UserID {
			continue
		}
		if find.Since != nil && entry.CreatedTs < *find.Since {
			continue
		}
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListDietEntries(_ context.Context, find *store.FindDietEntry) ([]*store.DietEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailDiet {
		return nil, errors.New("diet store unavailable")
	}
	list := make([]*store.DietEntry, 0)
	for _, entry := range s.Diet {
		if find.UserID != nil && entry.UserID != *find.UserID {
			continue
		}
		if find.Since != nil && entry.CreatedTs < *find.Since {
			continue
		}
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListTreatments(_ context.Context, find *store.FindTreatment) ([]*store.Treatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailTreatments {
		return nil, errors.New("treatment store unavailable")
	}
	list := make([]*store.Treatment, 0)
	for _, treatment := range s.Treatments {
		if find.UserID != nil && treatment.UserID != *find.UserID {
			continue
		}
		if find.Active != nil && treatment.Active != *find.Active {
			continue
		}
		list = append(list, treatment)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListAlternativeTreatments(_ context.Context, find *store.FindAlternativeTreatment) ([]*store.AlternativeTreatment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailAlternatives {
		return nil, errors.New("alternative treatment store unavailable")
	}
	list := make([]*store.AlternativeTreatment, 0)
	for _, alt := range s.Alternatives {
		if find.UserID != nil && alt.UserID != *find.UserID {
			continue
		}
		list = append(list, alt)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListResearchItems(_ context.Context, find *store.FindResearchItem) ([]*store.ResearchItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailResearch {
		return nil, errors.New("research store unavailable")
	}
	list := make([]*store.ResearchItem, 0)
	for _, item := range s.Research {
		if find.UserID != nil && item.UserID != *find.UserID {
			continue
		}
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func (s *Store) ListDocuments(_ context.Context, find *store.FindDocument) ([]*store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailDocuments {
		return nil, errors.New("document store unavailable")
	}
	list := make([]*store.Document, 0)
	for _, doc := range s.Documents {
		if find.UserID != nil && doc.UserID != *find.UserID {
			continue
		}
		list = append(list, doc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedTs > list[j].CreatedTs })
	return capList(list, find.Limit), nil
}

func containsType(types []store.PlanItemType, t store.PlanItemType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func capList[T any](list []T, limit *int) []T {
	if limit != nil && len(list) > *limit {
		return list[:*limit]
	}
	return list
}

var _ store.RecordStore = (*Store)(nil)
