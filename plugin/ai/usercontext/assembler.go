// Package usercontext assembles per-user patient context for AI queries.
//
// The assembler fetches a query-type-specific slice of the patient's
// records. The profile fetch is mandatory: when it fails, assembly fails.
// Every other fetch degrades gracefully: a failed sub-fetch is logged and
// its slot stays empty, and the query proceeds with partial context.
package usercontext

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	aierrors "github.com/lumenhealth/lumen/internal/errors"
	"github.com/lumenhealth/lumen/plugin/ai/classifier"
	"github.com/lumenhealth/lumen/plugin/ai/timeout"
	"github.com/lumenhealth/lumen/store"
)

const (
	generalJournalDays  = 7
	generalJournalLimit = 3

	interactionWindowDays = 14

	broadJournalMonths = 3
	broadDietMonths    = 1

	doctorBriefJournalLimit  = 5
	doctorBriefResearchLimit = 3

	explanationJournalLimit = 3
	comparisonResearchLimit = 3
)

// TreatmentSideEffects is the side-effect projection of a treatment record.
type TreatmentSideEffects struct {
	Treatment   string
	SideEffects []string
}

// TreatmentTimeline is the schedule projection of a treatment record.
type TreatmentTimeline struct {
	Treatment string
	StartTs   int64
	EndTs     *int64
	Active    bool
}

// UserContext is the assembled patient context. Profile is always set; all
// other slots are optional and stay nil when the query type does not need
// them or their fetch degraded.
type UserContext struct {
	Profile      *store.UserProfile
	PlanItems    []*store.PlanItem
	Journal      []*store.JournalEntry
	Diet         []*store.DietEntry
	Treatments   []*store.Treatment
	Alternatives []*store.AlternativeTreatment
	Research     []*store.ResearchItem
	Documents    []*store.Document
	SideEffects  []TreatmentSideEffects
	Timelines    []TreatmentTimeline
}

// Assembler fetches and assembles user context.
type Assembler struct {
	records store.RecordStore
	logger  *slog.Logger
}

// NewAssembler creates a context assembler over the given record store.
func NewAssembler(records store.RecordStore, logger *slog.Logger) *Assembler {
	return &Assembler{records: records, logger: logger}
}

// Assemble builds the context bundle for one query. Sub-fetches beyond the
// profile run concurrently; each one writes a distinct UserContext slot.
func (a *Assembler) Assemble(ctx context.Context, userID int32, queryType classifier.QueryType) (*UserContext, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout.ContextAssemblyTimeout)
	defer cancel()

	profile, err := a.records.GetUserProfile(ctx, userID)
	if err != nil {
		return nil, aierrors.ContextFetchFailed("patient profile fetch failed", err).
			WithContext("user_id", userID)
	}
	uc := &UserContext{Profile: profile}

	var g errgroup.Group
	now := time.Now()

	switch queryType {
	case classifier.QueryTypeTreatment, classifier.QueryTypeClinicalTrial:
		a.goPlanItems(&g, ctx, uc, userID, []store.PlanItemType{
			store.PlanItemMedication, store.PlanItemTreatment,
			store.PlanItemProcedure, store.PlanItemAppointment,
		}, nil, nil)
		a.goTreatments(&g, ctx, uc, userID)

	case classifier.QueryTypeAlternativeTreatment:
		a.goPlanItems(&g, ctx, uc, userID, []store.PlanItemType{
			store.PlanItemSupplement, store.PlanItemAlternative,
			store.PlanItemHerb, store.PlanItemVitamin,
		}, nil, nil)
		a.goAlternatives(&g, ctx, uc, userID, nil)

	case classifier.QueryTypeInteraction:
		since := now.AddDate(0, 0, -interactionWindowDays).Unix()
		a.goPlanItems(&g, ctx, uc, userID, []store.PlanItemType{
			store.PlanItemMedication, store.PlanItemTreatment,
			store.PlanItemSupplement, store.PlanItemAlternative,
			store.PlanItemHerb, store.PlanItemVitamin, store.PlanItemDiet,
		}, nil, nil)
		a.goJournal(&g, ctx, uc, userID, &since, nil, nil)
		a.goDiet(&g, ctx, uc, userID, &since, nil)

	case classifier.QueryTypeTreatmentSideEffect:
		a.goSideEffects(&g, ctx, uc, userID)

	case classifier.QueryTypeTreatmentTimeline:
		a.goTimelines(&g, ctx, uc, userID)

	case classifier.QueryTypeTreatmentComparison:
		a.goComparativeResearch(&g, ctx, uc, userID)

	case classifier.QueryTypeTreatmentExplanation:
		a.goJournal(&g, ctx, uc, userID, nil, intPtr(explanationJournalLimit), classifier.ContainsTreatmentTerm)

	case classifier.QueryTypeCreativeExploration, classifier.QueryTypeDoctorBrief:
		journalSince := now.AddDate(0, -broadJournalMonths, 0).Unix()
		dietSince := now.AddDate(0, -broadDietMonths, 0).Unix()
		var journalLimit, researchLimit *int
		if queryType == classifier.QueryTypeDoctorBrief {
			journalLimit = intPtr(doctorBriefJournalLimit)
			researchLimit = intPtr(doctorBriefResearchLimit)
		}
		a.goPlanItems(&g, ctx, uc, userID, nil, nil, nil)
		a.goJournal(&g, ctx, uc, userID, &journalSince, journalLimit, nil)
		a.goDiet(&g, ctx, uc, userID, &dietSince, nil)
		a.goTreatments(&g, ctx, uc, userID)
		a.goAlternatives(&g, ctx, uc, userID, nil)
		a.goResearch(&g, ctx, uc, userID, researchLimit)

	case classifier.QueryTypeDocumentQuestion:
		a.goDocuments(&g, ctx, uc, userID)

	case classifier.QueryTypeResearch:
		a.goResearch(&g, ctx, uc, userID, nil)

	case classifier.QueryTypeMedicalTerm:
		// Definitions need no records beyond the profile.

	default:
		// GENERAL, HOPE, EMOTIONAL_SUPPORT: recent journal plus open plan items.
		since := now.AddDate(0, 0, -generalJournalDays).Unix()
		completed := false
		a.goJournal(&g, ctx, uc, userID, &since, intPtr(generalJournalLimit), nil)
		a.goPlanItems(&g, ctx, uc, userID, nil, &completed, nil)
	}

	// Sub-fetch closures swallow their own errors, so Wait never fails;
	// it only synchronizes.
	_ = g.Wait()
	return uc, nil
}

func (a *Assembler) goPlanItems(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32, types []store.PlanItemType, completed *bool, limit *int) {
	g.Go(func() error {
		items, err := a.records.ListPlanItems(ctx, &store.FindPlanItem{
			UserID:    &userID,
			Types:     types,
			Completed: completed,
			Limit:     limit,
		})
		if err != nil {
			a.degrade(ctx, "plan_items", userID, err)
			return nil
		}
		uc.PlanItems = items
		return nil
	})
}

func (a *Assembler) goJournal(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32, since *int64, limit *int, keep func(string) bool) {
	g.Go(func() error {
		// When a content filter applies, fetch unlimited and cap after
		// filtering so the limit counts matching entries.
		fetchLimit := limit
		if keep != nil {
			fetchLimit = nil
		}
		entries, err := a.records.ListJournalEntries(ctx, &store.FindJournalEntry{
			UserID: &userID,
			Since:  since,
			Limit:  fetchLimit,
		})
		if err != nil {
			a.degrade(ctx, "journal", userID, err)
			return nil
		}
		if keep != nil {
			kept := make([]*store.JournalEntry, 0, len(entries))
			for _, entry := range entries {
				if keep(entry.Content) {
					kept = append(kept, entry)
				}
			}
			entries = kept
			if limit != nil && len(entries) > *limit {
				entries = entries[:*limit]
			}
		}
		uc.Journal = entries
		return nil
	})
}

func (a *Assembler) goDiet(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32, since *int64, limit *int) {
	g.Go(func() error {
		entries, err := a.records.ListDietEntries(ctx, &store.FindDietEntry{
			UserID: &userID,
			Since:  since,
			Limit:  limit,
		})
		if err != nil {
			a.degrade(ctx, "diet", userID, err)
			return nil
		}
		uc.Diet = entries
		return nil
	})
}

func (a *Assembler) goTreatments(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32) {
	g.Go(func() error {
		treatments, err := a.records.ListTreatments(ctx, &store.FindTreatment{UserID: &userID})
		if err != nil {
			a.degrade(ctx, "treatments", userID, err)
			return nil
		}
		uc.Treatments = treatments
		return nil
	})
}

func (a *Assembler) goSideEffects(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32) {
	g.Go(func() error {
		treatments, err := a.records.ListTreatments(ctx, &store.FindTreatment{UserID: &userID})
		if err != nil {
			a.degrade(ctx, "treatments", userID, err)
			return nil
		}
		projected := make([]TreatmentSideEffects, 0, len(treatments))
		for _, treatment := range treatments {
			projected = append(projected, TreatmentSideEffects{
				Treatment:   treatment.Name,
				SideEffects: treatment.SideEffects,
			})
		}
		uc.SideEffects = projected
		return nil
	})
}

func (a *Assembler) goTimelines(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32) {
	g.Go(func() error {
		treatments, err := a.records.ListTreatments(ctx, &store.FindTreatment{UserID: &userID})
		if err != nil {
			a.degrade(ctx, "treatments", userID, err)
			return nil
		}
		projected := make([]TreatmentTimeline, 0, len(treatments))
		for _, treatment := range treatments {
			projected = append(projected, TreatmentTimeline{
				Treatment: treatment.Name,
				StartTs:   treatment.StartTs,
				EndTs:     treatment.EndTs,
				Active:    treatment.Active,
			})
		}
		uc.Timelines = projected
		return nil
	})
}

func (a *Assembler) goAlternatives(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32, limit *int) {
	g.Go(func() error {
		alternatives, err := a.records.ListAlternativeTreatments(ctx, &store.FindAlternativeTreatment{
			UserID: &userID,
			Limit:  limit,
		})
		if err != nil {
			a.degrade(ctx, "alternatives", userID, err)
			return nil
		}
		uc.Alternatives = alternatives
		return nil
	})
}

func (a *Assembler) goResearch(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32, limit *int) {
	g.Go(func() error {
		items, err := a.records.ListResearchItems(ctx, &store.FindResearchItem{
			UserID: &userID,
			Limit:  limit,
		})
		if err != nil {
			a.degrade(ctx, "research", userID, err)
			return nil
		}
		uc.Research = items
		return nil
	})
}

// goComparativeResearch keeps only research whose title or summary carries
// comparative language, newest first, capped. The cap counts matching items,
// so the fetch itself is unbounded.
func (a *Assembler) goComparativeResearch(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32) {
	g.Go(func() error {
		items, err := a.records.ListResearchItems(ctx, &store.FindResearchItem{UserID: &userID})
		if err != nil {
			a.degrade(ctx, "research", userID, err)
			return nil
		}
		kept := make([]*store.ResearchItem, 0, comparisonResearchLimit)
		for _, item := range items {
			if !isComparative(item.Title + " " + item.Summary) {
				continue
			}
			kept = append(kept, item)
			if len(kept) == comparisonResearchLimit {
				break
			}
		}
		uc.Research = kept
		return nil
	})
}

func (a *Assembler) goDocuments(g *errgroup.Group, ctx context.Context, uc *UserContext, userID int32) {
	g.Go(func() error {
		documents, err := a.records.ListDocuments(ctx, &store.FindDocument{UserID: &userID})
		if err != nil {
			a.degrade(ctx, "documents", userID, err)
			return nil
		}
		uc.Documents = documents
		return nil
	})
}

func (a *Assembler) degrade(ctx context.Context, source string, userID int32, err error) {
	a.logger.WarnContext(ctx, "context sub-fetch degraded",
		slog.String("source", source),
		slog.Int64("user_id", int64(userID)),
		slog.String("error", err.Error()))
}

var comparativeTerms = []string{
	"versus", " vs ", "vs.", "compared", "comparison", "better than", "difference",
}

func isComparative(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range comparativeTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func intPtr(v int) *int {
	return &v
}
