package store

import (
	"context"
)

// PlanItemType is the closed set of care-plan item categories.
type PlanItemType string

const (
	PlanItemMedication  PlanItemType = "medication"
	PlanItemTreatment   PlanItemType = "treatment"
	PlanItemProcedure   PlanItemType = "procedure"
	PlanItemAppointment PlanItemType = "appointment"
	PlanItemSupplement  PlanItemType = "supplement"
	PlanItemAlternative PlanItemType = "alternative"
	PlanItemHerb        PlanItemType = "herb"
	PlanItemVitamin     PlanItemType = "vitamin"
	PlanItemDiet        PlanItemType = "diet"
	PlanItemOther       PlanItemType = "other"
)

// PlanItem is the object representing a care-plan item.
type PlanItem struct {
	ID        int32
	UID       string
	UserID    int32
	CreatedTs int64
	Type      PlanItemType
	Title     string
	Notes     string
	DueTs     *int64
	Completed bool
}

// FindPlanItem is the find condition for plan items.
type FindPlanItem struct {
	UserID    *int32
	Types     []PlanItemType
	Completed *bool
	Limit     *int
}

// CreatePlanItem creates a new plan item.
func (s *Store) CreatePlanItem(ctx context.Context, create *PlanItem) (*PlanItem, error) {
	create.UID = ensureUID(create.UID)
	return s.driver.CreatePlanItem(ctx, create)
}

// ListPlanItems lists plan items with filter, newest first.
func (s *Store) ListPlanItems(ctx context.Context, find *FindPlanItem) ([]*PlanItem, error) {
	return s.driver.ListPlanItems(ctx, find)
}
