package usercontext

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenhealth/lumen/store"
)

// planItemOrder fixes the grouping order of plan-item sections so the
// formatted context is deterministic for the same bundle.
var planItemOrder = []store.PlanItemType{
	store.PlanItemMedication,
	store.PlanItemTreatment,
	store.PlanItemProcedure,
	store.PlanItemAppointment,
	store.PlanItemSupplement,
	store.PlanItemAlternative,
	store.PlanItemHerb,
	store.PlanItemVitamin,
	store.PlanItemDiet,
	store.PlanItemOther,
}

// Format renders the context bundle as the plain-text block handed to
// provider adapters. Empty slots produce no section; an empty bundle
// renders just the profile.
func Format(uc *UserContext) string {
	var b strings.Builder

	formatProfile(&b, uc.Profile)
	formatSideEffects(&b, uc.SideEffects)
	formatTimelines(&b, uc.Timelines)
	formatPlanItems(&b, uc.PlanItems)
	formatTreatments(&b, uc.Treatments)
	formatAlternatives(&b, uc.Alternatives)
	formatJournal(&b, uc.Journal)
	formatDiet(&b, uc.Diet)
	formatResearch(&b, uc.Research)
	formatDocuments(&b, uc.Documents)

	return strings.TrimRight(b.String(), "\n")
}

func formatProfile(b *strings.Builder, profile *store.UserProfile) {
	if profile == nil {
		return
	}
	b.WriteString("Patient profile:\n")
	writeField(b, "Name", profile.Name)
	writeField(b, "Diagnosis", profile.Diagnosis)
	writeField(b, "Stage", profile.Stage)
	writeField(b, "Allergies", profile.Allergies)
	writeField(b, "Notes", profile.Notes)
	b.WriteString("\n")
}

func formatSideEffects(b *strings.Builder, sideEffects []TreatmentSideEffects) {
	if len(sideEffects) == 0 {
		return
	}
	b.WriteString("Reported treatment side effects:\n")
	for _, entry := range sideEffects {
		if len(entry.SideEffects) == 0 {
			fmt.Fprintf(b, "- %s: none reported\n", entry.Treatment)
			continue
		}
		fmt.Fprintf(b, "- %s: %s\n", entry.Treatment, strings.Join(entry.SideEffects, ", "))
	}
	b.WriteString("\n")
}

func formatTimelines(b *strings.Builder, timelines []TreatmentTimeline) {
	if len(timelines) == 0 {
		return
	}
	b.WriteString("Treatment timeline:\n")
	for _, entry := range timelines {
		line := fmt.Sprintf("- %s: started %s", entry.Treatment, formatDate(entry.StartTs))
		if entry.EndTs != nil {
			line += ", ended " + formatDate(*entry.EndTs)
		} else if entry.Active {
			line += ", ongoing"
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func formatPlanItems(b *strings.Builder, items []*store.PlanItem) {
	if len(items) == 0 {
		return
	}
	grouped := make(map[store.PlanItemType][]*store.PlanItem)
	for _, item := range items {
		grouped[item.Type] = append(grouped[item.Type], item)
	}
	b.WriteString("Care plan:\n")
	for _, planType := range planItemOrder {
		for _, item := range grouped[planType] {
			line := fmt.Sprintf("- [%s] %s", planType, item.Title)
			if item.DueTs != nil {
				line += ", due " + formatDate(*item.DueTs)
			}
			if item.Completed {
				line += " (completed)"
			}
			if item.Notes != "" {
				line += ": " + item.Notes
			}
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")
}

func formatTreatments(b *strings.Builder, treatments []*store.Treatment) {
	if len(treatments) == 0 {
		return
	}
	b.WriteString("Treatments:\n")
	for _, treatment := range treatments {
		line := fmt.Sprintf("- %s (%s), started %s", treatment.Name, treatment.Kind, formatDate(treatment.StartTs))
		if treatment.EndTs != nil {
			line += ", ended " + formatDate(*treatment.EndTs)
		} else if treatment.Active {
			line += ", ongoing"
		}
		if len(treatment.SideEffects) > 0 {
			line += "; side effects: " + strings.Join(treatment.SideEffects, ", ")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func formatAlternatives(b *strings.Builder, alternatives []*store.AlternativeTreatment) {
	if len(alternatives) == 0 {
		return
	}
	b.WriteString("Alternative treatments:\n")
	for _, alt := range alternatives {
		line := fmt.Sprintf("- %s (%s)", alt.Name, alt.Kind)
		if alt.Notes != "" {
			line += ": " + alt.Notes
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func formatJournal(b *strings.Builder, entries []*store.JournalEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("Journal entries:\n")
	for _, entry := range entries {
		line := fmt.Sprintf("- [%s] %s", formatDate(entry.CreatedTs), entry.Content)
		if entry.Mood != "" {
			line += fmt.Sprintf(" (mood: %s)", entry.Mood)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func formatDiet(b *strings.Builder, entries []*store.DietEntry) {
	if len(entries) == 0 {
		return
	}
	b.WriteString("Diet log:\n")
	for _, entry := range entries {
		fmt.Fprintf(b, "- [%s] %s: %s\n", formatDate(entry.CreatedTs), entry.Meal, entry.Items)
	}
	b.WriteString("\n")
}

func formatResearch(b *strings.Builder, items []*store.ResearchItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("Saved research:\n")
	for _, item := range items {
		line := "- " + item.Title
		if item.Authors != "" {
			line += " (" + item.Authors + ")"
		}
		if item.Summary != "" {
			line += ": " + item.Summary
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func formatDocuments(b *strings.Builder, documents []*store.Document) {
	if len(documents) == 0 {
		return
	}
	b.WriteString("Uploaded documents:\n")
	for _, doc := range documents {
		fmt.Fprintf(b, "- %s (%s):\n%s\n", doc.Title, doc.Kind, doc.Text)
	}
	b.WriteString("\n")
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func formatDate(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02")
}
