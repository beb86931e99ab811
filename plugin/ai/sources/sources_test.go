package sources

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenhealth/lumen/store"
	teststore "github.com/lumenhealth/lumen/store/test"
)

const testUserID int32 = 3

func newTestNormalizer(records *teststore.Store) *Normalizer {
	return NewNormalizer(records, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func seedResearch(records *teststore.Store) {
	records.Research = append(records.Research,
		&store.ResearchItem{
			UID:     "res-1",
			UserID:  testUserID,
			Title:   "NEJM study on immunotherapy",
			Authors: "Smith J, Doe A",
			URL:     "https://example.org/nejm",
			Summary: "Phase III outcomes",
		},
		&store.ResearchItem{
			UID:    "res-2",
			UserID: testUserID,
			Title:  "Radiation dosing review",
		},
	)
}

func TestNormalizeNoCitations(t *testing.T) {
	normalizer := newTestNormalizer(teststore.New())

	text, sources := normalizer.Normalize(context.Background(), "Rest and stay hydrated.", testUserID)
	assert.Equal(t, "Rest and stay hydrated.", text)
	assert.Empty(t, sources)
}

func TestNormalizeBracketMatched(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	text, sources := normalizer.Normalize(context.Background(), "Outcomes improved [1].", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, "res-1", sources[0].ID)
	assert.Equal(t, "NEJM study on immunotherapy", sources[0].Title)
	assert.Equal(t, ConfidenceMatched, sources[0].Confidence)
	assert.Contains(t, text, "Sources:")
	assert.Contains(t, text, "1. NEJM study on immunotherapy - https://example.org/nejm")
}

func TestNormalizeBracketOutOfRange(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	_, sources := normalizer.Normalize(context.Background(), "See [9].", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, "Reference 9", sources[0].Title)
	assert.Equal(t, ConfidencePlaceholder, sources[0].Confidence)
	assert.NotEmpty(t, sources[0].ID)
}

func TestNormalizeAuthorYear(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	_, sources := normalizer.Normalize(context.Background(), "Supported by (Smith, 2021).", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, "res-1", sources[0].ID)
	assert.Equal(t, ConfidenceMatched, sources[0].Confidence)
}

func TestNormalizeAuthorYearUnmatched(t *testing.T) {
	normalizer := newTestNormalizer(teststore.New())

	_, sources := normalizer.Normalize(context.Background(), "Supported by (Nguyen et al., 2019).", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, "Nguyen et al. (2019)", sources[0].Title)
	assert.Equal(t, ConfidencePlaceholder, sources[0].Confidence)
}

func TestNormalizeNarrative(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	_, sources := normalizer.Normalize(context.Background(), "According to the NEJM study, outcomes improved.", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, "res-1", sources[0].ID)
	assert.Equal(t, ConfidenceMatched, sources[0].Confidence)
}

func TestNormalizeDeduplicates(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	_, sources := normalizer.Normalize(context.Background(), "First [1], again [1].", testUserID)
	assert.Len(t, sources, 1)
}

func TestNormalizeResearchLookupFailure(t *testing.T) {
	records := teststore.New()
	records.FailResearch = true
	normalizer := newTestNormalizer(records)

	_, sources := normalizer.Normalize(context.Background(), "Outcomes improved [1].", testUserID)
	require.Len(t, sources, 1)
	assert.Equal(t, ConfidencePlaceholder, sources[0].Confidence)
}

func TestNormalizeKeepsExistingSourcesSection(t *testing.T) {
	records := teststore.New()
	seedResearch(records)
	normalizer := newTestNormalizer(records)

	raw := "Outcomes improved [1].\n\nSources:\n1. NEJM study on immunotherapy"
	text, sources := normalizer.Normalize(context.Background(), raw, testUserID)
	assert.Len(t, sources, 1)
	assert.Equal(t, raw, text)
}
