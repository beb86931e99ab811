// Package routing holds the static query-type to provider routing table.
package routing

import (
	"github.com/pkg/errors"

	"github.com/lumenhealth/lumen/plugin/ai/classifier"
	"github.com/lumenhealth/lumen/plugin/ai/provider"
)

// Table maps every query type to a primary provider and each provider to at
// most one fallback. A Table is immutable after construction; swapping the
// policy means building a new Table and restarting, not mutating in place.
type Table struct {
	primaries map[classifier.QueryType]provider.ID
	fallbacks map[provider.ID]provider.ID
}

// New builds a Table from explicit maps. The maps are copied, so callers
// cannot mutate the table afterwards.
func New(primaries map[classifier.QueryType]provider.ID, fallbacks map[provider.ID]provider.ID) *Table {
	t := &Table{
		primaries: make(map[classifier.QueryType]provider.ID, len(primaries)),
		fallbacks: make(map[provider.ID]provider.ID, len(fallbacks)),
	}
	for queryType, id := range primaries {
		t.primaries[queryType] = id
	}
	for from, to := range fallbacks {
		t.fallbacks[from] = to
	}
	return t
}

// Default returns the stock routing policy: OpenAI carries analytical and
// document-grounded queries, Gemini carries exploratory and supportive ones,
// DeepSeek carries research-heavy lookups. Fallback is a single hop.
func Default() *Table {
	return New(
		map[classifier.QueryType]provider.ID{
			classifier.QueryTypeMedicalTerm:          provider.ProviderOpenAI,
			classifier.QueryTypeResearch:             provider.ProviderDeepSeek,
			classifier.QueryTypeTreatment:            provider.ProviderOpenAI,
			classifier.QueryTypeClinicalTrial:        provider.ProviderDeepSeek,
			classifier.QueryTypeGeneral:              provider.ProviderOpenAI,
			classifier.QueryTypeDocumentQuestion:     provider.ProviderOpenAI,
			classifier.QueryTypeAlternativeTreatment: provider.ProviderGemini,
			classifier.QueryTypeInteraction:          provider.ProviderOpenAI,
			classifier.QueryTypeTreatmentSideEffect:  provider.ProviderOpenAI,
			classifier.QueryTypeTreatmentComparison:  provider.ProviderOpenAI,
			classifier.QueryTypeTreatmentTimeline:    provider.ProviderOpenAI,
			classifier.QueryTypeTreatmentExplanation: provider.ProviderOpenAI,
			classifier.QueryTypeCreativeExploration:  provider.ProviderGemini,
			classifier.QueryTypeDoctorBrief:          provider.ProviderOpenAI,
			classifier.QueryTypeHope:                 provider.ProviderGemini,
			classifier.QueryTypeEmotionalSupport:     provider.ProviderGemini,
		},
		map[provider.ID]provider.ID{
			provider.ProviderOpenAI:   provider.ProviderGemini,
			provider.ProviderGemini:   provider.ProviderOpenAI,
			provider.ProviderDeepSeek: provider.ProviderOpenAI,
		},
	)
}

// PrimaryFor returns the primary provider for a query type. The mapping is
// total over classifier.AllQueryTypes once Validate passes; unknown types
// get the general route so the answer path never dead-ends.
func (t *Table) PrimaryFor(queryType classifier.QueryType) provider.ID {
	if id, ok := t.primaries[queryType]; ok {
		return id
	}
	return t.primaries[classifier.QueryTypeGeneral]
}

// FallbackFor returns the fallback provider for a primary, if one is
// configured. Fallback is a single hop; the fallback's own fallback is
// never consulted.
func (t *Table) FallbackFor(primary provider.ID) (provider.ID, bool) {
	fallback, ok := t.fallbacks[primary]
	return fallback, ok
}

// Validate checks that the table covers every query type and that no
// fallback points at its own primary.
func (t *Table) Validate() error {
	for _, queryType := range classifier.AllQueryTypes {
		if _, ok := t.primaries[queryType]; !ok {
			return errors.Errorf("routing table has no primary for query type %q", queryType)
		}
	}
	for from, to := range t.fallbacks {
		if from == to {
			return errors.Errorf("provider %q falls back to itself", from)
		}
	}
	return nil
}
