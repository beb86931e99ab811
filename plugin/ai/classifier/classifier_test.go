package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryType
	}{
		{
			name:  "explanation with treatment term",
			query: "explain how chemotherapy treatment works",
			want:  QueryTypeTreatmentExplanation,
		},
		{
			name:  "comparison with treatment term",
			query: "compare chemotherapy versus radiation treatment",
			want:  QueryTypeTreatmentComparison,
		},
		{
			name:  "side effects win over generic treatment",
			query: "what side effects am I experiencing from treatment",
			want:  QueryTypeTreatmentSideEffect,
		},
		{
			name:  "timeline with treatment term",
			query: "how long does radiation therapy take",
			want:  QueryTypeTreatmentTimeline,
		},
		{
			name:  "comparison without treatment term is not comparison",
			query: "compare apples versus oranges",
			want:  QueryTypeGeneral,
		},
		{
			name:  "timeline terms without treatment term",
			query: "how long is the flight to Boston",
			want:  QueryTypeGeneral,
		},
		{
			name:  "document question",
			query: "what does my lab result say",
			want:  QueryTypeDocumentQuestion,
		},
		{
			name:  "creative exploration",
			query: "what if we brainstorm some options",
			want:  QueryTypeCreativeExploration,
		},
		{
			name:  "doctor brief",
			query: "prepare questions for my oncologist",
			want:  QueryTypeDoctorBrief,
		},
		{
			name:  "alternative treatment beats generic treatment",
			query: "are there herbal alternatives to my medication",
			want:  QueryTypeAlternativeTreatment,
		},
		{
			name:  "interaction",
			query: "can I combine ibuprofen with my prescription",
			want:  QueryTypeInteraction,
		},
		{
			name:  "medical term",
			query: "definition of metastasis please",
			want:  QueryTypeMedicalTerm,
		},
		{
			name:  "research",
			query: "any recent studies on immunotherapy outcomes",
			want:  QueryTypeResearch,
		},
		{
			name:  "generic treatment",
			query: "tell me about my current medication",
			want:  QueryTypeTreatment,
		},
		{
			name:  "clinical trial",
			query: "am I eligible to enroll in a trial",
			want:  QueryTypeClinicalTrial,
		},
		{
			name:  "hope",
			query: "share some survivor success stories",
			want:  QueryTypeHope,
		},
		{
			name:  "emotional support",
			query: "I feel so overwhelmed and scared today",
			want:  QueryTypeEmotionalSupport,
		},
		{
			name:  "pill alone does not satisfy the treatment domain",
			query: "compare this pill versus that one",
			want:  QueryTypeGeneral,
		},
		{
			name:  "no keyword falls through to general",
			query: "hello there, lovely weather today",
			want:  QueryTypeGeneral,
		},
		{
			name:  "empty query",
			query: "",
			want:  QueryTypeGeneral,
		},
		{
			name:  "case insensitive",
			query: "EXPLAIN HOW CHEMOTHERAPY TREATMENT WORKS",
			want:  QueryTypeTreatmentExplanation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	queries := []string{
		"explain how chemotherapy treatment works",
		"compare chemotherapy versus radiation treatment",
		"hello there",
	}
	for _, query := range queries {
		first := Classify(query)
		for i := 0; i < 10; i++ {
			require.Equal(t, first, Classify(query))
		}
	}
}

func TestAllQueryTypesComplete(t *testing.T) {
	require.Len(t, AllQueryTypes, 16)
	seen := make(map[QueryType]bool)
	for _, qt := range AllQueryTypes {
		assert.False(t, seen[qt], "duplicate query type %s", qt)
		seen[qt] = true
	}
	// Every rule resolves to a listed type.
	for _, r := range rules {
		assert.True(t, seen[r.queryType], "rule resolves to unlisted type %s", r.queryType)
	}
}
