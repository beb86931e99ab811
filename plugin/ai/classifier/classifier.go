// Package classifier maps raw query text to a discrete query type.
//
// Classification is an ordered rule cascade: rules are evaluated top to
// bottom and the first match wins. Several term sets overlap (for example
// "treatment" appears in the comparison, timeline, explanation and generic
// treatment rules), so the rule ORDER is load-bearing. Reordering rules
// changes classification results.
package classifier

import (
	"strings"
)

// QueryType is the closed category describing the user's intent. It selects
// context-fetch behavior and the default provider.
type QueryType string

const (
	QueryTypeMedicalTerm          QueryType = "medical_term"
	QueryTypeResearch             QueryType = "research"
	QueryTypeTreatment            QueryType = "treatment"
	QueryTypeClinicalTrial        QueryType = "clinical_trial"
	QueryTypeGeneral              QueryType = "general"
	QueryTypeDocumentQuestion     QueryType = "document_question"
	QueryTypeAlternativeTreatment QueryType = "alternative_treatment"
	QueryTypeInteraction          QueryType = "interaction"
	QueryTypeTreatmentSideEffect  QueryType = "treatment_side_effect"
	QueryTypeTreatmentComparison  QueryType = "treatment_comparison"
	QueryTypeTreatmentTimeline    QueryType = "treatment_timeline"
	QueryTypeTreatmentExplanation QueryType = "treatment_explanation"
	QueryTypeCreativeExploration  QueryType = "creative_exploration"
	QueryTypeDoctorBrief          QueryType = "doctor_brief"
	QueryTypeHope                 QueryType = "hope"
	QueryTypeEmotionalSupport     QueryType = "emotional_support"
)

// AllQueryTypes lists every query type. Routing tables must cover all of them.
var AllQueryTypes = []QueryType{
	QueryTypeMedicalTerm,
	QueryTypeResearch,
	QueryTypeTreatment,
	QueryTypeClinicalTrial,
	QueryTypeGeneral,
	QueryTypeDocumentQuestion,
	QueryTypeAlternativeTreatment,
	QueryTypeInteraction,
	QueryTypeTreatmentSideEffect,
	QueryTypeTreatmentComparison,
	QueryTypeTreatmentTimeline,
	QueryTypeTreatmentExplanation,
	QueryTypeCreativeExploration,
	QueryTypeDoctorBrief,
	QueryTypeHope,
	QueryTypeEmotionalSupport,
}

// treatmentDomainTerms is the co-occurrence term set required by the
// comparison, timeline and explanation rules. The boundary is a policy
// choice carried over as-is: "drug" counts, "pill" does not.
var treatmentDomainTerms = []string{
	"treatment", "therapy", "chemo", "chemotherapy", "radiation",
	"medication", "drug", "surgery", "regimen", "protocol", "immunotherapy",
}

// rule is a single classification rule. The rule matches when any term from
// terms is contained in the lowercased query, and, if requires is set, a
// term from requires is contained as well.
type rule struct {
	queryType QueryType
	terms     []string
	requires  []string
}

// rules is evaluated in order; the first match wins.
var rules = []rule{
	{
		queryType: QueryTypeDocumentQuestion,
		terms: []string{
			"document", "uploaded", "my file", "my report", "my scan",
			"lab result", "test result", "pdf", "in my records",
		},
	},
	{
		queryType: QueryTypeCreativeExploration,
		terms: []string{
			"what if", "imagine", "brainstorm", "creative",
			"out of the box", "unconventional idea", "explore ideas",
		},
	},
	{
		queryType: QueryTypeDoctorBrief,
		terms: []string{
			"doctor brief", "for my doctor", "for my oncologist",
			"for my appointment", "prepare questions", "visit summary",
			"appointment summary",
		},
	},
	{
		queryType: QueryTypeAlternativeTreatment,
		terms: []string{
			"alternative", "natural remedy", "natural treatment", "herbal",
			"herb", "supplement", "vitamin", "holistic", "complementary",
			"acupuncture",
		},
	},
	{
		queryType: QueryTypeTreatmentSideEffect,
		terms: []string{
			"side effect", "side-effect", "adverse", "reaction to",
		},
	},
	{
		queryType: QueryTypeTreatmentComparison,
		terms: []string{
			"compare", "comparison", "versus", " vs ", "vs.",
			"better than", "difference between", "which is better",
		},
		requires: treatmentDomainTerms,
	},
	{
		queryType: QueryTypeTreatmentTimeline,
		terms: []string{
			"timeline", "how long", "duration", "when will",
			"start date", "end date", "schedule",
		},
		requires: treatmentDomainTerms,
	},
	{
		queryType: QueryTypeTreatmentExplanation,
		terms: []string{
			"explain", "how does", "how do", "works",
			"what happens during", "why do i need",
		},
		requires: treatmentDomainTerms,
	},
	{
		queryType: QueryTypeInteraction,
		terms: []string{
			"interaction", "interact", "mix", "together with",
			"combine", "conflict with", "safe to take",
		},
	},
	{
		queryType: QueryTypeMedicalTerm,
		terms: []string{
			"what does", "what is", "meaning of", "definition",
			"define", "terminology", "medical term",
		},
	},
	{
		queryType: QueryTypeResearch,
		terms: []string{
			"research", "study", "studies", "evidence",
			"publication", "findings", "clinical data",
		},
	},
	{
		queryType: QueryTypeTreatment,
		terms:     treatmentDomainTerms,
	},
	{
		queryType: QueryTypeClinicalTrial,
		terms: []string{
			"clinical trial", "trial", "enroll", "eligibility",
		},
	},
	{
		queryType: QueryTypeHope,
		terms: []string{
			"hope", "success stories", "success story", "survivor",
			"inspire", "inspiring", "encouragement",
		},
	},
	{
		queryType: QueryTypeEmotionalSupport,
		terms: []string{
			"scared", "afraid", "anxious", "anxiety", "worried",
			"depressed", "overwhelmed", "lonely", "alone", "sad",
			"can't cope", "cannot cope",
		},
	},
}

// ContainsTreatmentTerm reports whether text mentions the treatment domain.
// It applies the same term set the comparison, timeline and explanation
// rules use, so downstream filters stay aligned with classification.
func ContainsTreatmentTerm(text string) bool {
	return containsAny(strings.ToLower(text), treatmentDomainTerms)
}

// Classify maps raw query text to a QueryType. It is a pure function: no
// I/O, deterministic for identical input, and it never fails. Text that
// matches no rule resolves to QueryTypeGeneral.
func Classify(text string) QueryType {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.queryType
		}
	}
	return QueryTypeGeneral
}

func (r *rule) matches(lower string) bool {
	if !containsAny(lower, r.terms) {
		return false
	}
	if len(r.requires) > 0 && !containsAny(lower, r.requires) {
		return false
	}
	return true
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
