// Package sources normalizes raw provider text into a response body plus a
// structured source list.
package sources

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/lithammer/shortuuid/v4"

	"github.com/lumenhealth/lumen/store"
)

const (
	// ConfidenceMatched marks citations resolved against a saved research item.
	ConfidenceMatched float32 = 0.95
	// ConfidencePlaceholder marks citations kept verbatim because nothing matched.
	ConfidencePlaceholder float32 = 0.6
)

// Source is one extracted citation.
type Source struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	URL         string  `json:"url,omitempty"`
	Description string  `json:"description,omitempty"`
	Confidence  float32 `json:"confidence"`
}

var (
	// [1], [23]
	bracketPattern = regexp.MustCompile(`\[(\d{1,3})\]`)
	// (Smith, 2021), (Smith et al., 2021)
	authorYearPattern = regexp.MustCompile(`\(([A-Z][A-Za-z-]+(?: et al\.?)?),?\s+(\d{4})\)`)
	// according to <phrase>, based on <phrase>
	narrativePattern = regexp.MustCompile(`(?i)(?:according to|based on)\s+(?:the\s+)?([^,.;:\n]+)`)
)

// Normalizer extracts citations from provider text and resolves them
// against the patient's saved research.
type Normalizer struct {
	research store.ResearchStore
	logger   *slog.Logger
}

// NewNormalizer creates a normalizer over the given research store.
func NewNormalizer(research store.ResearchStore, logger *slog.Logger) *Normalizer {
	return &Normalizer{research: research, logger: logger}
}

// Normalize scans text for citation markers, resolves each against the
// user's saved research, and returns the text with a Sources section
// appended plus the structured list. Resolution failures degrade to
// placeholder sources; Normalize itself never fails.
func (n *Normalizer) Normalize(ctx context.Context, text string, userID int32) (string, []Source) {
	items, err := n.research.ListResearchItems(ctx, &store.FindResearchItem{UserID: &userID})
	if err != nil {
		n.logger.WarnContext(ctx, "research lookup failed, citations stay unresolved",
			slog.Int64("user_id", int64(userID)),
			slog.String("error", err.Error()))
		items = nil
	}

	var out []Source
	seen := make(map[string]bool)
	add := func(source Source, key string) {
		key = strings.ToLower(key)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, source)
	}

	for _, match := range bracketPattern.FindAllStringSubmatch(text, -1) {
		index := parseIndex(match[1])
		if index >= 1 && index <= len(items) {
			add(fromResearch(items[index-1]), match[0])
			continue
		}
		add(placeholder("Reference "+match[1]), match[0])
	}

	for _, match := range authorYearPattern.FindAllStringSubmatch(text, -1) {
		author, year := match[1], match[2]
		if item := matchResearch(items, author); item != nil {
			add(fromResearch(item), match[0])
			continue
		}
		add(placeholder(author+" ("+year+")"), match[0])
	}

	for _, match := range narrativePattern.FindAllStringSubmatch(text, -1) {
		phrase := strings.TrimSpace(match[1])
		if phrase == "" {
			continue
		}
		if item := matchResearch(items, phrase); item != nil {
			add(fromResearch(item), item.Title)
			continue
		}
		add(placeholder(phrase), phrase)
	}

	if len(out) > 0 && !strings.Contains(strings.ToLower(text), "sources:") {
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n\nSources:\n")
		for i, source := range out {
			fmt.Fprintf(&b, "%d. %s", i+1, source.Title)
			if source.URL != "" {
				b.WriteString(" - " + source.URL)
			}
			b.WriteString("\n")
		}
		text = strings.TrimRight(b.String(), "\n")
	}

	return text, out
}

// matchResearch finds the first saved item whose title or authors contain
// the key, case-insensitively.
func matchResearch(items []*store.ResearchItem, key string) *store.ResearchItem {
	lower := strings.ToLower(key)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), lower) ||
			strings.Contains(strings.ToLower(item.Authors), lower) {
			return item
		}
	}
	return nil
}

func fromResearch(item *store.ResearchItem) Source {
	return Source{
		ID:          item.UID,
		Title:       item.Title,
		Type:        "research",
		URL:         item.URL,
		Description: item.Summary,
		Confidence:  ConfidenceMatched,
	}
}

func placeholder(title string) Source {
	return Source{
		ID:         shortuuid.New(),
		Title:      title,
		Type:       "reference",
		Confidence: ConfidencePlaceholder,
	}
}

func parseIndex(digits string) int {
	index := 0
	for _, r := range digits {
		index = index*10 + int(r-'0')
	}
	return index
}
