package scan

import (
	"fmt"

	"github.com/painradar/painradar/pkg/domain"
)

// Builder turns a source item plus its match results into an opportunity
// record. Pure transformation, no side effects.
type Builder struct {
	scorer     *Scorer
	snippetLen int
}

// NewBuilder creates a builder with the given scorer and snippet limit
func NewBuilder(scorer *Scorer, snippetLen int) *Builder {
	return &Builder{scorer: scorer, snippetLen: snippetLen}
}

// Build constructs an opportunity from an item and its match sets.
// Returns ok=false without error when either match set is empty, that is a
// normal skip, not a failure. Returns an error for malformed items (missing
// source or id, negative engagement), the caller counts those as
// data-quality warnings.
func (b *Builder) Build(item domain.SourceItem, signals []domain.Signal, industries []string) (opp domain.Opportunity, ok bool, err error) {
	if item.Source == "" || item.ID == "" {
		return domain.Opportunity{}, false, fmt.Errorf("item missing source or id: %+v", item)
	}

	if len(signals) == 0 || len(industries) == 0 {
		return domain.Opportunity{}, false, nil
	}

	score, err := b.scorer.Score(item.Engagement, signals, industries)
	if err != nil {
		return domain.Opportunity{}, false, fmt.Errorf("score item %s/%s: %w", item.Source, item.ID, err)
	}

	phrases := make([]string, len(signals))
	for i, s := range signals {
		phrases[i] = s.Phrase
	}

	return domain.Opportunity{
		Source:            item.Source,
		ID:                item.ID,
		Title:             item.Title,
		TextSnippet:       truncate(item.Text, b.snippetLen),
		URL:               item.URL,
		Engagement:        item.Engagement,
		MatchedSignals:    phrases,
		MatchedIndustries: industries,
		PriorityScore:     score,
		CreatedAt:         item.CreatedAt,
	}, true, nil
}

// truncate cuts text to maxLen runes and marks the cut with an ellipsis
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "…"
}
