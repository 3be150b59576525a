// Package scan implements the signal-detection and scoring pipeline: it takes
// normalized source items, matches them against configured pain-signal phrases
// and industry keyword rules, scores the matches, and aggregates the results
// into a ranked, deduplicated list of opportunities.
package scan

import (
	"strings"

	"github.com/painradar/painradar/pkg/domain"
)

// SignalMatcher finds configured pain-signal phrases in item text.
// Matching is flat case-insensitive substring search, no stemming or
// negation detection. Multiple occurrences of one phrase count once.
type SignalMatcher struct {
	signals []domain.Signal
	lowered []string // phrases pre-lowered once at construction
}

// NewSignalMatcher creates a matcher over the configured signal set
func NewSignalMatcher(signals []domain.Signal) *SignalMatcher {
	lowered := make([]string, len(signals))
	for i, s := range signals {
		lowered[i] = strings.ToLower(s.Phrase)
	}
	return &SignalMatcher{signals: signals, lowered: lowered}
}

// Match returns every configured signal whose phrase occurs in the text.
// Empty text yields an empty result, absence of matches is not an error.
func (m *SignalMatcher) Match(text string) []domain.Signal {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)

	var matched []domain.Signal
	for i, phrase := range m.lowered {
		if strings.Contains(textLower, phrase) {
			matched = append(matched, m.signals[i])
		}
	}
	return matched
}
