package scan

import (
	"strings"

	"github.com/painradar/painradar/pkg/domain"
)

// IndustryClassifier detects which configured industries an item relates to.
// Same matching policy as SignalMatcher: case-insensitive substring search,
// an industry matches when at least one of its keywords is present.
type IndustryClassifier struct {
	rules   []domain.IndustryRule
	lowered [][]string
}

// NewIndustryClassifier creates a classifier over the configured rule set
func NewIndustryClassifier(rules []domain.IndustryRule) *IndustryClassifier {
	lowered := make([][]string, len(rules))
	for i, rule := range rules {
		kws := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		lowered[i] = kws
	}
	return &IndustryClassifier{rules: rules, lowered: lowered}
}

// Classify returns the labels of every industry with a keyword present in
// the text. Zero matches is a valid and common outcome.
func (c *IndustryClassifier) Classify(text string) []string {
	if text == "" {
		return nil
	}
	textLower := strings.ToLower(text)

	var matched []string
	for i, keywords := range c.lowered {
		for _, kw := range keywords {
			if strings.Contains(textLower, kw) {
				matched = append(matched, c.rules[i].Label)
				break
			}
		}
	}
	return matched
}

// Labels returns all configured industry labels in configuration order
func (c *IndustryClassifier) Labels() []string {
	labels := make([]string, len(c.rules))
	for i, rule := range c.rules {
		labels[i] = rule.Label
	}
	return labels
}
