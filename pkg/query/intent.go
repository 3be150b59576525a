// Package query translates free-text requests into structured pipeline
// invocations. The grammar is a small fixed set of keyword checks, the core
// never sees raw natural language.
package query

import (
	"strconv"
	"strings"
)

// Action is the tagged intent of a parsed query
type Action string

const (
	ActionScan           Action = "scan"
	ActionAnalyze        Action = "analyze"
	ActionExplain        Action = "explain"
	ActionListIndustries Action = "list_industries"
	ActionListSignals    Action = "list_signals"
)

// maxLimit caps user-requested result counts
const maxLimit = 50

// Intent is a structured pipeline invocation derived from a free-text query
type Intent struct {
	Action   Action
	Industry string // empty means no industry filter
	Limit    int
}

// Parser resolves free text against the configured industry labels
type Parser struct {
	industries []string
}

// NewParser creates a parser aware of the configured industry labels
func NewParser(industries []string) *Parser {
	return &Parser{industries: industries}
}

// Parse determines the intent of a free-text query. Defaults to a plain scan
// with a limit of 10.
func (p *Parser) Parse(query string) Intent {
	q := strings.ToLower(query)

	intent := Intent{Action: ActionScan, Limit: 10}

	switch {
	case containsAny(q, "analyze", "analysis", "insights", "summarize", "summary"):
		intent.Action = ActionAnalyze
	case containsAny(q, "list industries", "what industries", "available industries"):
		intent.Action = ActionListIndustries
	case containsAny(q, "list signals", "what signals", "pain signals"):
		intent.Action = ActionListSignals
	case containsAny(q, "explain", "what is", "how does", "help"):
		intent.Action = ActionExplain
	}

	// industry filter: labels match with underscores treated as spaces
	for _, label := range p.industries {
		spaced := strings.ReplaceAll(strings.ToLower(label), "_", " ")
		if strings.Contains(q, spaced) || strings.Contains(q, strings.ToLower(label)) {
			intent.Industry = label
			break
		}
	}

	// first number in the query becomes the limit
	for _, word := range strings.Fields(q) {
		if n, err := strconv.Atoi(word); err == nil && n > 0 {
			if n > maxLimit {
				n = maxLimit
			}
			intent.Limit = n
			break
		}
	}

	return intent
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
