package domain

import "time"

// Source identifies the origin platform of a fetched item
type Source string

const (
	SourceReddit     Source = "reddit"
	SourceHackerNews Source = "hackernews"
	SourceRSS        Source = "rss"
)

// SourceItem represents one fetched text unit (post or comment),
// normalized regardless of origin. Immutable once fetched.
type SourceItem struct {
	Source     Source
	ID         string // unique within source
	Title      string
	Text       string
	URL        string
	Engagement int // upvotes/score/comment count
	CreatedAt  time.Time
}

// Opportunity is a ranked candidate record derived from a SourceItem
// that carries at least one pain signal and one industry match
type Opportunity struct {
	Source            Source
	ID                string
	Title             string
	TextSnippet       string
	URL               string
	Engagement        int
	MatchedSignals    []string
	MatchedIndustries []string
	PriorityScore     float64
	CreatedAt         time.Time
}

// Key returns the deduplication identity of the opportunity
func (o *Opportunity) Key() ItemKey {
	return ItemKey{Source: o.Source, ID: o.ID}
}

// ItemKey is the (source, id) identity used for deduplication
type ItemKey struct {
	Source Source
	ID     string
}

// ScanStats holds per-run data quality counters
type ScanStats struct {
	ItemsSeen  int
	Malformed  int // missing required fields or negative engagement
	NoSignal   int
	NoIndustry int
	Matched    int
}
