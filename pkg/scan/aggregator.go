package scan

import (
	"sort"
	"sync"

	"github.com/painradar/painradar/pkg/domain"
)

// Aggregator collects opportunities from all sources, deduplicates them by
// (source, id) and produces the final ranked list. The only component with
// cross-item logic in the pipeline, and the only synchronization point:
// ingestion is serialized by a mutex, arrival order across sources does not
// affect the final result except that a later duplicate replaces an earlier
// one.
type Aggregator struct {
	mu   sync.Mutex
	byID map[domain.ItemKey]domain.Opportunity
	topN int // 0 means no cap
}

// NewAggregator creates an aggregator with an optional top-N cap
func NewAggregator(topN int) *Aggregator {
	return &Aggregator{
		byID: make(map[domain.ItemKey]domain.Opportunity),
		topN: topN,
	}
}

// Add ingests one opportunity. Duplicates by (source, id) are resolved
// last-write-wins.
func (a *Aggregator) Add(opp domain.Opportunity) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.byID[opp.Key()] = opp
}

// Len returns the number of distinct opportunities accepted so far
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.byID)
}

// Result returns the final ranked list: priority score descending, ties by
// engagement descending, then (source, id) ascending for full determinism.
// Truncated to top-N when a cap is set.
func (a *Aggregator) Result() []domain.Opportunity {
	res := a.Snapshot()
	if a.topN > 0 && len(res) > a.topN {
		res = res[:a.topN]
	}
	return res
}

// Snapshot returns the full ranked list accumulated so far without applying
// the top-N cap. Safe to call while ingestion is still in progress, each
// accepted opportunity is independently valid, so a canceled run can still
// report partial results.
func (a *Aggregator) Snapshot() []domain.Opportunity {
	a.mu.Lock()
	res := make([]domain.Opportunity, 0, len(a.byID))
	for _, opp := range a.byID {
		res = append(res, opp)
	}
	a.mu.Unlock()

	sort.Slice(res, func(i, j int) bool {
		if res[i].PriorityScore != res[j].PriorityScore {
			return res[i].PriorityScore > res[j].PriorityScore
		}
		if res[i].Engagement != res[j].Engagement {
			return res[i].Engagement > res[j].Engagement
		}
		if res[i].Source != res[j].Source {
			return res[i].Source < res[j].Source
		}
		return res[i].ID < res[j].ID
	})
	return res
}
