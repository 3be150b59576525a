package scan

import (
	"context"
	"sync"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/painradar/painradar/pkg/domain"
)

// Pipeline composes the signal matcher, industry classifier and builder into
// the per-item stage of a scan. Items are independent, no shared mutable
// state beyond the read-only configuration, so any number of items can be
// processed in parallel.
type Pipeline struct {
	matcher    *SignalMatcher
	classifier *IndustryClassifier
	builder    *Builder

	mu    sync.Mutex
	stats domain.ScanStats
}

// NewPipeline creates a pipeline from the configured signal and industry sets
func NewPipeline(signals []domain.Signal, industries []domain.IndustryRule, weights domain.Weights, snippetLen int) *Pipeline {
	scorer := NewScorer(weights)
	return &Pipeline{
		matcher:    NewSignalMatcher(signals),
		classifier: NewIndustryClassifier(industries),
		builder:    NewBuilder(scorer, snippetLen),
	}
}

// Process runs a single item through matching, classification and building.
// Returns ok=false when the item carries no signal or no industry match, or
// when it is malformed (the latter also returns the error).
func (p *Pipeline) Process(item domain.SourceItem) (domain.Opportunity, bool, error) {
	p.count(func(s *domain.ScanStats) { s.ItemsSeen++ })

	// title participates in matching the same way the body does
	text := item.Title + " " + item.Text

	signals := p.matcher.Match(text)
	industries := p.classifier.Classify(text)

	opp, ok, err := p.builder.Build(item, signals, industries)
	if err != nil {
		p.count(func(s *domain.ScanStats) { s.Malformed++ })
		return domain.Opportunity{}, false, err
	}
	if !ok {
		p.count(func(s *domain.ScanStats) {
			if len(signals) == 0 {
				s.NoSignal++
			} else {
				s.NoIndustry++
			}
		})
		return domain.Opportunity{}, false, nil
	}

	p.count(func(s *domain.ScanStats) { s.Matched++ })
	return opp, true, nil
}

// ProcessAll drains the items channel with up to maxWorkers concurrent
// workers, feeding matched opportunities into the aggregator. Malformed
// items are logged and skipped, partial results are always preferable to a
// failed run. Blocks until the channel is closed or the context is canceled.
func (p *Pipeline) ProcessAll(ctx context.Context, items <-chan domain.SourceItem, agg *Aggregator, maxWorkers int) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for item := range items {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			opp, ok, err := p.Process(item)
			if err != nil {
				lgr.Printf("[WARN] skipping malformed item: %v", err)
				return nil
			}
			if ok {
				agg.Add(opp)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		lgr.Printf("[ERROR] pipeline worker error: %v", err)
	}
}

// Stats returns a copy of the data-quality counters accumulated so far
func (p *Pipeline) Stats() domain.ScanStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

func (p *Pipeline) count(fn func(*domain.ScanStats)) {
	p.mu.Lock()
	fn(&p.stats)
	p.mu.Unlock()
}
