// Package scheduler runs periodic and on-demand scans: it fans items out of
// the source fetchers into the scan pipeline, collects the ranked result and
// persists it.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/painradar/painradar/pkg/domain"
	"github.com/painradar/painradar/pkg/fetch"
	"github.com/painradar/painradar/pkg/scan"
)

//go:generate moq -out mocks/opportunity_store.go -pkg mocks -skip-ensure -fmt goimports . OpportunityStore
//go:generate moq -out mocks/scan_store.go -pkg mocks -skip-ensure -fmt goimports . ScanStore

// OpportunityStore persists ranked scan output
type OpportunityStore interface {
	SaveOpportunities(ctx context.Context, opps []domain.Opportunity) error
}

// ScanStore records scan run bookkeeping
type ScanStore interface {
	StartScan(ctx context.Context) (int64, error)
	FinishScan(ctx context.Context, id int64, stats domain.ScanStats, errMsg string) error
}

// Config holds scheduler configuration
type Config struct {
	Signals      []domain.Signal
	Industries   []domain.IndustryRule
	Weights      domain.Weights
	SnippetLen   int
	TopN         int
	ScanInterval time.Duration
	MaxWorkers   int
}

// Scheduler manages periodic scans over all configured fetchers
type Scheduler struct {
	fetchers []fetch.Fetcher
	opps     OpportunityStore
	scans    ScanStore
	cfg      Config

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	dbMutex sync.Mutex // serialize database writes

	statsMutex sync.Mutex
	lastStats  domain.ScanStats
	lastScanAt time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(fetchers []fetch.Fetcher, opps OpportunityStore, scans ScanStore, cfg Config) *Scheduler {
	if cfg.ScanInterval == 0 {
		cfg.ScanInterval = time.Hour
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.SnippetLen == 0 {
		cfg.SnippetLen = 500
	}
	return &Scheduler{fetchers: fetchers, opps: opps, scans: scans, cfg: cfg}
}

// Start begins the periodic scan loop
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.scanWorker(ctx)

	lgr.Printf("[INFO] scheduler started with scan interval %v, %d workers", s.cfg.ScanInterval, s.cfg.MaxWorkers)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// scanWorker runs a full scan immediately and then on every tick
func (s *Scheduler) scanWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.ScanInterval)
	defer ticker.Stop()

	if _, err := s.ScanNow(ctx, ""); err != nil {
		lgr.Printf("[ERROR] initial scan failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ScanNow(ctx, ""); err != nil {
				lgr.Printf("[ERROR] scheduled scan failed: %v", err)
			}
		}
	}
}

// ScanNow runs one full scan across all fetchers and returns the ranked
// result, optionally restricted to a single industry label. The result is
// persisted even when the run was canceled midway, each accepted
// opportunity is independently valid.
func (s *Scheduler) ScanNow(ctx context.Context, industry string) ([]domain.Opportunity, error) {
	started := time.Now()
	lgr.Printf("[INFO] starting scan over %d sources", len(s.fetchers))

	scanID, err := s.scans.StartScan(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to record scan start: %v", err)
	}

	pipeline := scan.NewPipeline(s.cfg.Signals, s.cfg.Industries, s.cfg.Weights, s.cfg.SnippetLen)
	agg := scan.NewAggregator(s.cfg.TopN)

	items := make(chan domain.SourceItem)

	// fetchers push into the shared channel, bounded by a semaphore
	var fetchWG sync.WaitGroup
	sem := make(chan struct{}, s.cfg.MaxWorkers)
	var fetchErrs []string
	var errMutex sync.Mutex

	for _, f := range s.fetchers {
		fetchWG.Add(1)
		go func(f fetch.Fetcher) {
			defer fetchWG.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			if err := f.Fetch(ctx, items); err != nil {
				lgr.Printf("[WARN] fetcher %s failed: %v", f.Name(), err)
				errMutex.Lock()
				fetchErrs = append(fetchErrs, fmt.Sprintf("%s: %v", f.Name(), err))
				errMutex.Unlock()
			}
		}(f)
	}

	go func() {
		fetchWG.Wait()
		close(items)
	}()

	pipeline.ProcessAll(ctx, items, agg, s.cfg.MaxWorkers)

	result := agg.Result()
	if industry != "" {
		result = filterByIndustry(result, industry)
	}

	stats := pipeline.Stats()
	s.statsMutex.Lock()
	s.lastStats = stats
	s.lastScanAt = started
	s.statsMutex.Unlock()

	s.dbMutex.Lock()
	if err := s.opps.SaveOpportunities(ctx, result); err != nil {
		lgr.Printf("[ERROR] failed to save opportunities: %v", err)
	}
	if scanID != 0 {
		if err := s.scans.FinishScan(ctx, scanID, stats, strings.Join(fetchErrs, "; ")); err != nil {
			lgr.Printf("[WARN] failed to record scan finish: %v", err)
		}
	}
	s.dbMutex.Unlock()

	lgr.Printf("[INFO] scan completed in %v: %d items seen, %d matched, %d malformed",
		time.Since(started).Round(time.Millisecond), stats.ItemsSeen, stats.Matched, stats.Malformed)

	return result, ctx.Err()
}

// LastScanStats returns the stats and start time of the most recent scan
func (s *Scheduler) LastScanStats() (domain.ScanStats, time.Time) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()
	return s.lastStats, s.lastScanAt
}

func filterByIndustry(opps []domain.Opportunity, industry string) []domain.Opportunity {
	res := make([]domain.Opportunity, 0, len(opps))
	for _, opp := range opps {
		for _, label := range opp.MatchedIndustries {
			if strings.EqualFold(label, industry) {
				res = append(res, opp)
				break
			}
		}
	}
	return res
}
