// Package fetch provides source fetchers for the discussion platforms the
// scanner monitors. Each fetcher normalizes posts and comments into
// domain.SourceItem and is responsible for its own pagination, rate limits
// and retries.
package fetch

import (
	"context"

	"github.com/painradar/painradar/pkg/domain"
)

// Fetcher delivers source items into the provided channel. Each logical item
// is delivered at most once per call; the aggregator's dedup rule covers the
// rest. Implementations must respect context cancellation and must not close
// the channel.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, items chan<- domain.SourceItem) error
}

// send delivers one item unless the context is already canceled
func send(ctx context.Context, items chan<- domain.SourceItem, item domain.SourceItem) bool {
	select {
	case items <- item:
		return true
	case <-ctx.Done():
		return false
	}
}
