package fetch

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/painradar/painradar/pkg/domain"
)

// Feed describes one RSS/Atom forum feed to scan
type Feed struct {
	Name string
	URL  string
}

// RSSFetcher scans generic forum feeds, e.g. Discourse /latest.rss endpoints
type RSSFetcher struct {
	feeds     []Feed
	parser    *gofeed.Parser
	timeout   time.Duration
	sanitizer *bluemonday.Policy
}

// NewRSSFetcher creates an RSS fetcher over the configured feeds
func NewRSSFetcher(feeds []Feed, timeout time.Duration) *RSSFetcher {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &RSSFetcher{
		feeds:     feeds,
		parser:    gofeed.NewParser(),
		timeout:   timeout,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Name returns the source identifier
func (f *RSSFetcher) Name() string { return string(domain.SourceRSS) }

// Fetch parses every configured feed and emits its entries
func (f *RSSFetcher) Fetch(ctx context.Context, items chan<- domain.SourceItem) error {
	for _, feed := range f.feeds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.scanFeed(ctx, feed, items); err != nil {
			lgr.Printf("[WARN] failed to scan feed %s: %v", feed.Name, err)
		}
	}
	return nil
}

func (f *RSSFetcher) scanFeed(ctx context.Context, feed Feed, items chan<- domain.SourceItem) error {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parsed, err := f.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		return fmt.Errorf("parse feed %s: %w", feed.URL, err)
	}

	for _, entry := range parsed.Items {
		guid := entry.GUID
		if guid == "" {
			guid = entry.Link
		}

		text := entry.Content
		if text == "" {
			text = entry.Description
		}

		item := domain.SourceItem{
			Source: domain.SourceRSS,
			// feed name prefix keeps ids unique across feeds within the source
			ID:    feed.Name + ":" + guid,
			Title: entry.Title,
			Text:  html.UnescapeString(f.sanitizer.Sanitize(text)),
			URL:   entry.Link,
		}
		if entry.PublishedParsed != nil {
			item.CreatedAt = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			item.CreatedAt = *entry.UpdatedParsed
		}

		if !send(ctx, items, item) {
			return ctx.Err()
		}
	}
	return nil
}
