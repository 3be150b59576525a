package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"

	"github.com/painradar/painradar/pkg/domain"
)

// RedditConfig holds settings for the reddit fetcher
type RedditConfig struct {
	Subreddits      []string
	PostLimit       int
	CommentMinScore int // comments below this score are ignored
	MinComments     int // posts below this skip the comment tree
	Timeout         time.Duration
	UserAgent       string
	BaseURL         string // override for tests, defaults to https://www.reddit.com
}

// RedditFetcher scans subreddits via the public JSON API, no auth required
type RedditFetcher struct {
	cfg    RedditConfig
	client *http.Client
}

// NewRedditFetcher creates a reddit fetcher
func NewRedditFetcher(cfg RedditConfig) *RedditFetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.reddit.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "PainRadar/1.0"
	}
	if cfg.PostLimit == 0 {
		cfg.PostLimit = 50
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &RedditFetcher{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

// Name returns the source identifier
func (f *RedditFetcher) Name() string { return string(domain.SourceReddit) }

// redditListing is the common envelope of reddit listing responses
type redditListing struct {
	Data struct {
		Children []redditThing `json:"children"`
	} `json:"data"`
}

type redditThing struct {
	Kind string `json:"kind"` // t3 post, t1 comment
	Data struct {
		ID          string          `json:"id"`
		Title       string          `json:"title"`
		Selftext    string          `json:"selftext"`
		Body        string          `json:"body"` // comments only
		Permalink   string          `json:"permalink"`
		Score       int             `json:"score"`
		NumComments int             `json:"num_comments"`
		CreatedUTC  float64         `json:"created_utc"`
		Replies     json.RawMessage `json:"replies"` // empty string or nested listing
	} `json:"data"`
}

// Fetch scans the configured subreddits: every hot post, and the comment
// tree of posts with enough discussion
func (f *RedditFetcher) Fetch(ctx context.Context, items chan<- domain.SourceItem) error {
	for _, sub := range f.cfg.Subreddits {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.scanSubreddit(ctx, sub, items); err != nil {
			lgr.Printf("[WARN] failed to scan r/%s: %v", sub, err)
		}
	}
	return nil
}

func (f *RedditFetcher) scanSubreddit(ctx context.Context, sub string, items chan<- domain.SourceItem) error {
	url := fmt.Sprintf("%s/r/%s/hot.json?limit=%d", f.cfg.BaseURL, sub, f.cfg.PostLimit)
	var listing redditListing
	if err := f.getJSON(ctx, url, &listing); err != nil {
		return fmt.Errorf("fetch r/%s listing: %w", sub, err)
	}

	for _, post := range listing.Data.Children {
		if post.Kind != "t3" {
			continue
		}
		d := post.Data
		item := domain.SourceItem{
			Source:     domain.SourceReddit,
			ID:         d.ID,
			Title:      d.Title,
			Text:       d.Selftext,
			URL:        "https://reddit.com" + d.Permalink,
			Engagement: d.Score,
			CreatedAt:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
		}
		if !send(ctx, items, item) {
			return ctx.Err()
		}

		if d.NumComments >= f.cfg.MinComments {
			if err := f.scanComments(ctx, d.Permalink, d.Title, items); err != nil {
				lgr.Printf("[WARN] failed to fetch comments for %s: %v", d.Permalink, err)
			}
		}
	}
	return nil
}

func (f *RedditFetcher) scanComments(ctx context.Context, permalink, postTitle string, items chan<- domain.SourceItem) error {
	url := fmt.Sprintf("%s%s.json?limit=100", f.cfg.BaseURL, permalink)

	// the comments endpoint returns a two-element array: post listing, comment listing
	var listings []redditListing
	if err := f.getJSON(ctx, url, &listings); err != nil {
		return fmt.Errorf("fetch comments: %w", err)
	}
	if len(listings) < 2 {
		return nil
	}

	title := "Comment on: " + truncateTitle(postTitle, 50)
	return f.emitComments(ctx, listings[1].Data.Children, permalink, title, items)
}

// emitComments walks the nested comment tree depth-first
func (f *RedditFetcher) emitComments(ctx context.Context, children []redditThing, permalink, title string, items chan<- domain.SourceItem) error {
	for _, child := range children {
		if child.Kind != "t1" {
			continue
		}
		d := child.Data

		if d.Score >= f.cfg.CommentMinScore {
			item := domain.SourceItem{
				Source:     domain.SourceReddit,
				ID:         d.ID,
				Title:      title,
				Text:       d.Body,
				URL:        "https://reddit.com" + permalink,
				Engagement: d.Score,
				CreatedAt:  time.Unix(int64(d.CreatedUTC), 0).UTC(),
			}
			if !send(ctx, items, item) {
				return ctx.Err()
			}
		}

		// replies is an empty string when there are none
		if len(d.Replies) > 0 && d.Replies[0] == '{' {
			var nested redditListing
			if err := json.Unmarshal(d.Replies, &nested); err != nil {
				continue
			}
			if err := f.emitComments(ctx, nested.Data.Children, permalink, title, items); err != nil {
				return err
			}
		}
	}
	return nil
}

// getJSON fetches a URL and decodes the JSON body, retrying transient failures
func (f *RedditFetcher) getJSON(ctx context.Context, url string, out interface{}) error {
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	return retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", f.cfg.UserAgent)

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("get %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", url, err)
		}
		return nil
	})
}

func truncateTitle(title string, maxLen int) string {
	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	return string(runes[:maxLen])
}
