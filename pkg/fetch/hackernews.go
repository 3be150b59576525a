package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/painradar/painradar/pkg/domain"
)

// Extractor pulls readable text from an external page, used for link-only
// stories that carry no text of their own
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// HNConfig holds settings for the hacker news fetcher
type HNConfig struct {
	StoryLimit  int // top/new stories to scan
	AskLimit    int // ask stories to scan
	MinComments int // minimum descendants before fetching comments
	Timeout     time.Duration
	BaseURL     string // override for tests, defaults to the firebase API
}

// HNFetcher scans Hacker News via the official Firebase API
type HNFetcher struct {
	cfg       HNConfig
	client    *http.Client
	extractor Extractor // optional, may be nil
	sanitizer *bluemonday.Policy
}

// NewHNFetcher creates a hacker news fetcher. The extractor is optional and
// used to pull text for link-only stories.
func NewHNFetcher(cfg HNConfig, extractor Extractor) *HNFetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://hacker-news.firebaseio.com/v0"
	}
	if cfg.StoryLimit == 0 {
		cfg.StoryLimit = 100
	}
	if cfg.AskLimit == 0 {
		cfg.AskLimit = 50
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &HNFetcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		extractor: extractor,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Name returns the source identifier
func (f *HNFetcher) Name() string { return string(domain.SourceHackerNews) }

// hnItem is one story or comment from the firebase API
type hnItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
	Title       string `json:"title"`
	Text        string `json:"text"` // HTML, present for Ask HN and comments
	URL         string `json:"url"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Kids        []int64 `json:"kids"`
	Time        int64  `json:"time"`
}

// Fetch scans top, new and ask stories plus the comment trees of stories
// with enough discussion
func (f *HNFetcher) Fetch(ctx context.Context, items chan<- domain.SourceItem) error {
	ids := map[int64]struct{}{}
	for _, list := range []struct {
		path  string
		limit int
	}{
		{"topstories", f.cfg.StoryLimit},
		{"newstories", f.cfg.StoryLimit},
		{"askstories", f.cfg.AskLimit},
	} {
		listIDs, err := f.storyIDs(ctx, list.path, list.limit)
		if err != nil {
			lgr.Printf("[WARN] failed to fetch %s: %v", list.path, err)
			continue
		}
		for _, id := range listIDs {
			ids[id] = struct{}{}
		}
	}

	// stable scan order, the pipeline result does not depend on it but logs do
	ordered := make([]int64, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	lgr.Printf("[INFO] scanning %d hacker news stories", len(ordered))

	for _, id := range ordered {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := f.scanStory(ctx, id, items); err != nil {
			lgr.Printf("[WARN] failed to scan story %d: %v", id, err)
		}
	}
	return nil
}

func (f *HNFetcher) scanStory(ctx context.Context, id int64, items chan<- domain.SourceItem) error {
	story, err := f.getItem(ctx, id)
	if err != nil {
		return err
	}
	if story == nil || story.Deleted || story.Dead {
		return nil
	}

	text := f.plainText(story.Text)

	// link-only stories carry no text of their own, pull it from the page
	if text == "" && story.URL != "" && f.extractor != nil {
		extracted, err := f.extractor.Extract(ctx, story.URL)
		if err != nil {
			lgr.Printf("[DEBUG] no text extracted from %s: %v", story.URL, err)
		} else {
			text = extracted
		}
	}

	item := domain.SourceItem{
		Source:     domain.SourceHackerNews,
		ID:         strconv.FormatInt(story.ID, 10),
		Title:      story.Title,
		Text:       text,
		URL:        fmt.Sprintf("https://news.ycombinator.com/item?id=%d", story.ID),
		Engagement: story.Score,
		CreatedAt:  time.Unix(story.Time, 0).UTC(),
	}
	if !send(ctx, items, item) {
		return ctx.Err()
	}

	if story.Descendants >= f.cfg.MinComments {
		title := "Comment on: " + truncateTitle(story.Title, 50)
		if err := f.scanComments(ctx, story, title, 0, items); err != nil {
			return err
		}
	}
	return nil
}

// scanComments walks the comment tree, bounded to 20 kids per level and
// depth 2, matching the coverage the scan needs without hammering the API
func (f *HNFetcher) scanComments(ctx context.Context, parent *hnItem, title string, depth int, items chan<- domain.SourceItem) error {
	kids := parent.Kids
	if len(kids) > 20 {
		kids = kids[:20]
	}

	for _, kidID := range kids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		comment, err := f.getItem(ctx, kidID)
		if err != nil {
			lgr.Printf("[DEBUG] failed to fetch comment %d: %v", kidID, err)
			continue
		}
		if comment == nil || comment.Type != "comment" || comment.Deleted || comment.Dead {
			continue
		}

		item := domain.SourceItem{
			Source:     domain.SourceHackerNews,
			ID:         strconv.FormatInt(comment.ID, 10),
			Title:      title,
			Text:       f.plainText(comment.Text),
			URL:        fmt.Sprintf("https://news.ycombinator.com/item?id=%d", comment.ID),
			Engagement: 0, // HN does not expose comment scores
			CreatedAt:  time.Unix(comment.Time, 0).UTC(),
		}
		if !send(ctx, items, item) {
			return ctx.Err()
		}

		if depth < 2 {
			if err := f.scanComments(ctx, comment, title, depth+1, items); err != nil {
				return err
			}
		}
	}
	return nil
}

// plainText strips HN comment HTML down to text
func (f *HNFetcher) plainText(s string) string {
	if s == "" {
		return ""
	}
	return html.UnescapeString(f.sanitizer.Sanitize(s))
}

func (f *HNFetcher) storyIDs(ctx context.Context, list string, limit int) ([]int64, error) {
	var ids []int64
	if err := f.getJSON(ctx, fmt.Sprintf("%s/%s.json", f.cfg.BaseURL, list), &ids); err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *HNFetcher) getItem(ctx context.Context, id int64) (*hnItem, error) {
	var item *hnItem
	if err := f.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", f.cfg.BaseURL, id), &item); err != nil {
		return nil, err
	}
	return item, nil
}

func (f *HNFetcher) getJSON(ctx context.Context, url string, out interface{}) error {
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	return retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
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
