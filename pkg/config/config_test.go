package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
signals:
  - {phrase: "i wish there was", strength: 1.5}
  - {phrase: "tired of"}
industries:
  - label: legal
    keywords: [law firm, attorney]
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	// defaults applied
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, time.Hour, cfg.Schedule.ScanInterval)
	assert.Equal(t, 5, cfg.Schedule.MaxWorkers)
	assert.Equal(t, 500, cfg.SnippetLength)
	assert.Equal(t, 0, cfg.TopN)
	assert.InDelta(t, 1.5, cfg.Scoring.EngagementWeight, 0.0001)
	assert.InDelta(t, 10, cfg.Scoring.SignalWeight, 0.0001)
	assert.InDelta(t, 5, cfg.Scoring.IndustryWeight, 0.0001)

	// signal strength defaults to 1 when omitted
	assert.InDelta(t, 1.5, cfg.Signals[0].Strength, 0.0001)
	assert.InDelta(t, 1.0, cfg.Signals[1].Strength, 0.0001)
}

func TestLoad_FullConfig(t *testing.T) {
	content := `
server:
  listen: ":9090"
  timeout: 10s
schedule:
  scan_interval: 15m
  max_workers: 3
sources:
  reddit:
    subreddits: [startups, smallbusiness]
    post_limit: 25
  hackernews:
    story_limit: 10
  feeds:
    - {name: forum, url: "https://forum.example.com/latest.rss"}
scoring:
  engagement_weight: 2
snippet_length: 200
top_n: 25
signals:
  - {phrase: "i'd pay for", strength: 2}
industries:
  - label: finance
    keywords: [fintech]
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 15*time.Minute, cfg.Schedule.ScanInterval)
	assert.Equal(t, []string{"startups", "smallbusiness"}, cfg.Sources.Reddit.Subreddits)
	assert.Equal(t, 25, cfg.Sources.Reddit.PostLimit)
	assert.Equal(t, 10, cfg.Sources.HackerNews.StoryLimit)
	require.Len(t, cfg.Sources.Feeds, 1)
	assert.Equal(t, "forum", cfg.Sources.Feeds[0].Name)
	assert.Equal(t, 200, cfg.SnippetLength)
	assert.Equal(t, 25, cfg.TopN)
	assert.InDelta(t, 2.0, cfg.Scoring.EngagementWeight, 0.0001)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_LISTEN_ADDR", ":7070")

	content := `
server:
  listen: "${TEST_LISTEN_ADDR}"
signals:
  - {phrase: "tired of"}
industries:
  - label: legal
    keywords: [law firm]
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Listen)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "no signals is fatal",
			content: `
industries:
  - label: legal
    keywords: [law firm]
`,
			errMsg: "no signal phrases configured",
		},
		{
			name: "no industries is fatal",
			content: `
signals:
  - {phrase: "tired of"}
`,
			errMsg: "no industry rules configured",
		},
		{
			name: "industry without keywords",
			content: `
signals:
  - {phrase: "tired of"}
industries:
  - label: legal
    keywords: []
`,
			errMsg: `industry "legal" has no keywords`,
		},
		{
			name: "empty signal phrase",
			content: `
signals:
  - {phrase: ""}
industries:
  - label: legal
    keywords: [law firm]
`,
			errMsg: "signals[0].phrase is empty",
		},
		{
			name: "feed missing url",
			content: minimalConfig + `
sources:
  feeds:
    - {name: forum}
`,
			errMsg: "requires both name and url",
		},
		{
			name: "analyst endpoint without model",
			content: minimalConfig + `
analyst:
  endpoint: "https://api.example.com/v1"
`,
			errMsg: "analyst.model is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestConfig_DomainSets(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	signals := cfg.SignalSet()
	require.Len(t, signals, 2)
	assert.Equal(t, "i wish there was", signals[0].Phrase)

	industries := cfg.IndustrySet()
	require.Len(t, industries, 1)
	assert.Equal(t, "legal", industries[0].Label)
	assert.Equal(t, []string{"law firm", "attorney"}, industries[0].Keywords)

	weights := cfg.ScoringWeights()
	assert.InDelta(t, 1.5, weights.Engagement, 0.0001)
}
