package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/painradar/painradar/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:painradar.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		ScanInterval time.Duration `yaml:"scan_interval" json:"scan_interval" jsonschema:"default=1h,description=Interval between full scans"`
		MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent workers"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Sources    SourcesConfig    `yaml:"sources" json:"sources" jsonschema:"description=Discussion sources to scan"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Linked-page text extraction configuration"`
	Scoring    ScoringConfig    `yaml:"scoring" json:"scoring" jsonschema:"description=Priority score weights"`
	Analyst    AnalystConfig    `yaml:"analyst" json:"analyst" jsonschema:"description=LLM analyst configuration"`

	Signals    []SignalConfig   `yaml:"signals" json:"signals" jsonschema:"required,description=Pain-point signal phrases"`
	Industries []IndustryConfig `yaml:"industries" json:"industries" jsonschema:"required,description=Industry keyword rules"`

	SnippetLength int `yaml:"snippet_length" json:"snippet_length" jsonschema:"default=500,description=Maximum opportunity snippet length in characters"`
	TopN          int `yaml:"top_n" json:"top_n" jsonschema:"default=0,description=Cap ranked output to top N (0 means no cap)"`
}

// SourcesConfig describes the discussion sources to scan
type SourcesConfig struct {
	Reddit struct {
		Subreddits      []string `yaml:"subreddits" json:"subreddits" jsonschema:"description=Subreddits to monitor"`
		PostLimit       int      `yaml:"post_limit" json:"post_limit" jsonschema:"default=50,description=Posts to fetch per subreddit"`
		CommentMinScore int      `yaml:"comment_min_score" json:"comment_min_score" jsonschema:"default=3,description=Minimum comment score to consider"`
		MinComments     int      `yaml:"min_comments" json:"min_comments" jsonschema:"default=5,description=Minimum post comments before fetching the comment tree"`
	} `yaml:"reddit" json:"reddit" jsonschema:"description=Reddit public JSON API source"`

	HackerNews struct {
		StoryLimit  int `yaml:"story_limit" json:"story_limit" jsonschema:"default=100,description=Top/new stories to scan"`
		AskLimit    int `yaml:"ask_limit" json:"ask_limit" jsonschema:"default=50,description=Ask HN stories to scan"`
		MinComments int `yaml:"min_comments" json:"min_comments" jsonschema:"default=5,description=Minimum descendants before fetching comments"`
	} `yaml:"hackernews" json:"hackernews" jsonschema:"description=Hacker News Firebase API source"`

	Feeds []FeedConfig `yaml:"feeds" json:"feeds" jsonschema:"description=Generic forum RSS/Atom feeds"`

	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=HTTP timeout per request"`
}

// FeedConfig describes one RSS/Atom forum feed
type FeedConfig struct {
	Name string `yaml:"name" json:"name" jsonschema:"required,description=Feed name used as item source prefix"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
}

// ExtractionConfig holds linked-page text extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Extract text from link-only stories"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per page"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum extracted text length to consider valid"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=PainRadar/1.0,description=User agent for HTTP requests"`
}

// ScoringConfig holds the priority score weights
type ScoringConfig struct {
	EngagementWeight float64 `yaml:"engagement_weight" json:"engagement_weight" jsonschema:"default=1.5,description=Weight of log-scaled engagement"`
	SignalWeight     float64 `yaml:"signal_weight" json:"signal_weight" jsonschema:"default=10,description=Weight per matched signal"`
	IndustryWeight   float64 `yaml:"industry_weight" json:"industry_weight" jsonschema:"default=5,description=Weight per matched industry"`
}

// AnalystConfig holds LLM configuration for opportunity analysis
type AnalystConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint (empty disables the analyst)"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model       string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.7,description=Temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=2000,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
}

// SignalConfig is one pain-point phrase with its strength weight
type SignalConfig struct {
	Phrase   string  `yaml:"phrase" json:"phrase" jsonschema:"required,description=Phrase matched case-insensitively as substring"`
	Strength float64 `yaml:"strength" json:"strength" jsonschema:"default=1,description=Strength added to the score on match"`
}

// IndustryConfig is one industry label with its associated keywords
type IndustryConfig struct {
	Label    string   `yaml:"label" json:"label" jsonschema:"required,description=Industry label"`
	Keywords []string `yaml:"keywords" json:"keywords" jsonschema:"required,description=Keywords matched case-insensitively as substrings"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:painradar.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Schedule.ScanInterval == 0 {
		cfg.Schedule.ScanInterval = time.Hour
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	if cfg.Sources.Reddit.PostLimit == 0 {
		cfg.Sources.Reddit.PostLimit = 50
	}
	if cfg.Sources.Reddit.CommentMinScore == 0 {
		cfg.Sources.Reddit.CommentMinScore = 3
	}
	if cfg.Sources.Reddit.MinComments == 0 {
		cfg.Sources.Reddit.MinComments = 5
	}
	if cfg.Sources.HackerNews.StoryLimit == 0 {
		cfg.Sources.HackerNews.StoryLimit = 100
	}
	if cfg.Sources.HackerNews.AskLimit == 0 {
		cfg.Sources.HackerNews.AskLimit = 50
	}
	if cfg.Sources.HackerNews.MinComments == 0 {
		cfg.Sources.HackerNews.MinComments = 5
	}
	if cfg.Sources.Timeout == 0 {
		cfg.Sources.Timeout = 10 * time.Second
	}

	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "PainRadar/1.0"
	}

	if cfg.Scoring.EngagementWeight == 0 {
		cfg.Scoring.EngagementWeight = 1.5
	}
	if cfg.Scoring.SignalWeight == 0 {
		cfg.Scoring.SignalWeight = 10
	}
	if cfg.Scoring.IndustryWeight == 0 {
		cfg.Scoring.IndustryWeight = 5
	}

	if cfg.Analyst.Temperature == 0 {
		cfg.Analyst.Temperature = 0.7
	}
	if cfg.Analyst.MaxTokens == 0 {
		cfg.Analyst.MaxTokens = 2000
	}
	if cfg.Analyst.Timeout == 0 {
		cfg.Analyst.Timeout = 60 * time.Second
	}

	if cfg.SnippetLength == 0 {
		cfg.SnippetLength = 500
	}

	for i := range cfg.Signals {
		if cfg.Signals[i].Strength == 0 {
			cfg.Signals[i].Strength = 1
		}
	}
}

// validate checks configuration for correctness. Missing signal or industry
// rules make the whole pipeline pointless, so they fail the load.
func validate(cfg *Config) error {
	if len(cfg.Signals) == 0 {
		return fmt.Errorf("no signal phrases configured, pipeline cannot match anything")
	}
	if len(cfg.Industries) == 0 {
		return fmt.Errorf("no industry rules configured, pipeline cannot classify anything")
	}

	for i, s := range cfg.Signals {
		if s.Phrase == "" {
			return fmt.Errorf("signals[%d].phrase is empty", i)
		}
		if s.Strength < 0 {
			return fmt.Errorf("signals[%d].strength must be non-negative", i)
		}
	}
	for i, ind := range cfg.Industries {
		if ind.Label == "" {
			return fmt.Errorf("industries[%d].label is empty", i)
		}
		if len(ind.Keywords) == 0 {
			return fmt.Errorf("industry %q has no keywords", ind.Label)
		}
	}

	if cfg.Scoring.EngagementWeight < 0 || cfg.Scoring.SignalWeight < 0 || cfg.Scoring.IndustryWeight < 0 {
		return fmt.Errorf("scoring weights must be non-negative")
	}
	if cfg.SnippetLength < 1 {
		return fmt.Errorf("snippet_length must be positive")
	}
	if cfg.TopN < 0 {
		return fmt.Errorf("top_n must be non-negative")
	}

	for i, f := range cfg.Sources.Feeds {
		if f.Name == "" || f.URL == "" {
			return fmt.Errorf("sources.feeds[%d] requires both name and url", i)
		}
	}

	if cfg.Analyst.Endpoint != "" && cfg.Analyst.Model == "" {
		return fmt.Errorf("analyst.model is required when analyst.endpoint is set")
	}

	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// SignalSet returns the configured signals as domain values
func (c *Config) SignalSet() []domain.Signal {
	res := make([]domain.Signal, 0, len(c.Signals))
	for _, s := range c.Signals {
		res = append(res, domain.Signal{Phrase: s.Phrase, Strength: s.Strength})
	}
	return res
}

// IndustrySet returns the configured industry rules as domain values
func (c *Config) IndustrySet() []domain.IndustryRule {
	res := make([]domain.IndustryRule, 0, len(c.Industries))
	for _, ind := range c.Industries {
		res = append(res, domain.IndustryRule{Label: ind.Label, Keywords: ind.Keywords})
	}
	return res
}

// ScoringWeights returns the configured score weights as domain values
func (c *Config) ScoringWeights() domain.Weights {
	return domain.Weights{
		Engagement: c.Scoring.EngagementWeight,
		Signal:     c.Scoring.SignalWeight,
		Industry:   c.Scoring.IndustryWeight,
	}
}
