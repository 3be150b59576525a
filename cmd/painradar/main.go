package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/painradar/painradar/pkg/config"
	"github.com/painradar/painradar/pkg/content"
	"github.com/painradar/painradar/pkg/fetch"
	"github.com/painradar/painradar/pkg/llm"
	"github.com/painradar/painradar/pkg/repository"
	"github.com/painradar/painradar/pkg/scheduler"
	"github.com/painradar/painradar/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"painradar.yml" description:"config file path"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address override"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting painradar version %s", revision)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] failed to load config: %v", err)
		os.Exit(1)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, cfg, opts.Debug); err != nil {
		log.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer repos.Close()

	sched := scheduler.NewScheduler(makeFetchers(cfg), repos.Opportunity, repos.Scan, scheduler.Config{
		Signals:      cfg.SignalSet(),
		Industries:   cfg.IndustrySet(),
		Weights:      cfg.ScoringWeights(),
		SnippetLen:   cfg.SnippetLength,
		TopN:         cfg.TopN,
		ScanInterval: cfg.Schedule.ScanInterval,
		MaxWorkers:   cfg.Schedule.MaxWorkers,
	})
	sched.Start(ctx)
	defer sched.Stop()

	var analyst server.Analyst
	if cfg.Analyst.Endpoint != "" {
		analyst = llm.NewAnalyst(cfg.Analyst)
		log.Printf("[INFO] analyst enabled with model %s", cfg.Analyst.Model)
	}

	srv := server.New(cfg, repos.Opportunity, sched, analyst, revision, debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func makeFetchers(cfg *config.Config) []fetch.Fetcher {
	var fetchers []fetch.Fetcher

	if len(cfg.Sources.Reddit.Subreddits) > 0 {
		fetchers = append(fetchers, fetch.NewRedditFetcher(fetch.RedditConfig{
			Subreddits:      cfg.Sources.Reddit.Subreddits,
			PostLimit:       cfg.Sources.Reddit.PostLimit,
			CommentMinScore: cfg.Sources.Reddit.CommentMinScore,
			MinComments:     cfg.Sources.Reddit.MinComments,
			Timeout:         cfg.Sources.Timeout,
			UserAgent:       cfg.Extraction.UserAgent,
		}))
	}

	var extractor fetch.Extractor
	if cfg.Extraction.Enabled {
		extractor = content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MinTextLength)
	}
	fetchers = append(fetchers, fetch.NewHNFetcher(fetch.HNConfig{
		StoryLimit:  cfg.Sources.HackerNews.StoryLimit,
		AskLimit:    cfg.Sources.HackerNews.AskLimit,
		MinComments: cfg.Sources.HackerNews.MinComments,
		Timeout:     cfg.Sources.Timeout,
	}, extractor))

	if len(cfg.Sources.Feeds) > 0 {
		feeds := make([]fetch.Feed, len(cfg.Sources.Feeds))
		for i, f := range cfg.Sources.Feeds {
			feeds[i] = fetch.Feed{Name: f.Name, URL: f.URL}
		}
		fetchers = append(fetchers, fetch.NewRSSFetcher(feeds, cfg.Sources.Timeout))
	}

	return fetchers
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
