// Package server exposes the scanner over HTTP: ranked opportunities,
// on-demand scans, free-text queries and configuration introspection.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/painradar/painradar/pkg/domain"
	"github.com/painradar/painradar/pkg/query"
	"github.com/painradar/painradar/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler
//go:generate moq -out mocks/analyst.go -pkg mocks -skip-ensure -fmt goimports . Analyst

// Database interface for server operations
type Database interface {
	GetOpportunities(ctx context.Context, filter repository.Filter) ([]domain.Opportunity, error)
	IndustryBreakdown(ctx context.Context) (map[string]int, error)
}

// Scheduler interface for on-demand scans
type Scheduler interface {
	ScanNow(ctx context.Context, industry string) ([]domain.Opportunity, error)
	LastScanStats() (domain.ScanStats, time.Time)
}

// Analyst interface for LLM-backed opportunity analysis, nil when disabled
type Analyst interface {
	Analyze(ctx context.Context, opps []domain.Opportunity) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	SignalSet() []domain.Signal
	IndustrySet() []domain.IndustryRule
}

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	db        Database
	scheduler Scheduler
	analyst   Analyst
	intents   *query.Parser
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, scheduler Scheduler, analyst Analyst, version string, debug bool) *Server {
	labels := make([]string, 0)
	for _, rule := range cfg.IndustrySet() {
		labels = append(labels, rule.Label)
	}

	s := &Server{
		config:    cfg,
		db:        db,
		scheduler: scheduler,
		analyst:   analyst,
		intents:   query.NewParser(labels),
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("painradar", "painradar", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /opportunities", s.opportunitiesHandler)
		r.HandleFunc("POST /scan", s.scanHandler)
		r.HandleFunc("POST /query", s.queryHandler)
		r.HandleFunc("GET /industries", s.industriesHandler)
		r.HandleFunc("GET /signals", s.signalsHandler)
	})
}
