// Package server provides the savebonus web front end and JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/theirongolddev/savebonus/internal/calendar"
	"github.com/theirongolddev/savebonus/internal/config"
	"go.uber.org/zap"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr          string
	DefaultBuffer float64
	SessionTTL    time.Duration
	SweepSchedule string
	MaxSessions   int
}

// ConfigFrom derives server settings from the file configuration.
func ConfigFrom(cfg config.Config) Config {
	return Config{
		Addr:          config.GetServerAddr(cfg),
		DefaultBuffer: cfg.General.DefaultBuffer,
		SessionTTL:    time.Duration(cfg.Server.SessionTTLSec) * time.Second,
		SweepSchedule: cfg.Server.SweepSchedule,
		MaxSessions:   cfg.Server.MaxSessions,
	}
}

// Service serves the calculator over HTTP.
type Service struct {
	calendar calendar.Provider
	logger   *zap.Logger
	metrics  *Metrics
	pages    *template.Template
	sessions *sessionStore

	mu  sync.RWMutex
	cfg Config
}

// New returns a service with the provided config. A nil logger discards logs.
func New(cfg Config, cal calendar.Provider, logger *zap.Logger) *Service {
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultConfig().Server.Addr
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 15 * time.Minute
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@every 1m"
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = config.DefaultConfig().Server.MaxSessions
	}
	if cal.Clock == nil {
		cal = calendar.NewProvider(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		calendar: cal,
		logger:   logger.Named("server"),
		metrics:  newMetrics(),
		pages:    template.Must(template.New("index").Funcs(pageFuncs).Parse(indexTemplate)),
		sessions: newSessionStore(cal, cfg.MaxSessions),
		cfg:      cfg,
	}
}

// Metrics returns the service's collectors.
func (s *Service) Metrics() *Metrics {
	return s.metrics
}

// SetConfig swaps the runtime defaults. The listen address only takes
// effect on the next Run.
func (s *Service) SetConfig(cfg config.Config) {
	next := ConfigFrom(cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.DefaultBuffer = next.DefaultBuffer
	if next.SessionTTL > 0 {
		s.cfg.SessionTTL = next.SessionTTL
	}
	if next.MaxSessions > 0 {
		s.cfg.MaxSessions = next.MaxSessions
		s.sessions.setLimit(next.MaxSessions)
	}
	s.logger.Info("server config updated",
		zap.Float64("default_buffer", s.cfg.DefaultBuffer),
		zap.Duration("session_ttl", s.cfg.SessionTTL),
		zap.Int("max_sessions", s.cfg.MaxSessions),
	)
}

func (s *Service) config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Handler returns the HTTP routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.metrics.instrument("/", s.handleIndex))
	mux.HandleFunc("/v1/compute", s.metrics.instrument("/v1/compute", s.handleCompute))
	mux.HandleFunc("/v1/chat", s.metrics.instrument("/v1/chat", s.handleChat))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", s.metrics.handler())
	return mux
}

// Run starts HTTP endpoints and the session sweep until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	cfg := s.config()

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.SweepSchedule, s.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", cfg.SweepSchedule, err)
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("server listening",
		zap.String("addr", cfg.Addr),
		zap.String("sweep_schedule", cfg.SweepSchedule),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("savebonus http server: %w", err)
	}
}

// sweep drops idle chat sessions.
func (s *Service) sweep() {
	removed := s.sessions.sweep(s.config().SessionTTL)
	live := s.sessions.len()
	s.metrics.SetChatSessions(live)
	if removed > 0 {
		s.logger.Info("expired chat sessions", zap.Int("removed", removed), zap.Int("live", live))
	}
}
