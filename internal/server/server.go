// Package server hosts the wayfarer HTTP API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/wayfarer-ai/wayfarer/internal/chat"
	"github.com/wayfarer-ai/wayfarer/internal/config"
	"github.com/wayfarer-ai/wayfarer/internal/llm"
	"github.com/wayfarer-ai/wayfarer/internal/logger"
	"github.com/wayfarer-ai/wayfarer/internal/registry"
)

// Server is the wayfarer HTTP API server.
type Server struct {
	cfg          *config.Config
	http         *http.Server
	client       *llm.Client
	registry     *registry.Registry
	orchestrator *chat.Orchestrator
	log          logger.Logger
}

// New creates a new Server.
func New(cfg *config.Config, client *llm.Client, reg *registry.Registry, orch *chat.Orchestrator, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		cfg:          cfg,
		client:       client,
		registry:     reg,
		orchestrator: orch,
		log:          log,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)
	registerActiveUsersGauge(reg)

	s.http = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: withLogging(log, withCORS(withMetrics(mux))),
	}

	return s
}

// Start starts the server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.log.Info("wayfarer server listening", "addr", s.http.Addr)
	s.log.Info("storage paths", "memory_dir", s.cfg.MemoryDir, "prefs_dir", s.cfg.PrefsDir)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", "error", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}
