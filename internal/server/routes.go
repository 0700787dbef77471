package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfarer-ai/wayfarer/internal/logger"
	"github.com/wayfarer-ai/wayfarer/internal/server/handlers"
)

func (s *Server) registerRoutes(mux *http.ServeMux) {
	chatHandler := &handlers.ChatHandler{Orchestrator: s.orchestrator}
	mux.HandleFunc("POST /api/chat", chatHandler.Chat)
	mux.HandleFunc("POST /api/suggestions", chatHandler.Suggestions)

	mem := &handlers.MemoryHandler{Registry: s.registry}
	mux.HandleFunc("GET /api/memory/{user_id}", mem.Stats)
	mux.HandleFunc("DELETE /api/memory/{user_id}", mem.Clear)
	mux.HandleFunc("GET /api/conversations/{user_id}", mem.Conversations)

	stats := &handlers.StatsHandler{Registry: s.registry}
	mux.HandleFunc("GET /api/stats", stats.Aggregate)

	health := &handlers.HealthHandler{
		Client:      s.client,
		Registry:    s.registry,
		FrontendDir: s.cfg.FrontendDir,
	}
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("GET /metrics", promhttp.Handler())

	root := &handlers.RootHandler{FrontendDir: s.cfg.FrontendDir}
	mux.HandleFunc("GET /{$}", root.Root)
	root.MountStatic(mux)
}

func withLogging(log logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
