package handlers

import (
	"net/http"
	"os"

	"github.com/wayfarer-ai/wayfarer/internal/llm"
	"github.com/wayfarer-ai/wayfarer/internal/registry"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// HealthHandler handles the liveness probe, which also smoke-tests the
// completion delegate.
type HealthHandler struct {
	Client      *llm.Client
	Registry    *registry.Registry
	FrontendDir string
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	groqOK := h.Client.TestConnection(r.Context())

	frontendAvailable := false
	if h.FrontendDir != "" {
		if _, err := os.Stat(h.FrontendDir); err == nil {
			frontendAvailable = true
		}
	}

	writeJSON(w, http.StatusOK, api.HealthResponse{
		Status:            "healthy",
		GroqConnected:     groqOK,
		FrontendAvailable: frontendAvailable,
		MemorySystem:      "chromem-go",
		ActiveUsers:       h.Registry.Len(),
	})
}
