package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// RootHandler serves the static front-end entry file when present, else a
// JSON status payload.
type RootHandler struct {
	FrontendDir string
}

// Root handles GET /.
func (h *RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	if h.FrontendDir != "" {
		index := filepath.Join(h.FrontendDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}

	frontendAvailable := false
	if h.FrontendDir != "" {
		if _, err := os.Stat(h.FrontendDir); err == nil {
			frontendAvailable = true
		}
	}

	writeJSON(w, http.StatusOK, api.RootResponse{
		Message:           "Wayfarer travel assistant API is running!",
		FrontendAvailable: frontendAvailable,
		MemorySystem:      "chromem-go",
	})
}

// MountStatic registers the /static/ file server when the frontend dir exists.
func (h *RootHandler) MountStatic(mux *http.ServeMux) {
	if h.FrontendDir == "" {
		return
	}
	if _, err := os.Stat(h.FrontendDir); err != nil {
		return
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(h.FrontendDir))))
}
