package handlers

import (
	"net/http"

	"github.com/wayfarer-ai/wayfarer/internal/registry"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// StatsHandler handles the aggregate stats endpoint.
type StatsHandler struct {
	Registry *registry.Registry
}

// Aggregate handles GET /api/stats.
func (h *StatsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	managers := h.Registry.Snapshot()

	perUser := make(map[string]api.MemoryStats, len(managers))
	for userID, manager := range managers {
		c := manager.BuildContext(r.Context(), "")
		perUser[userID] = api.MemoryStats{
			BufferMessages:        c.Stats.BufferMessages,
			VectorDocuments:       c.Stats.VectorDocuments,
			DestinationsDiscussed: c.Stats.DestinationsDiscussed,
		}
	}

	writeJSON(w, http.StatusOK, api.StatsResponse{
		TotalActiveUsers: len(managers),
		MemorySystem:     "chromem-go",
		PerUserStats:     perUser,
	})
}
