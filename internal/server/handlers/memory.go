package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/wayfarer-ai/wayfarer/internal/registry"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

const (
	// conversationTitleLimit truncates conversation titles.
	conversationTitleLimit = 40
	// conversationsLimit caps the conversation list length.
	conversationsLimit = 5
)

// MemoryHandler handles per-user memory inspection and clearing.
type MemoryHandler struct {
	Registry *registry.Registry
}

// Stats handles GET /api/memory/{user_id}. Users without a manager get the
// zeroed default shape, not an error.
func (h *MemoryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	manager := h.Registry.Get(userID)
	if manager == nil {
		writeJSON(w, http.StatusOK, api.MemoryStatsResponse{
			UserPreferences: api.UserPreferences{DestinationsInterested: []string{}},
			MemoryType:      "none",
		})
		return
	}

	c := manager.BuildContext(r.Context(), "")
	writeJSON(w, http.StatusOK, api.MemoryStatsResponse{
		Stats: api.MemoryStats{
			BufferMessages:        c.Stats.BufferMessages,
			VectorDocuments:       c.Stats.VectorDocuments,
			DestinationsDiscussed: c.Stats.DestinationsDiscussed,
		},
		UserPreferences: api.UserPreferences{
			DestinationsInterested: c.Preferences.DestinationsInterested,
			BudgetPreference:       c.Preferences.BudgetPreference,
			TravelStyle:            c.Preferences.TravelStyle,
			LastUpdated:            c.Preferences.LastUpdated,
			TotalConversations:     c.Preferences.TotalConversations,
		},
		HasSummary:     strings.TrimSpace(c.Summary) != "",
		RecentMessages: len(c.RecentHistory),
		MemoryType:     "chromem",
	})
}

// Clear handles DELETE /api/memory/{user_id}: clears all memory for the
// user and discards the manager.
func (h *MemoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	if manager := h.Registry.Get(userID); manager != nil {
		manager.ClearAll(r.Context())
		h.Registry.Remove(userID)
	}

	writeJSON(w, http.StatusOK, api.ClearMemoryResponse{
		Message: fmt.Sprintf("memory cleared for user %s", userID),
	})
}

// Conversations handles GET /api/conversations/{user_id}: up to 5 summaries
// titled by the user messages currently in the buffer.
func (h *MemoryHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	conversations := []api.ConversationSummary{}
	if manager := h.Registry.Get(userID); manager != nil {
		recent := manager.RecentHistory()
		for _, msg := range recent {
			if msg.Role != "user" {
				continue
			}
			conversations = append(conversations, api.ConversationSummary{
				Title:        truncateTitle(msg.Content, conversationTitleLimit),
				MessageCount: len(recent),
			})
			if len(conversations) == conversationsLimit {
				break
			}
		}
	}

	writeJSON(w, http.StatusOK, api.ConversationsResponse{Conversations: conversations})
}

func truncateTitle(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
