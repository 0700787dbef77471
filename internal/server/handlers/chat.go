package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wayfarer-ai/wayfarer/internal/chat"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// ChatHandler handles the chat and suggestion endpoints.
type ChatHandler struct {
	Orchestrator *chat.Orchestrator
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message must not be empty")
		return
	}

	resp, err := h.Orchestrator.Chat(r.Context(), req.UserID, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "chat_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Suggestions handles POST /api/suggestions.
func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var req api.SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "message must not be empty")
		return
	}

	suggestions := h.Orchestrator.Suggestions(r.Context(), req.UserID, req.Message)
	writeJSON(w, http.StatusOK, api.SuggestionsResponse{Suggestions: suggestions})
}
