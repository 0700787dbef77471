package api

import "time"

// Message represents a role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionRequest matches the OpenAI-compatible chat completions request schema
// used by the Groq API.
type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	Stream      bool      `json:"stream,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// ChatCompletionResponse matches the OpenAI-compatible chat completions response schema.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   *Usage   `json:"usage,omitempty"`
}

// Choice is a single completion choice.
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatCompletionChunk is a streaming SSE chunk.
type ChatCompletionChunk struct {
	ID      string        `json:"id"`
	Object  string        `json:"object"`
	Created int64         `json:"created"`
	Model   string        `json:"model"`
	Choices []ChunkChoice `json:"choices"`
}

// ChunkChoice is a single choice within a streaming chunk.
type ChunkChoice struct {
	Index        int          `json:"index"`
	Delta        MessageDelta `json:"delta"`
	FinishReason *string      `json:"finish_reason"`
}

// MessageDelta is the incremental content in a streaming chunk.
type MessageDelta struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content,omitempty"`
}

// Usage contains token usage information.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// Service API types

// ChatRequest is the request for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// ChatResponse is the response for POST /api/chat.
type ChatResponse struct {
	Response    string   `json:"response"`
	ContextUsed []string `json:"context_used"`
	Sources     []string `json:"sources"`
}

// SuggestionsRequest is the request for POST /api/suggestions.
type SuggestionsRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
}

// SuggestionsResponse is the response for POST /api/suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// UserPreferences is the wire form of a user's inferred travel profile.
type UserPreferences struct {
	DestinationsInterested []string  `json:"destinations_interested"`
	BudgetPreference       string    `json:"budget_preference"`
	TravelStyle            string    `json:"travel_style"`
	LastUpdated            time.Time `json:"last_updated"`
	TotalConversations     int       `json:"total_conversations"`
}

// MemoryStats holds per-user memory counters.
type MemoryStats struct {
	BufferMessages        int `json:"buffer_messages"`
	VectorDocuments       int `json:"vector_documents"`
	DestinationsDiscussed int `json:"destinations_discussed"`
}

// MemoryStatsResponse is the response for GET /api/memory/{user_id}.
type MemoryStatsResponse struct {
	Stats           MemoryStats     `json:"stats"`
	UserPreferences UserPreferences `json:"user_preferences"`
	HasSummary      bool            `json:"has_conversation_summary"`
	RecentMessages  int             `json:"recent_messages"`
	MemoryType      string          `json:"memory_type"`
}

// ClearMemoryResponse is the response for DELETE /api/memory/{user_id}.
type ClearMemoryResponse struct {
	Message string `json:"message"`
}

// ConversationSummary is one item in GET /api/conversations/{user_id}.
type ConversationSummary struct {
	Title        string `json:"title"`
	MessageCount int    `json:"message_count"`
}

// ConversationsResponse is the response for GET /api/conversations/{user_id}.
type ConversationsResponse struct {
	Conversations []ConversationSummary `json:"conversations"`
}

// StatsResponse is the response for GET /api/stats.
type StatsResponse struct {
	TotalActiveUsers int                    `json:"total_active_users"`
	MemorySystem     string                 `json:"memory_system"`
	PerUserStats     map[string]MemoryStats `json:"per_user_stats"`
}

// HealthResponse is the response for GET /health.
type HealthResponse struct {
	Status            string `json:"status"`
	GroqConnected     bool   `json:"groq_connected"`
	FrontendAvailable bool   `json:"frontend_available"`
	MemorySystem      string `json:"memory_system"`
	ActiveUsers       int    `json:"active_users"`
}

// RootResponse is the JSON payload served at GET / when no frontend is present.
type RootResponse struct {
	Message           string `json:"message"`
	FrontendAvailable bool   `json:"frontend_available"`
	MemorySystem      string `json:"memory_system"`
}
