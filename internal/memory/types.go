// Package memory implements the conversation memory manager: a fixed-window
// recent-turn buffer, an LLM-generated rolling summary, and an embedding-based
// semantic index, combined per user into a single context object and prompt.
package memory

import (
	"context"
	"time"

	"github.com/wayfarer-ai/wayfarer/internal/prefs"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// Exchange is one user message paired with one assistant reply.
type Exchange struct {
	ID        string
	UserMsg   string
	AssistMsg string
	Timestamp time.Time
}

// Content returns the combined text of the exchange for embedding and search.
func (e *Exchange) Content() string {
	return "User: " + e.UserMsg + "\nAssistant: " + e.AssistMsg
}

// Snippet is a retrieved exchange with its similarity score.
type Snippet struct {
	Exchange   Exchange
	Similarity float32
}

// EmbedFunc is a function that produces a float32 embedding vector from text.
type EmbedFunc func(ctx context.Context, text string) ([]float32, error)

// SummarizeFunc condenses the prior summary plus a transcript of newer
// exchanges into a replacement summary.
type SummarizeFunc func(ctx context.Context, priorSummary, transcript string) (string, error)

// Stats holds per-user memory counters.
type Stats struct {
	BufferMessages        int
	VectorDocuments       int
	DestinationsDiscussed int
}

// Degraded records which sub-component reads failed during context assembly.
// Callers can assert on degradation instead of inferring it from empty fields.
type Degraded struct {
	SemanticIndex bool // vector backend unavailable at construction
	SemanticQuery bool // similarity query failed for this context build
}

// Context is the transient, request-scoped aggregate assembled from all
// memory sub-components. It is constructed fresh on each build and never
// persisted.
type Context struct {
	RecentHistory   []api.Message
	Summary         string
	RelevantHistory string
	Preferences     prefs.Preferences
	Stats           Stats
	Degraded        Degraded
}
