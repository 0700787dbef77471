// Package chat wires the memory manager, prompt tables, and completion
// client into the request-level chat flow.
package chat

import (
	"context"
	"fmt"

	"github.com/wayfarer-ai/wayfarer/internal/config"
	"github.com/wayfarer-ai/wayfarer/internal/llm"
	"github.com/wayfarer-ai/wayfarer/internal/logger"
	"github.com/wayfarer-ai/wayfarer/internal/memory"
	"github.com/wayfarer-ai/wayfarer/internal/prefs"
	"github.com/wayfarer-ai/wayfarer/internal/prompts"
	"github.com/wayfarer-ai/wayfarer/internal/registry"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// DefaultUserID is used when a request does not name a user.
const DefaultUserID = "default_user"

// Generation parameters for the memory-aware chat path.
const (
	chatMaxTokens   = 1200
	chatTemperature = 0.8
	chatTopP        = 0.9

	summaryMaxTokens   = 200
	summaryTemperature = 0.3

	suggestionMaxTokens = 150
)

var chatSources = []string{llm.ModelSmart, "conversation-memory", "chromem-go"}

// Orchestrator handles inbound chat requests: it resolves the per-user
// memory manager, builds the enriched prompt, calls the completion API,
// records the exchange, and formats the reply with provenance metadata.
type Orchestrator struct {
	client   *llm.Client
	registry *registry.Registry
	log      logger.Logger
}

// NewOrchestrator creates an Orchestrator over client and reg.
func NewOrchestrator(client *llm.Client, reg *registry.Registry, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	return &Orchestrator{client: client, registry: reg, log: log}
}

// NewManagerFactory builds the registry factory that assembles a fully wired
// memory manager per user: chromem-backed semantic index (when an embeddings
// endpoint is configured), summary delegate on the fast model, JSON
// preference store, and keyword extractor.
func NewManagerFactory(cfg *config.Config, client *llm.Client, log logger.Logger) registry.Factory {
	store := prefs.NewStore(cfg.PrefsDir)

	var embed memory.EmbedFunc
	if cfg.EmbedURL != "" {
		embedder := llm.NewEmbedder(cfg.EmbedURL, cfg.EmbedModel)
		embed = embedder.Embed
	}

	summarize := NewSummarizer(client)

	return func(userID string) *memory.Manager {
		return memory.NewManager(memory.ManagerConfig{
			UserID:     userID,
			PersistDir: cfg.MemoryDir,
			Embed:      embed,
			Summarize:  summarize,
			PrefStore:  store,
			Extractor:  prefs.NewKeywordExtractor(),
			Log:        log,
		})
	}
}

// NewSummarizer returns a SummarizeFunc backed by the fast model with short,
// low-temperature output.
func NewSummarizer(client *llm.Client) memory.SummarizeFunc {
	return func(ctx context.Context, priorSummary, transcript string) (string, error) {
		prompt := "Progressively summarize the conversation below, folding it into the previous summary to produce a new concise summary. Keep destinations, budgets, dates, and preferences the user mentioned.\n\n"
		if priorSummary != "" {
			prompt += "Previous summary:\n" + priorSummary + "\n\n"
		}
		prompt += "New conversation:\n" + transcript + "\n\nNew summary:"

		return client.Complete(ctx, []api.Message{{Role: "user", Content: prompt}}, llm.CompleteOptions{
			Model:       llm.ModelFast,
			MaxTokens:   summaryMaxTokens,
			Temperature: summaryTemperature,
		})
	}
}

// Chat runs the memory-aware chat flow for one inbound message. On failure
// it falls back to a stateless call marked with "fallback_mode"; an error is
// returned only when the fallback also fails.
func (o *Orchestrator) Chat(ctx context.Context, userID, message string) (*api.ChatResponse, error) {
	if userID == "" {
		userID = DefaultUserID
	}

	resp, err := o.chatWithMemory(ctx, userID, message)
	if err == nil {
		return resp, nil
	}
	o.log.Error("memory-aware chat failed, using fallback", "user_id", userID, "error", err)

	reply, fbErr := o.client.Complete(ctx, []api.Message{
		{Role: "system", Content: prompts.FallbackSystemPrompt},
		{Role: "user", Content: message},
	}, llm.CompleteOptions{
		Model:       llm.ModelSmart,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
	})
	if fbErr != nil {
		return nil, fmt.Errorf("chat system error: %w", fbErr)
	}

	return &api.ChatResponse{
		Response:    reply,
		ContextUsed: []string{"fallback_mode"},
		Sources:     []string{llm.ModelSmart},
	}, nil
}

func (o *Orchestrator) chatWithMemory(ctx context.Context, userID, message string) (*api.ChatResponse, error) {
	manager := o.registry.GetOrCreate(userID)
	prompt := manager.BuildPrompt(ctx, message)

	// System prompt carries the assembled context; recent buffer entries are
	// replayed as proper role/content pairs so the model sees real turns.
	messages := make([]api.Message, 0, 8)
	messages = append(messages, api.Message{Role: "system", Content: prompt})
	messages = append(messages, manager.RecentHistory()...)
	messages = append(messages, api.Message{Role: "user", Content: message})

	reply, err := o.client.Complete(ctx, messages, llm.CompleteOptions{
		Model:       llm.ModelSmart,
		MaxTokens:   chatMaxTokens,
		Temperature: chatTemperature,
		TopP:        chatTopP,
	})
	if err != nil {
		return nil, err
	}

	manager.RecordExchange(ctx, message, reply)

	stats := manager.BuildContext(ctx, message).Stats
	return &api.ChatResponse{
		Response: reply,
		ContextUsed: []string{
			fmt.Sprintf("memory:%d", stats.BufferMessages),
			fmt.Sprintf("vector_search:%d", stats.VectorDocuments),
			fmt.Sprintf("preferences:%d", stats.DestinationsDiscussed),
		},
		Sources: chatSources,
	}, nil
}

// Suggestions asks the fast model for 3 short follow-up questions given the
// user's recent context. Any failure yields the fixed fallback list.
func (o *Orchestrator) Suggestions(ctx context.Context, userID, message string) []string {
	if userID == "" {
		userID = DefaultUserID
	}

	prompt := "The user is chatting with a travel assistant. Based on their latest message, suggest 3 short follow-up questions they might ask next. Reply with a numbered list only.\n\nLatest message: " + message
	if manager := o.registry.Get(userID); manager != nil {
		if recent := manager.RecentHistory(); len(recent) > 0 {
			prompt += "\n\nRecent conversation:"
			for _, m := range recent {
				prompt += "\n" + m.Role + ": " + m.Content
			}
		}
	}

	reply, err := o.client.Complete(ctx, []api.Message{{Role: "user", Content: prompt}}, llm.CompleteOptions{
		Model:       llm.ModelFast,
		MaxTokens:   suggestionMaxTokens,
		Temperature: summaryTemperature,
	})
	if err != nil {
		o.log.Warn("suggestion generation failed", "user_id", userID, "error", err)
		return prompts.FallbackSuggestions()
	}

	suggestions := prompts.ParseSuggestionList(reply)
	if len(suggestions) == 0 {
		return prompts.FallbackSuggestions()
	}
	for _, fb := range prompts.FallbackSuggestions() {
		if len(suggestions) >= 3 {
			break
		}
		suggestions = append(suggestions, fb)
	}
	return suggestions
}
