package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/wayfarer-ai/wayfarer/internal/logger"
	"github.com/wayfarer-ai/wayfarer/internal/prefs"
	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

const (
	// promptRecentMessages is how many buffered messages the prompt includes.
	promptRecentMessages = 4
	// promptAssistantLimit truncates assistant messages in the prompt.
	promptAssistantLimit = 150
	// promptDestinationsLimit caps the destinations listed in the profile block.
	promptDestinationsLimit = 5
	// trivialTextLimit: summary/relevant-history blocks shorter than this
	// after trimming are omitted from the prompt.
	trivialTextLimit = 10
)

const promptPreamble = `You are a professional travel assistant with access to conversation history and user preferences.

RESPONSE FORMATTING:
- Use clear paragraphs with proper spacing
- Use bullet points for lists and recommendations
- Bold important information with **text**
- Structure responses logically (overview, details, recommendations)
- Be conversational but professional
- Use line breaks between different topics

TRAVEL EXPERTISE:
- Provide detailed trip planning with specific recommendations
- Include practical information (costs, timing, logistics)
- Consider user's budget, style, and preferences
- Offer alternatives and options`

// ManagerConfig configures a per-user Manager.
type ManagerConfig struct {
	UserID        string
	PersistDir    string // vector store root; empty selects an in-memory index
	Embed         EmbedFunc
	Summarize     SummarizeFunc
	PrefStore     *prefs.Store
	Extractor     prefs.Extractor
	BufferSize    int
	SummaryBudget int
	Log           logger.Logger
}

// Manager owns all memory sub-components for one user: the recent-turn
// buffer, the rolling summary tracker, the semantic index, and the
// preference record. Exactly one Manager exists per active user for the
// lifetime of the process.
//
// All operations hold the manager's mutex, so concurrent requests for the
// same user serialize on the record-then-read sequence.
type Manager struct {
	userID    string
	mu        sync.Mutex
	buffer    *TurnBuffer
	summary   *SummaryTracker
	index     *SemanticIndex // nil when the vector backend is unavailable
	prefStore *prefs.Store
	extractor prefs.Extractor
	prefs     prefs.Preferences
	log       logger.Logger
}

// NewManager creates a Manager for cfg.UserID. If the vector backend cannot
// be initialized the manager still becomes ready with semantic memory
// disabled; buffer, summary, and preference features are unaffected.
func NewManager(cfg ManagerConfig) *Manager {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.With("user_id", cfg.UserID)

	if cfg.Extractor == nil {
		cfg.Extractor = prefs.NewKeywordExtractor()
	}

	m := &Manager{
		userID:    cfg.UserID,
		buffer:    NewTurnBuffer(cfg.BufferSize),
		summary:   NewSummaryTracker(cfg.Summarize, cfg.SummaryBudget, log),
		prefStore: cfg.PrefStore,
		extractor: cfg.Extractor,
		log:       log,
	}

	if cfg.PrefStore != nil {
		m.prefs = cfg.PrefStore.Load(cfg.UserID)
	} else {
		m.prefs = prefs.Default()
	}

	if cfg.Embed != nil {
		index, err := m.openIndex(cfg)
		if err != nil {
			log.Warn("semantic index unavailable, continuing degraded", "error", err)
		} else {
			m.index = index
		}
	}

	return m
}

func (m *Manager) openIndex(cfg ManagerConfig) (*SemanticIndex, error) {
	if cfg.PersistDir == "" {
		return NewSemanticIndexInMemory(cfg.UserID, cfg.Embed)
	}
	return NewSemanticIndex(cfg.PersistDir, cfg.UserID, cfg.Embed)
}

// UserID returns the owning user's ID.
func (m *Manager) UserID() string {
	return m.userID
}

// SemanticEnabled reports whether the vector backend initialized.
func (m *Manager) SemanticEnabled() bool {
	return m.index != nil
}

// RecordExchange fans the exchange out to the buffer, summary tracker,
// semantic index, and preference extractor. A failure in any one component
// is logged and does not prevent the others from running.
func (m *Manager) RecordExchange(ctx context.Context, userText, assistantText string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.Record(userText, assistantText)
	m.summary.Record(ctx, userText, assistantText)

	if m.index != nil {
		if err := m.index.Record(ctx, userText, assistantText); err != nil {
			m.log.Warn("semantic index record failed", "error", err)
		}
	}

	m.extractor.Update(&m.prefs, userText, assistantText)
	m.prefs.TotalConversations++
	m.savePrefs()
}

// BuildContext assembles a fresh Context from all sub-components. Each
// sub-read is independently fault-tolerant: a failed semantic query yields
// an empty relevant-history field and a degraded flag.
func (m *Manager) BuildContext(ctx context.Context, currentText string) Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buildContext(ctx, currentText)
}

func (m *Manager) buildContext(ctx context.Context, currentText string) Context {
	c := Context{
		RecentHistory: m.buffer.Snapshot(),
		Summary:       m.summary.Snapshot(),
		Preferences:   m.prefs.Clone(),
	}

	vectorDocs := 0
	switch {
	case m.index == nil:
		c.Degraded.SemanticIndex = true
	default:
		vectorDocs = m.index.Count()
		if currentText != "" {
			relevant, err := m.index.RelevantHistory(ctx, currentText, defaultQueryLimit)
			if err != nil {
				m.log.Warn("semantic query failed", "error", err)
				c.Degraded.SemanticQuery = true
			} else {
				c.RelevantHistory = relevant
			}
		}
	}

	c.Stats = Stats{
		BufferMessages:        m.buffer.Len(),
		VectorDocuments:       vectorDocs,
		DestinationsDiscussed: len(m.prefs.DestinationsInterested),
	}
	return c
}

// BuildPrompt composes the full context-aware system prompt for currentText.
// Block order is fixed; empty or trivial blocks are omitted entirely.
func (m *Manager) BuildPrompt(ctx context.Context, currentText string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.buildContext(ctx, currentText)
	return formatPrompt(c, currentText)
}

func formatPrompt(c Context, currentText string) string {
	var b strings.Builder
	b.WriteString(promptPreamble)

	if len(c.Preferences.DestinationsInterested) > 0 {
		dests := c.Preferences.DestinationsInterested
		if len(dests) > promptDestinationsLimit {
			dests = dests[len(dests)-promptDestinationsLimit:]
		}
		b.WriteString("\n\nUSER'S TRAVEL PROFILE:")
		fmt.Fprintf(&b, "\n- Previously discussed destinations: %s", strings.Join(dests, ", "))
		if c.Preferences.BudgetPreference != "" {
			fmt.Fprintf(&b, "\n- Budget preference: %s", c.Preferences.BudgetPreference)
		}
		if c.Preferences.TravelStyle != "" {
			fmt.Fprintf(&b, "\n- Travel style: %s", c.Preferences.TravelStyle)
		}
	}

	if summary := strings.TrimSpace(c.Summary); utf8.RuneCountInString(summary) > trivialTextLimit {
		b.WriteString("\n\nCONVERSATION SUMMARY:\n")
		b.WriteString(summary)
	}

	if len(c.RecentHistory) > 0 {
		b.WriteString("\n\nRECENT CONVERSATION:")
		recent := c.RecentHistory
		if len(recent) > promptRecentMessages {
			recent = recent[len(recent)-promptRecentMessages:]
		}
		for _, msg := range recent {
			switch msg.Role {
			case "user":
				b.WriteString("\nUser: " + msg.Content)
			case "assistant":
				b.WriteString("\nAssistant: " + truncate(msg.Content, promptAssistantLimit))
			}
		}
	}

	if relevant := strings.TrimSpace(c.RelevantHistory); utf8.RuneCountInString(relevant) > trivialTextLimit {
		b.WriteString("\n\nRELEVANT PAST DISCUSSIONS:\n")
		b.WriteString(relevant)
	}

	b.WriteString("\n\nCURRENT REQUEST: " + currentText)
	b.WriteString("\n\nProvide a helpful, well-formatted response considering the user's history and preferences:")
	return b.String()
}

// truncate cuts s to limit runes and appends an ellipsis marker when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// ClearAll clears all sub-components and resets preferences to defaults,
// persisting the reset record.
func (m *Manager) ClearAll(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buffer.Clear()
	m.summary.Clear()

	if m.index != nil {
		if err := m.index.Clear(ctx); err != nil {
			m.log.Warn("semantic index clear failed", "error", err)
		}
	}

	m.prefs = prefs.Default()
	m.savePrefs()
}

func (m *Manager) savePrefs() {
	if m.prefStore == nil {
		return
	}
	if err := m.prefStore.Save(m.userID, m.prefs); err != nil {
		m.log.Warn("preference save failed", "error", err)
	}
}

// RecentHistory returns a snapshot of the buffered messages.
func (m *Manager) RecentHistory() []api.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffer.Snapshot()
}
