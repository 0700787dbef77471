package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/wayfarer-ai/wayfarer/internal/prefs"
)

// flakyEmbed wraps mockEmbedFunc and can be switched to fail on demand.
type flakyEmbed struct {
	fail bool
}

func (f *flakyEmbed) embed(ctx context.Context, text string) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embed backend down")
	}
	return mockEmbedFunc(ctx, text)
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(ManagerConfig{
		UserID: "test_user",
		Embed:  mockEmbedFunc,
	})
}

func TestPromptOmitsEmptyBlocks(t *testing.T) {
	m := newTestManager(t)

	prompt := m.BuildPrompt(context.Background(), "hello")

	if !strings.Contains(prompt, "professional travel assistant") {
		t.Error("prompt missing preamble")
	}
	if !strings.Contains(prompt, "CURRENT REQUEST: hello") {
		t.Error("prompt missing current request")
	}
	for _, block := range []string{
		"USER'S TRAVEL PROFILE",
		"CONVERSATION SUMMARY",
		"RECENT CONVERSATION",
		"RELEVANT PAST DISCUSSIONS",
	} {
		if strings.Contains(prompt, block) {
			t.Errorf("fresh prompt should omit %q block", block)
		}
	}
}

func TestPromptTruncatesAssistantMessages(t *testing.T) {
	// No embed func: the prompt has only the recent-conversation block, so
	// the truncation policy can be asserted on the whole string. Semantic
	// retrieval injects exchanges verbatim and is exercised separately.
	m := NewManager(ManagerConfig{UserID: "test_user"})
	ctx := context.Background()

	long := strings.Repeat("a", 300)
	m.RecordExchange(ctx, "tell me everything", long)

	prompt := m.BuildPrompt(ctx, "go on")

	want := strings.Repeat("a", 150) + "..."
	if !strings.Contains(prompt, want) {
		t.Error("assistant message not truncated to 150 runes with ellipsis")
	}
	if strings.Contains(prompt, long) {
		t.Error("full assistant message leaked into prompt")
	}
	// User messages are never truncated.
	if !strings.Contains(prompt, "User: tell me everything") {
		t.Error("user message missing from recent conversation block")
	}
}

func TestPromptKeepsRelevantHistoryVerbatim(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	long := strings.Repeat("b", 200)
	m.RecordExchange(ctx, "tell me about Paris", long)

	prompt := m.BuildPrompt(ctx, "User: tell me about Paris\nAssistant: "+long)

	if !strings.Contains(prompt, "RELEVANT PAST DISCUSSIONS") {
		t.Fatal("prompt missing relevant-history block")
	}
	// Retrieved exchanges are injected untruncated; only the
	// recent-conversation block cuts assistant text.
	if !strings.Contains(prompt, "Assistant: "+long) {
		t.Error("relevant-history block should carry the full assistant text")
	}
}

func TestPromptListsRecentDestinations(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	for _, dest := range []string{"paris", "london", "tokyo", "rome", "barcelona", "dubai"} {
		m.RecordExchange(ctx, "thinking about "+dest, "sounds great")
	}

	prompt := m.BuildPrompt(ctx, "where next")

	if !strings.Contains(prompt, "USER'S TRAVEL PROFILE") {
		t.Fatal("prompt missing travel profile block")
	}
	// Only the 5 most recent destinations appear.
	if strings.Contains(prompt, "Paris") {
		t.Error("oldest destination should be dropped from the profile block")
	}
	for _, dest := range []string{"London", "Tokyo", "Rome", "Barcelona", "Dubai"} {
		if !strings.Contains(prompt, dest) {
			t.Errorf("profile block missing destination %q", dest)
		}
	}
}

func TestManagerDegradedWithoutEmbed(t *testing.T) {
	m := NewManager(ManagerConfig{UserID: "test_user"})

	if m.SemanticEnabled() {
		t.Error("SemanticEnabled() = true without an embed func")
	}

	ctx := context.Background()
	m.RecordExchange(ctx, "hello", "hi there")

	c := m.BuildContext(ctx, "hello")
	if !c.Degraded.SemanticIndex {
		t.Error("Degraded.SemanticIndex should be set")
	}
	if c.Stats.VectorDocuments != 0 {
		t.Errorf("VectorDocuments = %d, want 0", c.Stats.VectorDocuments)
	}
	if c.Stats.BufferMessages != 2 {
		t.Errorf("BufferMessages = %d, want 2", c.Stats.BufferMessages)
	}

	// Prompt building still works with only buffer content.
	prompt := m.BuildPrompt(ctx, "hello again")
	if !strings.Contains(prompt, "RECENT CONVERSATION") {
		t.Error("degraded prompt missing recent conversation block")
	}
}

func TestManagerDegradedQuery(t *testing.T) {
	fe := &flakyEmbed{}
	m := NewManager(ManagerConfig{
		UserID: "test_user",
		Embed:  fe.embed,
	})

	ctx := context.Background()
	m.RecordExchange(ctx, "tell me about Paris", "Paris is lovely")

	fe.fail = true
	c := m.BuildContext(ctx, "what about Paris museums")

	if !c.Degraded.SemanticQuery {
		t.Error("Degraded.SemanticQuery should be set when the embed backend fails")
	}
	if c.RelevantHistory != "" {
		t.Errorf("RelevantHistory = %q, want empty on query failure", c.RelevantHistory)
	}
	// Other components answer normally.
	if len(c.RecentHistory) != 2 {
		t.Errorf("RecentHistory length = %d, want 2", len(c.RecentHistory))
	}
	if c.Stats.VectorDocuments != 1 {
		t.Errorf("VectorDocuments = %d, want 1", c.Stats.VectorDocuments)
	}
}

func TestBuildContextSkipsQueryForEmptyText(t *testing.T) {
	fe := &flakyEmbed{}
	m := NewManager(ManagerConfig{
		UserID: "test_user",
		Embed:  fe.embed,
	})

	ctx := context.Background()
	m.RecordExchange(ctx, "hello", "hi")

	// Stats-only reads pass empty text and must not hit the embed backend.
	fe.fail = true
	c := m.BuildContext(ctx, "")

	if c.Degraded.SemanticQuery {
		t.Error("empty-text context build should not run a semantic query")
	}
	if c.RelevantHistory != "" {
		t.Errorf("RelevantHistory = %q, want empty", c.RelevantHistory)
	}
	if c.Stats.VectorDocuments != 1 {
		t.Errorf("VectorDocuments = %d, want 1", c.Stats.VectorDocuments)
	}
}

func TestRecordExchangeUpdatesPreferences(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	m.RecordExchange(ctx, "I want a budget trip to Paris", "Great choice!")

	c := m.BuildContext(ctx, "")
	if got := c.Preferences.BudgetPreference; got != prefs.BudgetBudget {
		t.Errorf("BudgetPreference = %q, want %q", got, prefs.BudgetBudget)
	}
	if got := c.Preferences.DestinationsInterested; len(got) != 1 || got[0] != "Paris" {
		t.Errorf("DestinationsInterested = %v, want [Paris]", got)
	}

	// A later message overwrites the budget tier but never duplicates
	// destinations.
	m.RecordExchange(ctx, "Actually I'd prefer luxury hotels in Paris", "Noted.")

	c = m.BuildContext(ctx, "")
	if got := c.Preferences.BudgetPreference; got != prefs.BudgetLuxury {
		t.Errorf("BudgetPreference = %q, want %q", got, prefs.BudgetLuxury)
	}
	if got := c.Preferences.DestinationsInterested; len(got) != 1 {
		t.Errorf("DestinationsInterested = %v, want single Paris entry", got)
	}
	if got := c.Preferences.TotalConversations; got != 2 {
		t.Errorf("TotalConversations = %d, want 2", got)
	}
}

func TestManagerClearAll(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	m.RecordExchange(ctx, "planning a family trip to Tokyo", "Wonderful!")
	m.ClearAll(ctx)

	c := m.BuildContext(ctx, "tokyo")
	if len(c.RecentHistory) != 0 {
		t.Errorf("RecentHistory after clear = %d messages, want 0", len(c.RecentHistory))
	}
	if c.Summary != "" {
		t.Errorf("Summary after clear = %q, want empty", c.Summary)
	}
	if c.Stats.VectorDocuments != 0 {
		t.Errorf("VectorDocuments after clear = %d, want 0", c.Stats.VectorDocuments)
	}
	if len(c.Preferences.DestinationsInterested) != 0 {
		t.Errorf("destinations after clear = %v, want none", c.Preferences.DestinationsInterested)
	}
	if c.Preferences.TravelStyle != prefs.StyleUnset {
		t.Errorf("TravelStyle after clear = %q, want unset", c.Preferences.TravelStyle)
	}
}

func TestManagerLoadsStoredPreferences(t *testing.T) {
	dir := t.TempDir()
	store := prefs.NewStore(dir)

	first := NewManager(ManagerConfig{
		UserID:    "alice",
		PrefStore: store,
	})
	first.RecordExchange(context.Background(), "solo backpacking through Japan on a budget", "Epic!")

	second := NewManager(ManagerConfig{
		UserID:    "alice",
		PrefStore: store,
	})
	c := second.BuildContext(context.Background(), "")

	if got := c.Preferences.TravelStyle; got != prefs.StyleSolo {
		t.Errorf("TravelStyle = %q, want %q", got, prefs.StyleSolo)
	}
	if got := c.Preferences.BudgetPreference; got != prefs.BudgetBudget {
		t.Errorf("BudgetPreference = %q, want %q", got, prefs.BudgetBudget)
	}
	if got := c.Preferences.DestinationsInterested; len(got) != 1 || got[0] != "Japan" {
		t.Errorf("DestinationsInterested = %v, want [Japan]", got)
	}
}

func TestPromptTrivialBlocksCountRunes(t *testing.T) {
	// 8 runes but 24 bytes: still trivial, so the block stays out.
	short := formatPrompt(Context{Summary: "東京と京都の旅行"}, "next")
	if strings.Contains(short, "CONVERSATION SUMMARY") {
		t.Error("summary of 10 runes or fewer should be omitted")
	}

	kept := formatPrompt(Context{Summary: "東京と京都を巡る家族旅行の計画"}, "next")
	if !strings.Contains(kept, "CONVERSATION SUMMARY") {
		t.Error("summary longer than 10 runes should be included")
	}

	relevant := formatPrompt(Context{RelevantHistory: "京都の寺の話"}, "next")
	if strings.Contains(relevant, "RELEVANT PAST DISCUSSIONS") {
		t.Error("relevant history of 10 runes or fewer should be omitted")
	}
}

func TestManagerSummaryFlow(t *testing.T) {
	calls := 0
	summarize := func(ctx context.Context, prior, transcript string) (string, error) {
		calls++
		return "user is planning a trip", nil
	}

	m := NewManager(ManagerConfig{
		UserID:        "test_user",
		Summarize:     summarize,
		SummaryBudget: 20,
	})

	ctx := context.Background()
	m.RecordExchange(ctx, strings.Repeat("plan my trip ", 10), strings.Repeat("sure thing ", 10))

	c := m.BuildContext(ctx, "")
	if c.Summary != "user is planning a trip" {
		t.Errorf("Summary = %q, want the delegate output", c.Summary)
	}
	if calls != 1 {
		t.Errorf("summarize called %d times, want 1", calls)
	}

	prompt := m.BuildPrompt(ctx, "continue")
	if !strings.Contains(prompt, "CONVERSATION SUMMARY:\nuser is planning a trip") {
		t.Error("prompt missing summary block")
	}
}
