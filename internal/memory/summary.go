package memory

import (
	"context"
	"strings"

	"github.com/wayfarer-ai/wayfarer/internal/logger"
)

// defaultSummaryBudget is the transcript size, in estimated tokens, beyond
// which the tracker regenerates the summary.
const defaultSummaryBudget = 800

// SummaryTracker maintains a rolling natural-language summary of conversation
// older than the recent window. Exchanges accumulate in an internal transcript;
// once the transcript exceeds the token budget, the summarize delegate folds it
// into a replacement summary and the transcript resets. Summarization is
// best-effort: a failed delegate call keeps the previous summary.
type SummaryTracker struct {
	summarize  SummarizeFunc
	estimator  *TokenEstimator
	budget     int
	summary    string
	transcript strings.Builder
	log        logger.Logger
}

// NewSummaryTracker creates a tracker with the given delegate and budget.
// budget <= 0 selects the default of 800 estimated tokens.
func NewSummaryTracker(summarize SummarizeFunc, budget int, log logger.Logger) *SummaryTracker {
	if budget <= 0 {
		budget = defaultSummaryBudget
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SummaryTracker{
		summarize: summarize,
		estimator: NewTokenEstimator(),
		budget:    budget,
		log:       log,
	}
}

// Record appends the exchange to the running transcript and regenerates the
// summary if the transcript exceeds the budget. Never returns an error.
func (t *SummaryTracker) Record(ctx context.Context, userText, assistantText string) {
	if t.transcript.Len() > 0 {
		t.transcript.WriteString("\n")
	}
	t.transcript.WriteString("User: " + userText + "\nAssistant: " + assistantText)

	if t.estimator.Estimate(t.transcript.String()) <= t.budget {
		return
	}

	if t.summarize == nil {
		// No delegate wired; drop the transcript to bound memory growth.
		t.transcript.Reset()
		return
	}

	newSummary, err := t.summarize(ctx, t.summary, t.transcript.String())
	if err != nil {
		t.log.Warn("summary generation failed, keeping previous summary", "error", err)
		return
	}

	t.summary = strings.TrimSpace(newSummary)
	t.transcript.Reset()
}

// Snapshot returns the current summary string. May be empty if no
// summarization has occurred yet.
func (t *SummaryTracker) Snapshot() string {
	return t.summary
}

// Clear resets the summary and transcript.
func (t *SummaryTracker) Clear() {
	t.summary = ""
	t.transcript.Reset()
}
