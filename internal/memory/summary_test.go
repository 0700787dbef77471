package memory

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSummaryBelowBudget(t *testing.T) {
	called := false
	summarize := func(ctx context.Context, prior, transcript string) (string, error) {
		called = true
		return "summary", nil
	}

	tr := NewSummaryTracker(summarize, 800, nil)
	tr.Record(context.Background(), "short question", "short answer")

	if called {
		t.Error("summarize should not run below the budget")
	}
	if got := tr.Snapshot(); got != "" {
		t.Errorf("Snapshot() = %q, want empty", got)
	}
}

func TestSummaryRegeneratesOverBudget(t *testing.T) {
	var gotPrior, gotTranscript string
	summarize := func(ctx context.Context, prior, transcript string) (string, error) {
		gotPrior = prior
		gotTranscript = transcript
		return "the user asked about many things", nil
	}

	// Tiny budget so a single exchange trips it.
	tr := NewSummaryTracker(summarize, 5, nil)
	tr.Record(context.Background(), "tell me about trains in Japan", "they are fast and punctual")

	if got := tr.Snapshot(); got != "the user asked about many things" {
		t.Errorf("Snapshot() = %q, want regenerated summary", got)
	}
	if gotPrior != "" {
		t.Errorf("first regeneration should see empty prior summary, got %q", gotPrior)
	}
	if !strings.Contains(gotTranscript, "trains in Japan") {
		t.Errorf("transcript missing exchange text: %q", gotTranscript)
	}

	// Next regeneration sees the previous summary.
	tr.Record(context.Background(), "and what about buses", "also reliable")
	if gotPrior != "the user asked about many things" {
		t.Errorf("second regeneration prior = %q, want previous summary", gotPrior)
	}
}

func TestSummaryDelegateFailureKeepsPrevious(t *testing.T) {
	calls := 0
	summarize := func(ctx context.Context, prior, transcript string) (string, error) {
		calls++
		if calls == 1 {
			return "first summary", nil
		}
		return "", errors.New("delegate unavailable")
	}

	tr := NewSummaryTracker(summarize, 5, nil)
	tr.Record(context.Background(), "question one", "answer one")
	tr.Record(context.Background(), "question two", "answer two")

	if got := tr.Snapshot(); got != "first summary" {
		t.Errorf("Snapshot() after failed regeneration = %q, want %q", got, "first summary")
	}
}

func TestSummaryClear(t *testing.T) {
	summarize := func(ctx context.Context, prior, transcript string) (string, error) {
		return "summary", nil
	}

	tr := NewSummaryTracker(summarize, 5, nil)
	tr.Record(context.Background(), "question", "answer")
	tr.Clear()

	if got := tr.Snapshot(); got != "" {
		t.Errorf("Snapshot() after Clear = %q, want empty", got)
	}
}
