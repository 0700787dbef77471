package memory

import (
	"fmt"
	"testing"
)

func TestBufferCapacity(t *testing.T) {
	b := NewTurnBuffer(6)

	for i := 0; i < 10; i++ {
		b.Record(fmt.Sprintf("question %d", i), fmt.Sprintf("answer %d", i))
	}

	if got := b.Len(); got != 6 {
		t.Errorf("Len() = %d, want 6", got)
	}

	msgs := b.Snapshot()
	if len(msgs) != 6 {
		t.Fatalf("Snapshot() returned %d messages, want 6", len(msgs))
	}

	// Oldest surviving exchange is #7; most recent is last.
	if msgs[0].Content != "question 7" {
		t.Errorf("oldest message = %q, want %q", msgs[0].Content, "question 7")
	}
	if msgs[5].Content != "answer 9" {
		t.Errorf("newest message = %q, want %q", msgs[5].Content, "answer 9")
	}
}

func TestBufferOrder(t *testing.T) {
	b := NewTurnBuffer(6)
	b.Record("hi", "hello")

	msgs := b.Snapshot()
	if len(msgs) != 2 {
		t.Fatalf("Snapshot() returned %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != "user" || msgs[0].Content != "hi" {
		t.Errorf("msgs[0] = %+v, want user/hi", msgs[0])
	}
	if msgs[1].Role != "assistant" || msgs[1].Content != "hello" {
		t.Errorf("msgs[1] = %+v, want assistant/hello", msgs[1])
	}
}

func TestBufferSnapshotIsCopy(t *testing.T) {
	b := NewTurnBuffer(6)
	b.Record("hi", "hello")

	snap := b.Snapshot()
	snap[0].Content = "mutated"

	if b.Snapshot()[0].Content != "hi" {
		t.Error("mutating a snapshot should not affect the buffer")
	}
}

func TestBufferClear(t *testing.T) {
	b := NewTurnBuffer(6)
	b.Record("hi", "hello")
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}

func TestBufferDefaultCapacity(t *testing.T) {
	b := NewTurnBuffer(0)
	for i := 0; i < 5; i++ {
		b.Record("u", "a")
	}
	if b.Len() != defaultBufferSize {
		t.Errorf("Len() = %d, want default %d", b.Len(), defaultBufferSize)
	}
}
