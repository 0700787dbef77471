package memory

import "github.com/wayfarer-ai/wayfarer/pkg/api"

// defaultBufferSize keeps the last 6 messages (3 exchanges).
const defaultBufferSize = 6

// TurnBuffer is a fixed-capacity FIFO of the most recent role-tagged
// messages. Pure in-memory structure, no I/O, no error conditions.
type TurnBuffer struct {
	capacity int
	messages []api.Message
}

// NewTurnBuffer creates a buffer holding at most capacity messages.
// capacity <= 0 selects the default of 6.
func NewTurnBuffer(capacity int) *TurnBuffer {
	if capacity <= 0 {
		capacity = defaultBufferSize
	}
	return &TurnBuffer{capacity: capacity}
}

// Record appends the exchange as two role-tagged entries, evicting the
// oldest entries once the capacity is exceeded.
func (b *TurnBuffer) Record(userText, assistantText string) {
	b.messages = append(b.messages,
		api.Message{Role: "user", Content: userText},
		api.Message{Role: "assistant", Content: assistantText},
	)
	if len(b.messages) > b.capacity {
		b.messages = b.messages[len(b.messages)-b.capacity:]
	}
}

// Snapshot returns the buffered messages in chronological order,
// most recent last.
func (b *TurnBuffer) Snapshot() []api.Message {
	out := make([]api.Message, len(b.messages))
	copy(out, b.messages)
	return out
}

// Len returns the number of buffered messages.
func (b *TurnBuffer) Len() int {
	return len(b.messages)
}

// Clear drops all buffered messages.
func (b *TurnBuffer) Clear() {
	b.messages = nil
}
