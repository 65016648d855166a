package memory

import (
	"context"

	"github.com/leofalp/agentgraph/providers/ai"
)

// Provider is the storage interface for conversation state: the ordered,
// append-only sequence of messages threaded through every step of a run.
// Implementations must never reorder or drop previously appended messages.
//
// All methods accept a context for cancellation and to carry observability
// spans. Implementations must be safe for concurrent use.
type Provider interface {
	// AppendMessage stores a message at the end of the history.
	AppendMessage(ctx context.Context, message *ai.Message)

	// AllMessages returns a copy of the full ordered history.
	AllMessages(ctx context.Context) ([]ai.Message, error)

	// LastMessage returns the most recently appended message,
	// or nil when the history is empty.
	LastMessage(ctx context.Context) (*ai.Message, error)

	// Count returns the number of stored messages.
	Count(ctx context.Context) (int, error)

	// ClearMessages removes all messages.
	ClearMessages(ctx context.Context)
}
