package graph

import (
	"context"
	"fmt"

	"github.com/leofalp/agentgraph/providers/ai"
	"github.com/leofalp/agentgraph/providers/memory"
)

// State is the shared conversation state threaded through every node of the
// graph: an ordered message history backed by a memory.Provider. The history
// grows only by append — nodes never mutate, reorder, or remove messages that
// are already present. Nodes express their contribution as a Delta, and the
// executor concatenates it onto the state.
type State struct {
	store memory.Provider
}

// NewState creates a State backed by the given storage provider.
func NewState(store memory.Provider) *State {
	return &State{store: store}
}

// Messages returns a copy of the full ordered history.
func (state *State) Messages(ctx context.Context) ([]ai.Message, error) {
	return state.store.AllMessages(ctx)
}

// LastMessage returns the most recently appended message, or nil when the
// history is empty.
func (state *State) LastMessage(ctx context.Context) (*ai.Message, error) {
	return state.store.LastMessage(ctx)
}

// Len returns the number of messages in the history.
func (state *State) Len(ctx context.Context) (int, error) {
	return state.store.Count(ctx)
}

// append concatenates messages onto the history in order. Only the executor
// calls this, after a node returns its Delta; nodes themselves hold a
// read-only view of the state.
func (state *State) append(ctx context.Context, messages []ai.Message) {
	for index := range messages {
		state.store.AppendMessage(ctx, &messages[index])
	}
}

// Delta is the contribution a node makes to the conversation state: zero or
// more messages appended, in order, after the node completes. A node that has
// nothing to add returns an empty Delta (or nil, which the executor treats
// the same way).
type Delta struct {
	// Messages are appended to the state in the order given.
	Messages []ai.Message
}

// NewDelta creates a Delta from the given messages.
func NewDelta(messages ...ai.Message) *Delta {
	return &Delta{Messages: messages}
}

func (delta *Delta) String() string {
	if delta == nil {
		return "Delta(empty)"
	}
	return fmt.Sprintf("Delta(%d messages)", len(delta.Messages))
}
