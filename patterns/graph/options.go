package graph

import (
	"github.com/leofalp/agentgraph/providers/memory"
	"github.com/leofalp/agentgraph/providers/observability"
)

// Option is a functional option for configuring Graph behavior.
// Options are applied during Builder construction via NewBuilder.
type Option func(*graphConfig)

// WithMaxTurns caps how many times execution may enter the entry-point node.
// Each pass through the entry point counts as one turn, so in the canonical
// assistant/tools loop this bounds the number of assistant invocations.
//
// A value of 0 (the default) means unbounded: the loop runs until a route
// returns End. When the cap is exceeded, Execute fails with
// ErrMaxTurnsExceeded.
//
// Example:
//
//	graph.NewBuilder(graph.WithMaxTurns(10))
func WithMaxTurns(maxTurns int) Option {
	return func(config *graphConfig) {
		config.maxTurns = maxTurns
	}
}

// WithStateProvider sets a custom storage backend for the conversation state.
// By default, an in-memory provider is used.
//
// Example:
//
//	graph.NewBuilder(graph.WithStateProvider(myStore))
func WithStateProvider(provider memory.Provider) Option {
	return func(config *graphConfig) {
		config.stateProvider = provider
	}
}

// WithObserver sets the observability provider that receives spans and logs
// for graph execution. When unset, the graph falls back to any observer found
// in the execution context; when neither is present, observability is
// disabled with zero overhead.
//
// Example:
//
//	graph.NewBuilder(graph.WithObserver(slogobs.New()))
func WithObserver(observer observability.Provider) Option {
	return func(config *graphConfig) {
		config.observer = observer
	}
}
