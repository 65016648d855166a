package graph

import (
	"context"
	"errors"

	"github.com/leofalp/agentgraph/providers/memory"
	"github.com/leofalp/agentgraph/providers/observability"
)

// End is the reserved node identifier that terminates graph execution.
// An edge or router targeting End stops the loop; no node may use this
// identifier as its own ID.
const End = "__end__"

// ErrMaxTurnsExceeded is returned by Execute when the turn guard configured
// via WithMaxTurns is exceeded before the graph reaches End.
var ErrMaxTurnsExceeded = errors.New("graph: maximum number of turns exceeded")

// NodeExecutor is the interface every graph node implements. A node reads the
// current conversation state and returns the messages it contributes as a
// Delta. Nodes must treat the state as read-only; the executor appends the
// returned Delta after the node completes.
//
// Returning an error aborts the entire graph execution — there are no
// retries and no partial results.
type NodeExecutor interface {
	Execute(ctx context.Context, state *State) (*Delta, error)
}

// NodeExecutorFunc is an adapter that allows using an ordinary function as a
// NodeExecutor. If f is a function with the appropriate signature,
// NodeExecutorFunc(f) is a NodeExecutor that calls f.
type NodeExecutorFunc func(ctx context.Context, state *State) (*Delta, error)

// Execute calls the underlying function, satisfying the NodeExecutor interface.
func (executorFunc NodeExecutorFunc) Execute(ctx context.Context, state *State) (*Delta, error) {
	return executorFunc(ctx, state)
}

// Router selects the next node after its source node completes. It inspects
// the current state (typically the last appended message) and returns the ID
// of the node to execute next, or End to terminate the loop.
//
// Routers must be pure with respect to the state: they read, decide, and
// never append.
type Router func(ctx context.Context, state *State) (string, error)

// node represents a single processing step in the graph.
// It is created internally by the Builder and is not directly instantiated by users.
type node struct {
	// id is the unique identifier for this node within the graph.
	id string

	// executor contains the processing logic for this node.
	executor NodeExecutor
}

// graphConfig holds the configuration for a Graph, populated by Options.
type graphConfig struct {
	// maxTurns limits how many times execution may re-enter the entry-point
	// node. Zero means unbounded — the graph loops until a route returns End.
	maxTurns int

	// stateProvider is the storage backend for the conversation state.
	// If nil, an in-memory provider is used.
	stateProvider memory.Provider

	// observer receives spans and logs for graph execution.
	// Nil disables observability for this graph.
	observer observability.Provider
}

// Graph is a validated, executable message state-graph. Unlike a DAG
// pipeline, this graph is a control loop: cycles are expected (the canonical
// shape is assistant -> tools -> assistant), and execution is strictly
// sequential — exactly one node runs at a time, and each step sees every
// message appended by all previous steps.
//
// A Graph is created via Builder.Build(). It is not safe for concurrent
// Execute calls on the same instance because the conversation state is
// shared; build separate graphs for concurrent runs.
type Graph struct {
	// nodes maps node IDs to their definitions.
	nodes map[string]*node

	// edges maps a node ID to its unconditional successor.
	edges map[string]string

	// routers maps a node ID to its conditional routing function.
	// A node has either an edge or a router, never both.
	routers map[string]Router

	// entryPoint is the node where every run (and every loop turn) begins.
	entryPoint string

	// config holds the graph's execution configuration.
	config *graphConfig
}
