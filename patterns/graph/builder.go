package graph

import (
	"errors"
	"fmt"

	"github.com/leofalp/agentgraph/providers/memory/inmemory"
)

// Builder constructs a validated Graph using a fluent API.
// Nodes, edges, and routers are added incrementally, and Build() performs
// structural validation.
//
// The builder enforces the following constraints:
//   - Node IDs must be unique and must not collide with the reserved End ID
//   - Edge endpoints must reference existing nodes (End is a valid target)
//   - Every node has exactly one outgoing route: an unconditional edge
//     (AddEdge) or a routing function (AddConditionalEdge), never both
//   - An entry point must be set and must reference an existing node
//
// Cycles are allowed — this graph is a control loop, not a pipeline.
//
// Example:
//
//	loop, err := graph.NewBuilder().
//	    AddNode("assistant", assistantNode).
//	    AddNode("tools", toolNode).
//	    AddConditionalEdge("assistant", toolsCondition).
//	    AddEdge("tools", "assistant").
//	    SetEntryPoint("assistant").
//	    Build()
type Builder struct {
	// config holds the graph-level configuration populated from Options.
	config *graphConfig

	// nodes stores all registered nodes keyed by their ID.
	nodes map[string]*node

	// edges stores unconditional successors keyed by source node ID.
	edges map[string]string

	// routers stores routing functions keyed by source node ID.
	routers map[string]Router

	// entryPoint is the node where execution begins.
	entryPoint string

	// buildErrors accumulates validation errors encountered while the graph
	// is being assembled and is reported when Build() is called.
	buildErrors []error
}

// NewBuilder creates a new Builder for constructing a Graph.
// Graph-level options (WithMaxTurns, WithStateProvider, WithObserver) are
// applied here.
func NewBuilder(opts ...Option) *Builder {
	config := &graphConfig{}

	for _, opt := range opts {
		opt(config)
	}

	return &Builder{
		config:      config,
		nodes:       make(map[string]*node),
		edges:       make(map[string]string),
		routers:     make(map[string]Router),
		buildErrors: make([]error, 0),
	}
}

// AddNode registers a processing node in the graph with the given unique ID
// and executor. Returns the builder for method chaining. Invalid registrations
// are recorded and reported at Build() time.
func (builder *Builder) AddNode(nodeID string, executor NodeExecutor) *Builder {
	if nodeID == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node ID must not be empty"))
		return builder
	}

	if nodeID == End {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node ID %q is reserved", End))
		return builder
	}

	if executor == nil {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("executor must not be nil for node %q", nodeID))
		return builder
	}

	if _, exists := builder.nodes[nodeID]; exists {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("duplicate node ID %q", nodeID))
		return builder
	}

	builder.nodes[nodeID] = &node{
		id:       nodeID,
		executor: executor,
	}

	return builder
}

// AddEdge creates an unconditional route: after the source node completes,
// execution always proceeds to the target node. The target may be End to
// terminate the loop.
//
// Returns the builder for method chaining. A node may have only one outgoing
// route; conflicting registrations are reported at Build() time.
func (builder *Builder) AddEdge(from, to string) *Builder {
	if from == "" || to == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("edge endpoints must not be empty (from=%q, to=%q)", from, to))
		return builder
	}

	if builder.hasRoute(from) {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node %q already has an outgoing route", from))
		return builder
	}

	builder.edges[from] = to

	return builder
}

// AddConditionalEdge attaches a routing function to the source node: after
// the node completes, the router inspects the state and returns the ID of the
// next node, or End to terminate the loop.
//
// Returns the builder for method chaining. A node may have only one outgoing
// route; conflicting registrations are reported at Build() time.
func (builder *Builder) AddConditionalEdge(from string, router Router) *Builder {
	if from == "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("conditional edge source must not be empty"))
		return builder
	}

	if router == nil {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("router must not be nil for node %q", from))
		return builder
	}

	if builder.hasRoute(from) {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("node %q already has an outgoing route", from))
		return builder
	}

	builder.routers[from] = router

	return builder
}

// SetEntryPoint designates the node where every execution begins.
// Returns the builder for method chaining.
func (builder *Builder) SetEntryPoint(nodeID string) *Builder {
	if builder.entryPoint != "" {
		builder.buildErrors = append(builder.buildErrors, fmt.Errorf("entry point already set to %q", builder.entryPoint))
		return builder
	}

	builder.entryPoint = nodeID

	return builder
}

// hasRoute reports whether the given node already has an outgoing edge or router.
func (builder *Builder) hasRoute(nodeID string) bool {
	if _, exists := builder.edges[nodeID]; exists {
		return true
	}
	_, exists := builder.routers[nodeID]
	return exists
}

// Build validates the graph structure and produces an executable Graph.
// It performs the following validations:
//
//  1. No accumulated build errors from AddNode/AddEdge/AddConditionalEdge
//  2. At least one node exists
//  3. All edge endpoints reference existing nodes (End is a valid target)
//  4. Every node has exactly one outgoing route
//  5. The entry point is set and references an existing node
//
// Cycles are not an error: the intended topology loops back on itself and
// terminates only through a route returning End (or the max-turns guard).
func (builder *Builder) Build() (*Graph, error) {
	if len(builder.buildErrors) > 0 {
		return nil, fmt.Errorf("graph build errors: %w", errors.Join(builder.buildErrors...))
	}

	if len(builder.nodes) == 0 {
		return nil, fmt.Errorf("graph must contain at least one node")
	}

	if err := builder.validateRoutes(); err != nil {
		return nil, err
	}

	if builder.entryPoint == "" {
		return nil, fmt.Errorf("graph entry point is not set")
	}
	if _, exists := builder.nodes[builder.entryPoint]; !exists {
		return nil, fmt.Errorf("entry point references non-existent node %q", builder.entryPoint)
	}

	// Use the default in-memory state provider if none was configured.
	if builder.config.stateProvider == nil {
		builder.config.stateProvider = inmemory.New()
	}

	return &Graph{
		nodes:      builder.nodes,
		edges:      builder.edges,
		routers:    builder.routers,
		entryPoint: builder.entryPoint,
		config:     builder.config,
	}, nil
}

// validateRoutes checks that every edge references existing nodes and that
// every node has exactly one outgoing route.
func (builder *Builder) validateRoutes() error {
	for from, to := range builder.edges {
		if _, exists := builder.nodes[from]; !exists {
			return fmt.Errorf("edge references non-existent source node %q", from)
		}
		if to != End {
			if _, exists := builder.nodes[to]; !exists {
				return fmt.Errorf("edge from %q references non-existent target node %q", from, to)
			}
		}
	}

	for from := range builder.routers {
		if _, exists := builder.nodes[from]; !exists {
			return fmt.Errorf("conditional edge references non-existent source node %q", from)
		}
	}

	// Every node needs a way out, otherwise execution dead-ends at runtime.
	for nodeID := range builder.nodes {
		if !builder.hasRoute(nodeID) {
			return fmt.Errorf("node %q has no outgoing route", nodeID)
		}
	}

	return nil
}
