// Package graph implements a cyclic message state-graph: nodes read a shared,
// append-only conversation state and contribute messages to it, and routes
// (unconditional edges or routing functions) decide which node runs next.
//
// Unlike a DAG pipeline, cycles are the point — the canonical topology is an
// assistant node and a tool node looping back to each other until a router
// returns End. Execution is strictly sequential, one node at a time.
//
// Build a graph with the fluent Builder, then run it with Execute for the
// final state or ExecuteStream to observe each step as it happens.
package graph
