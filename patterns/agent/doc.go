// Package agent wires a chat provider and a tool catalog into the canonical
// cyclic loop: ask the model, run the tools it requests, feed the results
// back, repeat until the model answers without tool calls.
package agent
