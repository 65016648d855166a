package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/leofalp/agentgraph/providers/ai"
)

// Execute runs the graph to completion and returns the final conversation state.
//
// The execution proceeds as follows:
//  1. Seed the state with the given messages, in order
//  2. Start at the entry-point node
//  3. Run the current node, append its Delta to the state
//  4. Follow the node's route (unconditional edge or router) to the next node
//  5. Repeat until a route returns End
//
// Execution is strictly sequential: exactly one node runs at a time, and each
// step observes every message appended by all previous steps. Any node or
// router error aborts the run immediately — no retries, no partial results.
//
// When WithMaxTurns is configured, re-entering the entry point beyond the cap
// fails the run with ErrMaxTurnsExceeded.
//
// Execute is NOT safe for concurrent use on the same Graph instance because
// the conversation state is shared. Build separate graphs for concurrent runs.
func (graph *Graph) Execute(ctx context.Context, seed []ai.Message) (*State, error) {
	executionStart := time.Now()

	run := graph.observeRunStart(&ctx)

	state := NewState(graph.config.stateProvider)
	state.append(ctx, seed)

	current := graph.entryPoint
	turns := 0
	steps := 0

	for current != End {
		if err := ctx.Err(); err != nil {
			wrappedErr := fmt.Errorf("graph canceled before node %q: %w", current, err)
			run.observeRunFailed(ctx, wrappedErr, time.Since(executionStart))
			return nil, wrappedErr
		}

		if current == graph.entryPoint {
			turns++
			if graph.config.maxTurns > 0 && turns > graph.config.maxTurns {
				run.observeRunFailed(ctx, ErrMaxTurnsExceeded, time.Since(executionStart))
				return nil, fmt.Errorf("%w (max %d)", ErrMaxTurnsExceeded, graph.config.maxTurns)
			}
		}

		if _, stepErr := graph.executeStep(ctx, run, current, turns, state); stepErr != nil {
			run.observeRunFailed(ctx, stepErr, time.Since(executionStart))
			return nil, stepErr
		}
		steps++

		next, routeErr := graph.route(ctx, current, state)
		if routeErr != nil {
			run.observeRunFailed(ctx, routeErr, time.Since(executionStart))
			return nil, routeErr
		}
		current = next
	}

	run.observeRunCompleted(ctx, steps, time.Since(executionStart))

	return state, nil
}

// executeStep runs a single node and appends its Delta to the state.
// Returns the messages the node contributed.
func (graph *Graph) executeStep(ctx context.Context, run *runObserver, nodeID string, turn int, state *State) ([]ai.Message, error) {
	graphNode := graph.nodes[nodeID]

	stepContext := ctx
	run.observeStepStart(&stepContext, nodeID, turn)

	stepStart := time.Now()
	delta, execError := graphNode.executor.Execute(stepContext, state)
	stepDuration := time.Since(stepStart)

	if execError != nil {
		run.observeStepFailed(stepContext, nodeID, execError, stepDuration)
		return nil, fmt.Errorf("node %q failed: %w", nodeID, execError)
	}

	var appended []ai.Message
	if delta != nil && len(delta.Messages) > 0 {
		appended = delta.Messages
		state.append(stepContext, appended)
	}

	run.observeStepCompleted(stepContext, nodeID, len(appended), stepDuration)

	return appended, nil
}

// route resolves the next node after nodeID completes, using the node's
// unconditional edge or its router. A router returning an unknown node ID is
// an execution error.
func (graph *Graph) route(ctx context.Context, nodeID string, state *State) (string, error) {
	if next, exists := graph.edges[nodeID]; exists {
		return next, nil
	}

	router := graph.routers[nodeID]
	next, err := router(ctx, state)
	if err != nil {
		return "", fmt.Errorf("router for node %q failed: %w", nodeID, err)
	}

	if next != End {
		if _, exists := graph.nodes[next]; !exists {
			return "", fmt.Errorf("router for node %q returned unknown node %q", nodeID, next)
		}
	}

	return next, nil
}
