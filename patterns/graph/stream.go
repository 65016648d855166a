package graph

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/leofalp/agentgraph/providers/ai"
)

// StepEventType identifies what a stream event describes.
type StepEventType string

const (
	// StepEventNode reports a completed node step. The Node, Turn, and
	// Messages fields are populated.
	StepEventNode StepEventType = "node"

	// StepEventDone is the terminal event of a run. It is emitted exactly
	// once: with a nil error when the graph reached End, or paired with the
	// error that aborted the run.
	StepEventDone StepEventType = "done"
)

// StepEvent is a single event from the streaming graph execution: one per
// executed node, plus one terminal event.
type StepEvent struct {
	// Type identifies what kind of event this is.
	Type StepEventType `json:"type"`

	// Node is the ID of the node that produced this event.
	// Empty for the terminal event.
	Node string `json:"node,omitempty"`

	// Turn is the loop turn (1-based) during which the node executed.
	Turn int `json:"turn,omitempty"`

	// Messages are the messages this step appended to the state.
	// Populated only for StepEventNode events.
	Messages []ai.Message `json:"messages,omitempty"`
}

// errConsumerStopped is a sentinel used internally when the consumer breaks
// out of the range loop (yield returned false). It is not a real execution
// failure and is never surfaced to callers.
var errConsumerStopped = fmt.Errorf("stream consumer stopped iteration")

// streamCarrier holds the final state and run error so Collect() can read
// them after the iterator has completed.
type streamCarrier struct {
	finalState *State
	runError   error
}

// GraphStream wraps the streaming graph execution pipeline. The stream must
// be consumed via Iter() or Collect(); breaking out of an Iter() range loop
// early is safe and simply abandons the run.
type GraphStream struct {
	iterator iter.Seq2[StepEvent, error]

	// carrier captures the final state after the iterator completes,
	// allowing Collect() to return the same result as Execute().
	carrier *streamCarrier
}

// Iter returns the underlying iterator for range-over-func consumption.
//
// Example:
//
//	stream, _ := loop.ExecuteStream(ctx, seed)
//	for event, err := range stream.Iter() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    switch event.Type {
//	    case graph.StepEventNode:
//	        fmt.Printf("[%s] appended %d messages\n", event.Node, len(event.Messages))
//	    case graph.StepEventDone:
//	        fmt.Println("run finished")
//	    }
//	}
func (stream *GraphStream) Iter() iter.Seq2[StepEvent, error] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the final conversation
// state, equivalent to what Execute() returns. Any mid-stream error
// terminates collection and returns that error.
func (stream *GraphStream) Collect() (*State, error) {
	for _, err := range stream.iterator {
		if err != nil {
			return nil, err
		}
	}

	if stream.carrier.runError != nil {
		return nil, stream.carrier.runError
	}

	return stream.carrier.finalState, nil
}

// ExecuteStream starts the graph execution with streaming output: one
// StepEvent per executed node carrying the messages that step appended, then
// a terminal StepEventDone. An execution error is delivered alongside the
// terminal event.
//
// The run shares Execute's semantics — strictly sequential, append-only
// state, fail-fast on the first error, optional max-turns guard.
//
// ExecuteStream is NOT safe for concurrent use on the same Graph instance.
func (graph *Graph) ExecuteStream(ctx context.Context, seed []ai.Message) (*GraphStream, error) {
	carrier := &streamCarrier{}

	iteratorFunc := func(yield func(StepEvent, error) bool) {
		executionStart := time.Now()

		run := graph.observeRunStart(&ctx)

		state := NewState(graph.config.stateProvider)
		state.append(ctx, seed)

		current := graph.entryPoint
		turns := 0
		steps := 0

		fail := func(runError error) {
			carrier.runError = runError
			run.observeRunFailed(ctx, runError, time.Since(executionStart))
			yield(StepEvent{Type: StepEventDone}, runError)
		}

		for current != End {
			if err := ctx.Err(); err != nil {
				fail(fmt.Errorf("graph canceled before node %q: %w", current, err))
				return
			}

			if current == graph.entryPoint {
				turns++
				if graph.config.maxTurns > 0 && turns > graph.config.maxTurns {
					fail(fmt.Errorf("%w (max %d)", ErrMaxTurnsExceeded, graph.config.maxTurns))
					return
				}
			}

			appended, stepErr := graph.executeStep(ctx, run, current, turns, state)
			if stepErr != nil {
				fail(stepErr)
				return
			}
			steps++

			if !yield(StepEvent{
				Type:     StepEventNode,
				Node:     current,
				Turn:     turns,
				Messages: appended,
			}, nil) {
				// Consumer stopped reading; abandon the run quietly.
				carrier.runError = errConsumerStopped
				run.observeRunCompleted(ctx, steps, time.Since(executionStart))
				return
			}

			next, routeErr := graph.route(ctx, current, state)
			if routeErr != nil {
				fail(routeErr)
				return
			}
			current = next
		}

		carrier.finalState = state
		run.observeRunCompleted(ctx, steps, time.Since(executionStart))

		yield(StepEvent{Type: StepEventDone}, nil)
	}

	return &GraphStream{
		iterator: iteratorFunc,
		carrier:  carrier,
	}, nil
}
