package graph

import (
	"context"
	"time"

	"github.com/leofalp/agentgraph/providers/observability"
)

const (
	// spanGraphExecute is the span name for an entire graph run.
	spanGraphExecute = "graph.execute"

	// spanGraphStep is the span name for a single node step.
	spanGraphStep = "graph.step"

	// attrGraphEntryPoint is the entry-point node ID.
	attrGraphEntryPoint = "graph.entry_point"

	// attrGraphTotalNodes is the number of nodes in the graph.
	attrGraphTotalNodes = "graph.total_nodes"

	// attrGraphMaxTurns is the configured turn cap (0 = unbounded).
	attrGraphMaxTurns = "graph.max_turns"

	// attrGraphSteps is the number of node steps executed during a run.
	attrGraphSteps = "graph.steps"
)

// runObserver holds the observability provider and the root span for a single
// graph run. A fresh runObserver is created per Execute/ExecuteStream call so
// the Graph struct itself carries no per-run state.
type runObserver struct {
	provider observability.Provider
	rootSpan observability.Span
}

// observeRunStart initializes observability for a graph run. It resolves the
// observer from the graph configuration, falling back to the context, creates
// the root span, and attaches span and observer to the context for downstream
// propagation.
func (graph *Graph) observeRunStart(ctx *context.Context) *runObserver {
	run := &runObserver{provider: graph.config.observer}
	if run.provider == nil {
		run.provider = observability.ObserverFromContext(*ctx)
	}

	if run.provider == nil {
		return run
	}

	var rootSpan observability.Span
	*ctx, rootSpan = run.provider.StartSpan(*ctx, spanGraphExecute,
		observability.String(attrGraphEntryPoint, graph.entryPoint),
		observability.Int(attrGraphTotalNodes, len(graph.nodes)),
		observability.Int(attrGraphMaxTurns, graph.config.maxTurns),
	)
	run.rootSpan = rootSpan

	*ctx = observability.ContextWithSpan(*ctx, rootSpan)
	*ctx = observability.ContextWithObserver(*ctx, run.provider)

	run.provider.Info(*ctx, "graph run started",
		observability.String(attrGraphEntryPoint, graph.entryPoint),
		observability.Int(attrGraphTotalNodes, len(graph.nodes)),
	)

	return run
}

// observeRunCompleted records the successful completion of a graph run.
func (run *runObserver) observeRunCompleted(ctx context.Context, steps int, totalDuration time.Duration) {
	if run.provider == nil {
		return
	}

	run.provider.Info(ctx, "graph run completed",
		observability.Int(attrGraphSteps, steps),
		observability.Duration(observability.AttrDuration, totalDuration),
	)

	if run.rootSpan != nil {
		run.rootSpan.SetAttributes(observability.Int(attrGraphSteps, steps))
		run.rootSpan.SetStatus(observability.StatusOK, "graph run completed")
		run.rootSpan.End()
	}
}

// observeRunFailed records the failure of a graph run.
func (run *runObserver) observeRunFailed(ctx context.Context, runError error, totalDuration time.Duration) {
	if run.provider == nil {
		return
	}

	run.provider.Error(ctx, "graph run failed",
		observability.Error(runError),
		observability.Duration(observability.AttrDuration, totalDuration),
	)

	if run.rootSpan != nil {
		run.rootSpan.RecordError(runError)
		run.rootSpan.SetStatus(observability.StatusError, "graph run failed")
		run.rootSpan.End()
	}
}

// observeStepStart creates a child span for a node step and logs the start event.
// The updated context carries the step span for downstream propagation.
func (run *runObserver) observeStepStart(ctx *context.Context, nodeID string, turn int) {
	if run.provider == nil {
		return
	}

	var stepSpan observability.Span
	*ctx, stepSpan = run.provider.StartSpan(*ctx, spanGraphStep,
		observability.String(observability.AttrGraphNode, nodeID),
		observability.Int(observability.AttrGraphTurn, turn),
	)
	*ctx = observability.ContextWithSpan(*ctx, stepSpan)

	stepSpan.AddEvent(observability.EventGraphNodeStart)

	run.provider.Debug(*ctx, "graph step started",
		observability.String(observability.AttrGraphNode, nodeID),
		observability.Int(observability.AttrGraphTurn, turn),
	)
}

// observeStepCompleted records a completed node step and closes its span.
func (run *runObserver) observeStepCompleted(ctx context.Context, nodeID string, appended int, duration time.Duration) {
	if run.provider == nil {
		return
	}

	run.provider.Info(ctx, "graph step completed",
		observability.String(observability.AttrGraphNode, nodeID),
		observability.Int(observability.AttrGraphMessagesAppended, appended),
		observability.Duration(observability.AttrDuration, duration),
	)

	stepSpan := observability.SpanFromContext(ctx)
	if stepSpan != nil {
		stepSpan.AddEvent(observability.EventGraphNodeEnd)
		stepSpan.SetAttributes(
			observability.Int(observability.AttrGraphMessagesAppended, appended),
			observability.Duration(observability.AttrDuration, duration),
		)
		stepSpan.SetStatus(observability.StatusOK, "step completed")
		stepSpan.End()
	}
}

// observeStepFailed records a failed node step and closes its span.
func (run *runObserver) observeStepFailed(ctx context.Context, nodeID string, stepError error, duration time.Duration) {
	if run.provider == nil {
		return
	}

	run.provider.Error(ctx, "graph step failed",
		observability.String(observability.AttrGraphNode, nodeID),
		observability.Error(stepError),
		observability.Duration(observability.AttrDuration, duration),
	)

	stepSpan := observability.SpanFromContext(ctx)
	if stepSpan != nil {
		stepSpan.RecordError(stepError)
		stepSpan.SetStatus(observability.StatusError, "step failed")
		stepSpan.End()
	}
}
