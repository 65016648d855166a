package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leofalp/agentgraph/patterns/graph"
	"github.com/leofalp/agentgraph/providers/ai"
)

// ErrUnknownTool is returned when the model requests a tool that is not
// registered in the agent's catalog. The run fails — there is no fallback
// reply for a call that cannot be dispatched.
var ErrUnknownTool = errors.New("agent: unknown tool requested")

// AssistantNode queries the hosted model with the full conversation history
// and contributes exactly one assistant message per step, whether or not the
// reply requests tool calls.
type AssistantNode struct {
	agent *Agent
}

// Execute sends the current history to the provider and returns the model's
// reply as a single-message Delta.
func (node *AssistantNode) Execute(ctx context.Context, state *graph.State) (*graph.Delta, error) {
	history, err := state.Messages(ctx)
	if err != nil {
		return nil, fmt.Errorf("assistant: reading state: %w", err)
	}

	request := ai.ChatRequest{
		Model:            node.agent.model,
		Messages:         history,
		SystemPrompt:     node.agent.systemPrompt,
		Tools:            node.agent.catalog.Descriptions(),
		GenerationConfig: node.agent.generationConfig,
	}

	response, err := node.agent.provider.SendMessage(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("assistant: provider request failed: %w", err)
	}

	return graph.NewDelta(response.AsMessage()), nil
}

// ToolNode executes every tool call requested by the last assistant message,
// strictly in the order the model listed them, and contributes one tool-result
// message per call. Each result carries the call's identifier so the model can
// correlate results with requests on the next turn.
//
// Any failure — unknown tool, argument validation, or the tool itself — aborts
// the run. No retries, no partial result sets.
type ToolNode struct {
	agent *Agent
}

// Execute dispatches the pending tool calls and returns their results as a Delta.
func (node *ToolNode) Execute(ctx context.Context, state *graph.State) (*graph.Delta, error) {
	lastMessage, err := state.LastMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("tools: reading state: %w", err)
	}

	if lastMessage == nil || lastMessage.Role != ai.RoleAssistant || len(lastMessage.ToolCalls) == 0 {
		return nil, fmt.Errorf("tools: no pending tool calls in state")
	}

	results := make([]ai.Message, 0, len(lastMessage.ToolCalls))

	for _, call := range lastMessage.ToolCalls {
		resultMessage, err := node.executeCall(ctx, call)
		if err != nil {
			return nil, err
		}
		results = append(results, *resultMessage)
	}

	return graph.NewDelta(results...), nil
}

// executeCall runs a single tool call and wraps its output in the standard
// result envelope, paired with the originating call ID.
func (node *ToolNode) executeCall(ctx context.Context, call ai.ToolCall) (*ai.Message, error) {
	requestedTool, exists := node.agent.catalog.Get(call.Function.Name)
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, call.Function.Name)
	}

	output, err := requestedTool.Call(ctx, call.Function.Arguments)
	if err != nil {
		return nil, fmt.Errorf("tools: %q (call %s) failed: %w", call.Function.Name, call.ID, err)
	}

	// The tool output is already JSON; embed it raw so the envelope nests it
	// as structured data rather than an escaped string.
	envelope := ai.NewToolResultSuccess(json.RawMessage(output))
	content, err := envelope.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("tools: encoding result for %q: %w", call.Function.Name, err)
	}

	return &ai.Message{
		Role:       ai.RoleTool,
		Content:    content,
		ToolCallID: call.ID,
		Name:       call.Function.Name,
	}, nil
}
