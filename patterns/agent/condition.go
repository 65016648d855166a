package agent

import (
	"context"

	"github.com/leofalp/agentgraph/patterns/graph"
	"github.com/leofalp/agentgraph/providers/ai"
)

// ToolsCondition is the router that decides where the loop goes after an
// assistant step. If the last message is an assistant message carrying at
// least one tool call, execution proceeds to the tool node; in every other
// case the loop ends.
func ToolsCondition(ctx context.Context, state *graph.State) (string, error) {
	lastMessage, err := state.LastMessage(ctx)
	if err != nil {
		return "", err
	}

	if lastMessage != nil && lastMessage.Role == ai.RoleAssistant && len(lastMessage.ToolCalls) > 0 {
		return NodeTools, nil
	}

	return graph.End, nil
}
