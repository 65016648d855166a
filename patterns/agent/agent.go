package agent

import (
	"context"
	"fmt"

	"github.com/leofalp/agentgraph/patterns/graph"
	"github.com/leofalp/agentgraph/providers/ai"
	"github.com/leofalp/agentgraph/providers/observability"
	"github.com/leofalp/agentgraph/providers/tool"
)

// Node IDs of the canonical agent loop.
const (
	// NodeAssistant is the node that queries the hosted model.
	NodeAssistant = "assistant"

	// NodeTools is the node that executes requested tool calls.
	NodeTools = "tools"
)

// Config holds everything an Agent needs. All dependencies are passed
// explicitly — there is no global registry and no package-level state.
type Config struct {
	// Provider is the chat model backend. Required.
	Provider ai.Provider

	// Model overrides the provider's default model identifier. Optional.
	Model string

	// SystemPrompt is forwarded with every request. Optional.
	SystemPrompt string

	// Catalog holds the tools advertised to the model and dispatched by the
	// tool node. Optional; without it the agent is a plain chat loop.
	Catalog *tool.Catalog

	// GenerationConfig carries optional sampling parameters. Optional.
	GenerationConfig *ai.GenerationConfig

	// Observer receives spans and logs for the run. Optional.
	Observer observability.Provider

	// MaxTurns caps the number of assistant turns per run.
	// Zero means unbounded.
	MaxTurns int
}

// Agent wires a chat provider and a tool catalog into the canonical cyclic
// loop: the assistant node asks the model, a router inspects the reply, and
// the tool node executes any requested calls before looping back to the
// assistant. The loop ends when the model answers without tool calls.
type Agent struct {
	provider         ai.Provider
	model            string
	systemPrompt     string
	catalog          *tool.Catalog
	generationConfig *ai.GenerationConfig
	observer         observability.Provider
	maxTurns         int
}

// New creates an Agent from the given configuration.
// Returns an error if no provider is configured.
func New(config Config) (*Agent, error) {
	if config.Provider == nil {
		return nil, fmt.Errorf("agent: provider is required")
	}

	catalog := config.Catalog
	if catalog == nil {
		catalog = tool.NewCatalog()
	}

	return &Agent{
		provider:         config.Provider,
		model:            config.Model,
		systemPrompt:     config.SystemPrompt,
		catalog:          catalog,
		generationConfig: config.GenerationConfig,
		observer:         config.Observer,
		maxTurns:         config.MaxTurns,
	}, nil
}

// Graph assembles the agent loop as an executable graph:
//
//	assistant --(tool calls?)--> tools --> assistant
//	assistant --(no tool calls)--> End
//
// Each call returns a fresh graph with its own conversation state, so
// separate runs never share history.
func (agent *Agent) Graph() (*graph.Graph, error) {
	return graph.NewBuilder(
		graph.WithMaxTurns(agent.maxTurns),
		graph.WithObserver(agent.observer),
	).
		AddNode(NodeAssistant, &AssistantNode{agent: agent}).
		AddNode(NodeTools, &ToolNode{agent: agent}).
		AddConditionalEdge(NodeAssistant, ToolsCondition).
		AddEdge(NodeTools, NodeAssistant).
		SetEntryPoint(NodeAssistant).
		Build()
}

// Run executes one full conversation for the given user prompt and returns
// the final assistant answer.
func (agent *Agent) Run(ctx context.Context, prompt string) (string, error) {
	loop, err := agent.Graph()
	if err != nil {
		return "", err
	}

	finalState, err := loop.Execute(ctx, Seed(prompt))
	if err != nil {
		return "", err
	}

	lastMessage, err := finalState.LastMessage(ctx)
	if err != nil {
		return "", err
	}
	if lastMessage == nil {
		return "", fmt.Errorf("agent: run produced no messages")
	}

	return lastMessage.Content, nil
}

// Seed builds the initial conversation state for a user prompt.
func Seed(prompt string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleUser, Content: prompt},
	}
}
