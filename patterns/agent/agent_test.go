package agent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/leofalp/agentgraph/patterns/graph"
	"github.com/leofalp/agentgraph/providers/ai"
	"github.com/leofalp/agentgraph/providers/tool"
	"github.com/leofalp/agentgraph/providers/tool/arithmetic"
)

// mockProvider replays a scripted sequence of chat responses and records
// every request it receives.
type mockProvider struct {
	responses []*ai.ChatResponse
	requests  []ai.ChatRequest
	callIndex int
	err       error
}

var _ ai.Provider = (*mockProvider)(nil)

func (provider *mockProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	provider.requests = append(provider.requests, request)
	if provider.err != nil {
		return nil, provider.err
	}
	if provider.callIndex >= len(provider.responses) {
		return nil, errors.New("no more mock responses")
	}
	response := provider.responses[provider.callIndex]
	provider.callIndex++
	return response, nil
}

func (provider *mockProvider) IsStopMessage(response *ai.ChatResponse) bool {
	return len(response.ToolCalls) == 0
}

func (provider *mockProvider) WithAPIKey(_ string) ai.Provider  { return provider }
func (provider *mockProvider) WithBaseURL(_ string) ai.Provider { return provider }
func (provider *mockProvider) WithHttpClient(_ *http.Client) ai.Provider {
	return provider
}

// toolCall builds an assistant tool-call request for tests.
func toolCall(id, name, arguments string) ai.ToolCall {
	return ai.ToolCall{
		ID:   id,
		Type: "function",
		Function: ai.ToolCallFunction{
			Name:      name,
			Arguments: arguments,
		},
	}
}

func newMathAgent(t *testing.T, provider ai.Provider) *Agent {
	t.Helper()

	mathAgent, err := New(Config{
		Provider: provider,
		Catalog:  tool.NewCatalogWithTools(arithmetic.Tools()...),
	})
	if err != nil {
		t.Fatalf("agent creation failed: %v", err)
	}
	return mathAgent
}

// --- End-to-End Scenarios ---

func TestAgentMultiplyThenAdd(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{toolCall("call_1", "multiply", `{"a":12,"b":5}`)}, FinishReason: "tool_calls"},
			{ToolCalls: []ai.ToolCall{toolCall("call_2", "add", `{"a":60,"b":15}`)}, FinishReason: "tool_calls"},
			{Content: "The result is 75.", FinishReason: "stop"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	answer, err := mathAgent.Run(context.Background(), "What is the result of multiplying 12 by 5, and then adding 15 to that?")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if answer != "The result is 75." {
		t.Errorf("unexpected final answer: %q", answer)
	}

	if len(provider.requests) != 3 {
		t.Fatalf("expected 3 provider requests, got %d", len(provider.requests))
	}

	// Each request must carry the full history accumulated so far:
	// 1 (user), 3 (user, assistant, tool), 5 (.., assistant, tool).
	wantLengths := []int{1, 3, 5}
	for index, request := range provider.requests {
		if len(request.Messages) != wantLengths[index] {
			t.Errorf("request %d: expected %d messages, got %d", index, wantLengths[index], len(request.Messages))
		}
	}

	// The second request's tool result must carry the multiply output (60)
	// paired with the originating call ID.
	toolMessage := provider.requests[1].Messages[2]
	if toolMessage.Role != ai.RoleTool {
		t.Fatalf("expected tool message, got role %q", toolMessage.Role)
	}
	if toolMessage.ToolCallID != "call_1" {
		t.Errorf("tool result not paired with call_1: %q", toolMessage.ToolCallID)
	}
	if toolMessage.Name != "multiply" {
		t.Errorf("tool result name: expected multiply, got %q", toolMessage.Name)
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Result float64 `json:"result"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(toolMessage.Content), &envelope); err != nil {
		t.Fatalf("tool result is not valid JSON: %v", err)
	}
	if !envelope.Success {
		t.Error("tool result envelope not marked successful")
	}
	if envelope.Data.Result != 60 {
		t.Errorf("multiply result: expected 60, got %v", envelope.Data.Result)
	}
}

func TestAgentPlainGreetingEndsAfterOneTurn(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{Content: "Hello! How can I help you today?", FinishReason: "stop"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	loop, err := mathAgent.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}

	ctx := context.Background()
	finalState, err := loop.Execute(ctx, Seed("Hello"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	messages, err := finalState.Messages(ctx)
	if err != nil {
		t.Fatalf("reading state failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("expected exactly 2 messages (user + assistant), got %d", len(messages))
	}
	if len(provider.requests) != 1 {
		t.Errorf("expected a single provider request, got %d", len(provider.requests))
	}
}

func TestAgentParallelToolCallsExecuteInListedOrder(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{
				toolCall("call_1", "multiply", `{"a":3,"b":4}`),
				toolCall("call_2", "add", `{"a":1,"b":2}`),
			}, FinishReason: "tool_calls"},
			{Content: "Done.", FinishReason: "stop"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	loop, err := mathAgent.Graph()
	if err != nil {
		t.Fatalf("graph build failed: %v", err)
	}

	ctx := context.Background()
	finalState, err := loop.Execute(ctx, Seed("both please"))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	messages, err := finalState.Messages(ctx)
	if err != nil {
		t.Fatalf("reading state failed: %v", err)
	}

	// user, assistant(2 calls), tool, tool, assistant
	if len(messages) != 5 {
		t.Fatalf("expected 5 messages, got %d", len(messages))
	}
	if messages[2].ToolCallID != "call_1" || messages[2].Name != "multiply" {
		t.Errorf("first tool result out of order: %+v", messages[2])
	}
	if messages[3].ToolCallID != "call_2" || messages[3].Name != "add" {
		t.Errorf("second tool result out of order: %+v", messages[3])
	}
}

// --- Failure Modes ---

func TestAgentUnknownToolFailsRun(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{toolCall("call_1", "subtract", `{"a":1,"b":2}`)}, FinishReason: "tool_calls"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	_, err := mathAgent.Run(context.Background(), "subtract 2 from 1")
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got: %v", err)
	}
}

func TestAgentDivideByZeroFailsRun(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{toolCall("call_1", "divide", `{"a":1,"b":0}`)}, FinishReason: "tool_calls"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	_, err := mathAgent.Run(context.Background(), "divide 1 by 0")
	if !errors.Is(err, arithmetic.ErrDivideByZero) {
		t.Errorf("expected ErrDivideByZero, got: %v", err)
	}
}

func TestAgentInvalidToolArgumentsFailRun(t *testing.T) {
	provider := &mockProvider{
		responses: []*ai.ChatResponse{
			{ToolCalls: []ai.ToolCall{toolCall("call_1", "multiply", `{"a":12}`)}, FinishReason: "tool_calls"},
		},
	}

	mathAgent := newMathAgent(t, provider)

	_, err := mathAgent.Run(context.Background(), "multiply 12 by nothing")
	if err == nil {
		t.Fatal("expected validation error for missing argument, got nil")
	}
}

func TestAgentProviderErrorFailsRun(t *testing.T) {
	providerError := errors.New("upstream unavailable")
	provider := &mockProvider{err: providerError}

	mathAgent := newMathAgent(t, provider)

	_, err := mathAgent.Run(context.Background(), "Hello")
	if !errors.Is(err, providerError) {
		t.Errorf("expected wrapped provider error, got: %v", err)
	}
}

func TestAgentMaxTurnsGuard(t *testing.T) {
	// The model keeps asking for the same tool forever; the guard must stop it.
	looping := &loopingProvider{}

	mathAgent, err := New(Config{
		Provider: looping,
		Catalog:  tool.NewCatalogWithTools(arithmetic.Tools()...),
		MaxTurns: 3,
	})
	if err != nil {
		t.Fatalf("agent creation failed: %v", err)
	}

	_, err = mathAgent.Run(context.Background(), "loop forever")
	if !errors.Is(err, graph.ErrMaxTurnsExceeded) {
		t.Errorf("expected ErrMaxTurnsExceeded, got: %v", err)
	}
}

// loopingProvider always requests another tool call.
type loopingProvider struct{}

var _ ai.Provider = (*loopingProvider)(nil)

func (provider *loopingProvider) SendMessage(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	return &ai.ChatResponse{
		ToolCalls:    []ai.ToolCall{toolCall("call_n", "add", `{"a":1,"b":1}`)},
		FinishReason: "tool_calls",
	}, nil
}

func (provider *loopingProvider) IsStopMessage(_ *ai.ChatResponse) bool { return false }

func (provider *loopingProvider) WithAPIKey(_ string) ai.Provider { return provider }

func (provider *loopingProvider) WithBaseURL(_ string) ai.Provider { return provider }

func (provider *loopingProvider) WithHttpClient(_ *http.Client) ai.Provider { return provider }

// --- Router ---

func TestToolsCondition(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		messages []ai.Message
		want     string
	}{
		{
			name:     "empty state ends",
			messages: nil,
			want:     graph.End,
		},
		{
			name:     "user message ends",
			messages: []ai.Message{{Role: ai.RoleUser, Content: "hi"}},
			want:     graph.End,
		},
		{
			name:     "assistant without tool calls ends",
			messages: []ai.Message{{Role: ai.RoleAssistant, Content: "hello"}},
			want:     graph.End,
		},
		{
			name: "assistant with tool calls routes to tools",
			messages: []ai.Message{{
				Role:      ai.RoleAssistant,
				ToolCalls: []ai.ToolCall{toolCall("call_1", "add", `{"a":1,"b":2}`)},
			}},
			want: NodeTools,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			state := newTestState(t, test.messages)

			next, err := ToolsCondition(ctx, state)
			if err != nil {
				t.Fatalf("router failed: %v", err)
			}
			if next != test.want {
				t.Errorf("expected route %q, got %q", test.want, next)
			}
		})
	}
}

// newTestState builds a State pre-populated with the given messages by
// running them through a single silent graph step.
func newTestState(t *testing.T, messages []ai.Message) *graph.State {
	t.Helper()

	loop, err := graph.NewBuilder().
		AddNode("noop", graph.NodeExecutorFunc(func(_ context.Context, _ *graph.State) (*graph.Delta, error) {
			return nil, nil
		})).
		AddEdge("noop", graph.End).
		SetEntryPoint("noop").
		Build()
	if err != nil {
		t.Fatalf("state setup failed: %v", err)
	}

	state, err := loop.Execute(context.Background(), messages)
	if err != nil {
		t.Fatalf("state setup failed: %v", err)
	}
	return state
}

func TestNewRequiresProvider(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing provider, got nil")
	}
}
