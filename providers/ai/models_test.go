package ai

import (
	"encoding/json"
	"testing"
)

func TestChatResponseAsMessage(t *testing.T) {
	response := ChatResponse{
		Content: "working on it",
		ToolCalls: []ToolCall{{
			ID:   "call_1",
			Type: "function",
			Function: ToolCallFunction{
				Name:      "add",
				Arguments: `{"a":1,"b":2}`,
			},
		}},
		FinishReason: "tool_calls",
	}

	message := response.AsMessage()

	if message.Role != RoleAssistant {
		t.Errorf("role: %q", message.Role)
	}
	if message.Content != "working on it" {
		t.Errorf("content: %q", message.Content)
	}
	if len(message.ToolCalls) != 1 || message.ToolCalls[0].ID != "call_1" {
		t.Errorf("tool calls not carried over: %+v", message.ToolCalls)
	}
}

func TestToolResultEnvelope(t *testing.T) {
	success := NewToolResultSuccess(map[string]float64{"result": 60})
	if !success.Success || success.Error != "" {
		t.Errorf("unexpected success envelope: %+v", success)
	}

	encoded, err := success.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(encoded), &decoded); err != nil {
		t.Fatalf("envelope is not valid JSON: %v", err)
	}
	if decoded["success"] != true {
		t.Errorf("success flag: %v", decoded["success"])
	}

	failure := NewToolResultError("tool_not_found", "no such tool")
	if failure.Success {
		t.Error("failure envelope marked successful")
	}
	if failure.Error != "tool_not_found" || failure.Message != "no such tool" {
		t.Errorf("unexpected failure envelope: %+v", failure)
	}
}
