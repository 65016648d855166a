package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leofalp/agentgraph/providers/ai"
)

// requestToGemini converts an ai.ChatRequest to a Gemini generateContentRequest.
func requestToGemini(request ai.ChatRequest) generateContentRequest {
	req := generateContentRequest{}

	if request.SystemPrompt != "" {
		req.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemPrompt}},
		}
	}

	req.Contents = buildContents(request.Messages)
	req.GenerationConfig = buildGenerationConfig(request.GenerationConfig)

	if len(request.Tools) > 0 {
		req.Tools = buildTools(request.Tools)
	}

	return req
}

// buildContents converts ai.Message slice to Gemini content slice.
// Role mapping: user -> user, assistant -> model, tool -> user with functionResponse
func buildContents(messages []ai.Message) []content {
	var contents []content

	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleUser:
			contents = append(contents, content{
				Role:  "user",
				Parts: []part{{Text: msg.Content}},
			})

		case ai.RoleAssistant:
			c := content{Role: "model"}

			for _, tc := range msg.ToolCalls {
				c.Parts = append(c.Parts, part{
					FunctionCall: &functionCall{
						Name: tc.Function.Name,
						Args: json.RawMessage(tc.Function.Arguments),
					},
				})
			}

			if msg.Content != "" {
				c.Parts = append(c.Parts, part{Text: msg.Content})
			}

			if len(c.Parts) > 0 {
				contents = append(contents, c)
			}

		case ai.RoleTool:
			// Tool responses in Gemini are sent as user role with a functionResponse part
			contents = append(contents, content{
				Role: "user",
				Parts: []part{{
					FunctionResponse: &functionResponse{
						Name:     msg.Name,
						Response: json.RawMessage(msg.Content),
					},
				}},
			})

		case ai.RoleSystem:
			// System messages should go to SystemInstruction, not here.
			// If someone passes a system message in Messages, convert to user message
			contents = append(contents, content{
				Role:  "user",
				Parts: []part{{Text: msg.Content}},
			})
		}
	}

	return contents
}

// buildGenerationConfig converts ai.GenerationConfig to Gemini generationConfig.
func buildGenerationConfig(cfg *ai.GenerationConfig) *generationConfig {
	if cfg == nil {
		return nil
	}

	gc := &generationConfig{}

	if cfg.Temperature > 0 {
		t := float64(cfg.Temperature)
		gc.Temperature = &t
	}

	if cfg.MaxOutputTokens > 0 {
		gc.MaxOutputTokens = &cfg.MaxOutputTokens
	}

	return gc
}

// buildTools converts ai.ToolDescription slice to Gemini tool slice.
// All user-defined functions are grouped into a single functionDeclarations tool.
func buildTools(aiTools []ai.ToolDescription) []tool {
	funcDecls := make([]functionDeclaration, 0, len(aiTools))

	for _, t := range aiTools {
		fd := functionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if t.Parameters != nil {
			paramBytes, err := json.Marshal(t.Parameters)
			if err == nil {
				fd.Parameters = paramBytes
			}
		}
		funcDecls = append(funcDecls, fd)
	}

	return []tool{{FunctionDeclarations: funcDecls}}
}

// geminiToGeneric converts a Gemini generateContentResponse to ai.ChatResponse.
func geminiToGeneric(resp generateContentResponse) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:      fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:   resp.ModelVersion,
		Object:  "chat.completion",
		Created: time.Now().Unix(),
	}

	if len(resp.Candidates) == 0 {
		result.FinishReason = "error"
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			result.FinishReason = "content_filter"
			result.Refusal = resp.PromptFeedback.BlockReason
		}
		return result
	}

	candidate := resp.Candidates[0]
	result.FinishReason = mapFinishReason(candidate.FinishReason)

	if candidate.Content != nil {
		var textParts []string

		for _, p := range candidate.Content.Parts {
			if p.Text != "" {
				textParts = append(textParts, p.Text)
			}

			if p.FunctionCall != nil {
				// Gemini function calls carry no identifier on the wire, so one
				// is minted here. The identifier is the authoritative key used
				// to pair each call with its tool-result message.
				result.ToolCalls = append(result.ToolCalls, ai.ToolCall{
					ID:   "call_" + uuid.NewString(),
					Type: "function",
					Function: ai.ToolCallFunction{
						Name:      p.FunctionCall.Name,
						Arguments: string(p.FunctionCall.Args),
					},
				})
			}
		}

		result.Content = strings.Join(textParts, "\n")
	}

	if len(result.ToolCalls) > 0 && result.FinishReason == "stop" {
		result.FinishReason = "tool_calls"
	}

	if resp.UsageMetadata != nil {
		result.Usage = &ai.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		}
	}

	return result
}

// mapFinishReason converts Gemini finish reason to ai.ChatResponse finish reason.
func mapFinishReason(geminiReason string) string {
	switch geminiReason {
	case "STOP":
		return "stop"
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION":
		return "content_filter"
	default:
		return "stop"
	}
}
