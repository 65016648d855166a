// Package main runs the demonstration agent loop: a Gemini-backed assistant
// with add, multiply, and divide tools, driven by the cyclic message graph.
// Requires the GEMINI_API_KEY environment variable (a .env file is loaded
// automatically when present).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leofalp/agentgraph/patterns/agent"
	"github.com/leofalp/agentgraph/patterns/graph"
	"github.com/leofalp/agentgraph/providers/ai"
	"github.com/leofalp/agentgraph/providers/ai/gemini"
	"github.com/leofalp/agentgraph/providers/observability/slogobs"
	"github.com/leofalp/agentgraph/providers/tool"
	"github.com/leofalp/agentgraph/providers/tool/arithmetic"

	_ "github.com/joho/godotenv/autoload"
)

const demoPrompt = "What is the result of multiplying 12 by 5, and then adding 15 to that?"

func main() {
	if os.Getenv("GEMINI_API_KEY") == "" {
		slog.Error("GEMINI_API_KEY is not set")
		os.Exit(1)
	}

	observer := slogobs.New(
		slogobs.WithFormat(slogobs.GetFormatFromEnv()),
		slogobs.WithLevel(slogobs.GetLogLevelFromEnv()),
	)

	mathAgent, err := agent.New(agent.Config{
		Provider: gemini.New(),
		Catalog:  tool.NewCatalogWithTools(arithmetic.Tools()...),
		Observer: observer,
	})
	if err != nil {
		slog.Error("failed to create agent", "error", err)
		os.Exit(1)
	}

	loop, err := mathAgent.Graph()
	if err != nil {
		slog.Error("failed to build graph", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	stream, err := loop.ExecuteStream(ctx, agent.Seed(demoPrompt))
	if err != nil {
		slog.Error("failed to start run", "error", err)
		os.Exit(1)
	}

	fmt.Printf("User: %s\n\n", demoPrompt)

	for event, err := range stream.Iter() {
		if err != nil {
			slog.Error("run failed", "error", err)
			os.Exit(1)
		}

		switch event.Type {
		case graph.StepEventNode:
			fmt.Printf("--- step %d: %s ---\n", event.Turn, event.Node)
			for _, message := range event.Messages {
				printMessage(message.Role, message.Content, len(message.ToolCalls))
			}
			fmt.Println()
		case graph.StepEventDone:
			fmt.Println("Conversation complete.")
		}
	}
}

// printMessage renders one appended message for the console transcript.
func printMessage(role ai.MessageRole, content string, toolCalls int) {
	label := string(role)
	switch {
	case toolCalls > 0 && content != "":
		fmt.Printf("%s: %s (%d tool calls)\n", label, content, toolCalls)
	case toolCalls > 0:
		fmt.Printf("%s: requested %d tool calls\n", label, toolCalls)
	default:
		fmt.Printf("%s: %s\n", label, content)
	}
}
