package tool

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/agentgraph/internal/jsonschema"
)

type greetInput struct {
	Name   string `json:"name" jsonschema:"description=Who to greet,required"`
	Polite bool   `json:"polite,omitempty"`
}

type greetOutput struct {
	Greeting string `json:"greeting"`
}

func greet(_ context.Context, in greetInput) (greetOutput, error) {
	greeting := "hi " + in.Name
	if in.Polite {
		greeting = "good day, " + in.Name
	}
	return greetOutput{Greeting: greeting}, nil
}

func TestNewToolDerivesSchemas(t *testing.T) {
	greeter := NewTool("greet", greet, WithDescription("Greets someone."))

	info := greeter.ToolInfo()
	if info.Name != "greet" {
		t.Errorf("expected name greet, got %q", info.Name)
	}
	if info.Description != "Greets someone." {
		t.Errorf("unexpected description: %q", info.Description)
	}
	if info.Parameters == nil || info.Parameters.Type != "object" {
		t.Fatalf("expected object parameter schema, got %+v", info.Parameters)
	}

	nameSchema, exists := info.Parameters.Properties["name"]
	if !exists {
		t.Fatal("schema missing property name")
	}
	if nameSchema.Type != "string" {
		t.Errorf("name property: expected string, got %q", nameSchema.Type)
	}
	if nameSchema.Description != "Who to greet" {
		t.Errorf("name property description: %q", nameSchema.Description)
	}

	required := strings.Join(info.Parameters.Required, ",")
	if !strings.Contains(required, "name") {
		t.Errorf("name should be required, got %q", required)
	}
	if strings.Contains(required, "polite") {
		t.Errorf("polite should not be required (omitempty), got %q", required)
	}
}

func TestCallSuccess(t *testing.T) {
	greeter := NewTool("greet", greet)

	output, err := greeter.Call(context.Background(), `{"name":"Ada","polite":true}`)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !strings.Contains(output, "good day, Ada") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestCallRejectsMissingRequiredArgument(t *testing.T) {
	greeter := NewTool("greet", greet)

	_, err := greeter.Call(context.Background(), `{"polite":true}`)
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	var validationError *jsonschema.ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("expected *jsonschema.ValidationError, got: %v", err)
	}
	if validationError.Property != "name" {
		t.Errorf("expected property name, got %q", validationError.Property)
	}
}

func TestCallRejectsWrongArgumentType(t *testing.T) {
	greeter := NewTool("greet", greet)

	_, err := greeter.Call(context.Background(), `{"name":42}`)
	if err == nil {
		t.Fatal("expected validation error for wrong type, got nil")
	}
}

func TestCallPropagatesFunctionError(t *testing.T) {
	functionError := errors.New("nothing to do")
	failing := NewTool("fail", func(_ context.Context, _ greetInput) (greetOutput, error) {
		return greetOutput{}, functionError
	})

	_, err := failing.Call(context.Background(), `{"name":"Ada"}`)
	if !errors.Is(err, functionError) {
		t.Errorf("expected function error, got: %v", err)
	}
}
