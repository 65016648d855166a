package arithmetic

import (
	"context"
	"errors"

	"github.com/leofalp/agentgraph/providers/tool"
)

// ErrDivideByZero is returned by [Divide] when the divisor is zero.
// The division tool fails rather than returning IEEE infinity, so the run
// aborts with an explicit error instead of feeding Inf back to the model.
var ErrDivideByZero = errors.New("division by zero")

// Input holds the two operands shared by all arithmetic tools.
// Field names follow the JSON conventions expected by the LLM tool-call schema
// generated from the jsonschema tags.
type Input struct {
	A float64 `json:"a" jsonschema:"description=First operand,required"`
	B float64 `json:"b" jsonschema:"description=Second operand,required"`
}

// Output carries the single numeric result produced by an arithmetic tool.
type Output struct {
	Result float64 `json:"result" jsonschema:"description=The result of the operation"`
}

// NewAddTool returns a [tool.Tool] that computes a + b.
func NewAddTool() *tool.Tool[Input, Output] {
	return tool.NewTool[Input, Output](
		"add",
		Add,
		tool.WithDescription("Adds a and b."),
	)
}

// NewMultiplyTool returns a [tool.Tool] that computes a * b.
func NewMultiplyTool() *tool.Tool[Input, Output] {
	return tool.NewTool[Input, Output](
		"multiply",
		Multiply,
		tool.WithDescription("Multiplies a and b."),
	)
}

// NewDivideTool returns a [tool.Tool] that computes a / b,
// failing with [ErrDivideByZero] when b is zero.
func NewDivideTool() *tool.Tool[Input, Output] {
	return tool.NewTool[Input, Output](
		"divide",
		Divide,
		tool.WithDescription("Divides a by b."),
	)
}

// Tools returns the full arithmetic tool set in a fixed order,
// ready to be registered on a catalog at startup.
func Tools() []tool.GenericTool {
	return []tool.GenericTool{
		NewAddTool(),
		NewMultiplyTool(),
		NewDivideTool(),
	}
}

// Add returns the sum of the two operands.
func Add(_ context.Context, in Input) (Output, error) {
	return Output{Result: in.A + in.B}, nil
}

// Multiply returns the product of the two operands.
func Multiply(_ context.Context, in Input) (Output, error) {
	return Output{Result: in.A * in.B}, nil
}

// Divide returns the quotient of the two operands.
// Returns [ErrDivideByZero] when the divisor is zero.
func Divide(_ context.Context, in Input) (Output, error) {
	if in.B == 0 {
		return Output{}, ErrDivideByZero
	}
	return Output{Result: in.A / in.B}, nil
}
