// Package jsonschema provides reflection-based JSON Schema generation for tool
// parameter and output types, plus validation of model-supplied argument
// objects against a generated schema before they reach a tool function.
package jsonschema
