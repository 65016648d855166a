// Package tool provides the typed tool layer: [Tool] binds a name,
// description, and reflection-derived JSON schemas to a strongly-typed Go
// function, while [Catalog] dispatches model-requested invocations to the
// matching tool by name. Model-supplied arguments are validated against the
// declared parameter schema before the function runs.
package tool
