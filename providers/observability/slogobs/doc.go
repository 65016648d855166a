// Package slogobs provides an observability.Provider implementation backed by
// the standard library's log/slog package. Spans are rendered as structured
// start/end/event log lines, which keeps the dependency surface minimal while
// still giving full visibility into provider requests, tool executions, and
// graph steps.
package slogobs
