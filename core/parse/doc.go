// Package parse converts LLM-supplied string content into typed Go values,
// tolerating the malformed JSON that hosted models occasionally produce by
// repairing the document and retrying.
package parse
