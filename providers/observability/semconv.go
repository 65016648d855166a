package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "gemini")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier (e.g., "gemini-1.5-flash")
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"

	// AttrLLMTokensTotal is the total number of tokens
	AttrLLMTokensTotal = "llm.tokens.total" // #nosec G101 -- Not a credential, token refers to LLM tokens
)

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolCallID is the model-issued identifier correlating a tool call with its result
	AttrToolCallID = "tool.call_id"

	// AttrToolInput is the tool input (serialized)
	AttrToolInput = "tool.input"

	// AttrToolOutput is the tool output (serialized)
	AttrToolOutput = "tool.output"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"
)

// --- Request/Response Attributes ---

const (
	// AttrRequestMessagesCount is the number of messages in the request
	AttrRequestMessagesCount = "request.messages_count"

	// AttrRequestToolsCount is the number of tools in the request
	AttrRequestToolsCount = "request.tools_count"

	// AttrHTTPMethod is the HTTP request method
	AttrHTTPMethod = "http.method"

	// AttrHTTPURL is the HTTP request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPRequestBodySize is the size of the HTTP request body in bytes
	AttrHTTPRequestBodySize = "http.request.body_size"

	// AttrHTTPResponseBodySize is the size of the HTTP response body in bytes
	AttrHTTPResponseBodySize = "http.response.body_size"
)

// --- Graph Execution Attributes ---

const (
	// AttrGraphNode is the identifier of the node being executed
	AttrGraphNode = "graph.node"

	// AttrGraphTurn is the current assistant turn number
	AttrGraphTurn = "graph.turn"

	// AttrGraphMessagesAppended is the number of messages a step appended
	AttrGraphMessagesAppended = "graph.messages_appended"
)

// --- Memory Attributes ---

const (
	// AttrMemoryMessageRole is the role of a message appended to memory
	AttrMemoryMessageRole = "memory.message.role"

	// AttrMemoryMessageLength is the content length of a message appended to memory
	AttrMemoryMessageLength = "memory.message.length"

	// AttrMemoryTotalMessages is the running total of messages in memory
	AttrMemoryTotalMessages = "memory.total_messages"
)

// --- Status Attributes ---

const (
	// AttrDuration is the wall-clock duration of an operation
	AttrDuration = "duration"

	// AttrStatus is the final status of a span ("ok", "error", "unset")
	AttrStatus = "status"

	// AttrStatusDescription is the optional human-readable status description
	AttrStatusDescription = "status.description"
)

// --- Span Event Names ---

const (
	// EventLLMRequestStart marks the start of an LLM request
	EventLLMRequestStart = "llm.request.start"

	// EventLLMRequestEnd marks the end of an LLM request
	EventLLMRequestEnd = "llm.request.end"

	// EventTokensReceived marks the receipt of token usage information
	EventTokensReceived = "llm.tokens.received" // #nosec G101 -- Not a credential, token refers to LLM tokens

	// EventToolExecutionStart marks the start of a tool execution
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of a tool execution
	EventToolExecutionEnd = "tool.execution.end"

	// EventMemoryAppend marks a message being appended to memory
	EventMemoryAppend = "memory.append"

	// EventMemoryClear marks the memory being cleared
	EventMemoryClear = "memory.clear"

	// EventGraphNodeStart marks the start of a graph node execution
	EventGraphNodeStart = "graph.node.start"

	// EventGraphNodeEnd marks the end of a graph node execution
	EventGraphNodeEnd = "graph.node.end"
)
