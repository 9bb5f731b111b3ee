package model

import "time"

// Message represents a chat message in the conversation.
//
// Roles follow the chat-completions convention: "system", "user", "assistant"
// and "tool". An assistant message may carry ToolCalls with empty Content; a
// tool message carries the JSON-serialized result of one executed call and
// must reference the requesting call through ToolCallID - the model API
// rejects mismatched correlation.
type Message struct {
	Role       string
	Content    string
	Rendered   string // Cached rendered markdown (UI layer only)
	ToolCalls  []ToolCall
	ToolCallID string // tool role: id of the call this result answers
	ToolName   string // tool role: name of the executed tool
	Timestamp  time.Time
}

// ToolCall is a structured request emitted by the language model asking the
// orchestrator to invoke a named tool with given arguments.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}
