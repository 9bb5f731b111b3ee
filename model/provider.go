// Package model holds dukaan's provider-agnostic conversation types.
//
// The Provider interface lives here (not in the provider package) to avoid
// import cycles: provider implementations import model, and the assistant
// orchestrator uses the interface without importing any provider package.
package model

import (
	"context"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Provider abstracts LLM provider implementations (OpenAI-compatible,
// Anthropic, Ollama) behind dukaan's own message types.
//
// Tool calls surfaced through StreamCallback always carry an ID so tool
// results can be correlated back into the transcript; providers whose wire
// format has no call ids (Ollama) synthesize one.
type Provider interface {
	// Chat sends messages and streams the response back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// ChatWithTools sends messages with the given tool catalog attached.
	// Content chunks stream through the callback as they arrive; completed
	// tool calls are delivered through the callback once fully parsed.
	ChatWithTools(ctx context.Context, messages []Message, tools []mcptypes.Tool, callback StreamCallback) error

	// ListModels returns available models for this provider.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// GetModel returns the currently selected model name used for API calls.
	GetModel() string

	// GetDisplayName returns the model name formatted for UI display.
	GetDisplayName() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// StreamCallback is called for each chunk of streamed response.
type StreamCallback func(chunk string, toolCalls []ToolCall) error

// ModelInfo describes a model offered by a provider.
type ModelInfo struct {
	Name         string // Display name
	InternalName string // Full API name
	Size         int64  // Bytes on disk (Ollama only, 0 for cloud providers)
	Provider     string // Provider ID: "openai", "anthropic", "ollama"
}
