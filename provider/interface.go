// Package provider implements the LLM backends the assistant can talk to.
//
// Dukaan supports multiple providers (OpenAI, Anthropic, local Ollama)
// behind the model.Provider interface. The interface itself lives in the
// model package to avoid import cycles: implementations here import model,
// and the assistant orchestrator uses the interface without importing any
// provider package.
//
// The provider layer owns all type conversions between dukaan's
// provider-agnostic message types and each SDK's wire types, including the
// tool-call transcript shapes (assistant tool_calls messages and tool-role
// result messages correlated by call id). See conversions.go.
package provider

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOllama    ProviderType = "ollama"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}
