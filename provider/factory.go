package provider

import (
	"fmt"

	"dukaan/config"
	"dukaan/model"
)

// NewProvider creates a provider from configuration. It dispatches on
// Config.Type and returns an error for unknown types or when the
// provider-specific constructor fails (missing API key, bad URL).
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts a config provider ID to a factory
// ProviderType. Unknown IDs pass through unchanged so the factory can
// report them.
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic":
		return ProviderTypeAnthropic
	case "ollama":
		return ProviderTypeOllama
	default:
		return ProviderType(id)
	}
}

// InitializeProviders creates every enabled provider from the application
// config, pulling API keys from the credential store. Failures are logged
// and skipped so one misconfigured provider does not keep the app from
// starting; the caller decides what to do when the map comes back empty.
func InitializeProviders(cfg *config.Config) map[string]model.Provider {
	providers := make(map[string]model.Provider)

	for _, providerCfg := range cfg.Providers {
		if !providerCfg.Enabled {
			continue
		}

		apiKey := ""
		if cfg.CredentialStore != nil {
			apiKey = cfg.CredentialStore.Get(providerCfg.ID)
		}

		p, err := NewProvider(Config{
			Type:    MapProviderIDToType(providerCfg.ID),
			BaseURL: providerCfg.BaseURL,
			APIKey:  apiKey,
			Model:   providerCfg.Model,
		})
		if err != nil {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] failed to initialize %s: %v", providerCfg.ID, err)
			}
			continue
		}

		providers[providerCfg.ID] = p
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] initialized %s", providerCfg.ID)
		}
	}

	return providers
}
