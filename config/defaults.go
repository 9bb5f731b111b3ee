package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/dukaan",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Backend: BackendConfig{
			ToolServiceURL: "https://api.dukaan.app/tools",
			DataServiceURL: "https://api.dukaan.app/data",
		},
		DefaultProvider: "openai",
		DefaultModel:    "gpt-4o-mini",
		Security: SecurityConfig{
			Method: "plaintext",
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Dukaan System Configuration
# Location: ~/.config/dukaan/settings.toml
# This file uses TOML format: https://toml.io

# Directory where sessions, profile and user config are stored
data_directory = "~/.local/share/dukaan"
`
}

func GenerateUserConfigTemplate() string {
	return `# Dukaan User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

[backend]
# Remote tool-execution endpoint (inventory, invoices, QR, reports)
tool_service_url = "https://api.dukaan.app/tools"

# Remote data service (products and invoices, read-only queries)
data_service_url = "https://api.dukaan.app/data"

# Assistant model provider: "openai", "anthropic" or "ollama"
default_provider = "openai"

# Model used for new conversations
default_model = "gpt-4o-mini"

[security]
# How API keys and the backend token are stored: "plaintext" or "ssh_key"
method = "plaintext"

# Path to SSH private key (ssh_key method only)
# ssh_key_path = "~/.ssh/id_ed25519"
`
}
