package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type BackendConfig struct {
	ToolServiceURL string `toml:"tool_service_url"`
	DataServiceURL string `toml:"data_service_url"`
}

type ProviderConfig struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	BaseURL string `toml:"base_url,omitempty"`
	Model   string `toml:"model,omitempty"`
	Enabled bool   `toml:"enabled"`
}

type SecurityConfig struct {
	Method     string `toml:"method"` // "plaintext" or "ssh_key"
	SSHKeyPath string `toml:"ssh_key_path,omitempty"`
}

type UserConfig struct {
	Backend         BackendConfig    `toml:"backend"`
	DefaultProvider string           `toml:"default_provider"`
	DefaultModel    string           `toml:"default_model"`
	Providers       []ProviderConfig `toml:"providers"`
	Security        SecurityConfig   `toml:"security"`
}

type Config struct {
	DataDirectory   string
	ToolServiceURL  string
	DataServiceURL  string
	DefaultProvider string
	DefaultModel    string
	Providers       []ProviderConfig
	CredentialStore *CredentialStore
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// ProviderBaseURL returns the configured base URL for a provider, or "" when
// the provider should use its built-in default.
func (c *Config) ProviderBaseURL(providerID string) string {
	for _, p := range c.Providers {
		if p.ID == providerID {
			return p.BaseURL
		}
	}
	return ""
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("DUKAAN_TOOL_SERVICE_URL"); url != "" {
		c.ToolServiceURL = url
	}
	if url := os.Getenv("DUKAAN_DATA_SERVICE_URL"); url != "" {
		c.DataServiceURL = url
	}
	if dataDir := os.Getenv("DUKAAN_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if model := os.Getenv("DUKAAN_MODEL"); model != "" {
		c.DefaultModel = model
	}
	if provider := os.Getenv("DUKAAN_PROVIDER"); provider != "" {
		c.DefaultProvider = provider
	}
}

func CheckDebug() bool {
	debug := os.Getenv("DUKAAN_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	logPath := filepath.Join(dataDir, "debug.log")

	// Create debug log with secure permissions (0600 - may contain sensitive debug info)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	// Debug is only set once the logger exists, so call sites may key on
	// either without a nil check racing a failed open.
	Debug = true
	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (DUKAAN_DEBUG=%s) ===", os.Getenv("DUKAAN_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:   "~/.local/share/dukaan",
		DefaultProvider: "openai",
		DefaultModel:    "gpt-4o-mini",
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.ToolServiceURL = userCfg.Backend.ToolServiceURL
	cfg.DataServiceURL = userCfg.Backend.DataServiceURL
	if userCfg.DefaultProvider != "" {
		cfg.DefaultProvider = userCfg.DefaultProvider
	}
	if userCfg.DefaultModel != "" {
		cfg.DefaultModel = userCfg.DefaultModel
	}
	cfg.Providers = userCfg.Providers
	cfg.applyEnvOverrides()

	// Credentials respect the user's security choice (plaintext vs SSH key)
	method := SecurityMethod(userCfg.Security.Method)
	if method == "" {
		method = SecurityPlainText
	}
	store := NewCredentialStore(method, ExpandPath(userCfg.Security.SSHKeyPath))
	if err := store.Load(dataDir); err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	cfg.CredentialStore = store

	return cfg, nil
}
