package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"dukaan/assistant"
	"dukaan/backend"
	"dukaan/config"
	"dukaan/provider"
	"dukaan/storage"
	"dukaan/ui"
)

const Version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	profiles, err := config.LoadProfileStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to load profile: %v\n", err)
		os.Exit(1)
	}

	authSession, err := config.LoadAuthSession(cfg.DataDir(), cfg.CredentialStore)
	if err != nil {
		fmt.Printf("Failed to load auth session: %v\n", err)
		os.Exit(1)
	}

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	snapshots, err := storage.NewSnapshotStore(cfg.DataDir())
	if err != nil {
		fmt.Printf("Failed to initialize snapshot cache: %v\n", err)
		os.Exit(1)
	}
	defer snapshots.Close()

	toolClient := backend.NewClient(cfg.ToolServiceURL, authSession)
	dataClient := backend.NewDataClient(cfg.DataServiceURL, authSession)

	executor := assistant.NewExecutor(toolClient, dataClient, profiles, snapshots)

	providers := provider.InitializeProviders(cfg)
	active, ok := providers[cfg.DefaultProvider]
	if !ok {
		fmt.Printf("No usable provider configured (default %q).\n", cfg.DefaultProvider)
		fmt.Println("Add an API key to your credentials file and enable the provider in config.toml.")
		os.Exit(1)
	}
	if cfg.DefaultModel != "" {
		active.SetModel(cfg.DefaultModel)
	}

	orchestrator := assistant.NewOrchestrator(active, executor, profiles, authSession)

	p := tea.NewProgram(
		ui.NewChatView(orchestrator, sessionStorage, profiles, active, config.GetCacheDir()),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running dukaan: %v\n", err)
		os.Exit(1)
	}
}
