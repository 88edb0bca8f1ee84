// Package app wires configuration, storage, clients, and services into
// the shared application core used by cmd/wealthflow-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/10543610-ai/WealthFlow-AI/internal/clients/gemini"
	"github.com/10543610-ai/WealthFlow-AI/internal/common"
	"github.com/10543610-ai/WealthFlow-AI/internal/interfaces"
	"github.com/10543610-ai/WealthFlow-AI/internal/services/advisor"
	"github.com/10543610-ai/WealthFlow-AI/internal/session"
	"github.com/10543610-ai/WealthFlow-AI/internal/storage/surrealdb"
)

// App holds all initialized services, clients, and session state.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	Storage      interfaces.StorageManager
	GeminiClient interfaces.GeminiClient
	Advisor      interfaces.AdvisorService
	Sessions     *session.Manager
	StartupTime  time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, WEALTHFLOW_CONFIG, then
	// binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("WEALTHFLOW_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "wealthflow.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/wealthflow.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := surrealdb.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	ctx := context.Background()

	var geminiClient interfaces.GeminiClient
	if config.Advisor.APIKey != "" {
		client, err := gemini.NewClient(ctx, config.Advisor.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Advisor.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client initialization failed - advisor falls back to fixed messages")
		} else {
			geminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - advisor falls back to fixed messages")
	}

	a := &App{
		Config:       config,
		Logger:       logger,
		Storage:      storageManager,
		GeminiClient: geminiClient,
		Advisor:      advisor.NewService(geminiClient, config, logger),
		Sessions:     session.NewManager(storageManager.AggregateStore(), logger, config.Sync.GetDebounce()),
		StartupTime:  startupStart,
	}

	logger.Info().
		Str("environment", config.Environment).
		Dur("startup", time.Since(startupStart)).
		Msg("Application initialized")

	return a, nil
}

// Close flushes live sessions and releases resources.
func (a *App) Close() error {
	a.Sessions.FlushAll()

	if a.GeminiClient != nil {
		if err := a.GeminiClient.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close Gemini client")
		}
	}
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
