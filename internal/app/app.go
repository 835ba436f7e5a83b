package app

import (
	"context"
	"fmt"

	"github.com/applywise/applywise-cli/internal/api"
	"github.com/applywise/applywise-cli/internal/cache"
	"github.com/applywise/applywise-cli/internal/config"
)

// App is the dependency container for the CLI application
type App struct {
	Config *config.Config
	API    *api.Client
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	// Initialize config
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	// Open the local cache database
	if err := cache.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	client := api.NewClient(config.AppConfig.BaseURL, config.AppConfig.APIToken)

	return &App{
		Config: config.AppConfig,
		API:    client,
	}, nil
}

// Close closes all resources
func (a *App) Close() error {
	return cache.Close()
}
