package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dstrand/photoweb/internal/services"
	"github.com/dstrand/photoweb/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := ""
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
			configPath = "config.toml"
		}
	}

	baseURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
	apiService := services.NewAPIService(baseURL, nil)
	if token, err := loadSessionToken(); err == nil && token != "" {
		apiService.SetSession(token)
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        apiService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "photoweb",
		Usage:    "Photo library web service & management CLI",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// sessionTokenPath is where 'photoweb login' persists the session token.
func sessionTokenPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".photoweb", "session"), nil
}

func loadSessionToken() (string, error) {
	path, err := sessionTokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
