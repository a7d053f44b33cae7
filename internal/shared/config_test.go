package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./photoweb.db" {
			t.Errorf("expected database path ./photoweb.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Library.Path != "./library.json" {
			t.Errorf("expected library path ./library.json, got %s", config.Library.Path)
		}

		if config.Auth.SessionTTLDays != 14 {
			t.Errorf("expected session ttl 14 days, got %d", config.Auth.SessionTTLDays)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[library]
path = "/photos/library.json"
docs_root = "/photos/docs"
watch = false

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090
rate_limit = 5.0
rate_burst = 10

[auth]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:3000/callback"
rules_path = "/etc/photoweb/roles.csv"
session_ttl_days = 7

[cache]
dir = "/var/cache/photoweb"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Library.Path != "/photos/library.json" {
			t.Errorf("expected library path /photos/library.json, got %s", config.Library.Path)
		}

		if config.Server.Port != 9090 {
			t.Errorf("expected server port 9090, got %d", config.Server.Port)
		}

		if config.Auth.RulesPath != "/etc/photoweb/roles.csv" {
			t.Errorf("expected rules path /etc/photoweb/roles.csv, got %s", config.Auth.RulesPath)
		}

		if config.Cache.Dir != "/var/cache/photoweb" {
			t.Errorf("expected cache dir /var/cache/photoweb, got %s", config.Cache.Dir)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("loading a missing config should fail")
		}
	})
}
