package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func tempConfigPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "config.json")
}

func TestSave_ReloadRoundTrip(t *testing.T) {
	path := tempConfigPath(t)

	original := &Config{
		DataDir:  "/tmp/test-data",
		LogLevel: "debug",
	}
	original.API.BaseURL = "https://api.example.com"
	original.API.AuthTimeoutSeconds = 5
	original.API.GenerateTimeoutSeconds = 120
	original.Download.Dir = "/tmp/posters"

	if err := Save(path, original); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataDir != original.DataDir {
		t.Errorf("DataDir mismatch: %v != %v", loaded.DataDir, original.DataDir)
	}
	if loaded.LogLevel != original.LogLevel {
		t.Errorf("LogLevel mismatch: %v != %v", loaded.LogLevel, original.LogLevel)
	}
	if loaded.API.BaseURL != original.API.BaseURL {
		t.Errorf("API.BaseURL mismatch: %v != %v", loaded.API.BaseURL, original.API.BaseURL)
	}
	if loaded.API.AuthTimeoutSeconds != original.API.AuthTimeoutSeconds {
		t.Errorf("API.AuthTimeoutSeconds mismatch: %v != %v", loaded.API.AuthTimeoutSeconds, original.API.AuthTimeoutSeconds)
	}
	if loaded.API.GenerateTimeoutSeconds != original.API.GenerateTimeoutSeconds {
		t.Errorf("API.GenerateTimeoutSeconds mismatch: %v != %v", loaded.API.GenerateTimeoutSeconds, original.API.GenerateTimeoutSeconds)
	}
	if loaded.Download.Dir != original.Download.Dir {
		t.Errorf("Download.Dir mismatch: %v != %v", loaded.Download.Dir, original.Download.Dir)
	}
}

func TestLoad_WritesDefaults(t *testing.T) {
	path := tempConfigPath(t)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base URL, got %v", cfg.API.BaseURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level, got %v", cfg.LogLevel)
	}
	if cfg.API.AuthTimeoutSeconds != 15 || cfg.API.GenerateTimeoutSeconds != 60 {
		t.Errorf("unexpected default timeouts: %d, %d", cfg.API.AuthTimeoutSeconds, cfg.API.GenerateTimeoutSeconds)
	}

	// Defaults should have been written to disk
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should exist after first Load: %v", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := tempConfigPath(t)
	t.Setenv("UNILOGOS_BASE_URL", "https://override.example.com")
	t.Setenv("UNILOGOS_DATA_DIR", "/tmp/override-data")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.API.BaseURL != "https://override.example.com" {
		t.Errorf("expected env base URL, got %v", cfg.API.BaseURL)
	}
	if cfg.DataDir != "/tmp/override-data" {
		t.Errorf("expected env data dir, got %v", cfg.DataDir)
	}
}

func TestSave_AtomicWrite(t *testing.T) {
	path := tempConfigPath(t)

	cfg := &Config{LogLevel: "info"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify no temp file left behind
	tmpPath := path + ".tmp"
	if _, err := os.Stat(tmpPath); !os.IsNotExist(err) {
		t.Errorf("temp file should not exist after successful save")
	}

	// Verify the file is valid JSON
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved config: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Errorf("saved file is not valid JSON: %v", err)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "config.json")

	cfg := &Config{LogLevel: "warn"}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save should create parent directory, got: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file should exist: %v", err)
	}
}
