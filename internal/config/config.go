package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir  string `json:"data_dir"`
	LogLevel string `json:"log_level"`
	API      struct {
		BaseURL                string `json:"base_url"`
		AuthTimeoutSeconds     int    `json:"auth_timeout_seconds"`
		GenerateTimeoutSeconds int    `json:"generate_timeout_seconds"`
	} `json:"api"`
	Download struct {
		Dir string `json:"dir"`
	} `json:"download"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir:  filepath.Join(os.Getenv("HOME"), ".unilogos"),
		LogLevel: "info",
	}
	cfg.API.BaseURL = "http://localhost:3000"
	cfg.API.AuthTimeoutSeconds = 15
	cfg.API.GenerateTimeoutSeconds = 60
	cfg.Download.Dir = "."

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := Save(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if baseURL := os.Getenv("UNILOGOS_BASE_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if dataDir := os.Getenv("UNILOGOS_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}

	return cfg, nil
}

// Save writes the config atomically, creating the parent directory when
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}
