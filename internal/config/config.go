// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Scryfall API client configuration
	Scryfall ScryfallConfig `toml:"scryfall"`

	// Deck generator (LLM) configuration
	Generator GeneratorConfig `toml:"generator"`

	// Local storage configuration
	Storage StorageConfig `toml:"storage"`

	// HTTP API server configuration
	Server ServerConfig `toml:"server"`

	// Deck list directory watcher configuration
	Watcher WatcherConfig `toml:"watcher"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// ScryfallConfig contains card data API settings.
type ScryfallConfig struct {
	BaseURL    string `toml:"base_url"`    // Empty = production API
	UserAgent  string `toml:"user_agent"`  // User-Agent header for API requests
	StaleAfter string `toml:"stale_after"` // Card cache freshness window (e.g. "168h")
}

// GeneratorConfig contains LLM settings for deck assembly.
type GeneratorConfig struct {
	BaseURL          string `toml:"base_url"`          // Ollama endpoint
	Model            string `toml:"model"`             // Model name
	InferenceTimeout string `toml:"inference_timeout"` // Per-request generation timeout
	AutoPullModel    bool   `toml:"auto_pull_model"`   // Pull the model if missing
}

// StorageConfig contains database settings.
type StorageConfig struct {
	DatabasePath string `toml:"database_path"` // Empty = <config dir>/decks.db
	AutoMigrate  bool   `toml:"auto_migrate"`  // Run schema migrations on open
}

// ServerConfig contains HTTP API settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// WatcherConfig contains deck list directory watcher settings.
type WatcherConfig struct {
	Enabled   bool   `toml:"enabled"`
	Directory string `toml:"directory"` // Directory holding deck list files
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool   `toml:"debug_mode"` // Enable debug logging
	UserID    string `toml:"user_id"`    // Owner id for saved decks
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scryfall: ScryfallConfig{
			BaseURL:    "",
			UserAgent:  "mtgdeck-builder/1.0",
			StaleAfter: "168h",
		},
		Generator: GeneratorConfig{
			BaseURL:          "http://localhost:11434",
			Model:            "qwen3:8b",
			InferenceTimeout: "120s",
			AutoPullModel:    true,
		},
		Storage: StorageConfig{
			DatabasePath: "",
			AutoMigrate:  true,
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8787,
		},
		Watcher: WatcherConfig{
			Enabled:   false,
			Directory: "",
		},
		App: AppConfig{
			DebugMode: false,
			UserID:    "local",
		},
	}
}

// Dir returns the configuration directory, creating it if needed.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".mtgdeck")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return configDir, nil
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from disk. Returns the default config
// if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Scryfall.StaleAfter); err != nil {
		return fmt.Errorf("invalid stale_after %q: %w", c.Scryfall.StaleAfter, err)
	}
	if _, err := time.ParseDuration(c.Generator.InferenceTimeout); err != nil {
		return fmt.Errorf("invalid inference_timeout %q: %w", c.Generator.InferenceTimeout, err)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Watcher.Enabled && c.Watcher.Directory == "" {
		return fmt.Errorf("watcher enabled but no directory configured")
	}
	return nil
}

// GetStaleAfter returns the card cache freshness window as a duration.
func (c *Config) GetStaleAfter() (time.Duration, error) {
	return time.ParseDuration(c.Scryfall.StaleAfter)
}

// GetInferenceTimeout returns the generation timeout as a duration.
func (c *Config) GetInferenceTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Generator.InferenceTimeout)
}

// DatabasePath resolves the database path, defaulting to the config
// directory.
func (c *Config) DatabasePath() (string, error) {
	if c.Storage.DatabasePath != "" {
		return c.Storage.DatabasePath, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "decks.db"), nil
}

// ServerAddr returns the host:port address for the API server.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
