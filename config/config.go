package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the changeview configuration
type Config struct {
	TasksDir string `json:"tasks_dir"` // Directory containing recorded task logs
	Watch    bool   `json:"watch"`     // Refresh the panel while the task log grows
	TabWidth int    `json:"tab_width"` // Tab expansion width in the diff view
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		TasksDir: filepath.Join(".changeview", "tasks"),
		Watch:    true,
		TabWidth: 4,
	}
}

// LoadConfig loads configuration from global and local sources
func LoadConfig(workspacePath string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	// Load global config
	globalCfg, err := loadGlobalConfig()
	if err == nil {
		mergeCfg(cfg, globalCfg)
	}

	// Load local config (takes precedence)
	localCfg, err := loadLocalConfig(workspacePath)
	if err == nil {
		mergeCfg(cfg, localCfg)
	}

	return cfg, nil
}

// Get retrieves a configuration value by key
func (c *Config) Get(key string) (interface{}, error) {
	switch key {
	case "tasks_dir":
		return c.TasksDir, nil
	case "watch":
		return c.Watch, nil
	case "tab_width":
		return c.TabWidth, nil
	default:
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by key
func (c *Config) Set(key string, value interface{}) error {
	// Convert value to string (CLI input is always string)
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string value for %s", key)
	}

	switch key {
	case "tasks_dir":
		c.TasksDir = str
		return nil
	case "watch":
		switch str {
		case "true":
			c.Watch = true
		case "false":
			c.Watch = false
		default:
			return fmt.Errorf("expected 'true' or 'false' for watch, got: %s", str)
		}
		return nil
	case "tab_width":
		val, err := strconv.Atoi(str)
		if err != nil || val < 1 {
			return fmt.Errorf("expected positive numeric value for tab_width, got: %s", str)
		}
		c.TabWidth = val
		return nil
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
}

// SaveLocal writes the config to <workspace>/.changeview/config.json
func (c *Config) SaveLocal(workspacePath string) error {
	configDir := filepath.Join(workspacePath, ".changeview")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// loadGlobalConfig loads configuration from ~/.changeview/config.json
func loadGlobalConfig() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(homeDir, ".changeview", "config.json")
	return loadConfigFromFile(configPath)
}

// loadLocalConfig loads configuration from <workspace>/.changeview/config.json
func loadLocalConfig(workspacePath string) (*Config, error) {
	configPath := filepath.Join(workspacePath, ".changeview", "config.json")
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile loads a config from a JSON file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// mergeCfg overlays values from src onto dst
func mergeCfg(dst, src *Config) {
	if src.TasksDir != "" {
		dst.TasksDir = src.TasksDir
	}
	if src.TabWidth != 0 {
		dst.TabWidth = src.TabWidth
	}
	dst.Watch = src.Watch
}
