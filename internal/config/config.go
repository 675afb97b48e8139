// Package config provides configuration for the gones host commands.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds settings for the host commands: nothing the core itself
// consumes. cmd/gones reads Window and ROM; cmd/debugger does not load a
// config.
type Config struct {
	Window WindowConfig `json:"window"`
	ROM    ROMConfig    `json:"rom"`
	Debug  DebugConfig  `json:"debug"`

	configPath string
	loaded     bool
}

// WindowConfig is the ebiten host's display scaling.
type WindowConfig struct {
	Scale int `json:"scale"` // multiplier applied to the HUD's base resolution
}

// ROMConfig is where the host looks for the image to load by default.
type ROMConfig struct {
	Path string `json:"path"`
}

// DebugConfig holds execution-trace and logging settings. They are
// loaded and saved with the rest of the file; neither host command reads
// them.
type DebugConfig struct {
	TraceOnHalt bool   `json:"trace_on_halt"`
	LogLevel    string `json:"log_level"` // "DEBUG", "INFO", "WARN", "ERROR"
}

// NewConfig returns the default configuration.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{Scale: 2},
		ROM:    ROMConfig{Path: ""},
		Debug:  DebugConfig{TraceOnHalt: true, LogLevel: "INFO"},
	}
}

// LoadFromFile loads configuration from a JSON file, writing the
// default configuration to path first if it doesn't exist yet.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.validate()
	c.loaded = true
	return nil
}

// SaveToFile saves configuration to a JSON file, creating its directory
// if needed.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	c.configPath = path
	return nil
}

// Save writes back to the path this config was last loaded from or
// saved to.
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config file path set")
	}
	return c.SaveToFile(c.configPath)
}

func (c *Config) validate() {
	if c.Window.Scale <= 0 {
		c.Window.Scale = 1
	}
}

// IsLoaded reports whether the configuration was loaded from an
// existing file rather than just defaulted.
func (c *Config) IsLoaded() bool {
	return c.loaded
}

// GetConfigPath returns the path this config was loaded from or saved
// to, or "" if neither has happened yet.
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return "./config/gones.json"
}
