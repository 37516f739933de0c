package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the antiplag configuration
type Config struct {
	// Sandbox settings
	Sandbox SandboxConfig `json:"sandbox" yaml:"sandbox" toml:"sandbox"`

	// External checker settings
	Checker CheckerConfig `json:"checker" yaml:"checker" toml:"checker"`

	// Tool presets keyed by language id
	Tools map[string]ToolConfig `json:"tools" yaml:"tools" toml:"tools"`

	// HTTP server settings
	Server ServerConfig `json:"server" yaml:"server" toml:"server"`

	// Output settings
	Output OutputConfig `json:"output" yaml:"output" toml:"output"`
}

// SandboxConfig controls where sandbox files are written
type SandboxConfig struct {
	// Scratch directory; must exist and be writable
	Dir string `json:"dir" yaml:"dir" toml:"dir"`
}

// CheckerConfig bounds external detector processes
type CheckerConfig struct {
	// Timeout per detector invocation, e.g. "30s"
	Timeout Duration `json:"timeout" yaml:"timeout" toml:"timeout"`
}

// ToolConfig is the command line used for one tool-family language
type ToolConfig struct {
	Command string   `json:"command" yaml:"command" toml:"command"`
	Args    []string `json:"args" yaml:"args" toml:"args"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	// Default output format (text, json, yaml)
	Format string `json:"format" yaml:"format" toml:"format"`

	// Whether to colorize output
	Color bool `json:"color" yaml:"color" toml:"color"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sandbox: SandboxConfig{
			Dir: os.TempDir(),
		},
		Checker: CheckerConfig{
			Timeout: Duration(30 * time.Second),
		},
		Tools: map[string]ToolConfig{
			"cpp": {
				Command: "sim_c++",
				Args:    []string{"-r4", "-s", "-p"},
			},
			"java": {
				Command: "sim_java",
				Args:    []string{"-r4", "-s", "-p"},
			},
		},
		Server: ServerConfig{
			Addr:     ":8080",
			LogLevel: "INFO",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
	}
}

// LoadConfig loads configuration from a file. The format follows the file
// extension: .json, .yaml/.yml or .toml.
func LoadConfig(configPath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If no config file specified, try to find one
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config file, return default
	if configPath == "" {
		return config, nil
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := decode(configPath, data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func decode(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	case ".toml":
		return toml.Unmarshal(data, config)
	default:
		return json.Unmarshal(data, config)
	}
}

// SaveConfig saves configuration to a file, as YAML unless the path ends in .json
func SaveConfig(config *Config, configPath string) error {
	var (
		data []byte
		err  error
	)
	if strings.ToLower(filepath.Ext(configPath)) == ".json" {
		data, err = json.MarshalIndent(config, "", "  ")
	} else {
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks settings the engine cannot run without.
func (c *Config) Validate() error {
	info, err := os.Stat(c.Sandbox.Dir)
	if err != nil {
		return fmt.Errorf("sandbox dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("sandbox dir %s is not a directory", c.Sandbox.Dir)
	}
	for lang, tool := range c.Tools {
		if tool.Command == "" {
			return fmt.Errorf("tool for %s has no command", lang)
		}
	}
	return nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	candidates := []string{
		".antiplag.yaml",
		".antiplag.yml",
		".antiplag.json",
		".antiplag.toml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(homeDir, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// GetConfigPath returns the config file path to use
func GetConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	found := findConfigFile()
	if found != "" {
		return found
	}

	return ".antiplag.yaml"
}
