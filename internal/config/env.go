package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables overriding file settings
const (
	EnvSandboxDir = "ANTIPLAG_SANDBOX_DIR"
	EnvTimeout    = "ANTIPLAG_CHECKER_TIMEOUT"
	EnvAddr       = "ANTIPLAG_ADDR"
	EnvLogLevel   = "ANTIPLAG_LOG_LEVEL"
	// EnvToolPrefix + upper-case language id, e.g. ANTIPLAG_TOOL_CPP="sim_c++ -r4 -s -p"
	EnvToolPrefix = "ANTIPLAG_TOOL_"
)

// LoadDotEnv loads variables from .env files without overriding ones
// already set. Missing files are ignored; a file that exists but does not
// parse is an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with ANTIPLAG_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvSandboxDir); v != "" {
		c.Sandbox.Dir = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		c.Checker.Timeout = Duration(d)
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Server.LogLevel = v
	}
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvToolPrefix) {
			continue
		}
		fields := strings.Fields(value)
		if len(fields) == 0 {
			continue
		}
		if c.Tools == nil {
			c.Tools = make(map[string]ToolConfig)
		}
		lang := strings.ToLower(strings.TrimPrefix(key, EnvToolPrefix))
		c.Tools[lang] = ToolConfig{Command: fields[0], Args: fields[1:]}
	}
	return nil
}
