// Package config loads the optional llm configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deepnoodle-ai/structure/log"
	"github.com/deepnoodle-ai/structure/providers"
)

// EnvConfigPath names the environment variable holding the config path.
const EnvConfigPath = "LLM_CONFIG"

// Provider is used to configure an LLM provider
type Provider struct {
	Name     string   `yaml:"Name" json:"Name"`
	APIKey   string   `yaml:"APIKey,omitempty" json:"APIKey,omitempty"`
	Endpoint string   `yaml:"Endpoint,omitempty" json:"Endpoint,omitempty"`
	Timeout  Duration `yaml:"Timeout,omitempty" json:"Timeout,omitempty"`
}

// Config represents global configuration settings
type Config struct {
	DefaultModel string     `yaml:"DefaultModel,omitempty" json:"DefaultModel,omitempty"`
	Timeout      Duration   `yaml:"Timeout,omitempty" json:"Timeout,omitempty"`
	MaxTokens    int        `yaml:"MaxTokens,omitempty" json:"MaxTokens,omitempty"`
	LogLevel     string     `yaml:"LogLevel,omitempty" json:"LogLevel,omitempty"`
	Providers    []Provider `yaml:"Providers,omitempty" json:"Providers,omitempty"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	value, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	if value < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", string(text))
	}
	*d = Duration(value)
	return nil
}

// DefaultPath returns ~/.config/llm/config.yaml, or "" if the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "llm", "config.yaml")
}

// Load reads the configuration at path. An empty path falls back to
// $LLM_CONFIG and then DefaultPath. A missing file is only an error when
// the path was given explicitly.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if path == "" {
		return &Config{}, nil
	}
	config, err := ParseFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks field values that parsing cannot.
func (c *Config) Validate() error {
	if c.LogLevel != "" && !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("invalid max tokens: %d", c.MaxTokens)
	}
	seen := map[string]bool{}
	for _, p := range c.Providers {
		if p.Name == "" {
			return errors.New("provider name is required")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate provider: %s", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

// Settings converts the provider entries to provider settings, keyed by
// provider name. API keys may reference environment variables as ${NAME}.
// The global timeout applies to providers without their own.
func (c *Config) Settings(logger log.Logger) map[string]providers.Settings {
	settings := make(map[string]providers.Settings, len(c.Providers))
	for _, p := range c.Providers {
		timeout := time.Duration(p.Timeout)
		if timeout == 0 {
			timeout = time.Duration(c.Timeout)
		}
		settings[p.Name] = providers.Settings{
			APIKey:   expandEnv(p.APIKey),
			Endpoint: expandEnv(p.Endpoint),
			Timeout:  timeout,
			Logger:   logger,
		}
	}
	return settings
}

// expandEnv resolves a value of the form ${NAME}. Other values are
// returned unchanged.
func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error", "none", "off":
		return true
	}
	return false
}
