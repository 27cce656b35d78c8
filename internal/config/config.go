// Package config loads gi's user configuration from a TOML file.
//
// The config file lives at $XDG_CONFIG_HOME/gi/config.toml (falling back to
// ~/.config/gi/config.toml). Every field is optional; missing fields keep
// their defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/sempervent/gi/internal/fetch"
)

// Config holds the user-tunable settings for gi.
type Config struct {
	// SourceURL is the base URL raw templates are fetched from.
	SourceURL string `toml:"source_url"`
	// CacheMaxAgeHours is how long cached files stay fresh. Zero keeps the
	// 24 hour default.
	CacheMaxAgeHours int `toml:"cache_max_age_hours"`
	// DefaultTemplates are merged into every generated file in addition
	// to whatever the command line or auto-detection requests.
	DefaultTemplates []string `toml:"default_templates"`
	// AutoDetect enables OS and toolchain detection when no templates are
	// specified.
	AutoDetect bool `toml:"auto_detect"`

	Output OutputConfig `toml:"output"`
	Fetch  FetchConfig  `toml:"fetch"`
}

// OutputConfig controls how the combined .gitignore is written.
type OutputConfig struct {
	// Header prepends a generated-by banner to the output.
	Header bool `toml:"header"`
}

// FetchConfig tunes network behavior.
type FetchConfig struct {
	// Concurrency bounds how many templates download in parallel.
	Concurrency int `toml:"concurrency"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		SourceURL:        fetch.DefaultBaseURL,
		CacheMaxAgeHours: 24,
		AutoDetect:       true,
		Output:           OutputConfig{Header: true},
		Fetch: FetchConfig{
			Concurrency:    4,
			TimeoutSeconds: 30,
		},
	}
}

// Load reads and parses the config file at path. Fields absent from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadOrDefault loads the config from the default path, or returns defaults
// when no config file exists.
func LoadOrDefault() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.toml")
}

// AliasesPath returns the location of the user alias overrides file.
func AliasesPath() string {
	return filepath.Join(configDir(), "aliases.yaml")
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "gi")
	}
	return filepath.Join(home, ".config", "gi")
}

// MaxAge converts the cache age setting to a duration.
func (c *Config) MaxAge() time.Duration {
	return time.Duration(c.CacheMaxAgeHours) * time.Hour
}

// Timeout converts the fetch timeout setting to a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// normalize clamps nonsense values back to defaults.
func (c *Config) normalize() {
	def := Default()
	if c.SourceURL == "" {
		c.SourceURL = def.SourceURL
	}
	if c.CacheMaxAgeHours < 0 {
		c.CacheMaxAgeHours = def.CacheMaxAgeHours
	}
	if c.Fetch.Concurrency < 1 {
		c.Fetch.Concurrency = def.Fetch.Concurrency
	}
	if c.Fetch.TimeoutSeconds < 1 {
		c.Fetch.TimeoutSeconds = def.Fetch.TimeoutSeconds
	}
}
