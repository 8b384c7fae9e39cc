// Package config loads the optional TOML configuration file. Values the
// file leaves out fall back to Defaults; command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/pelletier/go-toml/v2"
)

// Config is the full configuration.
type Config struct {
	OutputDir   string `toml:"output_dir"`
	DefaultSite string `toml:"default_site"`
	Format      string `toml:"format"`
	FontSize    int    `toml:"font_size"`
	PDFFont     string `toml:"pdf_font"`

	Cache  CacheConfig  `toml:"cache"`
	HTTP   HTTPConfig   `toml:"http"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects where fetched pages are kept.
type CacheConfig struct {
	// Backend is "fs" (one file per page), "sqlite" or "none".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
}

// HTTPConfig tunes the site clients.
type HTTPConfig struct {
	// Timeout is a duration string such as "30s".
	Timeout string `toml:"timeout"`
	// RateLimit is requests per second per site; negative disables throttling.
	RateLimit float64 `toml:"rate_limit"`
	UserAgent string  `toml:"user_agent"`
}

// ServerConfig is the address the web server listens on.
type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

// Formats lists the accepted output formats.
var Formats = []string{"html", "md", "json", "pdf"}

// Defaults returns the built-in configuration.
func Defaults() Config {
	cfg := Config{
		DefaultSite: "colorcodedlyrics",
		Format:      "html",
		FontSize:    12,
		Cache:       CacheConfig{Backend: "fs"},
		HTTP:        HTTPConfig{Timeout: "30s", RateLimit: 1},
		Server:      ServerConfig{Bind: "127.0.0.1", Port: 10000},
	}
	if dir, err := os.UserCacheDir(); err == nil {
		cfg.Cache.Dir = filepath.Join(dir, "lyric_fetcher")
	}
	return cfg
}

// DefaultPath returns <user config dir>/lyric_fetcher/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "lyric_fetcher", "config.toml"), nil
}

// Load reads path, or DefaultPath when path is empty, and merges the
// result over Defaults. A missing file is only an error when path was
// given explicitly.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Defaults(), nil
		}
		path = p
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && !explicit:
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return Config{}, fmt.Errorf("merging config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and the timeout.
func (c Config) Validate() error {
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q (want one of %v)", c.Format, Formats)
	}
	switch c.Cache.Backend {
	case "fs", "sqlite", "none":
	default:
		return fmt.Errorf("unknown cache backend %q (want fs, sqlite or none)", c.Cache.Backend)
	}
	if _, err := c.HTTP.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout.
func (h HTTPConfig) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http timeout %q: %w", h.Timeout, err)
	}
	return d, nil
}

// Addr returns the listen address, e.g. "127.0.0.1:10000".
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Bind, s.Port)
}

func validFormat(f string) bool {
	for _, ok := range Formats {
		if f == ok {
			return true
		}
	}
	return false
}
