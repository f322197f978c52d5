// Package config handles the XDG configuration directory, the optional
// config.toml file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the optional TOML settings filename.
	ConfigFile = "config.toml"

	// DefaultTimeout bounds a single remote call.
	DefaultTimeout = 10 * time.Second

	// DefaultLogLevel is used when neither the file nor the environment sets one.
	DefaultLogLevel = "info"
)

// Environment variables that override config.toml.
const (
	EnvAPI      = "TASKBOARD_API"
	EnvTimeout  = "TASKBOARD_TIMEOUT"
	EnvLogLevel = "TASKBOARD_LOG_LEVEL"
)

// ErrNoAPI is returned when no API base URL is configured anywhere.
var ErrNoAPI = errors.New("API base URL not configured (set " + EnvAPI + " or api in " + ConfigFile + ")")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// API is the base URL of the remote task service.
	API string

	// Timeout bounds each remote call.
	Timeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is one of text, json, logfmt.
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// fileConfig mirrors config.toml.
type fileConfig struct {
	API       string `toml:"api"`
	Timeout   string `toml:"timeout"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Timeout:  DefaultTimeout,
		LogLevel: DefaultLogLevel,
	}, nil
}

// Load builds a Config in priority order:
// 1. Defaults
// 2. config.toml in the config directory (if present)
// 3. Environment variables
// Flags are applied by the caller afterwards.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// FilePath returns the path to config.toml.
func (c *Config) FilePath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasFile checks if config.toml exists.
func (c *Config) HasFile() bool {
	_, err := os.Stat(c.FilePath())
	return err == nil
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// BaseURL returns the API base URL without a trailing slash.
// Returns ErrNoAPI if none is configured.
func (c *Config) BaseURL() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(c.API), "/")
	if base == "" {
		return "", ErrNoAPI
	}
	return base, nil
}

// EffectiveLogLevel returns the log level, forced to debug when Debug is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	if c.LogLevel == "" {
		return DefaultLogLevel
	}
	return c.LogLevel
}

func (c *Config) loadFile() error {
	if !c.HasFile() {
		return nil
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(c.FilePath(), &fc); err != nil {
		return fmt.Errorf("invalid %s: %w", ConfigFile, err)
	}

	if fc.API != "" {
		c.API = fc.API
	}
	if fc.Timeout != "" {
		d, err := parseTimeout(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", ConfigFile, err)
		}
		c.Timeout = d
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		c.LogFormat = fc.LogFormat
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvAPI); v != "" {
		c.API = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive: %s", s)
	}
	return d, nil
}
