package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/zkmkarlsruhe/dnschanger/internal/store"
	"github.com/zkmkarlsruhe/dnschanger/internal/system"
)

const (
	appName    = "DNSChanger"
	configFile = "config.toml"
)

// ErrFallback is returned when saving settings that stand in for a file
// that could not be read.
var ErrFallback = errors.New("settings file could not be read; not overwriting it with defaults")

// Config holds the application settings
type Config struct {
	EntriesFile    string              `toml:"entries_file"`    // JSON list of DNS entries
	CorruptPolicy  store.CorruptPolicy `toml:"corrupt_policy"`  // discard, backup or fail
	CommandTimeout string              `toml:"command_timeout"` // e.g. "60s"
	LookupHost     string              `toml:"lookup_host"`     // resolved to find the current server
	Autostart      bool                `toml:"autostart"`       // Start GUI on login
	LogLevel       string              `toml:"log_level"`

	fallback bool
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		EntriesFile:    store.DefaultFile,
		CorruptPolicy:  store.PolicyDiscard,
		CommandTimeout: system.DefaultCommandTimeout.String(),
		LookupHost:     system.DefaultLookupHost,
		Autostart:      false,
		LogLevel:       "info",
	}
}

// Fallback returns the defaults for use after Load failed. Saving them is
// refused so the unreadable file is left for the user to fix.
func Fallback() *Config {
	cfg := Default()
	cfg.fallback = true
	return cfg
}

// IsFallback reports whether c came from Fallback.
func (c *Config) IsFallback() bool {
	return c.fallback
}

// Timeout returns CommandTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil || d <= 0 {
		return system.DefaultCommandTimeout
	}
	return d
}

// Validate rejects values the rest of the program cannot use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EntriesFile) == "" {
		return errors.New("entries_file must not be empty")
	}
	if !c.CorruptPolicy.Valid() {
		return errors.Errorf("corrupt_policy must be one of discard, backup, fail; got %q", c.CorruptPolicy)
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil {
		return errors.Wrap(err, "command_timeout")
	}
	if d <= 0 {
		return errors.New("command_timeout must be positive")
	}
	if strings.TrimSpace(c.LookupHost) == "" {
		return errors.New("lookup_host must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Errorf("log_level must be one of trace, debug, info, warn, error, fatal, panic, disabled; got %q", c.LogLevel)
	}
	return nil
}

// Set assigns a value by its TOML key, as used by `config set`. c is left
// unchanged when the result would not validate.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "entries_file":
		next.EntriesFile = value
	case "corrupt_policy":
		next.CorruptPolicy = store.CorruptPolicy(value)
	case "command_timeout":
		next.CommandTimeout = value
	case "lookup_host":
		next.LookupHost = value
	case "autostart":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrap(err, "autostart")
		}
		next.Autostart = b
	case "log_level":
		next.LogLevel = value
	default:
		return errors.Errorf("unknown config key: %s", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Dir returns the configuration directory path, creating it if needed.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path returns the full path to the config file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the configuration from its default location
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path. A missing file yields the
// defaults; missing keys keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Save writes the configuration to its default location
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path
func SaveFile(path string, cfg *Config) error {
	if cfg.fallback {
		return ErrFallback
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
