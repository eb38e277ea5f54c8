// Package config loads tman settings from defaults, a TOML file, the
// environment, and command-line overrides, in that order.
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
	DefaultRoot        = "~/.tman"
	DefaultExportDir   = "~/tman-exports"
	DefaultLogLevel    = "warn"
	DefaultLockTimeout = time.Second
)

// Config holds resolved settings. Paths are home-expanded after Load.
type Config struct {
	Root        string   `toml:"root"`
	ExportDir   string   `toml:"export_dir"`
	LogLevel    string   `toml:"log_level"`
	LockTimeout Duration `toml:"lock_timeout"`

	// File is the config file that was read, empty if none.
	File string `toml:"-"`
}

// Duration reads TOML strings such as "500ms" or "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Overrides come from command-line flags and win over every other source.
type Overrides struct {
	ConfigFile string
	Root       string
	Verbose    bool
}

// Load resolves configuration:
// 1. Defaults
// 2. Config file (--config, TMAN_CONFIG, or the user config dir)
// 3. Environment variables
// 4. Overrides
func Load(o Overrides) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	path, explicit := configFilePath(o.ConfigFile)
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := loadConfigFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
			cfg.File = path
		case explicit || !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(o.Root) != "" {
		cfg.Root = strings.TrimSpace(o.Root)
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Root = DefaultRoot
	cfg.ExportDir = DefaultExportDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LockTimeout = Duration{DefaultLockTimeout}
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv("TMAN_ROOT")); v != "" {
		cfg.Root = v
	}
	if v := strings.TrimSpace(os.Getenv("TMAN_EXPORT_DIR")); v != "" {
		cfg.ExportDir = v
	}
	if v := strings.TrimSpace(os.Getenv("TMAN_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("TMAN_LOCK_TIMEOUT")); v != "" {
		if err := cfg.LockTimeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("TMAN_LOCK_TIMEOUT: %w", err)
		}
	}
	return nil
}

func finalizeConfig(cfg *Config) error {
	cfg.Root = expandPath(cfg.Root)
	cfg.ExportDir = expandPath(cfg.ExportDir)
	if cfg.Root == "" {
		return errors.New("store root is empty")
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid log_level %q (use debug|info|warn|error|fatal)", cfg.LogLevel)
	}
	if cfg.LockTimeout.Duration < 0 {
		return fmt.Errorf("invalid lock_timeout %s", cfg.LockTimeout)
	}
	return nil
}

// configFilePath picks the config file to read. explicit reports whether
// the caller named it, in which case it must exist.
func configFilePath(flagPath string) (path string, explicit bool) {
	if p := strings.TrimSpace(flagPath); p != "" {
		return expandPath(p), true
	}
	if p := strings.TrimSpace(os.Getenv("TMAN_CONFIG")); p != "" {
		return expandPath(p), true
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "", false
	}
	return filepath.Join(dir, "tman", "config.toml"), false
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}
