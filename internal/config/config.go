// Package config loads TermIDE's typed configuration: a struct
// materialized from <XDG config>/termide/config.toml via
// github.com/pelletier/go-toml/v2, with XDG path resolution via
// github.com/adrg/xdg. Missing or bad config falls back to defaults; for a
// bad file Load also returns the error, which the caller logs as a warning,
// per the error-handling design's Parse kind.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// Config is the typed configuration materialized from config.toml.
type Config struct {
	Theme                   string `toml:"theme"`
	Language                string `toml:"language"`
	TabSize                 int    `toml:"tab_size"`
	WordWrap                bool   `toml:"word_wrap"`
	SmartWrap               bool   `toml:"smart_wrap"`
	ShowGitDiff             bool   `toml:"show_git_diff"`
	MinPanelWidth           int    `toml:"min_panel_width"`
	ResourceMonitorInterval int    `toml:"resource_monitor_interval"`
	SessionRetentionDays    int    `toml:"session_retention_days"`
	FMExtendedViewWidth     int    `toml:"fm_extended_view_width"`
	MinLogLevel             string `toml:"min_log_level"`
}

// Default returns the built-in defaults, used when no config file exists
// or it fails to parse.
func Default() Config {
	return Config{
		Theme:                   "default",
		Language:                "auto",
		TabSize:                 4,
		WordWrap:                true,
		SmartWrap:               true,
		ShowGitDiff:             true,
		MinPanelWidth:           80,
		ResourceMonitorInterval: 2000,
		SessionRetentionDays:    30,
		FMExtendedViewWidth:     100,
		MinLogLevel:             "info",
	}
}

// ConfigDir returns <XDG_CONFIG_HOME>/termide.
func ConfigDir() string {
	return xdg.ConfigHome + "/termide"
}

// DataDir returns <XDG_DATA_HOME>/termide.
func DataDir() string {
	return xdg.DataHome + "/termide"
}

// CacheDir returns <XDG_CACHE_HOME>/termide.
func CacheDir() string {
	return xdg.CacheHome + "/termide"
}

// DefaultPath returns the default config.toml location.
func DefaultPath() string {
	return ConfigDir() + "/config.toml"
}

// Load reads and parses the config file at path. A missing file yields
// Default() with no error; a present-but-malformed file yields Default()
// plus a non-nil error the caller should log as a Parse-kind warning and
// then proceed with defaults (never fatal).
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
