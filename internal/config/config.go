// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the SmartSchool chat
// client.
//
// Configuration lives in a single TOML file with sensible defaults and
// environment variable overrides:
//   - ~/.smartschool/chat.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chat client configuration.
type Config struct {
	API  APIConfig  `toml:"api"`
	Chat ChatConfig `toml:"chat"`
	UI   UIConfig   `toml:"ui"`
}

// APIConfig contains the SmartSchool backend connection settings.
type APIConfig struct {
	// BaseURL is the root of the SmartSchool REST API.
	BaseURL string `toml:"base_url"`
	// Token is the bearer token of the signed-in administrator.
	Token string `toml:"token"`
	// TimeoutSecs is the per-request timeout in seconds.
	// Valid range is 5-120; values outside are clamped.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChatConfig contains chat behavior settings.
type ChatConfig struct {
	// Greeting is the canned assistant greeting shown in fresh and
	// cleared conversations. Empty selects the built-in default.
	Greeting string `toml:"greeting"`
	// ClearMode selects what clearing a conversation does: "local"
	// resets the visible history only, "server" also erases it remotely.
	ClearMode string `toml:"clear_mode"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is the color theme name ("dark", "light", or "" for
	// terminal detection).
	Theme string `toml:"theme"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	defaultTimeoutSecs = 30
	minTimeoutSecs     = 5
	maxTimeoutSecs     = 120
)

// Default returns a config with all default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSecs: defaultTimeoutSecs,
		},
		Chat: ChatConfig{
			ClearMode: "local",
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// FILE PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.smartschool).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".smartschool"), nil
}

// ConfigPath returns the full path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chat.toml"), nil
}

// EnsureConfigDir creates the configuration directory if needed.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration, layering file contents and environment
// overrides on top of the defaults. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := loadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.clamp()
	return cfg, nil
}

// LoadFromPath reads the configuration from an explicit file path.
// Used by tests and the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.clamp()
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// clamp forces out-of-range values back into their valid bounds.
func (c *Config) clamp() {
	if c.API.TimeoutSecs < minTimeoutSecs {
		c.API.TimeoutSecs = minTimeoutSecs
	}
	if c.API.TimeoutSecs > maxTimeoutSecs {
		c.API.TimeoutSecs = maxTimeoutSecs
	}
	if c.Chat.ClearMode != "local" && c.Chat.ClearMode != "server" {
		c.Chat.ClearMode = "local"
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path atomically with
// owner-only permissions (the file holds the bearer token).
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors aggregates all validation failures.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks that the configuration is usable for connecting.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.API.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: "required (set it in chat.toml or SMARTSCHOOL_API_URL)",
		})
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("not a valid URL: %q", c.API.BaseURL),
		})
	}

	if c.API.Token == "" {
		errs = append(errs, ValidationError{
			Field:   "api.token",
			Message: "required (set it in chat.toml or SMARTSCHOOL_API_TOKEN)",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides layers environment variables over the loaded values.
// Environment always wins over the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SMARTSCHOOL_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SMARTSCHOOL_API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("SMARTSCHOOL_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("SMARTSCHOOL_CLEAR_MODE"); v != "" {
		c.Chat.ClearMode = v
	}
	if v := os.Getenv("SMARTSCHOOL_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the process-wide configuration, loading it on first use.
// A load failure falls back to the defaults.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// ReloadGlobal re-reads the configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
	return nil
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	globalConfig = cfg
	globalMu.Unlock()
}

// ResetGlobalForTesting clears the cached global config.
func ResetGlobalForTesting() {
	globalMu.Lock()
	globalConfig = nil
	globalMu.Unlock()
}
