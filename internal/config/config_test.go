// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.API.TimeoutSecs != defaultTimeoutSecs {
		t.Errorf("TimeoutSecs = %d, want %d", cfg.API.TimeoutSecs, defaultTimeoutSecs)
	}
	if cfg.Chat.ClearMode != "local" {
		t.Errorf("ClearMode = %q, want local", cfg.Chat.ClearMode)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.toml")
	content := `
[api]
base_url = "https://school.example.com/api"
token = "tok-123"
timeout_secs = 60

[chat]
greeting = "Hi there!"
clear_mode = "server"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.API.BaseURL != "https://school.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "tok-123" {
		t.Errorf("Token = %q", cfg.API.Token)
	}
	if cfg.API.TimeoutSecs != 60 {
		t.Errorf("TimeoutSecs = %d, want 60", cfg.API.TimeoutSecs)
	}
	if cfg.Chat.Greeting != "Hi there!" {
		t.Errorf("Greeting = %q", cfg.Chat.Greeting)
	}
	if cfg.Chat.ClearMode != "server" {
		t.Errorf("ClearMode = %q, want server", cfg.Chat.ClearMode)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.toml")
	content := `
[api]
base_url = "https://school.example.com/api"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.API.TimeoutSecs != defaultTimeoutSecs {
		t.Errorf("unset TimeoutSecs = %d, want default %d", cfg.API.TimeoutSecs, defaultTimeoutSecs)
	}
	if cfg.Chat.ClearMode != "local" {
		t.Errorf("unset ClearMode = %q, want default local", cfg.Chat.ClearMode)
	}
}

func TestLoadFromPath_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.toml")
	if err := os.WriteFile(path, []byte("this is [not toml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("expected parse error for invalid TOML")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		timeout     int
		clearMode   string
		wantTimeout int
		wantClear   string
	}{
		{"in range", 60, "server", 60, "server"},
		{"timeout too low", 1, "local", minTimeoutSecs, "local"},
		{"timeout too high", 9999, "local", maxTimeoutSecs, "local"},
		{"unknown clear mode", 30, "purge", 30, "local"},
		{"empty clear mode", 30, "", 30, "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.API.TimeoutSecs = tt.timeout
			cfg.Chat.ClearMode = tt.clearMode
			cfg.clamp()

			if cfg.API.TimeoutSecs != tt.wantTimeout {
				t.Errorf("TimeoutSecs = %d, want %d", cfg.API.TimeoutSecs, tt.wantTimeout)
			}
			if cfg.Chat.ClearMode != tt.wantClear {
				t.Errorf("ClearMode = %q, want %q", cfg.Chat.ClearMode, tt.wantClear)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name: "valid",
			mutate: func(c *Config) {
				c.API.BaseURL = "https://school.example.com/api"
				c.API.Token = "tok"
			},
		},
		{
			name:    "missing everything",
			mutate:  func(c *Config) {},
			wantErr: "api.base_url",
		},
		{
			name: "missing token",
			mutate: func(c *Config) {
				c.API.BaseURL = "https://school.example.com/api"
			},
			wantErr: "api.token",
		},
		{
			name: "malformed url",
			mutate: func(c *Config) {
				c.API.BaseURL = "not a url"
				c.API.Token = "tok"
			},
			wantErr: "api.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SMARTSCHOOL_API_URL", "https://env.example.com")
	t.Setenv("SMARTSCHOOL_API_TOKEN", "env-token")
	t.Setenv("SMARTSCHOOL_TIMEOUT_SECS", "45")
	t.Setenv("SMARTSCHOOL_CLEAR_MODE", "server")

	cfg := Default()
	cfg.API.BaseURL = "https://file.example.com"
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "https://env.example.com" {
		t.Error("environment should win over the file")
	}
	if cfg.API.Token != "env-token" {
		t.Errorf("Token = %q", cfg.API.Token)
	}
	if cfg.API.TimeoutSecs != 45 {
		t.Errorf("TimeoutSecs = %d, want 45", cfg.API.TimeoutSecs)
	}
	if cfg.Chat.ClearMode != "server" {
		t.Errorf("ClearMode = %q, want server", cfg.Chat.ClearMode)
	}
}

func TestApplyEnvOverrides_BadTimeoutIgnored(t *testing.T) {
	t.Setenv("SMARTSCHOOL_TIMEOUT_SECS", "soon")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.API.TimeoutSecs != defaultTimeoutSecs {
		t.Errorf("TimeoutSecs = %d, non-numeric env should be ignored", cfg.API.TimeoutSecs)
	}
}

// TestConfig_ConcurrentAccess checks that Global, SetGlobal, and
// ReloadGlobal are safe under concurrent use.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()

	ResetGlobalForTesting()
}
