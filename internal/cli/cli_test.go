// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
	}{
		{"no args starts TUI", nil, CmdTUI},
		{"status", []string{"status"}, CmdStatus},
		{"status alias", []string{"s"}, CmdStatus},
		{"config", []string{"config", "show"}, CmdConfig},
		{"version", []string{"version"}, CmdVersion},
		{"version flag", []string{"--version"}, CmdVersion},
		{"help", []string{"help"}, CmdHelp},
		{"unknown falls back to help", []string{"frobnicate"}, CmdHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := parseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Errorf("parseArgs(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
		})
	}
}

func TestParseArgs_Flags(t *testing.T) {
	cmd, args := parseArgs([]string{"status", "--json", "--quiet"})
	if cmd != CmdStatus {
		t.Fatalf("cmd = %v, want CmdStatus", cmd)
	}
	if !args.JSON || !args.Quiet {
		t.Errorf("flags not parsed: %+v", args)
	}
}

func TestParseArgs_ConfigSet(t *testing.T) {
	cmd, args := parseArgs([]string{"config", "set", "ui.theme", "light"})
	if cmd != CmdConfig {
		t.Fatalf("cmd = %v, want CmdConfig", cmd)
	}
	if args.Subcommand != "set" || args.ConfigKey != "ui.theme" || args.ConfigVal != "light" {
		t.Errorf("config args = %+v", args)
	}
}

func TestRedactToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "(not set)"},
		{"short", "*****"},
		{"tok_abcdefghijkl", "tok_****ijkl"},
	}
	for _, tt := range tests {
		if got := redactToken(tt.token); got != tt.want {
			t.Errorf("redactToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}
