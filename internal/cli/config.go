// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation.
//
// Command: config
// Subcommands:
//   show   Print the active configuration (token redacted)
//   path   Print the config file location
//   set    Set a key (api.base_url, api.token, chat.clear_mode, ui.theme)
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args) {
	switch args.Subcommand {
	case "", "show":
		showConfig()
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(path)
	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			fmt.Fprintln(os.Stderr, "usage: smartschool-chat config set <key> <value>")
			os.Exit(1)
		}
		setConfig(args.ConfigKey, args.ConfigVal)
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", args.Subcommand)
		os.Exit(1)
	}
}

func showConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("api.base_url    = %s\n", cfg.API.BaseURL)
	fmt.Printf("api.token       = %s\n", redactToken(cfg.API.Token))
	fmt.Printf("api.timeout_secs = %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("chat.clear_mode = %s\n", cfg.Chat.ClearMode)
	if cfg.Chat.Greeting != "" {
		fmt.Printf("chat.greeting   = %s\n", cfg.Chat.Greeting)
	}
	fmt.Printf("ui.theme        = %s\n", cfg.UI.Theme)
}

func setConfig(key, value string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.token":
		cfg.API.Token = value
	case "chat.clear_mode":
		cfg.Chat.ClearMode = value
	case "chat.greeting":
		cfg.Chat.Greeting = value
	case "ui.theme":
		cfg.UI.Theme = value
	default:
		fmt.Fprintf(os.Stderr, "unknown config key: %s\n", key)
		os.Exit(1)
	}

	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("set %s\n", key)
}

// redactToken shows just enough of a token to recognize it.
func redactToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 4) + token[len(token)-4:]
}
