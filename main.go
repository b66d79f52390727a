// smartschool-chat - terminal chat client for the SmartSchool assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/api"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/cli"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/config"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/prefs"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/chat"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI()
	case cli.CmdStatus:
		cli.HandleStatus(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// runTUI wires the config, preferences, API client, and session manager
// into the Bubble Tea program.
func runTUI() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	prefsPath, err := prefs.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	store, err := prefs.NewStore(prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	mgr := session.New(client, session.Config{
		Greeting: cfg.Chat.Greeting,
		Clear:    session.ClearMode(cfg.Chat.ClearMode),
	})
	defer mgr.Dispose()

	theme := themeFor(cfg.UI.Theme)
	program := tea.NewProgram(
		chat.New(mgr, theme, store.Get()),
		tea.WithAltScreen(),
	)

	// Live-reload preferences edited outside the TUI.
	watcher, err := prefs.NewWatcher(store, 200*time.Millisecond, func(p prefs.Prefs) {
		program.Send(chat.PrefsChangedMsg{Prefs: p})
	})
	if err == nil {
		if err := watcher.Watch(); err != nil {
			log.Printf("prefs: watch unavailable: %v", err)
		}
		defer watcher.Close()
	} else {
		log.Printf("prefs: watch unavailable: %v", err)
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func themeFor(name string) *styles.Theme {
	switch name {
	case "light":
		return styles.NewThemeForBackground(false)
	case "dark":
		return styles.NewThemeForBackground(true)
	default:
		return styles.NewTheme()
	}
}
