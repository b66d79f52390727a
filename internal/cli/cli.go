// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for the SmartSchool chat client.
package cli

import (
	"fmt"
	"os"
)

// Version information (can be overridden at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet bool
	JSON  bool

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `smartschool-chat - terminal chat client for the SmartSchool assistant

Usage:
  smartschool-chat                 Start the chat TUI (default)
  smartschool-chat status          Check the API connection
  smartschool-chat config show     Print the active configuration
  smartschool-chat config path     Print the config file location
  smartschool-chat version         Print version information
  smartschool-chat help            Show this help

Flags:
  --json    Machine-readable output (status)
  --quiet   Suppress non-essential output

Configuration:
  ~/.smartschool/chat.toml, overridable with SMARTSCHOOL_API_URL and
  SMARTSCHOOL_API_TOKEN.
`

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	args := Args{}
	var positional []string

	for _, a := range argv {
		switch a {
		case "--json":
			args.JSON = true
		case "--quiet", "-q":
			args.Quiet = true
		default:
			positional = append(positional, a)
		}
	}

	if len(positional) == 0 {
		return CmdTUI, args
	}

	cmd := positional[0]
	args.Raw = positional[1:]
	if len(args.Raw) > 0 {
		args.Subcommand = args.Raw[0]
	}

	switch cmd {
	case "status", "s":
		return CmdStatus, args
	case "config":
		if len(args.Raw) >= 2 {
			args.ConfigKey = args.Raw[1]
		}
		if len(args.Raw) >= 3 {
			args.ConfigVal = args.Raw[2]
		}
		return CmdConfig, args
	case "version", "--version", "-v":
		return CmdVersion, args
	case "help", "--help", "-h":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// HandleHelp prints the usage text.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints version information.
func HandleVersion() {
	fmt.Printf("smartschool-chat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}
