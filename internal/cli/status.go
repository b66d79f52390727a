// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation.
//
// Command: status
// Short:   Check connectivity to the SmartSchool API
// Aliases: s
//
// Examples:
//   smartschool-chat status          Human-readable status
//   smartschool-chat status --json   Machine-readable status
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/api"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/config"
)

// statusReport is the JSON shape of the status output.
type statusReport struct {
	Configured    bool   `json:"configured"`
	Reachable     bool   `json:"reachable"`
	Conversations int    `json:"conversations"`
	Error         string `json:"error,omitempty"`
}

// HandleStatus checks the configured API and reports the result.
func HandleStatus(args Args) {
	report := buildStatus()

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printStatus(report)
	}

	if !report.Configured || !report.Reachable {
		os.Exit(1)
	}
}

func buildStatus() statusReport {
	cfg, err := config.Load()
	if err != nil {
		return statusReport{Error: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return statusReport{Error: err.Error()}
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Token).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	infos, err := client.ListConversations(ctx)
	if err != nil {
		return statusReport{Configured: true, Error: err.Error()}
	}
	return statusReport{
		Configured:    true,
		Reachable:     true,
		Conversations: len(infos),
	}
}

func printStatus(r statusReport) {
	switch {
	case !r.Configured:
		fmt.Printf("Not configured: %s\n", r.Error)
	case !r.Reachable:
		fmt.Printf("Configured but unreachable: %s\n", r.Error)
	default:
		fmt.Printf("Connected. %d conversation(s) on the server.\n", r.Conversations)
	}
}
