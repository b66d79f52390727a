// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// waitForSessionEvent blocks on the session's event channel and delivers
// the next event into the Bubble Tea loop. The update handler re-issues
// it after every receipt, forming the pump that keeps the UI in sync with
// settlements from the manager's goroutines.
func waitForSessionEvent(mgr *session.Manager) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-mgr.Events()
		if !ok {
			return SessionClosedMsg{}
		}
		return SessionEventMsg{Event: ev}
	}
}
