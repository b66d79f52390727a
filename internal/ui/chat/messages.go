// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat
// interface. The session manager runs its own goroutines; its settlements
// reach the UI as SessionEventMsg values pumped from the event channel.
package chat

import (
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/prefs"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
)

// SessionEventMsg carries one session event into the Bubble Tea loop.
// Every event means the snapshot may have changed; a non-nil Notice also
// carries a user-facing banner.
type SessionEventMsg struct {
	Event session.Event
}

// SessionClosedMsg signals that the session's event channel stopped
// delivering, which only happens on teardown.
type SessionClosedMsg struct{}

// PrefsChangedMsg signals that the preferences file changed on disk.
type PrefsChangedMsg struct {
	Prefs prefs.Prefs
}
