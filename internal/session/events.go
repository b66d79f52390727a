// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "log"

// =============================================================================
// NOTICES
// =============================================================================

// NoticeLevel classifies a status notification for the UI banner.
type NoticeLevel int

const (
	// NoticeInfo is a neutral outcome (conversation closed, cleared).
	NoticeInfo NoticeLevel = iota

	// NoticeWarning is a rejected intent that caused no state change
	// (capacity reached, last conversation kept open).
	NoticeWarning

	// NoticeError is a failed network operation; state rolled back to its
	// last-known-good shape and the user can retry.
	NoticeError
)

// String returns the level's display name.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a user-facing status notification.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// =============================================================================
// EVENTS
// =============================================================================

// Event signals that session state changed. Notice is non-nil when the
// change also carries a user-facing banner.
type Event struct {
	Notice *Notice
}

// Events returns the channel the UI surface consumes. Every event means
// the snapshot may have changed; a non-nil Notice should be shown. The
// channel is closed by Dispose, which is the consumer's signal to stop.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// emit sends an event without blocking. The channel is generously
// buffered; if the consumer has stalled the event is dropped, which only
// delays a repaint until the next one. Every emit runs under the session
// mutex after a disposed check, so it can never race Dispose closing the
// channel.
func (m *Manager) emit(notice *Notice) {
	select {
	case m.events <- Event{Notice: notice}:
	default:
		log.Printf("session: event channel full, dropped event")
	}
}

func (m *Manager) emitChanged() {
	m.emit(nil)
}

func (m *Manager) emitInfo(text string) {
	m.emit(&Notice{Level: NoticeInfo, Text: text})
}

func (m *Manager) emitWarning(text string) {
	m.emit(&Notice{Level: NoticeWarning, Text: text})
}

func (m *Manager) emitError(text string) {
	m.emit(&Notice{Level: NoticeError, Text: text})
}
