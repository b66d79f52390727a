// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// provisionalPrefix marks locally-generated ids. Provisional ids are never
// sent to the server and never collide with server-assigned ids.
const provisionalPrefix = "tmp_"

// Message represents a single message in a conversation.
//
// A message is either server-confirmed (its ID was assigned by the server)
// or provisional (its ID was generated locally while a send is in flight).
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"sender"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`

	// Provisional is true while the message awaits server confirmation.
	// Never serialized to the server.
	Provisional bool `json:"-"`
}

// NewMessage creates a server-shaped message with the given id.
func NewMessage(id string, role Role, content string, sentAt time.Time) *Message {
	return &Message{
		ID:      id,
		Role:    role,
		Content: content,
		SentAt:  sentAt,
	}
}

// NewProvisionalMessage creates a locally-generated user message with a fresh
// provisional id, shown optimistically while the post is in flight.
func NewProvisionalMessage(content string) *Message {
	return &Message{
		ID:          provisionalPrefix + uuid.NewString(),
		Role:        RoleUser,
		Content:     content,
		SentAt:      time.Now(),
		Provisional: true,
	}
}

// NewAssistantMessage creates a local assistant message (used for the canned
// greeting, which never makes a server round trip).
func NewAssistantMessage(content string) *Message {
	return &Message{
		ID:      provisionalPrefix + uuid.NewString(),
		Role:    RoleAssistant,
		Content: content,
		SentAt:  time.Now(),
	}
}

// IsProvisional reports whether the message awaits server confirmation.
func (m *Message) IsProvisional() bool {
	return m.Provisional
}

// Preview returns a truncated single-line preview of the content.
// Rune-based so multi-byte characters are never split.
func (m *Message) Preview(maxLen int) string {
	return util.TruncateRunes(m.Content, maxLen)
}

// Clone returns a copy of the message.
func (m *Message) Clone() *Message {
	cp := *m
	return &cp
}
