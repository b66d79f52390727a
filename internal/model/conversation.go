// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds one open chat conversation.
//
// Messages is meaningful only when Loaded is true. An unloaded conversation
// has not had its history fetched yet; the fetch happens the first time the
// conversation becomes active and the result is cached for the session.
type Conversation struct {
	// Identity (server-assigned)
	ID   string `json:"id"`
	Name string `json:"name"`

	// Messages, chronological. Nil and meaningless until Loaded.
	Messages []*Message `json:"messages"`

	// Loaded distinguishes "not yet fetched" from "fetched and empty".
	Loaded bool `json:"-"`
}

// NewConversation creates an open conversation whose history has not been
// fetched yet.
func NewConversation(id, name string) *Conversation {
	return &Conversation{ID: id, Name: name}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// SetLoaded replaces the unloaded marker with the fetched history.
func (c *Conversation) SetLoaded(messages []*Message) {
	c.Messages = messages
	c.Loaded = true
}

// MergeLoaded marks the conversation loaded with the fetched history while
// keeping messages that accumulated locally before the fetch settled
// (optimistic sends and their confirmed exchanges). Fetched history comes
// first; the local entries follow in order, skipping ids the fetch already
// carries.
func (c *Conversation) MergeLoaded(history []*Message) {
	if len(c.Messages) == 0 {
		c.SetLoaded(history)
		return
	}
	seen := make(map[string]struct{}, len(history))
	for _, msg := range history {
		seen[msg.ID] = struct{}{}
	}
	merged := append([]*Message(nil), history...)
	for _, msg := range c.Messages {
		if _, ok := seen[msg.ID]; !ok {
			merged = append(merged, msg)
		}
	}
	c.Messages = merged
	c.Loaded = true
}

// SetUnloaded restores the unloaded marker so a later activation retries the
// fetch.
func (c *Conversation) SetUnloaded() {
	c.Messages = nil
	c.Loaded = false
}

// Append adds a message to the end of the history.
func (c *Conversation) Append(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// Reset replaces the history with the given messages and marks it loaded.
// Used by the local "clear" action to restore the canned greeting.
func (c *Conversation) Reset(messages ...*Message) {
	c.Messages = append([]*Message(nil), messages...)
	c.Loaded = true
}

// Remove deletes the message with the given id. Reports whether a message
// was removed.
func (c *Conversation) Remove(id string) bool {
	for i, msg := range c.Messages {
		if msg.ID == id {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceProvisional swaps the provisional entry with the confirmed user
// message followed by the assistant reply, in place, as one mutation. The
// entry is located by the provisional id so a settlement can never touch
// another message, whatever has been appended since. Reports whether the
// provisional entry was found.
func (c *Conversation) ReplaceProvisional(provisionalID string, confirmed, reply *Message) bool {
	for i, msg := range c.Messages {
		if msg.ID == provisionalID {
			replaced := append([]*Message(nil), c.Messages[:i]...)
			replaced = append(replaced, confirmed, reply)
			replaced = append(replaced, c.Messages[i+1:]...)
			c.Messages = replaced
			return true
		}
	}
	return false
}

// HasProvisional reports whether any message in the history is provisional.
func (c *Conversation) HasProvisional() bool {
	for _, msg := range c.Messages {
		if msg.Provisional {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages (zero while unloaded).
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// LastActivity returns the timestamp of the most recent message, or the zero
// time when the history is unloaded or empty.
func (c *Conversation) LastActivity() time.Time {
	if len(c.Messages) == 0 {
		return time.Time{}
	}
	return c.Messages[len(c.Messages)-1].SentAt
}

// CloneMessages returns a copy of the message slice with copied entries,
// safe to hand to the UI while the original keeps mutating.
func (c *Conversation) CloneMessages() []*Message {
	if c.Messages == nil {
		return nil
	}
	out := make([]*Message, len(c.Messages))
	for i, msg := range c.Messages {
		out[i] = msg.Clone()
	}
	return out
}
