// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// errEmptyReply marks a post that settled without an assistant reply.
var errEmptyReply = errors.New("the assistant did not reply")

// =============================================================================
// OPTIMISTIC SEND
// =============================================================================

// Send posts user text to a conversation optimistically: a provisional
// message appears immediately and the conversation enters its sending
// state. On success the provisional entry is replaced, keyed by its id,
// with the confirmed user message followed by the assistant reply in one
// mutation. On failure the provisional entry is removed and an error
// notice is emitted; nothing retries automatically.
//
// Blank text, unknown conversations, and a send already in flight on the
// same conversation are silent no-ops — these come from double submits and
// empty inputs, not from user-actionable faults.
func (m *Manager) Send(ctx context.Context, id, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	conv := m.findLocked(id)
	if conv == nil || m.sends[id] != "" {
		m.mu.Unlock()
		return
	}

	prov := model.NewProvisionalMessage(text)
	conv.Append(prov)
	m.sends[id] = prov.ID
	m.emitChanged()
	m.mu.Unlock()

	go m.finishSend(ctx, id, prov.ID, text)
}

// finishSend settles a send against the latest state.
func (m *Manager) finishSend(ctx context.Context, id, provisionalID, text string) {
	res, err := m.svc.PostMessage(ctx, id, text)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sends, id)
	if m.disposed {
		return
	}

	conv := m.findLocked(id)
	if conv == nil {
		// Closed while the post was in flight; absorb.
		return
	}

	if err == nil && (res == nil || res.Reply == nil) {
		err = errEmptyReply
	}
	if err != nil {
		// Rollback: the optimistic bubble disappears, everything else in
		// the conversation is untouched.
		conv.Remove(provisionalID)
		m.emitError("Message not sent: " + err.Error())
		return
	}

	confirmed := res.UserMessage
	if confirmed == nil {
		// Server variant that returns only the reply: confirm in place.
		confirmed = model.NewMessage(provisionalID, model.RoleUser, text, time.Now())
	}
	confirmed.Provisional = false

	// Keyed by the provisional id: if it is gone (the user cleared the
	// conversation mid-flight) the settlement is absorbed.
	if conv.ReplaceProvisional(provisionalID, confirmed, res.Reply) {
		m.emitChanged()
	}
}

// IsSending reports whether the conversation has a send in flight.
func (m *Manager) IsSending(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sends[id] != ""
}
