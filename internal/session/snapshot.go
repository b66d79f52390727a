// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// =============================================================================
// READ-ONLY SNAPSHOT
// =============================================================================

// ConversationView is the per-conversation slice of a Snapshot.
type ConversationView struct {
	ID           string
	Name         string
	IsLoaded     bool
	IsLoading    bool
	IsSending    bool
	MessageCount int
}

// Snapshot is the read-only view the UI surface renders. Message entries
// are copies; mutating them cannot corrupt session state.
type Snapshot struct {
	Conversations []ConversationView
	ActiveID      string

	// ActiveMessages is the active conversation's history. Nil while the
	// history is unloaded — the UI shows the loading spinner then, never
	// stale or empty content.
	ActiveMessages []*model.Message

	Initialized             bool
	IsLoadingList           bool
	IsLoadingActiveMessages bool
	IsSending               bool
}

// Snapshot returns the current read-only view of the session.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Conversations: make([]ConversationView, 0, len(m.conversations)),
		ActiveID:      m.activeID,
		Initialized:   m.init == initDone,
		IsLoadingList: m.loadingList,
	}

	for _, conv := range m.conversations {
		snap.Conversations = append(snap.Conversations, ConversationView{
			ID:           conv.ID,
			Name:         conv.Name,
			IsLoaded:     conv.Loaded,
			IsLoading:    m.loads[conv.ID],
			IsSending:    m.sends[conv.ID] != "",
			MessageCount: conv.MessageCount(),
		})
	}

	if active := m.findLocked(m.activeID); active != nil {
		if active.Loaded {
			snap.ActiveMessages = active.CloneMessages()
			if snap.ActiveMessages == nil {
				snap.ActiveMessages = []*model.Message{}
			}
		}
		snap.IsLoadingActiveMessages = m.loads[active.ID]
		snap.IsSending = m.sends[active.ID] != ""
	}

	return snap
}

// OpenCount returns the size of the open set.
func (m *Manager) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conversations)
}

// ActiveID returns the active conversation id ("" before initialization).
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}
