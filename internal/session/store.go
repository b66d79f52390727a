// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "context"

// =============================================================================
// LAZY HISTORY LOADING
// =============================================================================

// ensureLoadedLocked resolves a conversation's unloaded marker into its
// fetched history exactly once. Loaded conversations and conversations with
// a fetch already in flight return immediately: duplicate activations
// collapse into the pending fetch, they never queue a second request.
// Callers must hold the mutex.
func (m *Manager) ensureLoadedLocked(ctx context.Context, id string) {
	conv := m.findLocked(id)
	if conv == nil || conv.Loaded || m.loads[id] {
		return
	}
	m.loads[id] = true

	go m.fetchHistory(ctx, id)
}

// fetchHistory runs the one history fetch and applies the settlement
// against the latest state.
func (m *Manager) fetchHistory(ctx context.Context, id string) {
	details, err := m.svc.GetConversationDetails(ctx, id)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.loads, id)
	if m.disposed {
		return
	}

	conv := m.findLocked(id)
	if conv == nil {
		// Closed while the fetch was in flight; absorb.
		return
	}
	if err != nil {
		// The marker stays unloaded so a later activation retries.
		m.emitError("Could not load messages: " + err.Error())
		return
	}
	if conv.Loaded {
		// Became loaded some other way while the fetch was in flight
		// (cleared to the greeting); the fetched history is stale.
		return
	}
	// Merge rather than overwrite: a send may have appended its
	// provisional entry, or settled into the confirmed exchange, while
	// the fetch was in flight. Those messages must survive the load.
	conv.MergeLoaded(details.Messages)
	m.emitChanged()
}

// IsLoading reports whether the conversation's history fetch is in flight.
func (m *Manager) IsLoading(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[id]
}
