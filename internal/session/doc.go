// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the multi-conversation chat session manager.
//
// The Manager is the single source of truth for which conversations are
// open, which one is active, and the legality of every mutation. It holds
// between one and three conversations at all times, loads each
// conversation's history lazily on first activation, and sends messages
// optimistically: a provisional entry appears immediately and is either
// reconciled against the server's confirmed messages or rolled back.
//
// Network calls run in goroutines and re-enter through the session mutex,
// so there is one logical writer and every completion is applied against
// the latest state, never a captured snapshot. Settlements that arrive for
// a conversation closed in the interim are absorbed silently. The UI
// consumes a read-only Snapshot and an event stream of status notices.
package session
