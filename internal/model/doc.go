// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat conversations and
// messages.
//
// A Conversation's message list is either unloaded (not yet fetched from the
// server) or a chronological, append-only sequence of messages. Messages are
// either server-confirmed or provisional: a provisional message is created
// locally when the user sends text and is replaced by the server-confirmed
// message once the post settles, or removed entirely if it fails. Replacement
// is always keyed by the provisional id, never by list position.
package model
