// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the terminal chat widget.
//
// The widget is a thin rendering layer over the session manager: every
// keystroke maps to a manager intent, every manager settlement arrives as
// a SessionEventMsg, and the view renders the latest read-only snapshot.
// The widget itself holds no conversation state.
package chat
