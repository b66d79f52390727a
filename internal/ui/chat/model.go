// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/prefs"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/components"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat widget. All conversation
// state lives in the session manager; the model holds only the latest
// snapshot and the terminal chrome around it.
type Model struct {
	mgr  *session.Manager
	snap session.Snapshot

	// Styling
	theme *styles.Theme
	prefs prefs.Prefs

	// Dimensions
	width  int
	height int

	// Chrome
	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model
	tabBar   *components.TabBar
	banner   *components.Banner
	keys     KeyMap

	// Markdown rendering for assistant messages. Nil falls back to
	// plain text.
	markdown *glamour.TermRenderer

	quitting bool
}

// New creates the chat model over an initialized-on-start session manager.
func New(mgr *session.Manager, theme *styles.Theme, p prefs.Prefs) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask the assistant..."
	ti.CharLimit = 4000
	ti.Focus()

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = theme.Spinner

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		md = nil
	}

	return Model{
		mgr:      mgr,
		theme:    theme,
		prefs:    p,
		viewport: vp,
		input:    ti,
		spin:     sp,
		tabBar:   components.NewTabBar(theme),
		banner:   components.NewBanner(theme),
		keys:     DefaultKeyMap(),
		markdown: md,
	}
}

// Init starts the session sync and the event pump.
func (m Model) Init() tea.Cmd {
	m.mgr.Initialize(context.Background())
	return tea.Batch(
		waitForSessionEvent(m.mgr),
		m.spin.Tick,
		textinput.Blink,
	)
}

// refresh pulls the latest snapshot and rebuilds the transcript view.
func (m *Model) refresh() {
	wasAtBottom := m.viewport.AtBottom()
	m.snap = m.mgr.Snapshot()
	m.viewport.SetContent(m.renderTranscript())
	if wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// selectByIndex activates the i-th open conversation if it exists.
func (m *Model) selectByIndex(i int) {
	if i < 0 || i >= len(m.snap.Conversations) {
		return
	}
	m.mgr.Select(context.Background(), m.snap.Conversations[i].ID)
	m.refresh()
}

// activeIndex returns the position of the active conversation, or -1.
func (m *Model) activeIndex() int {
	for i, conv := range m.snap.Conversations {
		if conv.ID == m.snap.ActiveID {
			return i
		}
	}
	return -1
}
