// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/components"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all Bubble Tea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SessionEventMsg:
		if msg.Event.Notice != nil {
			m.banner.Show(*msg.Event.Notice)
		}
		m.refresh()
		return m, waitForSessionEvent(m.mgr)

	case SessionClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case PrefsChangedMsg:
		m.prefs = msg.Prefs
		m.applyTheme()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m.updateChrome(msg)
}

// handleKey dispatches keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.mgr.Dispose()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if text != "" && m.snap.ActiveID != "" {
			m.mgr.Send(ctx, m.snap.ActiveID, text)
			m.input.Reset()
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, m.keys.NewConv):
		m.mgr.OpenNew(ctx)
		return m, nil

	case key.Matches(msg, m.keys.CloseConv):
		if m.snap.ActiveID != "" {
			m.mgr.Close(ctx, m.snap.ActiveID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.mgr.ClearActive(ctx)
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		if n := len(m.snap.Conversations); n > 0 {
			m.selectByIndex((m.activeIndex() + 1) % n)
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		if n := len(m.snap.Conversations); n > 0 {
			m.selectByIndex((m.activeIndex() + n - 1) % n)
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab1):
		m.selectByIndex(0)
		return m, nil

	case key.Matches(msg, m.keys.Tab2):
		m.selectByIndex(1)
		return m, nil

	case key.Matches(msg, m.keys.Tab3):
		m.selectByIndex(2)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	return m.updateChrome(msg)
}

// updateChrome forwards a message to the focused chrome components.
func (m Model) updateChrome(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// setSize lays out the chrome for the new terminal dimensions.
func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.theme.SetSize(width, height)
	m.tabBar.SetWidth(width)

	// Header, tab bar, banner line, input, status bar.
	const chromeLines = 5
	vpHeight := height - chromeLines
	if vpHeight < 3 {
		vpHeight = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 4

	m.refresh()
}

// applyTheme rebuilds the theme from the current preferences.
func (m *Model) applyTheme() {
	switch m.prefs.Theme {
	case "light":
		m.theme = styles.NewThemeForBackground(false)
	case "dark":
		m.theme = styles.NewThemeForBackground(true)
	default:
		m.theme = styles.NewTheme()
	}
	m.theme.SetSize(m.width, m.height)
	m.tabBar = components.NewTabBar(m.theme)
	m.tabBar.SetWidth(m.width)
	m.banner = components.NewBanner(m.theme)
	m.spin.Style = m.theme.Spinner
}
