// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the whole chat widget.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.theme.Header.Render("SmartSchool Assistant"))
	b.WriteString("\n")
	b.WriteString(m.tabBar.View(m.snap))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if banner := m.banner.View(); banner != "" {
		b.WriteString(banner)
	}
	b.WriteString("\n")

	b.WriteString(m.theme.InputContainer.Render(
		m.theme.InputPrompt.Render("> ") + m.input.View(),
	))
	b.WriteString("\n")
	b.WriteString(m.statusBar())

	return b.String()
}

// renderTranscript renders the active conversation's messages for the
// viewport.
func (m Model) renderTranscript() string {
	if !m.snap.Initialized {
		if m.snap.IsLoadingList {
			return m.loadingLine("Connecting to SmartSchool...")
		}
		return m.theme.LoadingText.Render("Not connected.")
	}

	// Unloaded history: nothing but the spinner, never stale content.
	if m.snap.ActiveMessages == nil {
		if m.snap.IsLoadingActiveMessages {
			return m.loadingLine("Loading messages...")
		}
		return ""
	}

	if len(m.snap.ActiveMessages) == 0 {
		return m.theme.LoadingText.Render("No messages yet. Say hello!")
	}

	lines := make([]string, 0, len(m.snap.ActiveMessages)*2)
	for _, msg := range m.snap.ActiveMessages {
		lines = append(lines, m.renderMessage(msg))
	}
	if m.snap.IsSending {
		lines = append(lines, m.loadingLine("Assistant is thinking..."))
	}
	return strings.Join(lines, "\n")
}

// renderMessage renders one message bubble.
func (m Model) renderMessage(msg *model.Message) string {
	switch {
	case msg.Provisional:
		return lipgloss.JoinVertical(lipgloss.Right,
			m.theme.ProvisionalBubble.Render(msg.Content),
			m.theme.Timestamp.Render("sending..."),
		)

	case msg.Role == model.RoleUser:
		bubble := m.theme.UserBubble.Render(msg.Content)
		if m.prefs.ShowTimestamps && !msg.SentAt.IsZero() {
			return lipgloss.JoinVertical(lipgloss.Right,
				bubble,
				m.theme.Timestamp.Render(msg.SentAt.Format("15:04")),
			)
		}
		return bubble

	default:
		content := msg.Content
		if m.markdown != nil {
			if rendered, err := m.markdown.Render(content); err == nil {
				content = strings.TrimRight(rendered, "\n")
			}
		}
		bubble := m.theme.AssistantBubble.Render(content)
		if m.prefs.ShowTimestamps && !msg.SentAt.IsZero() {
			return lipgloss.JoinVertical(lipgloss.Left,
				bubble,
				m.theme.Timestamp.Render(msg.SentAt.Format("15:04")),
			)
		}
		return bubble
	}
}

// loadingLine renders a spinner with a label.
func (m Model) loadingLine(label string) string {
	return m.spin.View() + " " + m.theme.LoadingText.Render(label)
}

// statusBar renders the shortcut help line.
func (m Model) statusBar() string {
	parts := make([]string, 0, 8)
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return m.theme.StatusBar.Render(strings.Join(parts, "  "))
}
