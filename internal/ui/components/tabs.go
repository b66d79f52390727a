// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/util"
)

// =============================================================================
// CONVERSATION TAB BAR
// =============================================================================

// maxTabTitleWidth bounds a single tab so three tabs plus hints fit on
// narrow terminals.
const maxTabTitleWidth = 18

// TabBar renders the open conversations as a row of tabs with per-tab
// activity badges.
type TabBar struct {
	theme *styles.Theme
	width int
}

// NewTabBar creates a tab bar.
func NewTabBar(theme *styles.Theme) *TabBar {
	return &TabBar{theme: theme}
}

// SetWidth sets the render width.
func (t *TabBar) SetWidth(width int) {
	t.width = width
}

// View renders the tab row for the given session snapshot.
func (t *TabBar) View(snap session.Snapshot) string {
	if len(snap.Conversations) == 0 {
		return t.theme.TabBar.Render(t.theme.TabHint.Render("connecting..."))
	}

	tabs := make([]string, 0, len(snap.Conversations)+1)
	for i, conv := range snap.Conversations {
		label := fmt.Sprintf("%d:%s", i+1, t.title(conv))
		if badge := t.badge(conv); badge != "" {
			label += " " + t.theme.TabBadge.Render(badge)
		}

		style := t.theme.Tab
		if conv.ID == snap.ActiveID {
			style = t.theme.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}

	if len(snap.Conversations) < session.MaxOpenConversations {
		tabs = append(tabs, t.theme.TabHint.Render("[+ new]"))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	bar := t.theme.TabBar
	if t.width > 0 {
		bar = bar.Width(t.width)
	}
	return bar.Render(row)
}

// title returns the tab's display name, width-bounded.
func (t *TabBar) title(conv session.ConversationView) string {
	name := strings.TrimSpace(conv.Name)
	if name == "" {
		name = "Conversation"
	}
	return util.TruncateWidth(name, maxTabTitleWidth)
}

// badge returns the tab's activity marker.
func (t *TabBar) badge(conv session.ConversationView) string {
	switch {
	case conv.IsSending:
		return "…"
	case conv.IsLoading:
		return "⟳"
	default:
		return ""
	}
}
