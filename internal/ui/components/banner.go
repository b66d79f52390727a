// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the chat TUI.
package components

import (
	"time"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
)

// =============================================================================
// NOTICE BANNER
// =============================================================================

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	InfoBannerDuration    = 4 * time.Second
	WarningBannerDuration = 6 * time.Second
	ErrorBannerDuration   = 8 * time.Second
)

// Banner is a non-blocking notice line shown above the input area. It
// auto-dismisses; the user keeps typing while it is visible.
type Banner struct {
	notice    *session.Notice
	createdAt time.Time
	theme     *styles.Theme
}

// NewBanner creates an empty banner.
func NewBanner(theme *styles.Theme) *Banner {
	return &Banner{theme: theme}
}

// Show replaces the current notice. A newer notice always wins.
func (b *Banner) Show(n session.Notice) {
	b.notice = &n
	b.createdAt = time.Now()
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.notice = nil
}

// Active reports whether a notice is currently visible.
func (b *Banner) Active() bool {
	if b.notice == nil {
		return false
	}
	if time.Since(b.createdAt) > b.duration() {
		b.notice = nil
		return false
	}
	return true
}

// View renders the banner, or an empty string when nothing is visible.
func (b *Banner) View() string {
	if !b.Active() {
		return ""
	}
	switch b.notice.Level {
	case session.NoticeError:
		return b.theme.BannerError.Render("✗ " + b.notice.Text)
	case session.NoticeWarning:
		return b.theme.BannerWarning.Render("⚠ " + b.notice.Text)
	default:
		return b.theme.BannerInfo.Render("✓ " + b.notice.Text)
	}
}

func (b *Banner) duration() time.Duration {
	switch b.notice.Level {
	case session.NoticeError:
		return ErrorBannerDuration
	case session.NoticeWarning:
		return WarningBannerDuration
	default:
		return InfoBannerDuration
	}
}
