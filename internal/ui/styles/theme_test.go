// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}
	// Every style must render without panicking.
	samples := []struct {
		name  string
		out   string
	}{
		{"header", theme.Header.Render("SmartSchool")},
		{"tab", theme.Tab.Render("Conversation 1")},
		{"tab active", theme.TabActive.Render("Conversation 1")},
		{"user bubble", theme.UserBubble.Render("hello")},
		{"provisional bubble", theme.ProvisionalBubble.Render("hello")},
		{"assistant bubble", theme.AssistantBubble.Render("hi!")},
		{"banner error", theme.BannerError.Render("failed")},
	}
	for _, s := range samples {
		if s.out == "" {
			t.Errorf("%s rendered empty", s.name)
		}
	}
}

func TestNewThemeForBackground(t *testing.T) {
	dark := NewThemeForBackground(true)
	light := NewThemeForBackground(false)

	if !dark.IsDark {
		t.Error("dark theme should report IsDark")
	}
	if light.IsDark {
		t.Error("light theme should not report IsDark")
	}
}

func TestSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", theme.Width, theme.Height)
	}
}
