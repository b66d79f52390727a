// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/session"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/ui/styles"
)

func TestBanner_ShowAndView(t *testing.T) {
	b := NewBanner(styles.NewTheme())

	if b.Active() {
		t.Error("fresh banner should be inactive")
	}
	if b.View() != "" {
		t.Error("inactive banner should render empty")
	}

	b.Show(session.Notice{Level: session.NoticeError, Text: "Message not sent"})
	if !b.Active() {
		t.Error("banner should be active after Show")
	}
	if !strings.Contains(b.View(), "Message not sent") {
		t.Error("banner should render the notice text")
	}
}

func TestBanner_NewerNoticeWins(t *testing.T) {
	b := NewBanner(styles.NewTheme())
	b.Show(session.Notice{Level: session.NoticeInfo, Text: "first"})
	b.Show(session.Notice{Level: session.NoticeWarning, Text: "second"})

	if !strings.Contains(b.View(), "second") {
		t.Error("newer notice should replace the older one")
	}
}

func TestBanner_ExpiresByLevel(t *testing.T) {
	b := NewBanner(styles.NewTheme())
	b.Show(session.Notice{Level: session.NoticeInfo, Text: "done"})

	// Rewind creation past the info duration.
	b.createdAt = time.Now().Add(-InfoBannerDuration - time.Second)
	if b.Active() {
		t.Error("info banner should expire after its duration")
	}
}

func TestBanner_Dismiss(t *testing.T) {
	b := NewBanner(styles.NewTheme())
	b.Show(session.Notice{Level: session.NoticeInfo, Text: "done"})
	b.Dismiss()
	if b.Active() {
		t.Error("dismissed banner should be inactive")
	}
}

func tabSnap() session.Snapshot {
	return session.Snapshot{
		Conversations: []session.ConversationView{
			{ID: "c1", Name: "Enrollment questions"},
			{ID: "c2", Name: "Grades", IsSending: true},
		},
		ActiveID: "c1",
	}
}

func TestTabBar_RendersAllTabs(t *testing.T) {
	bar := NewTabBar(styles.NewTheme())
	out := bar.View(tabSnap())

	if !strings.Contains(out, "Enrollment") {
		t.Error("tab bar should show conversation names")
	}
	if !strings.Contains(out, "Grades") {
		t.Error("tab bar should show every open conversation")
	}
	if !strings.Contains(out, "…") {
		t.Error("a sending conversation should carry its badge")
	}
}

func TestTabBar_NewHintOnlyBelowCapacity(t *testing.T) {
	bar := NewTabBar(styles.NewTheme())

	if !strings.Contains(bar.View(tabSnap()), "+ new") {
		t.Error("below capacity the new-conversation hint should show")
	}

	full := tabSnap()
	full.Conversations = append(full.Conversations, session.ConversationView{ID: "c3", Name: "Other"})
	if strings.Contains(bar.View(full), "+ new") {
		t.Error("at capacity the new-conversation hint should disappear")
	}
}

func TestTabBar_LongNamesTruncated(t *testing.T) {
	bar := NewTabBar(styles.NewTheme())
	snap := session.Snapshot{
		Conversations: []session.ConversationView{
			{ID: "c1", Name: strings.Repeat("long name ", 10)},
		},
		ActiveID: "c1",
	}
	out := bar.View(snap)
	if strings.Contains(out, strings.Repeat("long name ", 10)) {
		t.Error("tab titles should be width-bounded")
	}
}

func TestTabBar_EmptySnapshot(t *testing.T) {
	bar := NewTabBar(styles.NewTheme())
	if !strings.Contains(bar.View(session.Snapshot{}), "connecting") {
		t.Error("pre-initialization the bar shows the connecting hint")
	}
}
