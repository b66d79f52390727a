// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prefs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNewStore_MissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if got := s.Get(); got != Default() {
		t.Errorf("Get() = %+v, want defaults", got)
	}
}

func TestNewStore_CorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path); err == nil {
		t.Error("expected error for corrupt preferences file")
	}
}

func TestStore_SetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	want := Prefs{Theme: "light", ShowTimestamps: false}
	if err := s.Set(want); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// A fresh store over the same path sees the persisted values.
	s2, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := s2.Get(); got != want {
		t.Errorf("reloaded = %+v, want %+v", got, want)
	}
}

func TestStore_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Update(func(p *Prefs) { p.Theme = "light" }); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if s.Get().Theme != "light" {
		t.Error("Update should apply in place")
	}
}

func TestStore_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light"}`), 0600); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	got := s.Get()
	if got.Theme != "light" {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
	if !got.ShowTimestamps {
		t.Error("unset field should keep its default")
	}
}

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var seen []Prefs
	w, err := NewWatcher(s, 10*time.Millisecond, func(p Prefs) {
		mu.Lock()
		seen = append(seen, p)
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	// Another process rewrites the file.
	if err := os.WriteFile(path, []byte(`{"theme":"light","show_timestamps":true}`), 0600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Get().Theme == "light" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if s.Get().Theme != "light" {
		t.Fatal("store did not pick up the external write")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 || seen[len(seen)-1].Theme != "light" {
		t.Error("onChange should run with the fresh preferences")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prefs.json")

	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	calls := 0
	w, err := NewWatcher(s, 10*time.Millisecond, func(Prefs) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(); err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Errorf("onChange ran %d times for an unrelated file", calls)
	}
}
