// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs persists per-user display preferences for the chat widget.
//
// Preferences are a small JSON document next to the config file. Unlike the
// config, preferences change at runtime (the user toggles the theme from
// inside the UI) and other processes may rewrite the file, so the store
// supports atomic saves and live reload.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/util"
)

// =============================================================================
// PREFERENCES
// =============================================================================

// Prefs holds the user's display preferences.
type Prefs struct {
	// Theme is the color theme name ("dark" or "light").
	Theme string `json:"theme"`
	// ShowTimestamps toggles per-message timestamps.
	ShowTimestamps bool `json:"show_timestamps"`
}

// Default returns the default preferences.
func Default() Prefs {
	return Prefs{
		Theme:          "dark",
		ShowTimestamps: true,
	}
}

// =============================================================================
// STORE
// =============================================================================

// Store loads and saves preferences at a fixed path. Safe for concurrent
// use; the watcher goroutine and the UI both go through it.
type Store struct {
	mu    sync.RWMutex
	path  string
	prefs Prefs
}

// DefaultPath returns the standard preferences location
// (~/.smartschool/prefs.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".smartschool", "prefs.json"), nil
}

// NewStore creates a store over the given path and loads it. A missing
// file yields the defaults; a corrupt file is an error.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, prefs: Default()}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the current preferences.
func (s *Store) Get() Prefs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Set replaces the preferences and persists them atomically.
func (s *Store) Set(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	return s.saveLocked()
}

// Update applies fn to the current preferences and persists the result.
func (s *Store) Update(fn func(*Prefs)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.prefs)
	return s.saveLocked()
}

// Reload re-reads the preferences from disk. A missing file resets to the
// defaults.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.prefs = Default()
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}

	s.mu.Lock()
	s.prefs = p
	s.mu.Unlock()
	return nil
}

// Path returns the file path this store persists to.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}
	if err := util.AtomicWriteFile(s.path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
