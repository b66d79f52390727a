// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"

	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/api"
	"github.com/Thewolf9900/SmartSchoolSystem-sub000/internal/model"
)

// =============================================================================
// CAPACITY INVARIANTS
// =============================================================================

const (
	// MaxOpenConversations is the hard capacity limit of the open set.
	MaxOpenConversations = 3

	// MinOpenConversations enforces the "never fully empty" invariant.
	MinOpenConversations = 1
)

// DefaultGreeting is the canned assistant greeting seeded into synthesized
// and cleared conversations. It is a local placeholder and never makes a
// server round trip.
const DefaultGreeting = "Hello! I'm the SmartSchool assistant. Ask me anything about your courses, grades, or enrollment."

// ClearMode selects what the clear action does server-side.
type ClearMode string

const (
	// ClearLocal resets the local message list only (the original behavior).
	ClearLocal ClearMode = "local"

	// ClearServer also erases the history server-side.
	ClearServer ClearMode = "server"
)

// Config holds session manager configuration.
type Config struct {
	// Greeting is the canned assistant greeting. Empty selects the default.
	Greeting string

	// Clear selects whether clearing persists server-side. Default local.
	Clear ClearMode
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		Greeting: DefaultGreeting,
		Clear:    ClearLocal,
	}
}

// initState tracks the one-shot initialization lifecycle.
type initState int

const (
	initNotStarted initState = iota
	initInFlight
	initDone
)

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the open conversation set, the active cursor, the lazy
// history cache, and all in-flight operation tracking. One instance per
// open chat widget.
type Manager struct {
	mu  sync.Mutex
	svc api.Service
	cfg Config

	// Open set, in server list order then append order. Invariant once
	// initialized: 1 <= len <= MaxOpenConversations, activeID a member.
	conversations []*model.Conversation
	activeID      string

	init        initState
	loadingList bool

	// In-flight tracking. pendingOpens counts toward capacity so rapid
	// opens cannot overshoot; closing ids count toward the minimum so
	// rapid closes cannot empty the set.
	pendingOpens int
	loads        map[string]bool   // conversation id -> history fetch in flight
	sends        map[string]string // conversation id -> provisional id in flight
	closing      map[string]bool   // conversation id -> delete in flight

	disposed bool
	events   chan Event
}

// New creates a session manager over the given conversation service.
func New(svc api.Service, cfg Config) *Manager {
	if cfg.Greeting == "" {
		cfg.Greeting = DefaultGreeting
	}
	if cfg.Clear == "" {
		cfg.Clear = ClearLocal
	}
	return &Manager{
		svc:     svc,
		cfg:     cfg,
		loads:   make(map[string]bool),
		sends:   make(map[string]string),
		closing: make(map[string]bool),
		events:  make(chan Event, 64),
	}
}

// Dispose marks the session dead and closes the event channel, which is
// the consumer's teardown signal. Late completions from outstanding
// network calls become no-ops instead of mutating a dead widget's state.
// Safe to call more than once.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return
	}
	m.disposed = true
	close(m.events)
}

// greeting returns a fresh canned greeting message.
func (m *Manager) greeting() *model.Message {
	return model.NewAssistantMessage(m.cfg.Greeting)
}

// findLocked returns the open conversation with the given id, or nil.
// Callers must hold the mutex.
func (m *Manager) findLocked(id string) *model.Conversation {
	for _, conv := range m.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

// =============================================================================
// INITIALIZE
// =============================================================================

// Initialize performs the widget's first sync: it fetches the conversation
// list, adopts it with every history unloaded, and activates the first
// entry. An empty account gets exactly one server-created conversation
// seeded with the canned greeting. Idempotent: calls while a sync is in
// flight, or after one succeeded, are no-ops. A failed sync may be retried.
func (m *Manager) Initialize(ctx context.Context) {
	m.mu.Lock()
	if m.disposed || m.init != initNotStarted {
		m.mu.Unlock()
		return
	}
	m.init = initInFlight
	m.loadingList = true
	m.emitChanged()
	m.mu.Unlock()

	go m.runInitialize(ctx)
}

func (m *Manager) runInitialize(ctx context.Context) {
	infos, err := m.svc.ListConversations(ctx)
	if err != nil {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.disposed {
			return
		}
		m.loadingList = false
		m.init = initNotStarted
		m.emitError("Could not load conversations: " + err.Error())
		return
	}

	if len(infos) == 0 {
		// Empty account: synthesize exactly one conversation. The greeting
		// is seeded locally, so no history fetch is ever issued for it.
		info, err := m.svc.CreateConversation(ctx)
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.disposed {
			return
		}
		m.loadingList = false
		if err != nil {
			m.init = initNotStarted
			m.emitError("Could not start a conversation: " + err.Error())
			return
		}
		conv := model.NewConversation(info.ID, info.Name)
		conv.Reset(m.greeting())
		m.conversations = []*model.Conversation{conv}
		m.activeID = conv.ID
		m.init = initDone
		m.emitChanged()
		return
	}

	m.mu.Lock()
	m.loadingList = false
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.conversations = make([]*model.Conversation, 0, len(infos))
	for _, info := range infos {
		m.conversations = append(m.conversations, model.NewConversation(info.ID, info.Name))
	}
	m.activeID = m.conversations[0].ID
	m.init = initDone
	// First activation of the first entry triggers its lazy load.
	m.ensureLoadedLocked(ctx, m.activeID)
	m.emitChanged()
	m.mu.Unlock()
}

// =============================================================================
// SELECT
// =============================================================================

// Select makes the given conversation active. Ids outside the open set are
// a silent no-op. The first activation of an unloaded conversation issues
// its one history fetch.
func (m *Manager) Select(ctx context.Context, id string) {
	m.mu.Lock()
	if m.disposed || m.findLocked(id) == nil {
		m.mu.Unlock()
		return
	}
	m.activeID = id
	m.ensureLoadedLocked(ctx, id)
	m.emitChanged()
	m.mu.Unlock()
}

// =============================================================================
// OPEN
// =============================================================================

// OpenNew creates a conversation server-side, appends it to the open set,
// and activates it. At capacity the intent is rejected with a warning and
// no state change; in-flight opens count toward capacity so rapid clicks
// cannot overshoot the limit.
func (m *Manager) OpenNew(ctx context.Context) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	if len(m.conversations)+m.pendingOpens >= MaxOpenConversations {
		m.emitWarning("You can keep at most 3 conversations open.")
		m.mu.Unlock()
		return
	}
	m.pendingOpens++
	m.emitChanged()
	m.mu.Unlock()

	go func() {
		info, err := m.svc.CreateConversation(ctx)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.pendingOpens--
		if m.disposed {
			return
		}
		if err != nil {
			m.emitError("Could not open a conversation: " + err.Error())
			return
		}
		conv := model.NewConversation(info.ID, info.Name)
		// A freshly created conversation has no server history worth
		// fetching; it starts loaded with the greeting.
		conv.Reset(m.greeting())
		m.conversations = append(m.conversations, conv)
		m.activeID = conv.ID
		m.emitChanged()
	}()
}

// =============================================================================
// CLOSE
// =============================================================================

// Close deletes the conversation server-side and removes it from the open
// set. Closing the last remaining conversation is rejected with an info
// notice; in-flight closes count toward the minimum so rapid closes cannot
// empty the set. If the closed conversation was active, the first remaining
// entry becomes active (positional fallback, as the original behaves).
func (m *Manager) Close(ctx context.Context, id string) {
	m.mu.Lock()
	if m.disposed || m.findLocked(id) == nil || m.closing[id] {
		m.mu.Unlock()
		return
	}
	if len(m.conversations)-len(m.closing) <= MinOpenConversations {
		m.emitInfo("At least one conversation stays open.")
		m.mu.Unlock()
		return
	}
	m.closing[id] = true
	m.mu.Unlock()

	go func() {
		err := m.svc.DeleteConversation(ctx, id)

		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.closing, id)
		if m.disposed {
			return
		}
		if err != nil {
			m.emitError("Could not close the conversation: " + err.Error())
			return
		}
		m.removeLocked(id)
		delete(m.loads, id)
		delete(m.sends, id)
		m.emitInfo("Conversation closed.")
	}()
}

// removeLocked removes the conversation and repairs the active cursor.
// Callers must hold the mutex.
func (m *Manager) removeLocked(id string) {
	for i, conv := range m.conversations {
		if conv.ID == id {
			m.conversations = append(m.conversations[:i], m.conversations[i+1:]...)
			break
		}
	}
	if m.activeID == id && len(m.conversations) > 0 {
		m.activeID = m.conversations[0].ID
	}
}

// =============================================================================
// CLEAR
// =============================================================================

// ClearActive replaces the active conversation's history with the canned
// greeting. Under the default local policy nothing is sent to the server;
// under the server policy the history is erased remotely first and the
// local reset only happens when that succeeds.
func (m *Manager) ClearActive(ctx context.Context) {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	conv := m.findLocked(m.activeID)
	if conv == nil {
		m.mu.Unlock()
		return
	}

	if m.cfg.Clear == ClearLocal {
		conv.Reset(m.greeting())
		m.emitInfo("Conversation cleared.")
		m.mu.Unlock()
		return
	}

	id := conv.ID
	m.mu.Unlock()

	go func() {
		err := m.svc.ClearConversation(ctx, id)

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.disposed {
			return
		}
		if err != nil {
			m.emitError("Could not clear the conversation: " + err.Error())
			return
		}
		if conv := m.findLocked(id); conv != nil {
			conv.Reset(m.greeting())
			m.emitInfo("Conversation cleared.")
		}
	}()
}
