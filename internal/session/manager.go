// Package session provides the single-writer boundary around game states:
// one authoritative holder per user+puzzle key. The engine itself has no
// locking, so every mutation must come through here.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/kurobon/gitquest/internal/engine"
	"github.com/kurobon/gitquest/internal/puzzle"
)

// PuzzleSource is the read-only puzzle store boundary the manager hydrates
// sessions from.
type PuzzleSource interface {
	Load(id string) (*puzzle.Puzzle, error)
}

// Session is one player's attempt at one puzzle. The mutex serializes all
// command application for this attempt.
type Session struct {
	UserID    string
	PuzzleID  string
	State     *engine.GameState
	CreatedAt time.Time
	mu        sync.Mutex
}

// Manager holds live sessions keyed by user+puzzle.
type Manager struct {
	source   PuzzleSource
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewManager creates a manager over the given puzzle source.
func NewManager(source PuzzleSource) *Manager {
	return &Manager{
		source:   source,
		sessions: make(map[string]*Session),
	}
}

func key(puzzleID, userID string) string {
	return userID + "/" + puzzleID
}

// Hydrate returns the existing session for (puzzleID, userID) or creates a
// fresh one from the stored puzzle.
func (m *Manager) Hydrate(puzzleID, userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(puzzleID, userID)
	if s, ok := m.sessions[k]; ok {
		return s, nil
	}

	p, err := m.source.Load(puzzleID)
	if err != nil {
		return nil, err
	}
	state, err := p.NewGameState()
	if err != nil {
		return nil, err
	}
	s := &Session{
		UserID:    userID,
		PuzzleID:  puzzleID,
		State:     state,
		CreatedAt: time.Now(),
	}
	m.sessions[k] = s
	return s, nil
}

// ApplyCommand runs one command against the session under its lock.
func (m *Manager) ApplyCommand(puzzleID, userID string, cmd engine.Command) (engine.CommandResult, error) {
	s, err := m.Hydrate(puzzleID, userID)
	if err != nil {
		return engine.CommandResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Apply(s.State, cmd), nil
}

// Undo pops the session's most recent snapshot. The boolean reports whether
// anything was undone.
func (m *Manager) Undo(puzzleID, userID string) (engine.CommandResult, bool, error) {
	s, err := m.Hydrate(puzzleID, userID)
	if err != nil {
		return engine.CommandResult{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := engine.Undo(s.State)
	return res, res.Success, nil
}

// Abandon marks the session abandoned and drops it, releasing its undo-stack
// memory. Called by external inactivity cleanup.
func (m *Manager) Abandon(puzzleID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key(puzzleID, userID)
	s, ok := m.sessions[k]
	if !ok {
		return fmt.Errorf("session not found")
	}
	s.mu.Lock()
	if s.State.Status == engine.StatusInProgress {
		s.State.Status = engine.StatusAbandoned
	}
	s.mu.Unlock()
	delete(m.sessions, k)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
