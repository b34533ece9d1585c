package server

import (
	"errors"
	"sync"
)

// ErrTooManySessions is returned when MaxSessions is reached.
var ErrTooManySessions = errors.New("server: too many sessions")

// Manager tracks live sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	total    uint64
}

// NewManager returns a Manager capped at max sessions (0 = unlimited).
func NewManager(max int) *Manager {
	return &Manager{sessions: make(map[string]*Session), max: max}
}

// Add registers s.
func (m *Manager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.sessions) >= m.max {
		return ErrTooManySessions
	}
	m.sessions[s.ID] = s
	m.total++
	return nil
}

// Remove forgets the session with id.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Get returns the session with id, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Total returns how many sessions were ever added.
func (m *Manager) Total() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.total
}

// Full reports whether Add would fail.
func (m *Manager) Full() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.max > 0 && len(m.sessions) >= m.max
}

// CloseAll closes every session.
func (m *Manager) CloseAll() {
	m.mu.RLock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()

	for _, s := range list {
		s.Close()
	}
}
