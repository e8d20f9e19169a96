package handlers

import (
	"sync"

	"five-card-trick-go/internal/game/fivecard"
)

// ManagedSession pairs a live session with its owner and presentation-only
// asset references (opaque strings keyed by card text, passed through to the
// deck view untouched).
type ManagedSession struct {
	Mu      sync.Mutex
	Session *fivecard.Session
	OwnerID int64
	Assets  map[string]string
}

// SessionManager holds live sessions keyed by their database row id. Card
// state lives only in memory; the row carries ownership/mode/phase.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*ManagedSession
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: map[int64]*ManagedSession{}}
}

func (m *SessionManager) Get(sessionID int64) (*ManagedSession, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

func (m *SessionManager) Set(sessionID int64, s *ManagedSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = s
}

func (m *SessionManager) Delete(sessionID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

var defaultSessionManager = NewSessionManager()
