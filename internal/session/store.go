package session

import "sync"

// Store keeps at most one session. Implementations replace the session
// wholesale; partial updates are not possible.
type Store interface {
	Write(s Session)
	Read() (Session, bool)
	Clear()
}

// MemoryStore is a Store that lives exactly as long as the process
type MemoryStore struct {
	mu      sync.RWMutex
	current *Session
}

// NewMemoryStore returns an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Write replaces any existing session
func (m *MemoryStore) Write(s Session) {
	c := s.clone()
	m.mu.Lock()
	m.current = &c
	m.mu.Unlock()
}

// Read returns the current session, ok is false when nobody is signed in
func (m *MemoryStore) Read() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return m.current.clone(), true
}

// Clear removes the session. Clearing an empty store is a no-op.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
}
