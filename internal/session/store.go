package session

import (
	"sync"
	"time"
)

// Store is the in-memory session registry. Sessions live only in this
// process; a restart forgets them all, and idle sessions are swept after
// the configured TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewStore creates a registry sweeping sessions idle longer than ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Get returns the session for an ID, if present.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate returns the session for an ID, creating it on first use.
func (st *Store) GetOrCreate(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s := newSession(id)
	st.sessions[id] = s
	return s
}

// Sweep removes sessions idle longer than the TTL and reports how many were
// dropped. Running sessions are left alone regardless of idle time.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := time.Now().Add(-st.ttl)
	removed := 0
	for id, s := range st.sessions {
		_, status := s.Progress()
		if status == StatusRunning {
			continue
		}
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
