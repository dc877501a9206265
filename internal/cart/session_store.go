package cart

import "sync"

// SessionStore maps session IDs to their cart aggregators. Carts are created
// empty on first touch and live only in process memory; there is no
// persistence across restarts.
type SessionStore struct {
	mu    sync.RWMutex
	carts map[string]*Aggregator
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		carts: make(map[string]*Aggregator),
	}
}

// Get returns the aggregator for the session, creating an empty cart if the
// session has none yet.
func (s *SessionStore) Get(sessionID string) *Aggregator {
	s.mu.RLock()
	agg, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return agg
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if agg, ok := s.carts[sessionID]; ok {
		return agg
	}
	agg = NewAggregator()
	s.carts[sessionID] = agg
	return agg
}

// Drop discards the session's cart, used after a confirmed checkout.
func (s *SessionStore) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Len reports the number of active cart sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
