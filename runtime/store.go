package runtime

import (
	"sync"
	"time"

	"stageshow/domain"
)

// sessionEntry pairs a snapshot with the mutex that serializes its mutation
// path. The entry mutex is held across read-reduce-commit, which is the
// lost-update guarantee of the whole system; the store mutex only guards the
// session map itself.
type sessionEntry struct {
	mu    sync.Mutex
	state domain.ShowState
}

// SessionStore owns one authoritative ShowState per session id. Sessions are
// created implicitly on first reference and live until evicted; different
// sessions share no mutable state and stay independently lockable.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry

	catalog   domain.Catalog
	showTitle string
}

func NewSessionStore(catalog domain.Catalog, showTitle string) *SessionStore {
	return &SessionStore{
		sessions:  make(map[string]*sessionEntry),
		catalog:   catalog,
		showTitle: showTitle,
	}
}

// entry returns the session's entry, creating the default state on first
// reference.
func (s *SessionStore) entry(sessionID string) *sessionEntry {
	s.mu.RLock()
	entry, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return entry
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok = s.sessions[sessionID]; ok {
		return entry
	}
	entry = &sessionEntry{
		state: domain.NewShowState(sessionID, s.showTitle, s.catalog, time.Now().UTC()),
	}
	s.sessions[sessionID] = entry
	return entry
}

// Get returns the current snapshot for a session, creating it if absent.
func (s *SessionStore) Get(sessionID string) domain.ShowState {
	entry := s.entry(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state
}

// Apply runs fn against the current snapshot and commits its result, all
// under the session's mutex: no two in-flight transitions ever interleave on
// the same session. When fn fails nothing is committed.
func (s *SessionStore) Apply(sessionID string, fn func(domain.ShowState) (domain.ShowState, error)) (domain.ShowState, error) {
	entry := s.entry(sessionID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	next, err := fn(entry.state)
	if err != nil {
		return domain.ShowState{}, err
	}
	// The version stamp orders snapshots of one session after the entry mutex
	// is released: whoever commits later carries the higher number, no matter
	// which caller reaches the fanout first.
	next.Runtime.Version = entry.state.Runtime.Version + 1
	entry.state = next
	return next, nil
}

// EvictIdle drops sessions whose last action is older than maxIdle and for
// which inUse reports no live interest. Correctness does not depend on
// eviction: a session recreated later simply starts from the initializer.
func (s *SessionStore) EvictIdle(maxIdle time.Duration, inUse func(sessionID string) bool) []string {
	cutoff := domain.ToMillis(time.Now().UTC().Add(-maxIdle))

	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []string
	for id, entry := range s.sessions {
		if inUse != nil && inUse(id) {
			continue
		}
		entry.mu.Lock()
		idle := entry.state.Runtime.LastActionAt < cutoff
		entry.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// Len reports how many sessions are currently live.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
