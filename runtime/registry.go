package runtime

import (
	"sync"

	"stageshow/contract"
)

type set map[string]struct{}

// Registry tracks each connection's sink and its session membership. It
// performs a two-step lookup so a connection's sink is managed in a single
// place even as sessions come and go around it.
type Registry struct {
	mu             sync.RWMutex
	sinks          map[string]contract.StateSink // connection id -> sink
	sessionMembers map[string]set                // session id -> connection ids
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:          make(map[string]contract.StateSink),
		sessionMembers: make(map[string]set),
	}
}

// SinksForSession resolves all live sinks subscribed to a session. Returns
// nil when the session has no connections.
func (r *Registry) SinksForSession(sessionID string) []contract.StateSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.sessionMembers[sessionID]
	if !ok {
		return nil
	}
	var active []contract.StateSink
	for connID := range members {
		if sink, exists := r.sinks[connID]; exists {
			active = append(active, sink)
		}
	}
	return active
}

// Subscribe registers a connection's sink and assigns it to a session.
// The session entry is initialized on the fly when it does not exist yet.
func (r *Registry) Subscribe(connID, sessionID string, sink contract.StateSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sinks[connID] = sink

	if _, ok := r.sessionMembers[sessionID]; !ok {
		r.sessionMembers[sessionID] = make(set)
	}
	r.sessionMembers[sessionID][connID] = struct{}{}
}

// Unsubscribe removes a connection from the registry. Empty member sets are
// cleaned up so long-running processes do not accumulate dead sessions.
func (r *Registry) Unsubscribe(connID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sinks, connID)

	if members, ok := r.sessionMembers[sessionID]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.sessionMembers, sessionID)
		}
	}
}

// HasConnections reports whether any connection is subscribed to the session.
func (r *Registry) HasConnections(sessionID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessionMembers[sessionID]) > 0
}
