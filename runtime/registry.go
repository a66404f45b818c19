package runtime

import (
	"fmt"
	"sync"

	"relay-chat/contract"
	errs "relay-chat/errors"
)

type Set map[string]struct{}

// Registry owns the roster of live sessions. It is the only access path
// to session membership; every mutation is serialized behind the mutex
// so a snapshot never mixes stale and fresh state.
type Registry struct {
	mu    sync.RWMutex
	sinks map[string]contract.EventSink
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		sinks: make(map[string]contract.EventSink),
	}
}

// Add inserts a new session. A duplicate id means the transport broke
// its uniqueness guarantee, so it is reported rather than overwritten.
func (r *Registry) Add(id string, sink contract.EventSink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[id]; ok {
		return fmt.Errorf("%w: %s", errs.ErrDuplicateSession, id)
	}
	r.sinks[id] = sink
	r.order = append(r.order, id)
	return nil
}

// Remove deletes a session and reports whether membership changed.
// Removing an absent id is a no-op, tolerating late or duplicate
// disconnect notifications.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sinks[id]; !ok {
		return false
	}
	delete(r.sinks, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot returns the roster in insertion order. The slice is a copy,
// safe to hold across concurrent mutations.
func (r *Registry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster := make([]string, len(r.order))
	copy(roster, r.order)
	return roster
}

// Sessions returns id/sink pairs from one consistent view of the
// registry, in insertion order. Delivery operations iterate this so a
// broadcast never observes a half-applied mutation.
func (r *Registry) Sessions() []contract.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := make([]contract.Session, 0, len(r.order))
	for _, id := range r.order {
		sessions = append(sessions, contract.Session{ID: id, Sink: r.sinks[id]})
	}
	return sessions
}

// Sink resolves a session id to its outbound sink.
func (r *Registry) Sink(id string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sink, ok := r.sinks[id]
	return sink, ok
}
