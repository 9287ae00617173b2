// Package clientmap holds per-client state keyed by client id and forgets
// clients that have been idle for too long.
package clientmap

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	lastSeen time.Time
}

// Map is a concurrency-safe map from client id to V that records when each
// entry was last touched.
type Map[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	now     func() time.Time
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{entries: make(map[string]*entry[V]), now: time.Now}
}

// Get returns the value for id and marks it as seen.
func (m *Map[V]) Get(id string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		var zero V
		return zero, false
	}
	e.lastSeen = m.now()
	return e.value, true
}

// GetOrCreate returns the value for id, calling create to build it when absent.
// create runs with the map locked and must not call back into the Map.
func (m *Map[V]) GetOrCreate(id string, create func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		e = &entry[V]{value: create()}
		m.entries[id] = e
	}
	e.lastSeen = m.now()
	return e.value
}

// Set stores v under id.
func (m *Map[V]) Set(id string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = &entry[V]{value: v, lastSeen: m.now()}
}

// Update applies fn to the value for id (starting from init() when absent)
// and returns the result.
func (m *Map[V]) Update(id string, init func() V, fn func(*V)) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		e = &entry[V]{value: init()}
		m.entries[id] = e
	}
	fn(&e.value)
	e.lastSeen = m.now()
	return e.value
}

// Delete removes id and reports whether it was present.
func (m *Map[V]) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[id]
	delete(m.entries, id)
	return ok
}

// Len returns the number of clients tracked.
func (m *Map[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Sweep drops entries not seen for longer than idle. Entries for which busy
// returns true are kept regardless. It returns how many were dropped.
func (m *Map[V]) Sweep(idle time.Duration, busy func(V) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-idle)
	n := 0
	for id, e := range m.entries {
		if !e.lastSeen.Before(cutoff) {
			continue
		}
		if busy != nil && busy(e.value) {
			continue
		}
		delete(m.entries, id)
		n++
	}
	return n
}
