// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counters keyed by name. Counters are created on first use and
// never removed.

package control

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds named monotonic counters.
type Metrics struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	updated  atomic.Int64 // unix nanos of last Add
}

// NewMetrics creates an empty registry.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]*atomic.Int64),
	}
}

func (m *Metrics) counter(key string) *atomic.Int64 {
	m.mu.RLock()
	c, ok := m.counters[key]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.counters[key]; !ok {
		c = new(atomic.Int64)
		m.counters[key] = c
	}
	return c
}

// Add increments key by delta.
func (m *Metrics) Add(key string, delta int64) {
	m.counter(key).Add(delta)
	m.updated.Store(time.Now().UnixNano())
}

// Inc increments key by one.
func (m *Metrics) Inc(key string) { m.Add(key, 1) }

// Get returns the current value of key, zero if it was never touched.
func (m *Metrics) Get(key string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.counters[key]; ok {
		return c.Load()
	}
	return 0
}

// Snapshot returns a copy of all counters.
func (m *Metrics) Snapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.counters))
	for k, c := range m.counters {
		out[k] = c.Load()
	}
	return out
}

// Updated reports when a counter last changed. Zero if never.
func (m *Metrics) Updated() time.Time {
	ns := m.updated.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}
