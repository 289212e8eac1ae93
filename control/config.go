// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with snapshot reads and reload listeners.

package control

import (
	"sync"
)

// ConfigStore holds one configuration value of type T and notifies
// listeners whenever it is replaced.
type ConfigStore[T any] struct {
	mu        sync.RWMutex
	config    T
	listeners []func(T)
}

// NewConfigStore initializes a store with the given initial value.
func NewConfigStore[T any](initial T) *ConfigStore[T] {
	return &ConfigStore[T]{
		config:    initial,
		listeners: make([]func(T), 0),
	}
}

// Snapshot returns the current value.
func (cs *ConfigStore[T]) Snapshot() T {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.config
}

// Store replaces the value and dispatches reload listeners synchronously,
// outside the lock, in registration order.
func (cs *ConfigStore[T]) Store(cfg T) {
	cs.mu.Lock()
	cs.config = cfg
	listeners := make([]func(T), len(cs.listeners))
	copy(listeners, cs.listeners)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(cfg)
	}
}

// Update applies fn to a copy of the current value and stores the result.
func (cs *ConfigStore[T]) Update(fn func(*T)) {
	cfg := cs.Snapshot()
	fn(&cfg)
	cs.Store(cfg)
}

// OnReload registers a listener called after every Store.
func (cs *ConfigStore[T]) OnReload(fn func(T)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
