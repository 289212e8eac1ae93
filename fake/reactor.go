// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package fake

import (
	"sync"
	"time"

	"github.com/gcds/thruster/api"
	"github.com/gcds/thruster/reactor"
	"golang.org/x/sys/unix"
)

// Reactor is a scripted reactor.EventReactor. Wait hands out pushed events
// in order and never blocks.
type Reactor struct {
	mu       sync.Mutex
	interest map[api.Handle]uint32
	pending  []reactor.Event
	waitErr  error
	closed   bool
}

var _ reactor.EventReactor = (*Reactor)(nil)

// NewReactor returns an empty scripted reactor.
func NewReactor() *Reactor {
	return &Reactor{interest: make(map[api.Handle]uint32)}
}

// Push queues events for the next Wait calls.
func (r *Reactor) Push(evs ...reactor.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, evs...)
}

// SetWaitError makes Wait fail with err until cleared with nil.
func (r *Reactor) SetWaitError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waitErr = err
}

// Interest returns the registered mask of h.
func (r *Reactor) Interest(h api.Handle) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.interest[h]
	return m, ok
}

func (r *Reactor) Register(h api.Handle, events uint32, _ int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interest[h]; ok {
		return unix.EEXIST
	}
	r.interest[h] = events
	return nil
}

func (r *Reactor) Modify(h api.Handle, events uint32, _ int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interest[h]; !ok {
		return unix.ENOENT
	}
	r.interest[h] = events
	return nil
}

func (r *Reactor) Unregister(h api.Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interest[h]; !ok {
		return unix.ENOENT
	}
	delete(r.interest, h)
	return nil
}

func (r *Reactor) Wait(events []reactor.Event, _ time.Duration) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, unix.EBADF
	}
	if r.waitErr != nil {
		return 0, r.waitErr
	}
	n := copy(events, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *Reactor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
