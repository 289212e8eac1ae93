// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness-wait interface. Implementations forward to the
// kernel's multiplexing facility and dispatch nothing themselves.

package reactor

import (
	"time"

	"github.com/gcds/thruster/api"
)

// EventReactor is a registered set of handles the kernel reports readiness
// for.
type EventReactor interface {
	// Register adds h with the given interest mask. userData is returned
	// verbatim with every event for h.
	Register(h api.Handle, events uint32, userData int32) error

	// Modify replaces the interest mask and user data of a registered handle.
	Modify(h api.Handle, events uint32, userData int32) error

	// Unregister removes h.
	Unregister(h api.Handle) error

	// Wait blocks until at least one handle is ready or timeout elapses and
	// fills events. A negative timeout blocks indefinitely. EINTR is
	// returned unchanged.
	Wait(events []Event, timeout time.Duration) (n int, err error)

	// Close releases the kernel object.
	Close() error
}

// Event is one readiness notification.
type Event struct {
	Handle   api.Handle
	Events   uint32 // ready mask, same bit layout as the interest mask
	UserData int32
}

// Has reports whether every bit of mask is set in the ready mask.
func (e Event) Has(mask uint32) bool { return e.Events&mask == mask }
