//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms. Callers fall back to
// socket.Socket.Select or Poll.

package reactor

import (
	"time"

	"github.com/gcds/thruster/api"
)

const (
	Readable      uint32 = 0x1
	Writable      uint32 = 0x4
	Error         uint32 = 0x8
	Hangup        uint32 = 0x10
	PeerClosed    uint32 = 0x2000
	EdgeTriggered uint32 = 1 << 31
	OneShot       uint32 = 1 << 30
)

// Epoll is unavailable on this platform.
type Epoll struct{}

var _ EventReactor = (*Epoll)(nil)

// New returns api.ErrNotSupported.
func New() (*Epoll, error) {
	return nil, api.ErrNotSupported
}

func (r *Epoll) Handle() api.Handle                          { return api.InvalidHandle }
func (r *Epoll) Register(api.Handle, uint32, int32) error    { return api.ErrNotSupported }
func (r *Epoll) Modify(api.Handle, uint32, int32) error      { return api.ErrNotSupported }
func (r *Epoll) Unregister(api.Handle) error                 { return api.ErrNotSupported }
func (r *Epoll) Wait([]Event, time.Duration) (int, error)    { return 0, api.ErrNotSupported }
func (r *Epoll) Close() error                                { return nil }
