//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7) reactor.

package reactor

import (
	"os"
	"sync"
	"time"

	"github.com/gcds/thruster/api"
	"github.com/gcds/thruster/internal/wait"
	"golang.org/x/sys/unix"
)

// Interest and readiness bits, in epoll layout.
const (
	Readable      uint32 = unix.EPOLLIN
	Writable      uint32 = unix.EPOLLOUT
	Error         uint32 = unix.EPOLLERR
	Hangup        uint32 = unix.EPOLLHUP
	PeerClosed    uint32 = unix.EPOLLRDHUP
	EdgeTriggered uint32 = unix.EPOLLET
	OneShot       uint32 = unix.EPOLLONESHOT
)

// Epoll is an epoll instance.
type Epoll struct {
	epfd int
	raw  sync.Pool // of *[]unix.EpollEvent
}

var _ EventReactor = (*Epoll)(nil)

// New calls epoll_create1 with EPOLL_CLOEXEC.
func New() (*Epoll, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, os.NewSyscallError("epoll_create1", err)
	}
	r := &Epoll{epfd: epfd}
	r.raw.New = func() any { return new([]unix.EpollEvent) }
	return r, nil
}

// Handle returns the epoll descriptor itself, which is pollable.
func (r *Epoll) Handle() api.Handle { return api.Handle(r.epfd) }

func (r *Epoll) ctl(op int, h api.Handle, events uint32, userData int32) error {
	ev := &unix.EpollEvent{
		Events: events,
		Fd:     int32(h),
		Pad:    userData,
	}
	return os.NewSyscallError("epoll_ctl", unix.EpollCtl(r.epfd, op, int(h), ev))
}

// Register calls epoll_ctl(EPOLL_CTL_ADD).
func (r *Epoll) Register(h api.Handle, events uint32, userData int32) error {
	return r.ctl(unix.EPOLL_CTL_ADD, h, events, userData)
}

// Modify calls epoll_ctl(EPOLL_CTL_MOD).
func (r *Epoll) Modify(h api.Handle, events uint32, userData int32) error {
	return r.ctl(unix.EPOLL_CTL_MOD, h, events, userData)
}

// Unregister calls epoll_ctl(EPOLL_CTL_DEL).
func (r *Epoll) Unregister(h api.Handle) error {
	return os.NewSyscallError("epoll_ctl", unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, int(h), nil))
}

// Wait calls epoll_wait with room for len(events) notifications. A
// positive timeout is rounded up to whole milliseconds. Wait may be called
// from several goroutines at once; each call uses its own kernel buffer.
func (r *Epoll) Wait(events []Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	bp := r.raw.Get().(*[]unix.EpollEvent)
	defer r.raw.Put(bp)
	if cap(*bp) < len(events) {
		*bp = make([]unix.EpollEvent, len(events))
	}
	raw := (*bp)[:len(events)]

	n, err := unix.EpollWait(r.epfd, raw, wait.Millis(timeout))
	if err != nil {
		return n, os.NewSyscallError("epoll_wait", err)
	}
	for i := 0; i < n; i++ {
		events[i] = Event{
			Handle:   api.Handle(raw[i].Fd),
			Events:   raw[i].Events,
			UserData: raw[i].Pad,
		}
	}
	return n, nil
}

// Close closes the epoll descriptor.
func (r *Epoll) Close() error {
	return os.NewSyscallError("close", unix.Close(r.epfd))
}
