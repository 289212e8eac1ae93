//go:build linux || darwin
// +build linux darwin

// File: socket/socket_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// One method per primitive, each forwarding to golang.org/x/sys/unix.

package socket

import (
	"time"

	"github.com/gcds/thruster/api"
	"github.com/gcds/thruster/internal/wait"
	"golang.org/x/sys/unix"
)

// Create calls socket(2).
func (s *Socket) Create(family, typ, proto int) (api.Handle, error) {
	fd, err := unix.Socket(family, typ, proto)
	if err != nil {
		return api.InvalidHandle, s.done("socket", api.InvalidHandle, -1, err)
	}
	return api.Handle(fd), s.done("socket", api.Handle(fd), fd, nil)
}

// Pair calls socketpair(2).
func (s *Socket) Pair(family, typ, proto int) ([2]api.Handle, error) {
	fds, err := unix.Socketpair(family, typ, proto)
	if err != nil {
		return [2]api.Handle{api.InvalidHandle, api.InvalidHandle}, s.done("socketpair", api.InvalidHandle, -1, err)
	}
	return [2]api.Handle{api.Handle(fds[0]), api.Handle(fds[1])}, s.done("socketpair", api.Handle(fds[0]), 0, nil)
}

// Bind calls bind(2).
func (s *Socket) Bind(h api.Handle, sa unix.Sockaddr) error {
	return s.done("bind", h, 0, unix.Bind(int(h), sa))
}

// Listen calls listen(2).
func (s *Socket) Listen(h api.Handle, backlog int) error {
	return s.done("listen", h, 0, unix.Listen(int(h), backlog))
}

// Accept calls accept(2). The peer address is nil on failure.
func (s *Socket) Accept(h api.Handle) (api.Handle, unix.Sockaddr, error) {
	nfd, sa, err := unix.Accept(int(h))
	if err != nil {
		return api.InvalidHandle, nil, s.done("accept", h, -1, err)
	}
	return api.Handle(nfd), sa, s.done("accept", h, nfd, nil)
}

// Connect calls connect(2). A nonblocking handle reports EINPROGRESS
// unchanged.
func (s *Socket) Connect(h api.Handle, sa unix.Sockaddr) error {
	return s.done("connect", h, 0, unix.Connect(int(h), sa))
}

// SetNonblock toggles O_NONBLOCK through fcntl(2).
func (s *Socket) SetNonblock(h api.Handle, nonblocking bool) error {
	return s.done("fcntl", h, 0, unix.SetNonblock(int(h), nonblocking))
}

// Shutdown calls shutdown(2) with unix.SHUT_RD, SHUT_WR or SHUT_RDWR.
func (s *Socket) Shutdown(h api.Handle, how int) error {
	return s.done("shutdown", h, 0, unix.Shutdown(int(h), how))
}

// Close calls close(2).
func (s *Socket) Close(h api.Handle) error {
	return s.done("close", h, 0, unix.Close(int(h)))
}

// Read calls read(2). Zero bytes with a nil error is end of stream.
func (s *Socket) Read(h api.Handle, p []byte) (int, error) {
	n, err := unix.Read(int(h), p)
	return n, s.done("read", h, n, err)
}

// Write calls write(2).
func (s *Socket) Write(h api.Handle, p []byte) (int, error) {
	n, err := unix.Write(int(h), p)
	return n, s.done("write", h, n, err)
}

// Readv calls readv(2).
func (s *Socket) Readv(h api.Handle, bufs [][]byte) (int, error) {
	n, err := unix.Readv(int(h), bufs)
	return n, s.done("readv", h, n, err)
}

// Writev calls writev(2).
func (s *Socket) Writev(h api.Handle, bufs [][]byte) (int, error) {
	n, err := unix.Writev(int(h), bufs)
	return n, s.done("writev", h, n, err)
}

// Recv calls recvfrom(2) and drops the source address.
func (s *Socket) Recv(h api.Handle, p []byte, flags int) (int, error) {
	n, _, err := unix.Recvfrom(int(h), p, flags)
	return n, s.done("recvfrom", h, n, err)
}

// Send calls sendmsg(2) without destination or ancillary data, which is
// the kernel's send(2).
func (s *Socket) Send(h api.Handle, p []byte, flags int) (int, error) {
	n, err := unix.SendmsgN(int(h), p, nil, nil, flags)
	return n, s.done("sendmsg", h, n, err)
}

// RecvFrom calls recvfrom(2).
func (s *Socket) RecvFrom(h api.Handle, p []byte, flags int) (int, unix.Sockaddr, error) {
	n, from, err := unix.Recvfrom(int(h), p, flags)
	return n, from, s.done("recvfrom", h, n, err)
}

// SendTo sends p to the address to. It goes through sendmsg(2) because
// x/sys Sendto discards the byte count. A nil to is send(2).
func (s *Socket) SendTo(h api.Handle, p []byte, flags int, to unix.Sockaddr) (int, error) {
	n, err := unix.SendmsgN(int(h), p, nil, to, flags)
	return n, s.done("sendmsg", h, n, err)
}

// RecvMsg calls recvmsg(2) with one iovec per buffer.
func (s *Socket) RecvMsg(h api.Handle, bufs [][]byte, oob []byte, flags int) (n, oobn, recvflags int, from unix.Sockaddr, err error) {
	n, oobn, recvflags, from, err = unix.RecvmsgBuffers(int(h), bufs, oob, flags)
	return n, oobn, recvflags, from, s.done("recvmsg", h, n, err)
}

// SendMsg calls sendmsg(2) with one iovec per buffer. to may be nil on a
// connected handle.
func (s *Socket) SendMsg(h api.Handle, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error) {
	n, err := unix.SendmsgBuffers(int(h), bufs, oob, to, flags)
	return n, s.done("sendmsg", h, n, err)
}

// Select calls select(2). A negative timeout blocks until a handle is ready;
// zero polls. The sets are modified in place by the kernel.
func (s *Socket) Select(nfd int, r, w, e *unix.FdSet, timeout time.Duration) (int, error) {
	var tv *unix.Timeval
	if timeout >= 0 {
		t := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &t
	}
	n, err := unix.Select(nfd, r, w, e, tv)
	return n, s.done("select", api.InvalidHandle, n, err)
}

// Poll calls poll(2). A negative timeout blocks. A positive timeout is
// rounded up to whole milliseconds and clamped to the kernel's range.
func (s *Socket) Poll(fds []unix.PollFd, timeout time.Duration) (int, error) {
	n, err := unix.Poll(fds, wait.Millis(timeout))
	return n, s.done("poll", api.InvalidHandle, n, err)
}

// GetOption calls getsockopt(2) for an integer option.
func (s *Socket) GetOption(h api.Handle, level, name int) (int, error) {
	v, err := unix.GetsockoptInt(int(h), level, name)
	return v, s.done("getsockopt", h, v, err)
}

// SetOption calls setsockopt(2) for an integer option.
func (s *Socket) SetOption(h api.Handle, level, name, value int) error {
	return s.done("setsockopt", h, 0, unix.SetsockoptInt(int(h), level, name, value))
}

// GetOptionBytes calls getsockopt(2) for an option with an opaque value,
// such as SO_BINDTODEVICE or TCP_CONGESTION.
func (s *Socket) GetOptionBytes(h api.Handle, level, name int) (string, error) {
	v, err := unix.GetsockoptString(int(h), level, name)
	return v, s.done("getsockopt", h, len(v), err)
}

// SetOptionBytes calls setsockopt(2) with an opaque value.
func (s *Socket) SetOptionBytes(h api.Handle, level, name int, value string) error {
	return s.done("setsockopt", h, 0, unix.SetsockoptString(int(h), level, name, value))
}

// GetLinger reads SO_LINGER.
func (s *Socket) GetLinger(h api.Handle) (*unix.Linger, error) {
	l, err := unix.GetsockoptLinger(int(h), unix.SOL_SOCKET, unix.SO_LINGER)
	return l, s.done("getsockopt", h, 0, err)
}

// SetLinger writes SO_LINGER.
func (s *Socket) SetLinger(h api.Handle, l *unix.Linger) error {
	return s.done("setsockopt", h, 0, unix.SetsockoptLinger(int(h), unix.SOL_SOCKET, unix.SO_LINGER, l))
}

// GetTimeout reads a SOL_SOCKET timeval option, normally SO_RCVTIMEO or
// SO_SNDTIMEO.
func (s *Socket) GetTimeout(h api.Handle, name int) (time.Duration, error) {
	tv, err := unix.GetsockoptTimeval(int(h), unix.SOL_SOCKET, name)
	if err != nil {
		return 0, s.done("getsockopt", h, -1, err)
	}
	return time.Duration(tv.Nano()), s.done("getsockopt", h, 0, nil)
}

// SetTimeout writes a SOL_SOCKET timeval option. Zero disables the timeout.
func (s *Socket) SetTimeout(h api.Handle, name int, d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return s.done("setsockopt", h, 0, unix.SetsockoptTimeval(int(h), unix.SOL_SOCKET, name, &tv))
}

// LocalAddr calls getsockname(2).
func (s *Socket) LocalAddr(h api.Handle) (unix.Sockaddr, error) {
	sa, err := unix.Getsockname(int(h))
	return sa, s.done("getsockname", h, 0, err)
}

// PeerAddr calls getpeername(2).
func (s *Socket) PeerAddr(h api.Handle) (unix.Sockaddr, error) {
	sa, err := unix.Getpeername(int(h))
	return sa, s.done("getpeername", h, 0, err)
}
