// File: api/sockets.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket façade contract: one method per BSD socket primitive.
// Implementations forward arguments unchanged and return the primitive's
// raw result, so callers can swap the real façade for a decorator or fake.

package api

import (
	"net"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Handle is an OS socket descriptor. It is opaque to the façade: the kernel
// and the caller own its lifetime.
type Handle int

// InvalidHandle is the failure sentinel of handle-producing calls.
const InvalidHandle Handle = -1

// Sockets is the full pass-through surface.
type Sockets interface {
	// Lifecycle.
	Create(family, typ, proto int) (Handle, error)
	Pair(family, typ, proto int) ([2]Handle, error)
	Bind(h Handle, sa unix.Sockaddr) error
	Listen(h Handle, backlog int) error
	Accept(h Handle) (Handle, unix.Sockaddr, error)
	Connect(h Handle, sa unix.Sockaddr) error
	SetNonblock(h Handle, nonblocking bool) error
	Shutdown(h Handle, how int) error
	Close(h Handle) error

	// Data transfer.
	Read(h Handle, p []byte) (int, error)
	Write(h Handle, p []byte) (int, error)
	Readv(h Handle, bufs [][]byte) (int, error)
	Writev(h Handle, bufs [][]byte) (int, error)
	Recv(h Handle, p []byte, flags int) (int, error)
	Send(h Handle, p []byte, flags int) (int, error)
	RecvFrom(h Handle, p []byte, flags int) (int, unix.Sockaddr, error)
	SendTo(h Handle, p []byte, flags int, to unix.Sockaddr) (int, error)
	RecvMsg(h Handle, bufs [][]byte, oob []byte, flags int) (n, oobn, recvflags int, from unix.Sockaddr, err error)
	SendMsg(h Handle, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error)

	// Readiness.
	Select(nfd int, r, w, e *unix.FdSet, timeout time.Duration) (int, error)
	Poll(fds []unix.PollFd, timeout time.Duration) (int, error)

	// Options.
	GetOption(h Handle, level, name int) (int, error)
	SetOption(h Handle, level, name, value int) error
	GetOptionBytes(h Handle, level, name int) (string, error)
	SetOptionBytes(h Handle, level, name int, value string) error
	GetLinger(h Handle) (*unix.Linger, error)
	SetLinger(h Handle, l *unix.Linger) error
	GetTimeout(h Handle, name int) (time.Duration, error)
	SetTimeout(h Handle, name int, d time.Duration) error

	// Addresses.
	LocalAddr(h Handle) (unix.Sockaddr, error)
	PeerAddr(h Handle) (unix.Sockaddr, error)

	// Last error.
	LastError() unix.Errno
	ErrorString(code unix.Errno) string
	ClearError()

	// Stream import/export.
	Import(c syscall.Conn) (Handle, error)
	ImportFile(f *os.File) (Handle, error)
	Export(h Handle) (net.Conn, error)
}
