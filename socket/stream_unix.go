//go:build linux || darwin
// +build linux darwin

// File: socket/stream_unix.go
// Author: momentics <momentics@gmail.com>
//
// Moving descriptors between the Go runtime and the façade. Both directions
// duplicate the descriptor, so either side may be closed independently.
// The duplicate shares the open file description: the runtime keeps its
// sockets in nonblocking mode and the imported handle observes that.

package socket

import (
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/gcds/thruster/api"
	"golang.org/x/sys/unix"
)

// Import duplicates the descriptor behind a runtime stream, such as a
// *net.TCPConn, *net.UnixConn or *os.File, and returns it as a handle.
func (s *Socket) Import(c syscall.Conn) (api.Handle, error) {
	rc, err := c.SyscallConn()
	if err != nil {
		return api.InvalidHandle, s.record("syscallconn", api.InvalidHandle, -1, err)
	}
	nfd := -1
	var dupErr error
	if err := rc.Control(func(fd uintptr) {
		nfd, dupErr = unix.FcntlInt(fd, unix.F_DUPFD_CLOEXEC, 0)
	}); err != nil {
		return api.InvalidHandle, s.record("syscallconn", api.InvalidHandle, -1, err)
	}
	if dupErr != nil {
		return api.InvalidHandle, s.done("fcntl", api.InvalidHandle, -1, dupErr)
	}
	return api.Handle(nfd), s.done("fcntl", api.Handle(nfd), nfd, nil)
}

// ImportFile duplicates the descriptor behind f.
func (s *Socket) ImportFile(f *os.File) (api.Handle, error) {
	return s.Import(f)
}

// Export wraps a duplicate of h in a net.Conn managed by the runtime poller.
// h stays open and owned by the caller. The runtime switches the shared file
// description to nonblocking mode. A handle the runtime rejects, such as a
// non-socket, fails with net.FileConn's own error, counted as "fileconn".
func (s *Socket) Export(h api.Handle) (net.Conn, error) {
	nfd, err := unix.FcntlInt(uintptr(h), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, s.done("fcntl", h, -1, err)
	}
	f := os.NewFile(uintptr(nfd), fmt.Sprintf("socket:%d", h))
	defer f.Close()
	c, err := net.FileConn(f)
	if err != nil {
		return nil, s.record("fileconn", h, -1, err)
	}
	return c, s.done("fcntl", h, nfd, nil)
}
