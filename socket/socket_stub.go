//go:build unix && !linux && !darwin

// File: socket/socket_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package socket

import (
	"fmt"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/gcds/thruster/api"
	"golang.org/x/sys/unix"
)

var errUnsupported = fmt.Errorf("socket: %w: %w", api.ErrNotSupported, unix.ENOSYS)

func (s *Socket) Create(int, int, int) (api.Handle, error) {
	return api.InvalidHandle, s.done("socket", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) Pair(int, int, int) ([2]api.Handle, error) {
	return [2]api.Handle{api.InvalidHandle, api.InvalidHandle}, s.done("socketpair", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) Bind(h api.Handle, _ unix.Sockaddr) error {
	return s.done("bind", h, -1, errUnsupported)
}

func (s *Socket) Listen(h api.Handle, _ int) error {
	return s.done("listen", h, -1, errUnsupported)
}

func (s *Socket) Accept(h api.Handle) (api.Handle, unix.Sockaddr, error) {
	return api.InvalidHandle, nil, s.done("accept", h, -1, errUnsupported)
}

func (s *Socket) Connect(h api.Handle, _ unix.Sockaddr) error {
	return s.done("connect", h, -1, errUnsupported)
}

func (s *Socket) SetNonblock(h api.Handle, _ bool) error {
	return s.done("fcntl", h, -1, errUnsupported)
}

func (s *Socket) Shutdown(h api.Handle, _ int) error {
	return s.done("shutdown", h, -1, errUnsupported)
}

func (s *Socket) Close(h api.Handle) error {
	return s.done("close", h, -1, errUnsupported)
}

func (s *Socket) Read(h api.Handle, _ []byte) (int, error) {
	return -1, s.done("read", h, -1, errUnsupported)
}

func (s *Socket) Write(h api.Handle, _ []byte) (int, error) {
	return -1, s.done("write", h, -1, errUnsupported)
}

func (s *Socket) Readv(h api.Handle, _ [][]byte) (int, error) {
	return -1, s.done("readv", h, -1, errUnsupported)
}

func (s *Socket) Writev(h api.Handle, _ [][]byte) (int, error) {
	return -1, s.done("writev", h, -1, errUnsupported)
}

func (s *Socket) Recv(h api.Handle, _ []byte, _ int) (int, error) {
	return -1, s.done("recvfrom", h, -1, errUnsupported)
}

func (s *Socket) Send(h api.Handle, _ []byte, _ int) (int, error) {
	return -1, s.done("sendmsg", h, -1, errUnsupported)
}

func (s *Socket) RecvFrom(h api.Handle, _ []byte, _ int) (int, unix.Sockaddr, error) {
	return -1, nil, s.done("recvfrom", h, -1, errUnsupported)
}

func (s *Socket) SendTo(h api.Handle, _ []byte, _ int, _ unix.Sockaddr) (int, error) {
	return -1, s.done("sendmsg", h, -1, errUnsupported)
}

func (s *Socket) RecvMsg(h api.Handle, _ [][]byte, _ []byte, _ int) (int, int, int, unix.Sockaddr, error) {
	return -1, 0, 0, nil, s.done("recvmsg", h, -1, errUnsupported)
}

func (s *Socket) SendMsg(h api.Handle, _ [][]byte, _ []byte, _ unix.Sockaddr, _ int) (int, error) {
	return -1, s.done("sendmsg", h, -1, errUnsupported)
}

func (s *Socket) Select(int, *unix.FdSet, *unix.FdSet, *unix.FdSet, time.Duration) (int, error) {
	return -1, s.done("select", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) Poll([]unix.PollFd, time.Duration) (int, error) {
	return -1, s.done("poll", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) GetOption(h api.Handle, _, _ int) (int, error) {
	return -1, s.done("getsockopt", h, -1, errUnsupported)
}

func (s *Socket) SetOption(h api.Handle, _, _, _ int) error {
	return s.done("setsockopt", h, -1, errUnsupported)
}

func (s *Socket) GetOptionBytes(h api.Handle, _, _ int) (string, error) {
	return "", s.done("getsockopt", h, -1, errUnsupported)
}

func (s *Socket) SetOptionBytes(h api.Handle, _, _ int, _ string) error {
	return s.done("setsockopt", h, -1, errUnsupported)
}

func (s *Socket) GetLinger(h api.Handle) (*unix.Linger, error) {
	return nil, s.done("getsockopt", h, -1, errUnsupported)
}

func (s *Socket) SetLinger(h api.Handle, _ *unix.Linger) error {
	return s.done("setsockopt", h, -1, errUnsupported)
}

func (s *Socket) GetTimeout(h api.Handle, _ int) (time.Duration, error) {
	return 0, s.done("getsockopt", h, -1, errUnsupported)
}

func (s *Socket) SetTimeout(h api.Handle, _ int, _ time.Duration) error {
	return s.done("setsockopt", h, -1, errUnsupported)
}

func (s *Socket) LocalAddr(h api.Handle) (unix.Sockaddr, error) {
	return nil, s.done("getsockname", h, -1, errUnsupported)
}

func (s *Socket) PeerAddr(h api.Handle) (unix.Sockaddr, error) {
	return nil, s.done("getpeername", h, -1, errUnsupported)
}

func (s *Socket) Import(syscall.Conn) (api.Handle, error) {
	return api.InvalidHandle, s.done("fcntl", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) ImportFile(*os.File) (api.Handle, error) {
	return api.InvalidHandle, s.done("fcntl", api.InvalidHandle, -1, errUnsupported)
}

func (s *Socket) Export(h api.Handle) (net.Conn, error) {
	return nil, s.done("fcntl", h, -1, errUnsupported)
}
