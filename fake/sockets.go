// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fault injection for code built on the socket façade. Faulty wraps a real
// api.Sockets and makes chosen operations fail with a chosen errno, so error
// paths can be exercised without provoking the kernel.

package fake

import (
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gcds/thruster/api"
	"golang.org/x/sys/unix"
)

// Operation names accepted by Fail, matching the api.Sockets method names.
const (
	OpCreate         = "Create"
	OpPair           = "Pair"
	OpBind           = "Bind"
	OpListen         = "Listen"
	OpAccept         = "Accept"
	OpConnect        = "Connect"
	OpSetNonblock    = "SetNonblock"
	OpShutdown       = "Shutdown"
	OpClose          = "Close"
	OpRead           = "Read"
	OpWrite          = "Write"
	OpReadv          = "Readv"
	OpWritev         = "Writev"
	OpRecv           = "Recv"
	OpSend           = "Send"
	OpRecvFrom       = "RecvFrom"
	OpSendTo         = "SendTo"
	OpRecvMsg        = "RecvMsg"
	OpSendMsg        = "SendMsg"
	OpSelect         = "Select"
	OpPoll           = "Poll"
	OpGetOption      = "GetOption"
	OpSetOption      = "SetOption"
	OpGetOptionBytes = "GetOptionBytes"
	OpSetOptionBytes = "SetOptionBytes"
	OpGetLinger      = "GetLinger"
	OpSetLinger      = "SetLinger"
	OpGetTimeout     = "GetTimeout"
	OpSetTimeout     = "SetTimeout"
	OpLocalAddr      = "LocalAddr"
	OpPeerAddr       = "PeerAddr"
	OpImport         = "Import"
	OpImportFile     = "ImportFile"
	OpExport         = "Export"
)

// syscalls maps each operation to the primitive named in injected errors.
var syscalls = map[string]string{
	OpCreate:         "socket",
	OpPair:           "socketpair",
	OpBind:           "bind",
	OpListen:         "listen",
	OpAccept:         "accept",
	OpConnect:        "connect",
	OpSetNonblock:    "fcntl",
	OpShutdown:       "shutdown",
	OpClose:          "close",
	OpRead:           "read",
	OpWrite:          "write",
	OpReadv:          "readv",
	OpWritev:         "writev",
	OpRecv:           "recvfrom",
	OpSend:           "sendmsg",
	OpRecvFrom:       "recvfrom",
	OpSendTo:         "sendmsg",
	OpRecvMsg:        "recvmsg",
	OpSendMsg:        "sendmsg",
	OpSelect:         "select",
	OpPoll:           "poll",
	OpGetOption:      "getsockopt",
	OpSetOption:      "setsockopt",
	OpGetOptionBytes: "getsockopt",
	OpSetOptionBytes: "setsockopt",
	OpGetLinger:      "getsockopt",
	OpSetLinger:      "setsockopt",
	OpGetTimeout:     "getsockopt",
	OpSetTimeout:     "setsockopt",
	OpLocalAddr:      "getsockname",
	OpPeerAddr:       "getpeername",
	OpImport:         "fcntl",
	OpImportFile:     "fcntl",
	OpExport:         "fcntl",
}

type fault struct {
	errno     unix.Errno
	remaining int // <0 means forever
}

// Faulty is an api.Sockets decorator. Every operation is intercepted;
// those without an armed fault are forwarded to the wrapped implementation.
// LastError reports the most recent failure, injected or forwarded.
type Faulty struct {
	inner api.Sockets

	mu      sync.Mutex
	faults  map[string]*fault
	calls   map[string]int
	lastErr atomic.Uintptr
}

var _ api.Sockets = (*Faulty)(nil)

// NewFaulty wraps inner.
func NewFaulty(inner api.Sockets) *Faulty {
	return &Faulty{
		inner:  inner,
		faults: make(map[string]*fault),
		calls:  make(map[string]int),
	}
}

// Fail makes every subsequent call of op fail with errno.
func (f *Faulty) Fail(op string, errno unix.Errno) {
	f.FailN(op, errno, -1)
}

// FailN makes the next n calls of op fail with errno. It panics if op is
// not one of the Op constants.
func (f *Faulty) FailN(op string, errno unix.Errno, n int) {
	if _, ok := syscalls[op]; !ok {
		panic(fmt.Sprintf("fake: unknown operation %q", op))
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = &fault{errno: errno, remaining: n}
}

// Reset disarms all faults and clears call counts.
func (f *Faulty) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = make(map[string]*fault)
	f.calls = make(map[string]int)
}

// Calls returns how many times op was invoked, injected or not.
func (f *Faulty) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// check counts the call and returns the injected error, if any.
func (f *Faulty) check(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	ft, ok := f.faults[op]
	if !ok || ft.remaining == 0 {
		return nil
	}
	if ft.remaining > 0 {
		ft.remaining--
	}
	f.lastErr.Store(uintptr(ft.errno))
	return os.NewSyscallError(syscalls[op], ft.errno)
}

func (f *Faulty) seen(err error) error {
	if errno := api.Errno(err); errno != 0 {
		f.lastErr.Store(uintptr(errno))
	}
	return err
}

func (f *Faulty) Create(family, typ, proto int) (api.Handle, error) {
	if err := f.check(OpCreate); err != nil {
		return api.InvalidHandle, err
	}
	h, err := f.inner.Create(family, typ, proto)
	return h, f.seen(err)
}

func (f *Faulty) Pair(family, typ, proto int) ([2]api.Handle, error) {
	if err := f.check(OpPair); err != nil {
		return [2]api.Handle{api.InvalidHandle, api.InvalidHandle}, err
	}
	hs, err := f.inner.Pair(family, typ, proto)
	return hs, f.seen(err)
}

func (f *Faulty) Bind(h api.Handle, sa unix.Sockaddr) error {
	if err := f.check(OpBind); err != nil {
		return err
	}
	return f.seen(f.inner.Bind(h, sa))
}

func (f *Faulty) Listen(h api.Handle, backlog int) error {
	if err := f.check(OpListen); err != nil {
		return err
	}
	return f.seen(f.inner.Listen(h, backlog))
}

func (f *Faulty) Accept(h api.Handle) (api.Handle, unix.Sockaddr, error) {
	if err := f.check(OpAccept); err != nil {
		return api.InvalidHandle, nil, err
	}
	nh, sa, err := f.inner.Accept(h)
	return nh, sa, f.seen(err)
}

func (f *Faulty) Connect(h api.Handle, sa unix.Sockaddr) error {
	if err := f.check(OpConnect); err != nil {
		return err
	}
	return f.seen(f.inner.Connect(h, sa))
}

func (f *Faulty) SetNonblock(h api.Handle, nonblocking bool) error {
	if err := f.check(OpSetNonblock); err != nil {
		return err
	}
	return f.seen(f.inner.SetNonblock(h, nonblocking))
}

func (f *Faulty) Shutdown(h api.Handle, how int) error {
	if err := f.check(OpShutdown); err != nil {
		return err
	}
	return f.seen(f.inner.Shutdown(h, how))
}

// Close always forwards, even when a fault is injected, so tests do not
// leak descriptors.
func (f *Faulty) Close(h api.Handle) error {
	injected := f.check(OpClose)
	err := f.inner.Close(h)
	if injected != nil {
		return injected
	}
	return f.seen(err)
}

func (f *Faulty) Read(h api.Handle, p []byte) (int, error) {
	if err := f.check(OpRead); err != nil {
		return -1, err
	}
	n, err := f.inner.Read(h, p)
	return n, f.seen(err)
}

func (f *Faulty) Write(h api.Handle, p []byte) (int, error) {
	if err := f.check(OpWrite); err != nil {
		return -1, err
	}
	n, err := f.inner.Write(h, p)
	return n, f.seen(err)
}

func (f *Faulty) Readv(h api.Handle, bufs [][]byte) (int, error) {
	if err := f.check(OpReadv); err != nil {
		return -1, err
	}
	n, err := f.inner.Readv(h, bufs)
	return n, f.seen(err)
}

func (f *Faulty) Writev(h api.Handle, bufs [][]byte) (int, error) {
	if err := f.check(OpWritev); err != nil {
		return -1, err
	}
	n, err := f.inner.Writev(h, bufs)
	return n, f.seen(err)
}

func (f *Faulty) Recv(h api.Handle, p []byte, flags int) (int, error) {
	if err := f.check(OpRecv); err != nil {
		return -1, err
	}
	n, err := f.inner.Recv(h, p, flags)
	return n, f.seen(err)
}

func (f *Faulty) Send(h api.Handle, p []byte, flags int) (int, error) {
	if err := f.check(OpSend); err != nil {
		return -1, err
	}
	n, err := f.inner.Send(h, p, flags)
	return n, f.seen(err)
}

func (f *Faulty) RecvFrom(h api.Handle, p []byte, flags int) (int, unix.Sockaddr, error) {
	if err := f.check(OpRecvFrom); err != nil {
		return -1, nil, err
	}
	n, from, err := f.inner.RecvFrom(h, p, flags)
	return n, from, f.seen(err)
}

func (f *Faulty) SendTo(h api.Handle, p []byte, flags int, to unix.Sockaddr) (int, error) {
	if err := f.check(OpSendTo); err != nil {
		return -1, err
	}
	n, err := f.inner.SendTo(h, p, flags, to)
	return n, f.seen(err)
}

func (f *Faulty) RecvMsg(h api.Handle, bufs [][]byte, oob []byte, flags int) (int, int, int, unix.Sockaddr, error) {
	if err := f.check(OpRecvMsg); err != nil {
		return -1, 0, 0, nil, err
	}
	n, oobn, recvflags, from, err := f.inner.RecvMsg(h, bufs, oob, flags)
	return n, oobn, recvflags, from, f.seen(err)
}

func (f *Faulty) SendMsg(h api.Handle, bufs [][]byte, oob []byte, to unix.Sockaddr, flags int) (int, error) {
	if err := f.check(OpSendMsg); err != nil {
		return -1, err
	}
	n, err := f.inner.SendMsg(h, bufs, oob, to, flags)
	return n, f.seen(err)
}

func (f *Faulty) Select(nfd int, r, w, e *unix.FdSet, timeout time.Duration) (int, error) {
	if err := f.check(OpSelect); err != nil {
		return -1, err
	}
	n, err := f.inner.Select(nfd, r, w, e, timeout)
	return n, f.seen(err)
}

func (f *Faulty) Poll(fds []unix.PollFd, timeout time.Duration) (int, error) {
	if err := f.check(OpPoll); err != nil {
		return -1, err
	}
	n, err := f.inner.Poll(fds, timeout)
	return n, f.seen(err)
}

func (f *Faulty) GetOption(h api.Handle, level, name int) (int, error) {
	if err := f.check(OpGetOption); err != nil {
		return -1, err
	}
	v, err := f.inner.GetOption(h, level, name)
	return v, f.seen(err)
}

func (f *Faulty) SetOption(h api.Handle, level, name, value int) error {
	if err := f.check(OpSetOption); err != nil {
		return err
	}
	return f.seen(f.inner.SetOption(h, level, name, value))
}

func (f *Faulty) GetOptionBytes(h api.Handle, level, name int) (string, error) {
	if err := f.check(OpGetOptionBytes); err != nil {
		return "", err
	}
	v, err := f.inner.GetOptionBytes(h, level, name)
	return v, f.seen(err)
}

func (f *Faulty) SetOptionBytes(h api.Handle, level, name int, value string) error {
	if err := f.check(OpSetOptionBytes); err != nil {
		return err
	}
	return f.seen(f.inner.SetOptionBytes(h, level, name, value))
}

func (f *Faulty) GetLinger(h api.Handle) (*unix.Linger, error) {
	if err := f.check(OpGetLinger); err != nil {
		return nil, err
	}
	l, err := f.inner.GetLinger(h)
	return l, f.seen(err)
}

func (f *Faulty) SetLinger(h api.Handle, l *unix.Linger) error {
	if err := f.check(OpSetLinger); err != nil {
		return err
	}
	return f.seen(f.inner.SetLinger(h, l))
}

func (f *Faulty) GetTimeout(h api.Handle, name int) (time.Duration, error) {
	if err := f.check(OpGetTimeout); err != nil {
		return 0, err
	}
	d, err := f.inner.GetTimeout(h, name)
	return d, f.seen(err)
}

func (f *Faulty) SetTimeout(h api.Handle, name int, d time.Duration) error {
	if err := f.check(OpSetTimeout); err != nil {
		return err
	}
	return f.seen(f.inner.SetTimeout(h, name, d))
}

func (f *Faulty) LocalAddr(h api.Handle) (unix.Sockaddr, error) {
	if err := f.check(OpLocalAddr); err != nil {
		return nil, err
	}
	sa, err := f.inner.LocalAddr(h)
	return sa, f.seen(err)
}

func (f *Faulty) PeerAddr(h api.Handle) (unix.Sockaddr, error) {
	if err := f.check(OpPeerAddr); err != nil {
		return nil, err
	}
	sa, err := f.inner.PeerAddr(h)
	return sa, f.seen(err)
}

func (f *Faulty) Import(c syscall.Conn) (api.Handle, error) {
	if err := f.check(OpImport); err != nil {
		return api.InvalidHandle, err
	}
	h, err := f.inner.Import(c)
	return h, f.seen(err)
}

func (f *Faulty) ImportFile(file *os.File) (api.Handle, error) {
	if err := f.check(OpImportFile); err != nil {
		return api.InvalidHandle, err
	}
	h, err := f.inner.ImportFile(file)
	return h, f.seen(err)
}

func (f *Faulty) Export(h api.Handle) (net.Conn, error) {
	if err := f.check(OpExport); err != nil {
		return nil, err
	}
	c, err := f.inner.Export(h)
	return c, f.seen(err)
}

// LastError reports the most recent failure seen through f, injected or
// forwarded.
func (f *Faulty) LastError() unix.Errno {
	return unix.Errno(f.lastErr.Load())
}

// ErrorString forwards to the wrapped implementation.
func (f *Faulty) ErrorString(code unix.Errno) string {
	return f.inner.ErrorString(code)
}

// ClearError clears f and the wrapped implementation.
func (f *Faulty) ClearError() {
	f.lastErr.Store(0)
	f.inner.ClearError()
}
