//go:build linux

package fake

import (
	"errors"
	"os"
	"testing"

	"github.com/gcds/thruster/api"
	"github.com/gcds/thruster/reactor"
	"github.com/gcds/thruster/socket"
	"golang.org/x/sys/unix"
)

func TestFaultyInjectsThenForwards(t *testing.T) {
	f := NewFaulty(socket.New())
	f.FailN(OpCreate, unix.EMFILE, 1)

	h, err := f.Create(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if h != api.InvalidHandle || !errors.Is(err, unix.EMFILE) {
		t.Fatalf("injected create = %d, %v", h, err)
	}
	var se *os.SyscallError
	if !errors.As(err, &se) || se.Syscall != "socket" {
		t.Errorf("injected error shape = %#v", err)
	}
	if f.LastError() != unix.EMFILE {
		t.Errorf("LastError = %v", f.LastError())
	}

	h, err = f.Create(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		t.Fatalf("second create should forward: %v", err)
	}
	if err := f.Close(h); err != nil {
		t.Fatal(err)
	}
	if f.Calls(OpCreate) != 2 || f.Calls(OpClose) != 1 {
		t.Errorf("calls create=%d close=%d", f.Calls(OpCreate), f.Calls(OpClose))
	}

	f.ClearError()
	if f.LastError() != 0 {
		t.Errorf("LastError after clear = %v", f.LastError())
	}
}

func TestFaultyCloseStillReleases(t *testing.T) {
	sk := socket.New()
	f := NewFaulty(sk)
	f.Fail(OpClose, unix.EINTR)

	h, err := f.Create(unix.AF_INET, unix.SOCK_DGRAM, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Close(h); !errors.Is(err, unix.EINTR) {
		t.Fatalf("close err = %v, want EINTR", err)
	}
	// The descriptor was released underneath.
	if err := sk.Close(h); !errors.Is(err, unix.EBADF) {
		t.Errorf("real close err = %v, want EBADF", err)
	}
}

func TestFaultyRecordsForwardedErrno(t *testing.T) {
	f := NewFaulty(socket.New())
	if _, err := f.Read(api.InvalidHandle, make([]byte, 1)); !errors.Is(err, unix.EBADF) {
		t.Fatalf("read err = %v", err)
	}
	if f.LastError() != unix.EBADF {
		t.Errorf("LastError = %v", f.LastError())
	}
	f.Reset()
	if f.Calls(OpRead) != 0 {
		t.Error("Reset should clear counts")
	}
}

func TestReactorScript(t *testing.T) {
	r := NewReactor()
	if err := r.Register(3, reactor.Readable, 3); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(3, reactor.Readable, 3); !errors.Is(err, unix.EEXIST) {
		t.Errorf("duplicate register = %v", err)
	}
	if err := r.Modify(4, reactor.Writable, 4); !errors.Is(err, unix.ENOENT) {
		t.Errorf("modify unknown = %v", err)
	}

	r.Push(reactor.Event{Handle: 3, Events: reactor.Readable}, reactor.Event{Handle: 3, Events: reactor.Writable})
	evs := make([]reactor.Event, 1)
	if n, _ := r.Wait(evs, 0); n != 1 || evs[0].Events != reactor.Readable {
		t.Fatalf("first wait = %d %+v", n, evs[0])
	}
	if n, _ := r.Wait(evs, 0); n != 1 || evs[0].Events != reactor.Writable {
		t.Fatalf("second wait = %d %+v", n, evs[0])
	}
	if n, _ := r.Wait(evs, 0); n != 0 {
		t.Errorf("drained wait = %d", n)
	}

	if err := r.Unregister(3); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Interest(3); ok {
		t.Error("interest survived unregister")
	}
	_ = r.Close()
	if _, err := r.Wait(evs, 0); !errors.Is(err, unix.EBADF) {
		t.Errorf("wait after close = %v", err)
	}
}

func TestFaultyLastErrorFollowsMostRecentFailure(t *testing.T) {
	f := NewFaulty(socket.New())
	f.FailN(OpRead, unix.EAGAIN, 1)
	if _, err := f.Read(api.InvalidHandle, make([]byte, 1)); !errors.Is(err, unix.EAGAIN) {
		t.Fatalf("injected read = %v", err)
	}

	// A forwarded failure after an injected one replaces it.
	if _, err := f.Readv(api.InvalidHandle, [][]byte{make([]byte, 1)}); !errors.Is(err, unix.EBADF) {
		t.Fatalf("readv = %v", err)
	}
	if f.LastError() != unix.EBADF {
		t.Errorf("LastError = %v, want EBADF", f.LastError())
	}

	if _, err := f.Pair(4000, unix.SOCK_STREAM, 0); err == nil {
		t.Fatal("socketpair with unknown family succeeded")
	} else if f.LastError() != api.Errno(err) {
		t.Errorf("LastError = %v, want %v", f.LastError(), api.Errno(err))
	}
}

func TestFaultyInjectsEveryOperation(t *testing.T) {
	sk := socket.New()
	f := NewFaulty(sk)
	f.Fail(OpReadv, unix.EIO)
	f.Fail(OpSendTo, unix.EMSGSIZE)
	f.Fail(OpRecvMsg, unix.ECONNRESET)

	if n, err := f.Readv(api.InvalidHandle, nil); n != -1 || !errors.Is(err, unix.EIO) {
		t.Errorf("readv = %d, %v; want EIO", n, err)
	}
	if n, err := f.SendTo(api.InvalidHandle, []byte("x"), 0, nil); n != -1 || !errors.Is(err, unix.EMSGSIZE) {
		t.Errorf("sendto = %d, %v; want EMSGSIZE", n, err)
	}
	n, _, _, _, err := f.RecvMsg(api.InvalidHandle, nil, nil, 0)
	if n != -1 || !errors.Is(err, unix.ECONNRESET) {
		t.Errorf("recvmsg = %d, %v; want ECONNRESET", n, err)
	}
	var se *os.SyscallError
	if !errors.As(err, &se) || se.Syscall != "recvmsg" {
		t.Errorf("recvmsg error shape = %#v", err)
	}
	if f.Calls(OpReadv) != 1 || f.Calls(OpSendTo) != 1 {
		t.Errorf("calls readv=%d sendto=%d", f.Calls(OpReadv), f.Calls(OpSendTo))
	}
}

func TestFaultyRejectsUnknownOperation(t *testing.T) {
	f := NewFaulty(socket.New())
	defer func() {
		if recover() == nil {
			t.Fatal("FailN accepted an unknown operation")
		}
	}()
	f.Fail("readv", unix.EIO)
}
