package api_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/gcds/thruster/api"
	"golang.org/x/sys/unix"
)

func TestErrno(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want unix.Errno
	}{
		{"nil", nil, 0},
		{"bare", unix.ECONNREFUSED, unix.ECONNREFUSED},
		{"syscall error", os.NewSyscallError("connect", unix.ECONNREFUSED), unix.ECONNREFUSED},
		{"wrapped", fmt.Errorf("dial: %w", os.NewSyscallError("connect", unix.ETIMEDOUT)), unix.ETIMEDOUT},
		{"not an errno", errors.New("boom"), 0},
		{"unsupported", fmt.Errorf("socket: %w: %w", api.ErrNotSupported, unix.ENOSYS), unix.ENOSYS},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := api.Errno(tc.err); got != tc.want {
				t.Errorf("Errno = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestInvalidHandle(t *testing.T) {
	if api.InvalidHandle != -1 {
		t.Fatalf("InvalidHandle = %d", api.InvalidHandle)
	}
}
