// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values for thruster.

package api

import (
	"errors"

	"golang.org/x/sys/unix"
)

// ErrNotSupported is returned by every façade call on platforms without
// a socket backend.
var ErrNotSupported = errors.New("operation not supported on this platform")

// Errno extracts the raw errno carried by an error returned from the façade.
// It returns 0 when err is nil or carries no errno.
func Errno(err error) unix.Errno {
	if err == nil {
		return 0
	}
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return 0
}
