// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package socket is a one-to-one façade over the BSD socket system calls.
//
// Each method of Socket forwards its arguments unchanged to a single
// primitive from golang.org/x/sys/unix and returns that primitive's raw
// result. Nothing is validated, retried, buffered or translated: an invalid
// handle reaches the kernel and comes back as EBADF, a nonblocking accept
// with no peer comes back as EAGAIN.
//
// Failures carry two signals. Handle-producing calls return
// api.InvalidHandle, and every failing call returns an *os.SyscallError
// wrapping the raw unix.Errno, so errors.Is(err, unix.ECONNREFUSED) works.
// The errno is also kept in a last-error slot, read with LastError and reset
// with ClearError.
//
// The only state a Socket keeps is ambient: a zap logger for call tracing,
// per-primitive call counters and the last-error slot.
package socket
