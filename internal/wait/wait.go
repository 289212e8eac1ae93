// File: internal/wait/wait.go
// Author: momentics <momentics@gmail.com>
//
// Duration to kernel millisecond timeout, as taken by poll(2) and
// epoll_wait(2).

package wait

import (
	"math"
	"time"
)

// Millis converts d for a millisecond-based wait. Negative blocks (-1),
// zero polls, and any positive duration waits at least 1ms so it never
// degrades into a poll. Durations beyond the kernel's int32 range are
// clamped.
func Millis(d time.Duration) int {
	switch {
	case d < 0:
		return -1
	case d == 0:
		return 0
	}
	ms := (d + time.Millisecond - 1) / time.Millisecond
	if ms > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(ms)
}
