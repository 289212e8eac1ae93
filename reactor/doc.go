// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor exposes the kernel's scalable readiness wait (epoll on
// Linux) as plain forwarding calls. There is no event loop here: callers
// own the loop and decide what to do with each Event.
package reactor
