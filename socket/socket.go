// File: socket/socket.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Socket is the pass-through façade over the OS socket primitives. The
// platform files hold one method per primitive; this file holds the ambient
// state every call shares: logger, counters, config and the last-error slot.

package socket

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/gcds/thruster/api"
	"github.com/gcds/thruster/control"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// Config controls the ambient behaviour of a Socket. It never changes what
// is forwarded to the kernel.
type Config struct {
	// Trace logs every call at debug level.
	Trace bool
	// Metrics counts calls and failures per primitive.
	Metrics bool
}

// DefaultConfig returns metrics on, tracing off.
func DefaultConfig() Config {
	return Config{Metrics: true}
}

// Option configures a Socket.
type Option func(*Socket)

// WithLogger sets the zap logger used for call tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Socket) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConfig sets a static configuration.
func WithConfig(cfg Config) Option {
	return func(s *Socket) {
		s.store = control.NewConfigStore(cfg)
	}
}

// WithConfigStore shares a reloadable configuration. Every Store on it is
// applied to the Socket immediately.
func WithConfigStore(cs *control.ConfigStore[Config]) Option {
	return func(s *Socket) {
		if cs != nil {
			s.store = cs
		}
	}
}

// WithMetrics shares a counter registry.
func WithMetrics(m *control.Metrics) Option {
	return func(s *Socket) {
		if m != nil {
			s.metrics = m
		}
	}
}

// Socket forwards each call to one OS primitive. A Socket is safe for
// concurrent use; the last-error slot is shared by all goroutines using it.
type Socket struct {
	log     *zap.Logger
	store   *control.ConfigStore[Config]
	metrics *control.Metrics
	probes  *control.DebugProbes

	trace   atomic.Bool
	counted atomic.Bool
	lastErr atomic.Uintptr
}

var _ api.Sockets = (*Socket)(nil)

// New constructs a Socket.
func New(opts ...Option) *Socket {
	s := &Socket{
		log:     zap.NewNop(),
		metrics: control.NewMetrics(),
		probes:  control.NewDebugProbes(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = control.NewConfigStore(DefaultConfig())
	}
	s.apply(s.store.Snapshot())
	s.store.OnReload(s.apply)

	s.probes.RegisterProbe("socket.last_errno", func() any {
		return int(s.LastError())
	})
	s.probes.RegisterProbe("socket.trace", func() any {
		return s.trace.Load()
	})
	return s
}

var (
	std     *Socket
	stdOnce sync.Once
)

// Default returns the process-wide Socket. It uses a no-op logger.
func Default() *Socket {
	stdOnce.Do(func() {
		std = New()
	})
	return std
}

func (s *Socket) apply(cfg Config) {
	s.trace.Store(cfg.Trace)
	s.counted.Store(cfg.Metrics)
}

// Config returns the current configuration.
func (s *Socket) Config() Config { return s.store.Snapshot() }

// Reload replaces the configuration.
func (s *Socket) Reload(cfg Config) { s.store.Store(cfg) }

// Metrics returns the counter registry. Keys are "socket.<primitive>.calls"
// and "socket.<primitive>.failures".
func (s *Socket) Metrics() *control.Metrics { return s.metrics }

// Probes returns the debug probe registry.
func (s *Socket) Probes() *control.DebugProbes { return s.probes }

// LastError returns the errno of the most recent failed call, or 0.
// Successful calls leave it untouched.
func (s *Socket) LastError() unix.Errno {
	return unix.Errno(s.lastErr.Load())
}

// ErrorString returns the OS description of code.
func (s *Socket) ErrorString(code unix.Errno) string {
	if code == 0 {
		return ""
	}
	return code.Error()
}

// ClearError resets the last-error slot.
func (s *Socket) ClearError() {
	s.lastErr.Store(0)
}

// done records one forwarded call and shapes its error. The errno itself
// is never altered: the result is an *os.SyscallError naming the primitive.
func (s *Socket) done(name string, h api.Handle, res int, err error) error {
	if err != nil {
		err = os.NewSyscallError(name, err)
	}
	return s.record(name, h, res, err)
}

// record counts, stores the errno and traces a call whose error is already
// in its final shape. It is used directly for runtime calls such as
// net.FileConn, which name their own failing primitive.
func (s *Socket) record(name string, h api.Handle, res int, err error) error {
	if s.counted.Load() {
		s.metrics.Inc("socket." + name + ".calls")
		if err != nil {
			s.metrics.Inc("socket." + name + ".failures")
		}
	}
	if errno := api.Errno(err); errno != 0 {
		s.lastErr.Store(uintptr(errno))
	}
	if s.trace.Load() {
		s.log.Debug("socket call",
			zap.String("op", name),
			zap.Int("handle", int(h)),
			zap.Int("result", res),
			zap.Error(err))
	}
	return err
}
