package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ExitInterrupted is the exit status after a forced interrupt.
const ExitInterrupted = 130

// Handler cancels a context on the first signal and calls its force
// function on the second.
type Handler struct {
	signals []os.Signal
	force   func()
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignals replaces the watched signals.
func WithSignals(sigs ...os.Signal) Option {
	return func(h *Handler) {
		h.signals = sigs
	}
}

// WithForce replaces what happens on the second signal.
func WithForce(fn func()) Option {
	return func(h *Handler) {
		h.force = fn
	}
}

// NewHandler creates a handler for SIGINT and SIGTERM that exits with
// ExitInterrupted on the second signal.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		force:   func() { os.Exit(ExitInterrupted) },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Context returns a child of parent that is canceled on the first
// signal. stop releases the signal handler and must be called.
func (h *Handler) Context(parent context.Context) (ctx context.Context, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, h.signals...)

	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
			return
		}
		select {
		case <-sigCh:
			h.force()
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
}
