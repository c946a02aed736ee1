package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestNewHandler(t *testing.T) {
	h := NewHandler()
	if len(h.signals) != 2 {
		t.Errorf("signals = %v, want SIGINT and SIGTERM", h.signals)
	}
	if h.force == nil {
		t.Error("force should default to exiting")
	}
}

func TestHandler_StopCancels(t *testing.T) {
	ctx, stop := NewHandler().Context(context.Background())
	stop()
	stop()

	select {
	case <-ctx.Done():
	default:
		t.Error("context should be canceled after stop")
	}
}

func TestHandler_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := NewHandler().Context(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("child context not canceled with parent")
	}
}

func TestHandler_SignalCancelsThenForces(t *testing.T) {
	forced := make(chan struct{})
	h := NewHandler(
		WithSignals(syscall.SIGUSR1),
		WithForce(func() { close(forced) }),
	)
	ctx, stop := h.Context(context.Background())
	defer stop()

	syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not canceled by first signal")
	}

	select {
	case <-forced:
		t.Fatal("force called after a single signal")
	default:
	}

	syscall.Kill(syscall.Getpid(), syscall.SIGUSR1)
	select {
	case <-forced:
	case <-time.After(2 * time.Second):
		t.Fatal("force not called on second signal")
	}
}
