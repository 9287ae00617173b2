package janitor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSweepOnce_SumsEvictions(t *testing.T) {
	j := New(time.Hour, time.Minute, zerolog.Nop())

	var gotIdle time.Duration
	j.Register("carts", SweeperFunc(func(idle time.Duration) int { gotIdle = idle; return 2 }))
	j.Register("sessions", SweeperFunc(func(time.Duration) int { return 0 }))
	j.Register("views", SweeperFunc(func(time.Duration) int { return 3 }))

	if n := j.SweepOnce(); n != 5 {
		t.Fatalf("expected 5 evictions, got %d", n)
	}
	if gotIdle != time.Hour {
		t.Fatalf("expected idle 1h passed to sweeper, got %v", gotIdle)
	}
}

func TestNew_Defaults(t *testing.T) {
	j := New(0, 0, zerolog.Nop())
	if j.idle != defaultIdle || j.interval != defaultInterval {
		t.Fatalf("unexpected defaults idle=%v interval=%v", j.idle, j.interval)
	}

	j = New(time.Second, time.Hour, zerolog.Nop())
	if j.interval != time.Second {
		t.Fatalf("expected interval capped at idle, got %v", j.interval)
	}
}

func TestStart_SweepsUntilCancelled(t *testing.T) {
	j := New(10*time.Millisecond, 5*time.Millisecond, zerolog.Nop())

	var calls atomic.Int32
	j.Register("test", SweeperFunc(func(time.Duration) int { calls.Add(1); return 0 }))

	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("sweeper was not called periodically")
		}
		time.Sleep(2 * time.Millisecond)
	}
	cancel()
}
