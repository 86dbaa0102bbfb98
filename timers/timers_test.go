package timers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerStartStop(t *testing.T) {
	var ticks atomic.Int32
	tk := NewTicker(5*time.Millisecond, func(time.Time) {
		ticks.Add(1)
	})

	if !tk.Start(context.Background()) {
		t.Fatal("First Start should succeed")
	}
	if tk.Start(context.Background()) {
		t.Error("Second Start on a running ticker should be rejected")
	}

	deadline := time.Now().Add(time.Second)
	for ticks.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() < 3 {
		t.Fatalf("Expected at least 3 ticks, got %d", ticks.Load())
	}

	tk.Stop()
	if tk.Running() {
		t.Error("Ticker still reports running after Stop")
	}
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)
	if got := ticks.Load(); got != after {
		t.Errorf("Ticks continued after Stop: %d -> %d", after, got)
	}

	// Stop is idempotent.
	tk.Stop()
}

func TestTickerRestart(t *testing.T) {
	var ticks atomic.Int32
	tk := NewTicker(5*time.Millisecond, func(time.Time) { ticks.Add(1) })

	tk.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	tk.Stop()
	first := ticks.Load()

	if !tk.Start(context.Background()) {
		t.Fatal("Start after Stop should succeed")
	}
	defer tk.Stop()

	deadline := time.Now().Add(time.Second)
	for ticks.Load() <= first && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ticks.Load() <= first {
		t.Error("Ticker did not resume after restart")
	}
}

func TestTickerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ticks atomic.Int32
	tk := NewTicker(5*time.Millisecond, func(time.Time) { ticks.Add(1) })
	tk.Start(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)
	n := ticks.Load()
	time.Sleep(20 * time.Millisecond)
	if ticks.Load() != n {
		t.Error("Ticker kept running after parent context was cancelled")
	}
	tk.Stop()
}

func TestDefaultPeriod(t *testing.T) {
	if p := NewTicker(0, func(time.Time) {}).Period(); p != 50*time.Millisecond {
		t.Errorf("Expected default period of 50ms, got %v", p)
	}
}

func TestResettableTimerFires(t *testing.T) {
	fired := make(chan struct{}, 1)
	rt := New(context.Background(), 10*time.Millisecond, false, func() {
		fired <- struct{}{}
	})
	defer rt.Stop()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Timer never fired")
	}
}

func TestResettableTimerReset(t *testing.T) {
	var fired atomic.Bool
	rt := New(context.Background(), 40*time.Millisecond, false, func() {
		fired.Store(true)
	})
	defer rt.Stop()

	for range 5 {
		time.Sleep(15 * time.Millisecond)
		rt.Reset()
	}
	if fired.Load() {
		t.Error("Timer fired despite being reset")
	}
}

func TestResettableTimerStopRestart(t *testing.T) {
	fired := make(chan struct{}, 4)
	rt := New(context.Background(), 10*time.Millisecond, false, func() {
		fired <- struct{}{}
	})
	rt.Stop()

	select {
	case <-fired:
		t.Fatal("Stopped timer fired")
	case <-time.After(30 * time.Millisecond):
	}

	rt.Restart()
	defer rt.Stop()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Restarted timer never fired")
	}
}

func TestSleepWithContext(t *testing.T) {
	if !SleepWithContext(context.Background(), time.Millisecond) {
		t.Error("Expected full sleep to report true")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if SleepWithContext(ctx, time.Hour) {
		t.Error("Expected cancelled sleep to report false")
	}
}
