package timers

import (
	"context"
	"sync"
	"time"
)

// SleepWithContext blocks for d or until ctx is cancelled, whichever comes
// first. It reports whether the full duration elapsed.
func SleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// ResettableTimer fires fn once after dur of inactivity. Every Reset pushes
// the deadline back by dur. The host uses it as the idle timeout that drops
// secondary screens back to the watch face.
type ResettableTimer struct {
	fn     func()
	dur    time.Duration
	parent context.Context

	mu       sync.Mutex
	timer    *time.Timer
	cancelFn context.CancelFunc
	resetCh  chan struct{}
	done     chan struct{}
}

func New(ctx context.Context, d time.Duration, triggerNow bool, fn func()) *ResettableTimer {
	rt := &ResettableTimer{
		fn:     fn,
		dur:    d,
		parent: ctx,
	}
	rt.start()

	if triggerNow {
		go fn()
	}

	return rt
}

func (rt *ResettableTimer) start() {
	ctx, cancel := context.WithCancel(rt.parent)
	rt.timer = time.NewTimer(rt.dur)
	rt.cancelFn = cancel
	rt.resetCh = make(chan struct{}, 1)
	rt.done = make(chan struct{})
	go rt.run(ctx, rt.timer, rt.resetCh, rt.done)
}

// Reset postpones the deadline. It never blocks; a pending reset absorbs
// further calls.
func (rt *ResettableTimer) Reset() {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	select {
	case rt.resetCh <- struct{}{}:
	default:
	}
}

// Restart re-arms a stopped (or fired) timer with a full duration.
func (rt *ResettableTimer) Restart() {
	rt.Stop()
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.start()
}

// Stop cancels the timer and waits for its goroutine to exit.
func (rt *ResettableTimer) Stop() {
	rt.mu.Lock()
	cancel, done := rt.cancelFn, rt.done
	rt.mu.Unlock()

	cancel()
	<-done
}

func (rt *ResettableTimer) run(ctx context.Context, timer *time.Timer, resetCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer timer.Stop()
	for {
		select {
		case <-timer.C:
			rt.fn()
		case <-resetCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(rt.dur)
		case <-ctx.Done():
			return
		}
	}
}
