package timers

import (
	"context"
	"sync"
	"time"
)

// Ticker runs fn on a fixed period between Start and Stop. Unlike a bare
// time.Ticker it is an explicit handle: Stop guarantees that no further
// callback runs once it returns, and the same Ticker can be started again.
//
// Stop must not be called from inside fn.
type Ticker struct {
	period time.Duration
	fn     func(now time.Time)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTicker(period time.Duration, fn func(now time.Time)) *Ticker {
	if period <= 0 {
		period = 50 * time.Millisecond
	}
	return &Ticker{period: period, fn: fn}
}

func (t *Ticker) Period() time.Duration {
	return t.period
}

// Start launches the tick loop under ctx. It returns false when the ticker
// is already running.
func (t *Ticker) Start(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return false
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.cancel = cancel
	t.done = done

	go func() {
		defer close(done)
		tk := time.NewTicker(t.period)
		defer tk.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case now := <-tk.C:
				// A cancel racing with the tick wins.
				if loopCtx.Err() != nil {
					return
				}
				t.fn(now)
			}
		}
	}()
	return true
}

// Stop cancels the loop and waits for it to exit. Calling Stop on a stopped
// ticker is a no-op.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel != nil
}
