// Package anim drives decorative motion on the watch faces. It holds the
// animation phase, a cyclic value in [0,1) that advances on a fixed period
// independently of wall-clock seconds.
package anim

import (
	"context"
	"math"
	"sync"
	"time"

	"watchlauncher/timers"

	"github.com/d2r2/go-logger"
)

var lg = logger.NewPackageLogger("anim", logger.InfoLevel)

const (
	DefaultPeriod = 50 * time.Millisecond
	DefaultStep   = 0.025
)

// Phase is an animation phase in [0,1).
type Phase float64

// Advance returns p moved forward by step, wrapped into [0,1).
func (p Phase) Advance(step float64) Phase {
	return Wrap(float64(p) + step)
}

// Wrap maps any finite value onto [0,1).
func Wrap(v float64) Phase {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	w := math.Mod(v, 1)
	if w < 0 {
		w += 1
	}
	// Mod of a value a hair below an integer can round up to exactly 1.
	if w >= 1 {
		w = 0
	}
	return Phase(w)
}

// Radians converts the phase to an angle over one full turn.
func (p Phase) Radians() float64 {
	return float64(p) * 2 * math.Pi
}

// TickClock owns a Phase and advances it every period while attached,
// calling invalidate after each step so the host can redraw.
//
// Detach keeps the phase; a later Attach resumes from where it stopped.
type TickClock struct {
	invalidate func(Phase)
	ticker     *timers.Ticker

	mu    sync.Mutex
	phase Phase
	step  float64
}

func NewTickClock(period time.Duration, step float64, invalidate func(Phase)) *TickClock {
	if step <= 0 {
		step = DefaultStep
	}
	c := &TickClock{
		invalidate: invalidate,
		step:       step,
	}
	c.ticker = timers.NewTicker(period, c.tick)
	return c
}

func (c *TickClock) tick(time.Time) {
	p := c.Advance()
	if c.invalidate != nil {
		c.invalidate(p)
	}
}

// Advance moves the phase forward by one step and returns the new value.
// The ticker calls it on every period; tests call it directly.
func (c *TickClock) Advance() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = c.phase.Advance(c.step)
	return c.phase
}

func (c *TickClock) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *TickClock) Step() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// SetStep changes the per-tick increment. Non-positive values restore the
// default.
func (c *TickClock) SetStep(step float64) {
	if step <= 0 {
		step = DefaultStep
	}
	c.mu.Lock()
	c.step = step
	c.mu.Unlock()
}

// Attach starts ticking. Calling Attach while attached does nothing.
func (c *TickClock) Attach(ctx context.Context) {
	if c.ticker.Start(ctx) {
		lg.Debugf("tick clock attached at phase %.3f", float64(c.Phase()))
	}
}

// Detach stops ticking and returns once no further invalidate call can run.
func (c *TickClock) Detach() {
	if !c.ticker.Running() {
		return
	}
	c.ticker.Stop()
	lg.Debugf("tick clock detached at phase %.3f", float64(c.Phase()))
}

func (c *TickClock) Attached() bool {
	return c.ticker.Running()
}
