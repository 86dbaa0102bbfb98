// Package haptics drives the vibration motor used to acknowledge gestures.
package haptics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var lg = logger.NewPackageLogger("haptics", logger.InfoLevel)

// Step is one segment of a vibration pattern.
type Step struct {
	State    bool
	Duration time.Duration
}

// Click is a single short buzz.
func Click(d time.Duration) []Step {
	return []Step{{true, d}}
}

// Bump is the double buzz used when the face wraps around.
func Bump(d time.Duration) []Step {
	return []Step{{true, d}, {false, 2 * d}, {true, d}}
}

// Motor owns the vibrator pin. A nil *Motor is a silent motor.
type Motor struct {
	pin gpio.PinOut

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Open binds the vibrator on pinName and drives it low.
func Open(pinName string) (*Motor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p := gpioreg.ByName(pinName)
	if p == nil {
		return nil, fmt.Errorf("vibrator pin %s not found", pinName)
	}
	return New(p)
}

// New wraps an already resolved pin.
func New(pin gpio.PinOut) (*Motor, error) {
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("vibrator off: %w", err)
	}
	return &Motor{pin: pin}, nil
}

func (m *Motor) set(on bool) {
	l := gpio.Low
	if on {
		l = gpio.High
	}
	if err := m.pin.Out(l); err != nil {
		lg.Warningf("vibrator: %v", err)
	}
}

// Play runs pattern in the background, replacing whatever was playing.
func (m *Motor) Play(ctx context.Context, pattern []Step) {
	if m == nil || len(pattern) == 0 {
		return
	}
	m.Stop()

	m.mu.Lock()
	defer m.mu.Unlock()
	pctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	m.cancel, m.done = cancel, done
	go func() {
		defer close(done)
		m.run(pctx, pattern)
	}()
}

func (m *Motor) run(ctx context.Context, pattern []Step) {
	for _, n := range pattern {
		select {
		case <-ctx.Done():
			m.set(false)
			return
		default:
			m.set(n.State)

			timer := time.NewTimer(n.Duration)
			select {
			case <-ctx.Done():
				timer.Stop()
				m.set(false)
				return
			case <-timer.C:
			}
		}
	}
	m.set(false)
}

// Stop cuts the current pattern and waits for the motor to switch off.
func (m *Motor) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
