// Package keypad scans the watch's GPIO buttons and turns presses into
// gesture events.
package keypad

import (
	"context"
	"fmt"
	"sort"
	"time"

	"watchlauncher/gesture"
	"watchlauncher/timers"

	"github.com/d2r2/go-logger"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var lg = logger.NewPackageLogger("keypad", logger.InfoLevel)

// Button is an active-low push button bound to one gesture kind.
type Button struct {
	Label string
	Kind  gesture.Kind
	gpio.PinIn
}

type Options struct {
	Debounce  time.Duration
	LongPress time.Duration
	DoubleTap time.Duration
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = 25 * time.Millisecond
	}
	return o
}

// Open initialises the host and binds every configured pin. pins maps a
// gesture kind name ("swipe-left", "tap", ...) to a GPIO name.
func Open(pins map[string]string) ([]*Button, error) {
	// Must be first
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	sort.Strings(names)

	var buttons []*Button
	for _, name := range names {
		kind, ok := gesture.ParseKind(name)
		if !ok || kind == gesture.None {
			return nil, fmt.Errorf("unknown gesture %q", name)
		}
		p := gpioreg.ByName(pins[name])
		if p == nil {
			return nil, fmt.Errorf("pin %s (%s) not found", pins[name], name)
		}
		if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("init %s: %w", pins[name], err)
		}
		buttons = append(buttons, &Button{Label: pins[name], Kind: kind, PinIn: p})
	}
	return buttons, nil
}

func debounceRead(ctx context.Context, pin gpio.PinIn, state gpio.Level, duration time.Duration) bool {
	steps := 10
	interval := duration / time.Duration(steps)

	for range steps {
		if pin.Read() != state {
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(interval):
			// wait the interval before next check
		}
	}
	return true
}

// Run scans buttons until ctx ends. Direction buttons fire on press; the
// tap button fires on release as Tap, DoubleTap or LongPress depending on
// timing. Buttons bound to other kinds fire that kind on release.
func Run(ctx context.Context, buttons []*Button, opts Options) <-chan gesture.Event {
	opts = opts.withDefaults()
	events := make(chan gesture.Event, 10)

	go func() {
		defer close(events)
		taps := gesture.TapTracker{Window: opts.DoubleTap}
		pressed := make([]time.Time, len(buttons))

		emit := func(kind gesture.Kind, at time.Time) {
			select {
			case events <- gesture.Event{Kind: kind, At: at}:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			for i, b := range buttons {
				if pressed[i].IsZero() {
					if b.Read() == gpio.Low && debounceRead(ctx, b.PinIn, gpio.Low, opts.Debounce) {
						pressed[i] = time.Now()
						lg.Debugf("press on %s (%v)", b.Label, b.Kind)
						if b.Kind.Swipe() {
							emit(b.Kind, pressed[i])
						}
					}
					continue
				}

				if b.Read() == gpio.High && debounceRead(ctx, b.PinIn, gpio.High, 2*opts.Debounce) {
					now := time.Now()
					held := now.Sub(pressed[i])
					pressed[i] = time.Time{}
					switch {
					case b.Kind.Swipe():
					case b.Kind == gesture.Tap:
						kind := gesture.HoldKind(held, opts.LongPress)
						if kind == gesture.Tap {
							kind = taps.Press(now)
						}
						emit(kind, now)
					default:
						emit(b.Kind, now)
					}
				}
			}
			timers.SleepWithContext(ctx, time.Millisecond)
		}
	}()

	return events
}
