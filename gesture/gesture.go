// Package gesture turns raw pointer motion and button presses into the
// small set of events the launcher reacts to.
package gesture

import (
	"math"
	"time"
)

type Kind int

const (
	None Kind = iota
	SwipeUp
	SwipeDown
	SwipeLeft
	SwipeRight
	Tap
	DoubleTap
	LongPress
)

var kindNames = [...]string{"none", "swipe-up", "swipe-down", "swipe-left", "swipe-right", "tap", "double-tap", "long-press"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return None, false
}

// Swipe reports whether k is one of the directional kinds.
func (k Kind) Swipe() bool {
	return k >= SwipeUp && k <= SwipeRight
}

// Event is delivered to the active screen.
type Event struct {
	Kind Kind
	At   time.Time
}

// Motion is one completed pointer drag. Screen coordinates: y grows down.
type Motion struct {
	DX, DY   float64
	Duration time.Duration
}

// Velocity returns the per-axis speed in units per second. A zero duration
// yields zero velocity.
func (m Motion) Velocity() (vx, vy float64) {
	s := m.Duration.Seconds()
	if s <= 0 {
		return 0, 0
	}
	return m.DX / s, m.DY / s
}

// Thresholds gate whether a drag counts as a fling.
type Thresholds struct {
	MinDistance float64 `toml:"min_distance"`
	// MinVelocity is ignored when zero.
	MinVelocity float64 `toml:"min_velocity"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{MinDistance: 80, MinVelocity: 300}
}

// Classify maps a drag onto a swipe direction. The axis with the larger
// magnitude wins; an exact diagonal is None so it can never fire twice.
func Classify(m Motion, th Thresholds) Kind {
	ax, ay := math.Abs(m.DX), math.Abs(m.DY)
	if math.IsNaN(ax) || math.IsNaN(ay) || ax == ay {
		return None
	}
	vx, vy := m.Velocity()
	if ax > ay {
		if ax < th.MinDistance || (th.MinVelocity > 0 && math.Abs(vx) < th.MinVelocity) {
			return None
		}
		if m.DX < 0 {
			return SwipeLeft
		}
		return SwipeRight
	}
	if ay < th.MinDistance || (th.MinVelocity > 0 && math.Abs(vy) < th.MinVelocity) {
		return None
	}
	if m.DY < 0 {
		return SwipeUp
	}
	return SwipeDown
}

// TapTracker folds single presses into Tap or DoubleTap. Presses closer
// together than Window form a double tap.
type TapTracker struct {
	Window time.Duration
	last   time.Time
}

const DefaultDoubleTapWindow = 300 * time.Millisecond

// Press records a press at now and returns its kind.
func (t *TapTracker) Press(now time.Time) Kind {
	w := t.Window
	if w <= 0 {
		w = DefaultDoubleTapWindow
	}
	if !t.last.IsZero() && now.Sub(t.last) <= w {
		t.last = time.Time{}
		return DoubleTap
	}
	t.last = now
	return Tap
}

// HoldKind classifies a press by how long it was held.
func HoldKind(held, longPress time.Duration) Kind {
	if longPress <= 0 {
		longPress = 500 * time.Millisecond
	}
	if held >= longPress {
		return LongPress
	}
	return Tap
}
