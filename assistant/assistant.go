// Package assistant exposes the one thing the faces need from the chat
// assistant: whether it is talking, smoothed into a mouth amplitude.
package assistant

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Signal is flipped by the speech side and read by the renderer.
type Signal struct {
	talking atomic.Bool
}

func (s *Signal) SetTalking(v bool) { s.talking.Store(v) }

func (s *Signal) Talking() bool { return s.talking.Load() }

// Decay is how far the mouth closes per tick once talking stops.
const Decay = 0.08

// Mouth turns a Signal into an amplitude in [0,1]. Tick is called once per
// animation tick.
type Mouth struct {
	sig *Signal

	mu   sync.Mutex
	open float64
}

func NewMouth(sig *Signal) *Mouth {
	return &Mouth{sig: sig}
}

// Tick advances the mouth to now and returns the new amplitude. While
// talking it flaps as 0.4 + 0.6*|sin(t/80ms)|.
func (m *Mouth) Tick(now time.Time) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sig != nil && m.sig.Talking() {
		ms := float64(now.UnixNano()) / float64(time.Millisecond)
		m.open = 0.4 + 0.6*math.Abs(math.Sin(ms/80))
	} else {
		m.open = math.Max(0, m.open-Decay)
	}
	return m.open
}

func (m *Mouth) Open() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
