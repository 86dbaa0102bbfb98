package menu

import (
	"sync"
	"time"
)

// LabelFade is the opacity curve of the face-name label: fully opaque for
// Delay after Show, then a linear fade to zero over Fade.
type LabelFade struct {
	Delay time.Duration
	Fade  time.Duration

	mu    sync.Mutex
	text  string
	shown time.Time
}

func NewLabelFade(delay, fade time.Duration) *LabelFade {
	return &LabelFade{Delay: delay, Fade: fade}
}

// Show restarts the curve at now with text.
func (l *LabelFade) Show(text string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
	l.shown = now
}

// Hide drops the label immediately.
func (l *LabelFade) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown = time.Time{}
}

// Alpha returns the label opacity in [0,1] at now.
func (l *LabelFade) Alpha(now time.Time) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.shown.IsZero() {
		return 0
	}
	elapsed := now.Sub(l.shown)
	switch {
	case elapsed < l.Delay:
		return 1
	case l.Fade <= 0 || elapsed >= l.Delay+l.Fade:
		return 0
	}
	return 1 - float64(elapsed-l.Delay)/float64(l.Fade)
}

// Text returns the label and its opacity at now.
func (l *LabelFade) Text(now time.Time) (string, float64) {
	a := l.Alpha(now)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.text, a
}
