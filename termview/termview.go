// Package termview previews the watch in a terminal. Each character cell
// shows two pixels with an upper half block, and mouse drags or arrow keys
// stand in for touch gestures.
package termview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"watchlauncher/gesture"

	"github.com/d2r2/go-logger"
	"github.com/gdamore/tcell/v2"
)

var lg = logger.NewPackageLogger("termview", logger.InfoLevel)

const halfBlock = '▀'

type Options struct {
	Thresholds gesture.Thresholds
	LongPress  time.Duration
	DoubleTap  time.Duration
}

type View struct {
	screen tcell.Screen
	w, h   int
	opts   Options
	taps   gesture.TapTracker

	quit     chan struct{}
	quitOnce sync.Once
}

// Open takes over the controlling terminal.
func Open(w, h int, opts Options) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return New(screen, w, h, opts), nil
}

// New wraps an initialised screen. w and h are the logical watch size.
func New(screen tcell.Screen, w, h int, opts Options) *View {
	if opts.Thresholds.MinDistance <= 0 {
		opts.Thresholds = gesture.DefaultThresholds()
	}
	return &View{
		screen: screen,
		w:      w,
		h:      h,
		opts:   opts,
		taps:   gesture.TapTracker{Window: opts.DoubleTap},
		quit:   make(chan struct{}),
	}
}

func (v *View) Size() (int, int) { return v.w, v.h }

func (v *View) Close() error {
	v.screen.Fini()
	return nil
}

// Quit is closed once the user asks to leave (q, Esc or Ctrl-C).
func (v *View) Quit() <-chan struct{} { return v.quit }

// layout returns how many logical pixels one cell column spans and where
// the frame sits in the terminal.
func (v *View) layout() (scale float64, ox, oy, cols, rows int) {
	sw, sh := v.screen.Size()
	if sw <= 0 || sh <= 0 || v.w <= 0 || v.h <= 0 {
		return 0, 0, 0, 0, 0
	}
	scale = math.Max(float64(v.w)/float64(sw), float64(v.h)/float64(2*sh))
	cols = int(float64(v.w) / scale)
	rows = int(float64(v.h) / (2 * scale))
	return scale, (sw - cols) / 2, (sh - rows) / 2, cols, rows
}

func (v *View) Present(img image.Image) error {
	if img == nil {
		return nil
	}
	scale, ox, oy, cols, rows := v.layout()
	if scale == 0 {
		return nil
	}
	b := img.Bounds()
	at := func(x, y float64) tcell.Color {
		return rgb(img.At(b.Min.X+int(x), b.Min.Y+int(y)))
	}

	v.screen.Clear()
	for cy := range rows {
		for cx := range cols {
			x := float64(cx) * scale
			top := float64(2*cy) * scale
			bottom := float64(2*cy+1) * scale
			style := tcell.StyleDefault.Foreground(at(x, top)).Background(at(x, bottom))
			v.screen.SetContent(ox+cx, oy+cy, halfBlock, nil, style)
		}
	}
	v.screen.Show()
	return nil
}

func rgb(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

type drag struct {
	active bool
	x, y   int
	at     time.Time
}

// Run pumps terminal input until ctx is done or the user quits. The
// returned channel is closed when it stops.
func (v *View) Run(ctx context.Context) <-chan gesture.Event {
	out := make(chan gesture.Event, 8)

	go func() {
		<-ctx.Done()
		v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	go func() {
		defer close(out)
		var d drag
		emit := func(k gesture.Kind, at time.Time) bool {
			if k == gesture.None {
				return true
			}
			lg.Debugf("%s", k)
			select {
			case out <- gesture.Event{Kind: k, At: at}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			if ctx.Err() != nil {
				return
			}
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				v.screen.Sync()
			case *tcell.EventKey:
				k, quit := v.keyKind(ev)
				if quit {
					v.quitOnce.Do(func() { close(v.quit) })
					return
				}
				if !emit(k, ev.When()) {
					return
				}
			case *tcell.EventMouse:
				if !emit(v.mouseKind(&d, ev), ev.When()) {
					return
				}
			}
		}
	}()
	return out
}

func (v *View) keyKind(ev *tcell.EventKey) (gesture.Kind, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return gesture.None, true
	case tcell.KeyLeft:
		return gesture.SwipeLeft, false
	case tcell.KeyRight:
		return gesture.SwipeRight, false
	case tcell.KeyUp:
		return gesture.SwipeUp, false
	case tcell.KeyDown:
		return gesture.SwipeDown, false
	case tcell.KeyEnter:
		return v.taps.Press(ev.When()), false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return gesture.None, true
		case ' ':
			return v.taps.Press(ev.When()), false
		case 'd':
			return gesture.DoubleTap, false
		case 'l':
			return gesture.LongPress, false
		}
	}
	return gesture.None, false
}

// mouseKind tracks a primary-button drag and classifies it on release.
// A release that barely moved is a tap or a long press.
func (v *View) mouseKind(d *drag, ev *tcell.EventMouse) gesture.Kind {
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0

	switch {
	case pressed && !d.active:
		*d = drag{active: true, x: x, y: y, at: ev.When()}
		return gesture.None
	case pressed || !d.active:
		return gesture.None
	}

	d.active = false
	scale, _, _, _, _ := v.layout()
	held := ev.When().Sub(d.at)
	m := gesture.Motion{
		DX:       float64(x-d.x) * scale,
		DY:       float64(y-d.y) * 2 * scale,
		Duration: max(held, time.Millisecond),
	}
	if k := gesture.Classify(m, v.opts.Thresholds); k != gesture.None {
		return k
	}
	slop := v.opts.Thresholds.MinDistance / 4
	if math.Abs(m.DX) > slop || math.Abs(m.DY) > slop {
		return gesture.None
	}
	if gesture.HoldKind(held, v.opts.LongPress) == gesture.LongPress {
		return gesture.LongPress
	}
	return v.taps.Press(ev.When())
}
