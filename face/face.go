// Package face renders the watch faces. Each style has its own Face
// implementation; Render dispatches through a table keyed by style and
// produces a full frame from the wall-clock time, the animation phase and the
// surface size. Faces keep no state between frames.
package face

import (
	"image"
	"image/color"
	"sync"
	"time"

	"watchlauncher/anim"
	"watchlauncher/style"

	"github.com/d2r2/go-logger"
	"github.com/fogleman/gg"
)

var lg = logger.NewPackageLogger("face", logger.InfoLevel)

// Context is everything a face may read while drawing one frame.
type Context struct {
	Width, Height int
	Now           time.Time
	Phase         anim.Phase
	// MouthOpen is the talking amplitude in [0,1] for the character face.
	MouthOpen float64
	// Frame is the current character animation frame, nil until frames load.
	Frame image.Image
}

// Degenerate reports whether there is nothing to draw on.
func (c Context) Degenerate() bool {
	return c.Width <= 0 || c.Height <= 0
}

// Face draws one style onto dc. dc is sized Width x Height.
type Face interface {
	Draw(dc *gg.Context, c Context)
}

// Stepper is implemented by faces whose decorations want a different tick
// increment than anim.DefaultStep.
type Stepper interface {
	Step() float64
}

// Backdrop is implemented by faces that paint only part of the frame and
// want the wallpaper hidden behind them.
type Backdrop interface {
	ShowsWallpaper() bool
}

var faces = map[style.Style]Face{
	style.NothingDot:  nothingFace{},
	style.BoldDigital: boldFace{},
	style.NeonMinimal: neonFace{},
	style.RetroOrange: retroFace{},
	style.CleanWhite:  analogFace{},
	style.WaveSeiko:   seikoFace{},
	style.PipBoy:      pipBoyFace{},
	style.JamesBond:   bondFace{},
	style.CasioRetro:  casioFace{},
	style.MissMinutes: missMinutesFace{},
}

// For returns the face registered for s. Unknown styles fall back to the
// first catalog entry.
func For(s style.Style) Face {
	if f, ok := faces[s]; ok {
		return f
	}
	return faces[style.NothingDot]
}

// Step returns the tick increment preferred by s.
func Step(s style.Style) float64 {
	if st, ok := For(s).(Stepper); ok {
		return st.Step()
	}
	return anim.DefaultStep
}

// ShowsWallpaper reports whether the wallpaper should be visible behind s.
func ShowsWallpaper(s style.Style) bool {
	if b, ok := For(s).(Backdrop); ok {
		return b.ShowsWallpaper()
	}
	return true
}

// Fonts are shared between frames and are not safe for concurrent use, so
// frames are drawn one at a time.
var renderMu sync.Mutex

// Render draws style s on a transparent canvas. It returns nil when the
// viewport is degenerate.
func Render(s style.Style, c Context) image.Image {
	if c.Degenerate() {
		return nil
	}
	dc := gg.NewContext(c.Width, c.Height)
	draw(dc, s, c)
	return dc.Image()
}

// Compose renders a complete opaque frame: black base, the wallpaper when
// the style shows one, then the face. wallpaper may be nil.
func Compose(s style.Style, c Context, wallpaper image.Image) image.Image {
	if c.Degenerate() {
		return nil
	}
	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(color.Black)
	dc.Clear()
	if wallpaper != nil && ShowsWallpaper(s) {
		drawWallpaper(dc, wallpaper)
	}
	draw(dc, s, c)
	return dc.Image()
}

func draw(dc *gg.Context, s style.Style, c Context) {
	renderMu.Lock()
	defer renderMu.Unlock()
	defer func() {
		// A broken decoration must not take the clock down with it.
		if r := recover(); r != nil {
			lg.Errorf("face %s panicked: %v", s, r)
			drawFallbackTime(dc, c)
		}
	}()
	For(s).Draw(dc, c)
}

func drawWallpaper(dc *gg.Context, img image.Image) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	w, h := float64(dc.Width()), float64(dc.Height())
	scale := max(w/float64(b.Dx()), h/float64(b.Dy()))
	dc.Push()
	dc.Translate(w/2, h/2)
	dc.Scale(scale, scale)
	dc.DrawImageAnchored(img, 0, 0, 0.5, 0.5)
	dc.Pop()

	// Scrim keeps the face readable over busy wallpapers.
	dc.SetRGBA255(0, 0, 0, 110)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// drawFallbackTime is the minimum every frame must show.
func drawFallbackTime(dc *gg.Context, c Context) {
	g := newGeom(c)
	setFont(dc, fontMonoBold, g.minDim*0.2)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(HHMM(c.Now), g.cx, g.cy, 0.5, 0.35)
}
