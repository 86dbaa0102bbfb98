package face

import (
	"fmt"
	"math"

	"watchlauncher/glyph"

	"github.com/fogleman/gg"
)

var (
	pipGreen = hex("#1AFF80")
	pipDim   = hex("#0B6B35")
	pipBg    = hex("#031A0C")
)

// pipBoyFace is a green phosphor terminal: block digits, HP and AP bars for
// seconds and minutes, and a rolling bright scanline.
type pipBoyFace struct{}

func (pipBoyFace) Step() float64 { return 0.028 }

func (pipBoyFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(pipBg)
	dc.Clear()

	// Border frame
	inset := 6 * g.px
	dc.SetColor(pipDim)
	dc.SetLineWidth(math.Max(1, 2*g.px))
	dc.DrawRectangle(inset, inset, g.w-2*inset, g.h-2*inset)
	dc.Stroke()

	textAnchored(dc, fontMonoBold, g.h*0.06, pipGreen, "STATS", g.w*0.1, g.h*0.14, 0)
	textAnchored(dc, fontMono, g.h*0.06, pipDim, "INV  DATA", g.w*0.9, g.h*0.14, 1)
	strokeLine(dc, pipDim, math.Max(1, g.px), g.w*0.08, g.h*0.17, g.w*0.92, g.h*0.17)

	glyph.DotMatrix.Draw(dc, HHMM(t), g.cx, g.cy-g.h*0.2, glyph.Options{
		Unit:  g.minDim * 0.018,
		Shape: glyph.ShapeBlock,
		Color: pipGreen,
	})

	bar := func(label string, frac, y float64) {
		x0, x1 := g.w*0.28, g.w*0.88
		hgt := math.Max(3, 8*g.px)
		textAnchored(dc, fontMonoBold, g.h*0.06, pipGreen, label, g.w*0.12, y+hgt, 0)
		dc.SetColor(pipDim)
		dc.SetLineWidth(math.Max(1, g.px))
		dc.DrawRectangle(x0, y, x1-x0, hgt)
		dc.Stroke()
		if frac > 0 {
			fillRect(dc, pipGreen, x0, y, x0+(x1-x0)*frac, y+hgt, 0)
		}
	}
	bar("HP", SecondsFraction(t), g.cy+g.h*0.12)
	bar("AP", MinuteFraction(t), g.cy+g.h*0.21)

	label := fmt.Sprintf("%s %02d.%02d.%d", DayLabel(t), t.Day(), int(t.Month()), t.Year())
	text(dc, fontMono, g.h*0.06, pipDim, label, g.cx, g.h-g.h*0.1)

	// Phosphor scanline
	y := float64(c.Phase) * g.h
	fillRect(dc, argb(50, 26, 255, 128), 0, y, g.w, y+math.Max(2, 3*g.px), 0)
}
