package face

import (
	"fmt"
	"math"

	"watchlauncher/glyph"

	"github.com/fogleman/gg"
)

var (
	casioCase  = hex("#1B1B1B")
	casioLCD   = hex("#9DAE8A")
	casioInk   = hex("#1C2416")
	casioGhost = hex("#8A9A78")
	casioBlue  = hex("#3A7BD5")
	casioRed   = hex("#D8352A")
)

// casioFace is a resin-cased LCD module: block digits, a small seconds
// readout, a segmented seconds bar and a light sheen sliding over the glass.
type casioFace struct{}

func (casioFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(casioCase)
	dc.Clear()

	textAnchored(dc, fontSansBold, g.h*0.07, white, "CASIO", g.w*0.1, g.h*0.13, 0)
	textAnchored(dc, fontSansBold, g.h*0.06, casioRed, "G-SHOCK", g.w*0.9, g.h*0.13, 1)

	x0, y0 := g.w*0.08, g.h*0.22
	x1, y1 := g.w*0.92, g.h*0.78
	fillRect(dc, casioLCD, x0, y0, x1, y1, 8*g.px)

	_, ampm := Hour12(t)
	textAnchored(dc, fontMonoBold, g.h*0.06, casioInk, ampm, x0+g.w*0.04, y0+g.h*0.09, 0)
	textAnchored(dc, fontMonoBold, g.h*0.06, casioInk, DayLabel(t), x1-g.w*0.04, y0+g.h*0.09, 1)

	unit := g.minDim * 0.016
	opts := glyph.Options{Unit: unit, Shape: glyph.ShapeBlock, Color: casioGhost}
	top := g.cy - g.h*0.08
	// Unlit segments sit behind the digits like on a real LCD.
	glyph.DotMatrix.Draw(dc, "88:88", g.cx-g.w*0.05, top, opts)
	opts.Color = casioInk
	glyph.DotMatrix.Draw(dc, HHMM(t), g.cx-g.w*0.05, top, opts)

	small := glyph.Options{Unit: unit * 0.55, Shape: glyph.ShapeBlock, Color: casioInk}
	m := glyph.DotMatrix.Layout("88", small.Unit)
	glyph.DotMatrix.Draw(dc, fmt.Sprintf("%02d", t.Second()), x1-g.w*0.04-m.Width/2, top+g.h*0.06, small)

	// Seconds bar: 12 segments, each five seconds.
	segs := 12
	lit := t.Second() / 5
	sx0, sx1 := x0+g.w*0.05, x1-g.w*0.05
	sy := y1 - g.h*0.1
	segW := (sx1 - sx0) / float64(segs)
	for i := 0; i < segs; i++ {
		col := casioGhost
		if i <= lit {
			col = casioInk
		}
		fillRect(dc, col, sx0+float64(i)*segW+g.px, sy, sx0+float64(i+1)*segW-g.px, sy+math.Max(2, 5*g.px), 0)
	}

	// Sheen across the glass
	dc.Push()
	dc.DrawRoundedRectangle(x0, y0, x1-x0, y1-y0, 8*g.px)
	dc.Clip()
	sx := x0 - g.w*0.2 + float64(c.Phase)*(x1-x0+g.w*0.4)
	dc.SetColor(argb(45, 255, 255, 255))
	dc.MoveTo(sx, y0)
	dc.LineTo(sx+g.w*0.08, y0)
	dc.LineTo(sx-g.w*0.04, y1)
	dc.LineTo(sx-g.w*0.12, y1)
	dc.ClosePath()
	dc.Fill()
	dc.ResetClip()
	dc.Pop()

	label := fmt.Sprintf("%d-%02d  %s", int(t.Month()), t.Day(), MonthLabel(t))
	text(dc, fontMono, g.h*0.06, casioBlue, label, g.cx, g.h-g.h*0.1)
}
