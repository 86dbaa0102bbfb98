package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var boldRed = hex("#FF3B2F")

// boldFace stacks huge hour and minute numerals around a breathing red
// divider, with a faint scanline rolling down the screen.
type boldFace struct{}

func (boldFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(black)
	dc.Clear()

	scanY := float64(c.Phase) * g.h
	half := math.Max(1, 2*g.px)
	fillRect(dc, argb(30, 255, 59, 47), 0, scanY-half, g.w, scanY+half, 0)

	size := g.h * 0.36
	text(dc, fontSansBold, size, white, fmt.Sprintf("%02d", t.Hour()), g.cx, g.cy-g.h*0.03)

	lineW := g.w * 0.35 * pulse(c.Phase.Radians(), 0.7, 0.3)
	fillRect(dc, boldRed, g.cx-lineW, g.cy+g.h*0.055, g.cx+lineW, g.cy+g.h*0.065, 0)

	text(dc, fontSansBold, size, boldRed, fmt.Sprintf("%02d", t.Minute()), g.cx, g.cy+g.h*0.43)

	textAnchored(dc, fontMonoBold, g.h*0.075, hex("#444444"), DayLabel(t), g.w-g.w*0.08, g.h*0.12, 1)
}
