package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var (
	neonCyan = hex("#00FFCC")
	neonDim  = hex("#007755")
	neonBg   = hex("#050510")
)

// neonFace orbits eight glowing particles around a seconds arc.
type neonFace struct{}

func (neonFace) Step() float64 { return 0.02 }

func (neonFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(neonBg)
	dc.Clear()

	inset := 8 * g.px
	r := g.radius - inset
	rad := c.Phase.Radians()
	for i := 0; i < 8; i++ {
		angle := rad + float64(i)*math.Pi/4
		x, y := polar(g.cx, g.cy, r, angle)
		alpha := int(127 + 128*math.Sin(rad+float64(i)))
		fillCircle(dc, argb(alpha, 0, 255, 200), x, y, math.Max(1, 2.5*g.px))
	}

	if frac := SecondsFraction(t); frac > 0 {
		start := HandAngle(0)
		dc.SetColor(neonCyan)
		dc.SetLineWidth(math.Max(1, 4*g.px))
		dc.SetLineCap(gg.LineCapRound)
		dc.NewSubPath()
		dc.DrawArc(g.cx, g.cy, r, start, start+frac*2*math.Pi)
		dc.Stroke()
	}

	size := g.h * 0.28
	text(dc, fontMonoBold, size, neonCyan, HHMM(t), g.cx, g.cy+size*0.35)

	text(dc, fontMono, g.h*0.075, neonDim, fmt.Sprintf("%d %s", t.Day(), MonthLabel(t)), g.cx, g.cy+g.h*0.40)
}
