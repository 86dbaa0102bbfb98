package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var (
	bondGold  = hex("#C9A13B")
	bondRing  = hex("#2A2A2A")
	bondBlood = hex("#8A0303")
)

// bondFace opens on the gun barrel: rotating rifling rings, a white dot
// tracking across the dial, and a 12-hour readout under the hands.
type bondFace struct{}

func (bondFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now
	rad := c.Phase.Radians()

	dc.SetColor(black)
	dc.Clear()

	// Rifling: concentric rings with spiral notches turning with the phase.
	for i := 1; i <= 5; i++ {
		r := g.radius * float64(i) / 5.5
		dc.SetColor(bondRing)
		dc.SetLineWidth(math.Max(1, 3*g.px))
		dc.DrawCircle(g.cx, g.cy, r)
		dc.Stroke()
		dir := 1.0
		if i%2 == 0 {
			dir = -1
		}
		for k := 0; k < 6; k++ {
			a := dir*rad + float64(k)*math.Pi/3 + float64(i)*0.3
			x, y := polar(g.cx, g.cy, r, a)
			fillCircle(dc, bondRing, x, y, math.Max(1, 3*g.px))
		}
	}

	// Barrel dot sweeping left to right.
	dotX := g.w * (0.15 + 0.7*float64(c.Phase))
	fillCircle(dc, white, dotX, g.cy-g.h*0.28, math.Max(2, 6*g.px))

	r := g.radius - 10*g.px
	hand(dc, bondGold, math.Max(2, 5*g.px), g.cx, g.cy, HandAngle(HourFraction(t)), 0, r*0.45)
	hand(dc, bondGold, math.Max(1, 3*g.px), g.cx, g.cy, HandAngle(MinuteFraction(t)), 0, r*0.7)
	hand(dc, bondBlood, math.Max(1, 1.5*g.px), g.cx, g.cy, HandAngle(SecondsFraction(t)), r*0.15, r*0.8)
	fillCircle(dc, bondGold, g.cx, g.cy, math.Max(2, 4*g.px))

	text(dc, fontSansBold, g.h*0.11, bondGold, "007", g.cx, g.cy-g.h*0.08)

	h12, ampm := Hour12(t)
	digital := fmt.Sprintf("%d:%02d", h12, t.Minute())
	text(dc, fontMonoBold, g.h*0.1, white, digital, g.cx, g.cy+g.h*0.25)
	text(dc, fontMonoBold, g.h*0.05, bondGold, ampm, g.cx+g.w*0.22, g.cy+g.h*0.25)

	label := fmt.Sprintf("%s %d %s", DayLabel(t), t.Day(), MonthLabel(t))
	text(dc, fontMono, g.h*0.055, hex("#777777"), label, g.cx, g.cy+g.h*0.36)
}
