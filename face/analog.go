package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var (
	analogTick   = hex("#DDDDDD")
	analogSecond = hex("#FF3B2F")
	analogHour   = hex("#111111")
	analogMinute = hex("#333333")
	analogDate   = hex("#AAAAAA")
)

// analogFace is a clean white dial with a smooth sweeping seconds hand.
type analogFace struct{}

func (analogFace) ShowsWallpaper() bool { return false }

func (analogFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	fillCircle(dc, white, g.cx, g.cy, g.radius)

	r := g.radius - 6*g.px
	dc.SetColor(analogTick)
	dc.SetLineWidth(math.Max(1, 1.5*g.px))
	for i := 0; i < 60; i++ {
		a := HandAngle(float64(i) / 60)
		inner := r - 4*g.px
		if i%5 == 0 {
			inner = r - 8*g.px
		}
		x0, y0 := polar(g.cx, g.cy, inner, a)
		x1, y1 := polar(g.cx, g.cy, r, a)
		dc.DrawLine(x0, y0, x1, y1)
	}
	dc.Stroke()

	secR := r - 10*g.px
	hand(dc, analogSecond, math.Max(1, 1.5*g.px), g.cx, g.cy, HandAngle(SecondsFraction(t)), secR*0.2, secR)
	hand(dc, analogHour, math.Max(1, 4*g.px), g.cx, g.cy, HandAngle(HourFraction(t)), 0, r*0.5)
	hand(dc, analogMinute, math.Max(1, 2.5*g.px), g.cx, g.cy, HandAngle(MinuteFraction(t)), 0, r*0.7)

	// The red cap breathes with the phase.
	fillCircle(dc, white, g.cx, g.cy, 5*g.px)
	fillCircle(dc, analogSecond, g.cx, g.cy, 3*g.px*pulse(c.Phase.Radians(), 1, 0.15))

	label := fmt.Sprintf("%s %d %s", DayLabel(t), t.Day(), MonthLabel(t))
	text(dc, fontSans, g.h*0.08, analogDate, label, g.cx, g.cy+g.h*0.32)
}
