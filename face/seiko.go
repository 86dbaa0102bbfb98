package face

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

var (
	seikoNavy  = hex("#0B1A33")
	seikoWave  = hex("#2E6FD8")
	seikoFoam  = hex("#A8C8F0")
	seikoSteel = hex("#D8DCE2")
	seikoRed   = hex("#E03C31")
)

// seikoFace is a diver dial whose lower half carries rolling waves.
type seikoFace struct{}

func (seikoFace) Step() float64 { return 0.016 }

func (seikoFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now
	rad := c.Phase.Radians()

	dc.SetColor(black)
	dc.Clear()
	fillCircle(dc, seikoNavy, g.cx, g.cy, g.radius)

	dc.Push()
	dc.DrawCircle(g.cx, g.cy, g.radius)
	dc.Clip()
	for i := 0; i < 3; i++ {
		base := g.cy + g.h*(0.12+0.09*float64(i))
		amp := g.h * (0.035 - 0.008*float64(i))
		alpha := 0.85 - 0.2*float64(i)
		drawWave(dc, g, base, amp, rad+float64(i)*0.9, fade(seikoWave, alpha))
	}
	dc.SetColor(fade(seikoFoam, 0.6))
	dc.SetLineWidth(math.Max(1, 1.5*g.px))
	waveLine(dc, g, g.cy+g.h*0.12, g.h*0.035, rad)
	dc.Stroke()
	dc.ResetClip()
	dc.Pop()

	// Indices; 12 o'clock is a double bar.
	outer := g.radius - 6*g.px
	for i := 0; i < 12; i++ {
		a := HandAngle(float64(i) / 12)
		w := math.Max(1, 3*g.px)
		length := 14 * g.px
		if i%3 == 0 {
			w = math.Max(2, 5*g.px)
			length = 20 * g.px
		}
		x0, y0 := polar(g.cx, g.cy, outer-length, a)
		x1, y1 := polar(g.cx, g.cy, outer, a)
		strokeLine(dc, seikoSteel, w, x0, y0, x1, y1)
	}

	// Date window at three o'clock.
	wx, wy := g.cx+g.radius*0.52, g.cy
	bw, bh := g.w*0.12, g.h*0.09
	fillRect(dc, white, wx-bw/2, wy-bh/2, wx+bw/2, wy+bh/2, 2*g.px)
	text(dc, fontSansBold, bh*0.8, black, fmt.Sprintf("%d", t.Day()), wx, wy+bh*0.3)

	text(dc, fontSansBold, g.h*0.06, seikoSteel, "SEIKO", g.cx, g.cy-g.h*0.2)
	text(dc, fontSans, g.h*0.04, seikoSteel, DayLabel(t), g.cx, g.cy-g.h*0.14)

	r := outer
	hand(dc, seikoSteel, math.Max(2, 6*g.px), g.cx, g.cy, HandAngle(HourFraction(t)), 0, r*0.5)
	hand(dc, seikoSteel, math.Max(1, 4*g.px), g.cx, g.cy, HandAngle(MinuteFraction(t)), 0, r*0.78)
	hand(dc, seikoRed, math.Max(1, 1.5*g.px), g.cx, g.cy, HandAngle(SecondsFraction(t)), r*0.15, r*0.85)
	fillCircle(dc, seikoRed, g.cx, g.cy, math.Max(2, 4*g.px))
}

func waveLine(dc *gg.Context, g geom, base, amp, shift float64) {
	steps := int(math.Max(24, g.w/4))
	for i := 0; i <= steps; i++ {
		x := g.w * float64(i) / float64(steps)
		y := base + amp*math.Sin(x/g.w*4*math.Pi+shift)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
}

// drawWave fills from the wave line down to the bottom of the frame.
func drawWave(dc *gg.Context, g geom, base, amp, shift float64, col color.Color) {
	dc.NewSubPath()
	waveLine(dc, g, base, amp, shift)
	dc.LineTo(g.w, g.h)
	dc.LineTo(0, g.h)
	dc.ClosePath()
	dc.SetColor(col)
	dc.Fill()
}
