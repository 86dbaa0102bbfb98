package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var (
	retroOrange = hex("#FF6B00")
	retroBrown  = hex("#554433")
	retroBg     = hex("#0A0A0A")
)

// retroFace imitates an amber CRT: flickering orange digits, a sweeping
// seconds hand and an AM/PM badge. Digits stay in 24-hour form; the badge
// carries the half of the day.
type retroFace struct{}

func (retroFace) Step() float64 { return 0.02 }

func (retroFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(retroBg)
	dc.Clear()

	flicker := 0.92 + 0.08*math.Sin(c.Phase.Radians()*7)
	orange := fade(retroOrange, flicker)

	size := g.h * 0.30
	text(dc, fontMonoBold, size, orange, HHMM(t), g.cx, g.cy+size*0.35)

	secAngle := HandAngle(SecondsFraction(t))
	hand(dc, orange, math.Max(1, 2*g.px), g.cx, g.cy, secAngle, 0, g.radius-16*g.px)
	fillCircle(dc, orange, g.cx, g.cy, math.Max(2, 4*g.px))

	_, ampm := Hour12(t)
	fillRect(dc, orange, g.cx+g.w*0.18, g.cy-g.h*0.43, g.cx+g.w*0.42, g.cy-g.h*0.28, 6*g.px)
	text(dc, fontMonoBold, g.h*0.09, black, ampm, g.cx+g.w*0.30, g.cy-g.h*0.32)

	text(dc, fontMono, g.h*0.075, retroBrown, fmt.Sprintf("%s  %d", DayLabel(t), t.Day()), g.cx, g.cy+g.h*0.40)

	// CRT scanlines over everything
	pitch := math.Max(2, 3*g.px)
	line := math.Max(1, g.px)
	dc.SetColor(argb(40, 0, 0, 0))
	for y := 0.0; y < g.h; y += pitch {
		dc.DrawRectangle(0, y, g.w, line)
	}
	dc.Fill()
}
