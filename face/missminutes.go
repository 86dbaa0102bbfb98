package face

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
)

var (
	minutesOrange = hex("#F28C28")
	minutesDark   = hex("#7A3E00")
	minutesCream  = hex("#FFE9C7")
	minutesBg     = hex("#1E1206")
)

// missMinutesFace shows the assistant character. When animation frames are
// loaded the current frame fills the dial; otherwise a clock-bodied
// character is drawn procedurally. Mouth opening follows MouthOpen.
type missMinutesFace struct{}

func (missMinutesFace) ShowsWallpaper() bool { return false }

func (missMinutesFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	dc.SetColor(minutesBg)
	dc.Clear()

	if c.Frame != nil && !c.Frame.Bounds().Empty() {
		b := c.Frame.Bounds()
		scale := math.Min(g.w/float64(b.Dx()), g.h/float64(b.Dy()))
		dc.Push()
		dc.Translate(g.cx, g.cy)
		dc.Scale(scale, scale)
		dc.DrawImageAnchored(c.Frame, 0, 0, 0.5, 0.5)
		dc.Pop()
		drawMouth(dc, g, g.cx, g.cy+g.h*0.08, c.MouthOpen)
	} else {
		drawCharacter(dc, g, c)
	}

	// Time with a drop shadow so it reads over any frame.
	size := g.h * 0.13
	y := g.h - g.h*0.12
	off := math.Max(1, 2*g.px)
	text(dc, fontSansBold, size, argb(160, 0, 0, 0), HHMM(t), g.cx+off, y+off)
	text(dc, fontSansBold, size, white, HHMM(t), g.cx, y)

	label := fmt.Sprintf("%s %d %s", DayLabel(t), t.Day(), MonthLabel(t))
	text(dc, fontSans, g.h*0.05, minutesCream, label, g.cx, g.h*0.09)
}

func drawCharacter(dc *gg.Context, g geom, c Context) {
	rad := c.Phase.Radians()
	bob := math.Sin(rad) * 6 * g.px
	cx, cy := g.cx, g.cy-g.h*0.04+bob
	r := g.radius * 0.52

	// Arms and legs
	limb := math.Max(2, 5*g.px)
	strokeLine(dc, minutesOrange, limb, cx-r*0.9, cy+r*0.2, cx-r*1.35, cy+r*0.05+bob)
	strokeLine(dc, minutesOrange, limb, cx+r*0.9, cy+r*0.2, cx+r*1.35, cy-r*0.25-bob)
	strokeLine(dc, minutesOrange, limb, cx-r*0.35, cy+r*0.9, cx-r*0.4, cy+r*1.3)
	strokeLine(dc, minutesOrange, limb, cx+r*0.35, cy+r*0.9, cx+r*0.4, cy+r*1.3)

	fillCircle(dc, minutesOrange, cx, cy, r)
	fillCircle(dc, minutesCream, cx, cy, r*0.86)

	// Her face is a clock; the hands run behind the features.
	t := c.Now
	hand(dc, minutesDark, math.Max(1, 3*g.px), cx, cy, HandAngle(HourFraction(t)), 0, r*0.4)
	hand(dc, minutesDark, math.Max(1, 2*g.px), cx, cy, HandAngle(MinuteFraction(t)), 0, r*0.62)
	for i := 0; i < 12; i++ {
		x, y := polar(cx, cy, r*0.76, HandAngle(float64(i)/12))
		fillCircle(dc, minutesOrange, x, y, math.Max(1, 2*g.px))
	}

	// Blink once per cycle.
	eyeH := r * 0.14
	if p := float64(c.Phase); p > 0.93 && p < 0.97 {
		eyeH = math.Max(1, g.px)
	}
	for _, dx := range []float64{-0.3, 0.3} {
		ex, ey := cx+r*dx, cy-r*0.18
		dc.SetColor(minutesDark)
		dc.DrawEllipse(ex, ey, r*0.09, eyeH)
		dc.Fill()
		fillCircle(dc, white, ex+r*0.03, ey-eyeH*0.4, math.Max(1, r*0.03))
	}

	drawMouth(dc, g, cx, cy+r*0.3, c.MouthOpen)
}

// drawMouth draws a smile that opens into an ellipse as open rises to 1.
func drawMouth(dc *gg.Context, g geom, x, y, open float64) {
	open = math.Max(0, math.Min(1, open))
	w := g.minDim * 0.09
	if open < 0.05 {
		dc.SetColor(minutesDark)
		dc.SetLineWidth(math.Max(1, 2.5*g.px))
		dc.DrawArc(x, y-w*0.4, w*0.7, math.Pi*0.2, math.Pi*0.8)
		dc.Stroke()
		return
	}
	dc.SetColor(minutesDark)
	dc.DrawEllipse(x, y, w*0.55, w*0.5*open)
	dc.Fill()
}
