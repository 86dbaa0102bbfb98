package face

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"time"

	"github.com/fogleman/gg"
)

// Days is indexed by time.Weekday, so Sunday is 0.
var Days = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Months is indexed by time.Month minus one.
var Months = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

func DayLabel(t time.Time) string {
	return Days[int(t.Weekday())%7]
}

func MonthLabel(t time.Time) string {
	return Months[(int(t.Month())+11)%12]
}

// HHMM formats the 24-hour time with zero padded hours.
func HHMM(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Hour12 returns the 12-hour clock hour (12, 1 .. 11) and the AM/PM badge.
func Hour12(t time.Time) (int, string) {
	ampm := "AM"
	if t.Hour() >= 12 {
		ampm = "PM"
	}
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h, ampm
}

// Seconds returns the seconds of the minute including the sub-second part.
func Seconds(t time.Time) float64 {
	return float64(t.Second()) + float64(t.Nanosecond())/1e9
}

// SecondsFraction is the smooth progress through the current minute.
func SecondsFraction(t time.Time) float64 {
	return Seconds(t) / 60
}

// MinuteFraction is the minute hand position; it moves in whole seconds.
func MinuteFraction(t time.Time) float64 {
	return (float64(t.Minute()) + float64(t.Second())/60) / 60
}

// HourFraction is the hour hand position on a 12-hour dial.
func HourFraction(t time.Time) float64 {
	return (float64(t.Hour()%12) + float64(t.Minute())/60) / 12
}

// HandAngle maps a dial fraction to radians with 0 pointing up and angles
// growing clockwise in screen space.
func HandAngle(frac float64) float64 {
	return frac*2*math.Pi - math.Pi/2
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// geom holds frame-derived measurements. px scales constants tuned for a
// 300px dial to the actual surface.
type geom struct {
	w, h, cx, cy float64
	minDim       float64
	radius       float64
	px           float64
}

func newGeom(c Context) geom {
	w, h := float64(c.Width), float64(c.Height)
	m := math.Min(w, h)
	return geom{
		w: w, h: h,
		cx: w / 2, cy: h / 2,
		minDim: m,
		radius: m / 2,
		px:     m / 300,
	}
}

// hex parses #RRGGBB or #AARRGGBB.
func hex(s string) color.NRGBA {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		panic(fmt.Sprintf("bad colour literal %q", s))
	}
	switch len(s) {
	case 6:
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
	case 8:
		return color.NRGBA{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
	}
	panic(fmt.Sprintf("bad colour literal %q", s))
}

// fade scales the alpha of c by a in [0,1].
func fade(c color.NRGBA, a float64) color.NRGBA {
	a = math.Max(0, math.Min(1, a))
	c.A = uint8(math.Round(float64(c.A) * a))
	return c
}

func argb(a, r, g, b int) color.NRGBA {
	clamp := func(v int) uint8 { return uint8(max(0, min(255, v))) }
	return color.NRGBA{R: clamp(r), G: clamp(g), B: clamp(b), A: clamp(a)}
}

func fillRect(dc *gg.Context, c color.Color, x0, y0, x1, y1, radius float64) {
	dc.SetColor(c)
	if radius > 0 {
		dc.DrawRoundedRectangle(x0, y0, x1-x0, y1-y0, radius)
	} else {
		dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	}
	dc.Fill()
}

func fillCircle(dc *gg.Context, c color.Color, x, y, r float64) {
	dc.SetColor(c)
	dc.DrawCircle(x, y, r)
	dc.Fill()
}

func strokeLine(dc *gg.Context, c color.Color, width float64, x0, y0, x1, y1 float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.SetLineCap(gg.LineCapRound)
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
}

// hand draws a dial hand from tail (negative length behind the centre) to
// length along angle.
func hand(dc *gg.Context, c color.Color, width, cx, cy, angle, tail, length float64) {
	x0, y0 := polar(cx, cy, -tail, angle)
	x1, y1 := polar(cx, cy, length, angle)
	strokeLine(dc, c, width, x0, y0, x1, y1)
}

// text draws s centred on x with its baseline at y.
func text(dc *gg.Context, kind fontKind, size float64, c color.Color, s string, x, y float64) {
	textAnchored(dc, kind, size, c, s, x, y, 0.5)
}

// textAnchored draws s with horizontal anchor ax (0 left, 0.5 centre, 1
// right) and its baseline at y.
func textAnchored(dc *gg.Context, kind fontKind, size float64, c color.Color, s string, x, y, ax float64) {
	setFont(dc, kind, size)
	dc.SetColor(c)
	dc.DrawStringAnchored(s, x, y, ax, 0)
}

func pulse(phaseRad, base, depth float64) float64 {
	return base + depth*math.Sin(phaseRad)
}
