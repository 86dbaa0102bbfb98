package face

import (
	"fmt"
	"math"

	"watchlauncher/glyph"

	"github.com/fogleman/gg"
)

var (
	nothingRed   = hex("#FF3B2F")
	nothingInk   = hex("#111111")
	nothingTrack = hex("#EEEEEE")
	nothingGrey  = hex("#888888")
	nothingDots  = hex("#CCCCCC")
	white        = hex("#FFFFFF")
	black        = hex("#000000")
)

// nothingFace is a white dial with dot-matrix digits, a pulsing red dot and
// a seconds progress bar.
type nothingFace struct{}

func (nothingFace) ShowsWallpaper() bool { return false }

func (nothingFace) Draw(dc *gg.Context, c Context) {
	g := newGeom(c)
	t := c.Now

	fillCircle(dc, white, g.cx, g.cy, g.radius)

	p := pulse(c.Phase.Radians(), 0.7, 0.3)
	fillCircle(dc, nothingRed, g.cx-g.w*0.28, g.cy-g.h*0.28, g.minDim*0.052*p)

	glyph.DotMatrix.Draw(dc, HHMM(t), g.cx, g.cy-g.h*0.18, glyph.Options{
		Unit:   g.minDim * 0.0175,
		Color:  nothingInk,
		Accent: nothingRed,
	})

	// Seconds progress
	barW := g.w * 0.55
	barH := math.Max(2, 4*g.px)
	bx, by := g.cx-barW/2, g.cy+g.h*0.22
	fillRect(dc, nothingTrack, bx, by, bx+barW, by+barH, barH/2)
	if frac := SecondsFraction(t); frac > 0 {
		fillRect(dc, nothingRed, bx, by, bx+barW*frac, by+barH, barH/2)
	}

	label := fmt.Sprintf("%s  %d %s", DayLabel(t), t.Day(), MonthLabel(t))
	text(dc, fontMono, g.h*0.075, nothingGrey, label, g.cx, g.cy+g.h*0.36)

	spacing := g.w * 0.055
	for i := -1; i <= 1; i++ {
		col := nothingDots
		if i == 0 {
			col = nothingRed
		}
		fillCircle(dc, col, g.cx+float64(i)*spacing, g.cy+g.h*0.42, g.minDim*0.018)
	}
}
