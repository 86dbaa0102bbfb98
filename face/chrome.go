package face

import (
	"image/color"

	"github.com/fogleman/gg"
)

// Text draws s for screens outside the face catalog with horizontal anchor
// ax (0 left, 0.5 centre, 1 right) and its baseline at y. It shares the
// face font cache, so it takes the render lock.
func Text(dc *gg.Context, s string, x, y, size float64, bold bool, c color.Color, ax float64) {
	renderMu.Lock()
	defer renderMu.Unlock()
	kind := fontSans
	if bold {
		kind = fontSansBold
	}
	textAnchored(dc, kind, size, c, s, x, y, ax)
}

// MeasureText returns the advance width of s at size.
func MeasureText(s string, size float64, bold bool) float64 {
	renderMu.Lock()
	defer renderMu.Unlock()
	kind := fontSans
	if bold {
		kind = fontSansBold
	}
	dc := gg.NewContext(1, 1)
	setFont(dc, kind, size)
	w, _ := dc.MeasureString(s)
	return w
}

// Pill draws a rounded label centred on (cx, cy) at opacity alpha. Nothing
// is drawn once alpha reaches zero.
func Pill(dc *gg.Context, s string, cx, cy, size, alpha float64) {
	if alpha <= 0 || s == "" {
		return
	}
	w := MeasureText(s, size, true)
	padX, padY := size*0.8, size*0.45
	fillRect(dc, fade(hex("#CC000000"), alpha), cx-w/2-padX, cy-size/2-padY, cx+w/2+padX, cy+size/2+padY, size)
	Text(dc, s, cx, cy+size*0.36, size, true, fade(white, alpha), 0.5)
}
