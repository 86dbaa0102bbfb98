package face

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

type fontKind int

const (
	fontSans fontKind = iota
	fontSansBold
	fontMono
	fontMonoBold
)

var fontSources = map[fontKind][]byte{
	fontSans:     goregular.TTF,
	fontSansBold: gobold.TTF,
	fontMono:     gomono.TTF,
	fontMonoBold: gomonobold.TTF,
}

var parsedFonts = map[fontKind]*truetype.Font{}

type faceKey struct {
	kind fontKind
	size int
}

// Guarded by renderMu.
var faceCache = map[faceKey]font.Face{}

func init() {
	for kind, src := range fontSources {
		f, err := truetype.Parse(src)
		if err != nil {
			lg.Errorf("parse font %d: %v, falling back to bitmap font", kind, err)
			continue
		}
		parsedFonts[kind] = f
	}
}

// fontFace returns a face of roughly size pixels. Sizes are rounded so a
// resize does not grow the cache without bound.
func fontFace(kind fontKind, size float64) font.Face {
	px := int(math.Round(size))
	if px < 6 {
		px = 6
	}
	key := faceKey{kind, px}
	if f, ok := faceCache[key]; ok {
		return f
	}

	var face font.Face = basicfont.Face7x13
	if tt, ok := parsedFonts[kind]; ok {
		face = truetype.NewFace(tt, &truetype.Options{
			Size:    float64(px),
			Hinting: font.HintingFull,
		})
	}
	faceCache[key] = face
	return face
}

func setFont(dc *gg.Context, kind fontKind, size float64) {
	dc.SetFontFace(fontFace(kind, size))
}
