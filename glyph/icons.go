package glyph

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Icon is an 8x8 pixel-art app icon. The upper half of the grid is drawn in
// Foreground and the lower half in Accent.
type Icon struct {
	Grid       Glyph
	Background color.Color
	Foreground color.Color
	Accent     color.Color
}

// IconGrid is the cell geometry shared by all icons.
var IconGrid = &Font{Name: "icons", Rows: 8, Cols: 8}

func validateIcon(pkg string, icon Icon) error {
	f := *IconGrid
	f.Glyphs = map[rune]Glyph{'i': icon.Grid}
	if err := Validate(&f, "i"); err != nil {
		return fmt.Errorf("icon %s: %w", pkg, err)
	}
	return nil
}

func rgb(hex uint32) color.Color {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

var (
	phoneGrid   = Glyph{0b01100000, 0b11110000, 0b11110010, 0b01100110, 0b00001111, 0b00011111, 0b00011110, 0b00001100}
	messageGrid = Glyph{0b11111110, 0b10000010, 0b10110010, 0b10111010, 0b10110010, 0b10000010, 0b11111100, 0b00000000}
	white       = rgb(0xFFFFFF)
)

var icons = map[string]Icon{
	"com.android.settings": {
		Grid:       Glyph{0b00011000, 0b01111110, 0b11000011, 0b10100101, 0b10100101, 0b11000011, 0b01111110, 0b00011000},
		Background: rgb(0x1A1A1A), Foreground: white,
	},
	"com.android.phone":                 {Grid: phoneGrid, Background: rgb(0x2E7D32), Foreground: white},
	"com.google.android.dialer":         {Grid: phoneGrid, Background: rgb(0x2E7D32), Foreground: white},
	"com.google.android.apps.messaging": {Grid: messageGrid, Background: rgb(0x1565C0), Foreground: white},
	"com.android.mms":                   {Grid: messageGrid, Background: rgb(0x1565C0), Foreground: white},
	"com.google.android.apps.maps": {
		Grid:       Glyph{0b00111100, 0b01111110, 0b11011011, 0b11011011, 0b01111110, 0b00111100, 0b00011000, 0b00011000},
		Background: rgb(0xD32F2F), Foreground: white,
	},
	"com.google.android.apps.fitness": {
		Grid:       Glyph{0b01100110, 0b11111111, 0b11111111, 0b01111110, 0b00111100, 0b00011000, 0b00000000, 0b00000000},
		Background: rgb(0xE91E63), Foreground: white,
	},
	"com.android.vending": {
		Grid:       Glyph{0b01000000, 0b01100000, 0b01110000, 0b01111100, 0b01111100, 0b01110000, 0b01100000, 0b01000000},
		Background: rgb(0x0288D1), Foreground: white,
	},
	"com.android.camera2": {
		Grid:       Glyph{0b00111100, 0b01111110, 0b11100111, 0b11011011, 0b11011011, 0b11100111, 0b01111110, 0b00111100},
		Background: rgb(0x37474F), Foreground: white,
	},
	"com.google.android.deskclock": {
		Grid:       Glyph{0b00111100, 0b01000010, 0b10010001, 0b10011001, 0b10000001, 0b01000010, 0b00111100, 0b00000000},
		Background: rgb(0x4A148C), Foreground: white,
	},
	"com.google.android.wearable.app": {
		Grid:       Glyph{0b00111100, 0b01000010, 0b10100101, 0b10111101, 0b10111101, 0b10100101, 0b01000010, 0b00111100},
		Background: rgb(0x212121), Foreground: rgb(0xFF3B2F),
	},
	"com.google.android.apps.youtube.music": {
		Grid:       Glyph{0b00111100, 0b01111110, 0b11011011, 0b11100111, 0b01111110, 0b00111100, 0b00011000, 0b00000000},
		Background: rgb(0xFF0000), Foreground: white,
	},
	"com.android.calculator2": {
		Grid:       Glyph{0b11111111, 0b10000001, 0b10110101, 0b10000001, 0b10001001, 0b10110101, 0b10000001, 0b11111111},
		Background: rgb(0x263238), Foreground: white,
	},
	"com.android.chrome": {
		Grid:       Glyph{0b00111100, 0b01011010, 0b10111101, 0b11000111, 0b11000111, 0b10111101, 0b01011010, 0b00111100},
		Background: rgb(0xF57C00), Foreground: white,
	},
	"com.android.contacts": {
		Grid:       Glyph{0b00111100, 0b00111100, 0b00111100, 0b01111110, 0b11111111, 0b11111111, 0b10000001, 0b00000000},
		Background: rgb(0x00695C), Foreground: white,
	},
}

// LookupIcon returns the pixel icon registered for an app id.
func LookupIcon(pkg string) (Icon, bool) {
	icon, ok := icons[pkg]
	return icon, ok
}

// RenderIcon rasterises the icon for pkg into a size x size image. It
// reports false for unknown apps so the caller can fall back to the app's
// own icon.
func RenderIcon(pkg string, size int) (image.Image, bool) {
	icon, ok := icons[pkg]
	if !ok || size <= 0 {
		return nil, false
	}
	return DrawIcon(icon, size), true
}

// DrawIcon rasterises icon at the given size.
func DrawIcon(icon Icon, size int) image.Image {
	dc := gg.NewContext(size, size)
	s := float64(size)
	rows, cols := IconGrid.Rows, IconGrid.Cols
	dotW := s / float64(cols)
	dotH := s / float64(rows)
	radius := math.Min(dotW, dotH) * 0.42

	dc.SetColor(icon.Background)
	dc.DrawRoundedRectangle(0, 0, s, s, s*0.2)
	dc.Fill()

	accent := icon.Accent
	if accent == nil {
		accent = icon.Foreground
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !IconGrid.Set(icon.Grid, r, c) {
				continue
			}
			if r < rows/2 {
				dc.SetColor(icon.Foreground)
			} else {
				dc.SetColor(accent)
			}
			dc.DrawCircle(float64(c)*dotW+dotW/2, float64(r)*dotH+dotH/2, radius)
			dc.Fill()
		}
	}
	return dc.Image()
}
