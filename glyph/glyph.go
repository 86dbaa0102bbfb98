// Package glyph renders text as a grid of dots or blocks from a bitmap font
// table. All sizes derive from a caller supplied base unit, so the same call
// renders correctly at any surface size.
package glyph

import (
	"fmt"
	"image/color"
	"unicode/utf8"

	"github.com/fogleman/gg"
)

// Glyph is one character cell. Each entry is a row bitmask where bit
// Cols-1 is the leftmost column.
type Glyph []uint8

// Font is a fixed-size bitmap font.
type Font struct {
	Name   string
	Rows   int
	Cols   int
	Glyphs map[rune]Glyph
}

// Lookup returns the glyph for r, or a blank glyph and false when the font
// does not cover r.
func (f *Font) Lookup(r rune) (Glyph, bool) {
	g, ok := f.Glyphs[r]
	if !ok {
		return make(Glyph, f.Rows), false
	}
	return g, true
}

// Set reports whether the cell at (row, col) is filled.
func (f *Font) Set(g Glyph, row, col int) bool {
	if row < 0 || row >= len(g) || col < 0 || col >= f.Cols {
		return false
	}
	return g[row]&(1<<uint(f.Cols-1-col)) != 0
}

// Filled counts the filled cells of r. Unsupported runes count as zero.
func (f *Font) Filled(r rune) int {
	g, _ := f.Lookup(r)
	n := 0
	for row := range g {
		for col := 0; col < f.Cols; col++ {
			if f.Set(g, row, col) {
				n++
			}
		}
	}
	return n
}

// Validate checks the table shape and that every rune in required is
// present.
func Validate(f *Font, required string) error {
	if f.Rows <= 0 || f.Cols <= 0 || f.Cols > 8 {
		return fmt.Errorf("font %s: invalid grid %dx%d", f.Name, f.Cols, f.Rows)
	}
	for r, g := range f.Glyphs {
		if len(g) != f.Rows {
			return fmt.Errorf("font %s: glyph %q has %d rows, want %d", f.Name, r, len(g), f.Rows)
		}
		for i, row := range g {
			if f.Cols < 8 && row>>uint(f.Cols) != 0 {
				return fmt.Errorf("font %s: glyph %q row %d is wider than %d columns", f.Name, r, i, f.Cols)
			}
		}
	}
	for _, r := range required {
		if _, ok := f.Glyphs[r]; !ok {
			return fmt.Errorf("font %s: missing glyph %q", f.Name, r)
		}
	}
	return nil
}

// Shape selects the primitive drawn for each filled cell.
type Shape int

const (
	ShapeDot Shape = iota
	ShapeBlock
)

// Options configures Draw. Unit is the dot diameter (or block side); every
// other distance is derived from it.
type Options struct {
	Unit   float64
	Shape  Shape
	Color  color.Color
	Accent color.Color // optional; used for rows >= AccentRow
	// AccentRow is the first row drawn in Accent. Zero means the default
	// band starting at row 4.
	AccentRow int
}

const (
	DotGapRatio  = 0.55
	CharGapRatio = 1.0
	defaultBand  = 4
)

// Metrics describes the layout of a string.
type Metrics struct {
	Chars     int
	Unit      float64
	DotGap    float64
	CellWidth float64
	CharGap   float64
	Width     float64
	Height    float64
}

// Layout computes the closed-form geometry of text at the given unit:
// width = chars*cellWidth + (chars-1)*charGap.
func (f *Font) Layout(text string, unit float64) Metrics {
	if unit < 0 {
		unit = 0
	}
	n := utf8.RuneCountInString(text)
	m := Metrics{
		Chars:  n,
		Unit:   unit,
		DotGap: unit * DotGapRatio,
	}
	m.CellWidth = float64(f.Cols)*unit + float64(f.Cols-1)*m.DotGap
	m.CharGap = unit * CharGapRatio
	m.Height = float64(f.Rows)*unit + float64(f.Rows-1)*m.DotGap
	if n > 0 {
		m.Width = float64(n)*m.CellWidth + float64(n-1)*m.CharGap
	}
	return m
}

// Result is returned by Draw.
type Result struct {
	Metrics
	Dots        int
	Unsupported int
}

// Draw renders text centred horizontally on cx with its top edge at cy.
// Runes without a glyph are drawn as blank cells.
func (f *Font) Draw(dc *gg.Context, text string, cx, cy float64, opts Options) Result {
	m := f.Layout(text, opts.Unit)
	res := Result{Metrics: m}
	if m.Chars == 0 || m.Unit <= 0 {
		return res
	}

	primary := opts.Color
	if primary == nil {
		primary = color.White
	}
	accent := opts.Accent
	if accent == nil {
		accent = primary
	}
	band := opts.AccentRow
	if band <= 0 {
		band = defaultBand
	}

	pitch := m.Unit + m.DotGap
	x := cx - m.Width/2
	for _, ch := range text {
		g, ok := f.Lookup(ch)
		if !ok {
			res.Unsupported++
		}
		for row := 0; row < f.Rows; row++ {
			for col := 0; col < f.Cols; col++ {
				if !f.Set(g, row, col) {
					continue
				}
				if row < band {
					dc.SetColor(primary)
				} else {
					dc.SetColor(accent)
				}
				px := x + float64(col)*pitch
				py := cy + float64(row)*pitch
				switch opts.Shape {
				case ShapeBlock:
					dc.DrawRectangle(px, py, m.Unit, m.Unit)
				default:
					dc.DrawCircle(px+m.Unit/2, py+m.Unit/2, m.Unit/2)
				}
				dc.Fill()
				res.Dots++
			}
		}
		x += m.CellWidth + m.CharGap
	}
	return res
}
