package style

import (
	"fmt"
	"strings"
)

// Style identifies one watch face. The order is significant: the host cycles
// through styles in declaration order.
type Style int

const (
	NothingDot Style = iota
	BoldDigital
	NeonMinimal
	RetroOrange
	CleanWhite
	WaveSeiko
	PipBoy
	JamesBond
	CasioRetro
	MissMinutes
)

// Count is the number of styles in the catalog.
const Count = int(MissMinutes) + 1

var names = [Count]struct {
	ident   string
	display string
}{
	{"nothing_dot", "Nothing OS"},
	{"bold_digital", "Bold Digital"},
	{"neon_minimal", "Neon"},
	{"retro_orange", "Retro"},
	{"clean_white", "Analog"},
	{"wave_seiko", "Seiko Wave"},
	{"pip_boy", "Pip-Boy 3000"},
	{"james_bond", "007 Edition"},
	{"casio_retro", "CASIO G-Shock"},
	{"miss_minutes", "Miss Minutes"},
}

// All returns every style in catalog order.
func All() []Style {
	out := make([]Style, Count)
	for i := range out {
		out[i] = Style(i)
	}
	return out
}

func (s Style) Valid() bool {
	return s >= 0 && int(s) < Count
}

// Index returns the catalog position of s.
func (s Style) Index() int {
	return int(s)
}

// DisplayName is the human readable name shown in the face label.
func (s Style) DisplayName() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return names[s].display
}

// Ident is the stable identifier used in config files and flags.
func (s Style) Ident() string {
	if !s.Valid() {
		return fmt.Sprintf("style_%d", int(s))
	}
	return names[s].ident
}

func (s Style) String() string {
	return s.DisplayName()
}

// Parse accepts either an identifier ("pip_boy") or a display name
// ("Pip-Boy 3000"), ignoring case.
func Parse(name string) (Style, error) {
	name = strings.TrimSpace(name)
	for i, n := range names {
		if strings.EqualFold(name, n.ident) || strings.EqualFold(name, n.display) {
			return Style(i), nil
		}
	}
	return 0, fmt.Errorf("unknown watch face style %q", name)
}

// FromIndex converts a catalog position into a style, reporting false when
// the index is out of range.
func FromIndex(i int) (Style, bool) {
	s := Style(i)
	return s, s.Valid()
}
