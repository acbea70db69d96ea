package lights

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"helix-lamp/genome"
)

// baseColors is the fixed nucleotide color table. One color per base;
// complements stay clearly apart so both strands of a pair read as
// different colors.
var baseColors = map[genome.Base]Color{
	genome.BaseT: {R: 255, G: 0, B: 0},
	genome.BaseC: {R: 0, G: 0, B: 255},
	genome.BaseA: {R: 5, G: 152, B: 5},
	genome.BaseG: {R: 209, G: 103, B: 6},
}

// BaseColor returns the display color for a base. Ambiguity codes and
// indel padding render unlit.
func BaseColor(b genome.Base) Color {
	return baseColors[b]
}

// ComplementColor returns the color of the base's Watson-Crick partner,
// shown on the sculpture's second strand.
func ComplementColor(b genome.Base) Color {
	c, ok := b.Complement()
	if !ok {
		return ColorOff
	}
	return baseColors[c]
}

// Dim scales a color's brightness by factor in (0, 1], keeping hue and
// saturation. Loci matching the reference are shown dimmed so variants
// stand out.
func Dim(c Color, factor float64) Color {
	if factor >= 1 {
		return c
	}
	if factor <= 0 {
		return ColorOff
	}
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, v := cf.Hsv()
	r, g, b := colorful.Hsv(h, s, v*factor).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
