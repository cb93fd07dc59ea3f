package esincss

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// Color is an sRGB color with alpha. All channels are in the 0..1 range.
// It prints as a CSS color and comes with a few manipulation helpers.
type Color struct {
	R, G, B, A float64
}

// bareHexRe matches hex digits without the leading '#', which CSS does not
// accept as a color.
var bareHexRe = regexp.MustCompile(`(?i)^[0-9a-f]{3,8}$`)

var errBareHex = errors.New("hex colors need a leading '#'")

// ParseColor parses any CSS color string (#hex, rgb(), hsl(), named colors, ...).
func ParseColor(s string) (Color, error) {
	c, err := parseCSSColor(strings.TrimSpace(s))
	if err != nil {
		return Color{}, fmt.Errorf("unsupported color format %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}, nil
}

func parseCSSColor(s string) (csscolorparser.Color, error) {
	if bareHexRe.MatchString(s) {
		return csscolorparser.Color{}, errBareHex
	}
	return csscolorparser.Parse(s)
}

// MustColor is like ParseColor but panics on invalid input.
// Intended for package-level color tokens.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB creates an opaque color from 0..255 channel values.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 1)
}

// RGBA creates a color from 0..255 channel values and a 0..1 alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: clamp01(a)}
}

// HSL creates an opaque color from a hue in degrees and 0..1 saturation and lightness.
func HSL(h, s, l float64) Color {
	return fromColorful(colorful.Hsl(h, clamp01(s), clamp01(l)), 1)
}

// Lighten increases lightness by the given ratio of its current value.
func (c Color) Lighten(ratio float64) Color {
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, clamp01(l+l*ratio)), c.A)
}

// Darken decreases lightness by the given ratio of its current value.
func (c Color) Darken(ratio float64) Color {
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, s, clamp01(l-l*ratio)), c.A)
}

// Saturate increases saturation by the given ratio of its current value.
func (c Color) Saturate(ratio float64) Color {
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, clamp01(s+s*ratio), l), c.A)
}

// Desaturate decreases saturation by the given ratio of its current value.
func (c Color) Desaturate(ratio float64) Color {
	h, s, l := c.colorful().Hsl()
	return fromColorful(colorful.Hsl(h, clamp01(s-s*ratio), l), c.A)
}

// Fade decreases opacity by the given ratio of its current value.
func (c Color) Fade(ratio float64) Color {
	c.A = clamp01(c.A - c.A*ratio)
	return c
}

// Alpha returns the color with its opacity set to a.
func (c Color) Alpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Mix blends c towards other in CIE-L*a*b* space. t=0 is c, t=1 is other.
func (c Color) Mix(other Color, t float64) Color {
	t = clamp01(t)
	mixed := c.colorful().BlendLab(other.colorful(), t)
	return fromColorful(mixed, c.A+(other.A-c.A)*t)
}

// Hex prints the color as #rrggbb, or #rrggbbaa when it is not fully opaque.
func (c Color) Hex() string {
	return csscolorparser.Color{R: c.R, G: c.G, B: c.B, A: c.A}.HexString()
}

// String prints the color in the most compact lossless CSS form.
func (c Color) String() string {
	if c.A >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", channel(c.R), channel(c.G), channel(c.B), formatNumber(math.Round(c.A*1000)/1000))
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func fromColorful(cf colorful.Color, alpha float64) Color {
	cf = cf.Clamped()
	return Color{R: cf.R, G: cf.G, B: cf.B, A: clamp01(alpha)}
}

func channel(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
