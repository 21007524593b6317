// Package colour parses colour literals and converts between sRGB and OKLCH.
package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// OKLCH is a colour in the OKLCH space: lightness (0-1), chroma (0-~0.4) and
// hue in degrees (0-360).
type OKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

// String returns the CSS oklch() form of the colour.
func (o OKLCH) String() string {
	return fmt.Sprintf("oklch(%.4f %.4f %.2f)", o.L, o.C, o.H)
}

// Hex returns the nearest in-gamut sRGB hex value.
func (o OKLCH) Hex() string {
	return colorful.OkLch(o.L, o.C, normaliseHue(o.H)).Clamped().Hex()
}

// Converter turns a colour literal into OKLCH.
type Converter interface {
	Convert(literal string) (OKLCH, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(literal string) (OKLCH, error)

// Convert calls f(literal).
func (f ConverterFunc) Convert(literal string) (OKLCH, error) {
	return f(literal)
}

// TableConverter resolves literals from a fixed table. Lookups ignore case
// and surrounding whitespace.
type TableConverter map[string]OKLCH

// Convert looks literal up in the table.
func (t TableConverter) Convert(literal string) (OKLCH, error) {
	key := strings.ToLower(strings.TrimSpace(literal))
	for k, v := range t {
		if strings.ToLower(strings.TrimSpace(k)) == key {
			return v, nil
		}
	}
	return OKLCH{}, fmt.Errorf("unknown colour %q", literal)
}

// CSSConverter parses CSS colour literals.
type CSSConverter struct{}

// NewConverter returns the default Converter, which accepts hex, rgb(),
// hsl(), oklch() and oklab() literals.
func NewConverter() Converter {
	return CSSConverter{}
}

// Convert parses literal and converts it to OKLCH.
func (CSSConverter) Convert(literal string) (OKLCH, error) {
	value := strings.ToLower(strings.TrimSpace(literal))
	if value == "" {
		return OKLCH{}, fmt.Errorf("empty colour")
	}

	// oklch is already in the target space; keep its values as written.
	o, ok, err := parseOKLCH(value)
	if err != nil {
		return OKLCH{}, fmt.Errorf("invalid colour %q: %w", literal, err)
	}
	if ok {
		return o, nil
	}

	c, err := Parse(value)
	if err != nil {
		return OKLCH{}, err
	}
	return FromColorful(c), nil
}

// FromColorful converts a go-colorful colour to OKLCH.
func FromColorful(c colorful.Color) OKLCH {
	l, ch, h := c.OkLch()
	return OKLCH{L: l, C: ch, H: normaliseHue(h)}
}

// Rotate returns o with its hue rotated by degrees.
func (o OKLCH) Rotate(degrees float64) OKLCH {
	o.H = normaliseHue(o.H + degrees)
	return o
}

// WithLightness returns o with lightness l.
func (o OKLCH) WithLightness(l float64) OKLCH {
	o.L = l
	return o
}

// normaliseHue wraps h into [0, 360). Non-finite hues become 0.
func normaliseHue(h float64) float64 {
	if math.IsInf(h, 0) || math.IsNaN(h) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
