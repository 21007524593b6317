package solver

import (
	"fmt"
	"math"
)

// Epsilon is the contrast tolerance used throughout the solver.
const Epsilon = 0.005

// LightnessPrecision is the number of decimal digits solved lightness values
// are rounded to.
const LightnessPrecision = 4

// Perceptual contrast constants (SAPC/APCA 0.0.98G).
const (
	blackThreshold = 0.022
	blackClamp     = 1.414
	deltaYMin      = 0.0005

	normBG  = 0.56
	normTXT = 0.57
	revBG   = 0.65
	revTXT  = 0.62

	scale     = 1.14
	lowOffset = 0.027
	lowClip   = 0.1
)

// Polarity selects a family of surfaces.
type Polarity string

// Supported polarities.
const (
	PolarityPage     Polarity = "page"
	PolarityInverted Polarity = "inverted"
)

// Polarities lists polarities in solve order.
var Polarities = []Polarity{PolarityPage, PolarityInverted}

// Valid reports whether p is a known polarity.
func (p Polarity) Valid() bool {
	return p == PolarityPage || p == PolarityInverted
}

// Mode is an appearance mode.
type Mode string

// Supported modes.
const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists modes in solve order.
var Modes = []Mode{ModeLight, ModeDark}

// Context identifies the polarity/mode pairing a contrast is evaluated for.
// Page surfaces in light mode and inverted surfaces in dark mode carry dark
// text; the other two pairings carry light text.
type Context struct {
	Polarity Polarity
	Mode     Mode
}

// String returns "polarity/mode".
func (c Context) String() string {
	return fmt.Sprintf("%s/%s", c.Polarity, c.Mode)
}

// DarkText reports whether text on surfaces of this context is darker than
// the surface.
func (c Context) DarkText() bool {
	return (c.Polarity == PolarityPage) == (c.Mode == ModeLight)
}

// ReferenceText returns the lightness of the extreme text colour the
// context's backgrounds are measured against.
func (c Context) ReferenceText() float64 {
	if c.DarkText() {
		return 0
	}
	return 1
}

// BackgroundContrast returns the contrast of the reference text against bg.
func (c Context) BackgroundContrast(bg float64) float64 {
	return Contrast(c.ReferenceText(), bg)
}

// Contrast returns the unsigned perceptual contrast (Lc) of foreground
// lightness fg over background lightness bg. Both are OKLCH lightness in
// [0,1]. Dark-on-light and light-on-dark use different exponents, so the
// score is not symmetric in its arguments.
func Contrast(fg, bg float64) float64 {
	txtY := softClamp(toY(fg))
	bgY := softClamp(toY(bg))

	if math.Abs(bgY-txtY) < deltaYMin {
		return 0
	}

	var out float64
	if bgY > txtY {
		sapc := (math.Pow(bgY, normBG) - math.Pow(txtY, normTXT)) * scale
		if sapc < lowClip {
			return 0
		}
		out = sapc - lowOffset
	} else {
		sapc := (math.Pow(bgY, revBG) - math.Pow(txtY, revTXT)) * scale
		if sapc > -lowClip {
			return 0
		}
		out = sapc + lowOffset
	}

	return math.Abs(out * 100)
}

// toY maps OKLCH lightness to relative luminance. For achromatic colours
// OKLab lightness is the cube root of luminance.
func toY(l float64) float64 {
	l = clamp(l, 0, 1)
	return l * l * l
}

func softClamp(y float64) float64 {
	if y >= blackThreshold {
		return y
	}
	return y + math.Pow(blackThreshold-y, blackClamp)
}

// RoundLightness rounds a lightness to LightnessPrecision decimal digits.
func RoundLightness(l float64) float64 {
	p := math.Pow(10, LightnessPrecision)
	return math.Round(l*p) / p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
