package colour

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c colorful.Color) float64 {
	c = c.Clamped()
	return 0.2126*gammaCorrect(c.R) + 0.7152*gammaCorrect(c.G) + 0.0722*gammaCorrect(c.B)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// Meets WCAG AA standard for normal text at 4.5:1, large text at 3:1.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 colorful.Color) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// LightnessRatio returns the WCAG contrast ratio of two achromatic OKLCH
// lightness values.
func LightnessRatio(l1, l2 float64) float64 {
	return ContrastRatio(Grey(l1), Grey(l2))
}

// Grey returns the achromatic colour of OKLCH lightness l.
func Grey(l float64) colorful.Color {
	return colorful.OkLch(clamp01(l), 0, 0).Clamped()
}
