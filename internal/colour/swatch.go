package colour

// SwatchChroma caps the chroma of tinted swatches so that light and dark
// surfaces stay close to neutral.
const SwatchChroma = 0.03

// Swatch renders a solved lightness as a colour, tinted toward base when one
// is given and rotated by hueShift degrees.
func Swatch(lightness, hueShift float64, base *OKLCH) OKLCH {
	if base == nil {
		return OKLCH{L: clamp01(lightness)}
	}

	c := base.WithLightness(clamp01(lightness))
	if c.C > SwatchChroma {
		c.C = SwatchChroma
	}
	return c.Rotate(hueShift)
}

// Alpha composites a foreground lightness over a background lightness.
func Alpha(fg, bg, alpha float64) float64 {
	return bg + clamp01(alpha)*(fg-bg)
}
