package solver

import "math"

// Default contrast targets (Lc).
const (
	DefaultTextContrast     = 75
	DefaultBorderContrast   = 15
	DefaultBorderSeparation = 30
)

// Targets are the contrasts foreground and border values are solved for.
type Targets struct {
	// Text is the contrast of text against its surface.
	Text float64
	// Border is the contrast of the border against its surface.
	Border float64
	// BorderSeparation is the minimum contrast kept between the border and
	// the text.
	BorderSeparation float64
}

// DefaultTargets returns the default contrast targets.
func DefaultTargets() Targets {
	return Targets{
		Text:             DefaultTextContrast,
		Border:           DefaultBorderContrast,
		BorderSeparation: DefaultBorderSeparation,
	}
}

// SolveForeground derives the text lightness and border alpha for a surface
// of lightness bg.
func SolveForeground(bg float64, ctx Context, hueShift float64, targets Targets, epsilon float64, maxIterations int) ModeSpec {
	fg := solveText(bg, ctx, targets.Text, epsilon, maxIterations)

	return ModeSpec{
		Background:  bg,
		Foreground:  fg,
		HueShift:    hueShift,
		BorderAlpha: solveBorderAlpha(bg, fg, targets, epsilon, maxIterations),
	}
}

// solveText searches between bg and the text extreme of ctx.
func solveText(bg float64, ctx Context, target, epsilon float64, maxIterations int) float64 {
	against := func(fg float64) float64 { return Contrast(fg, bg) }

	var fg float64
	if ctx.DarkText() {
		fg = BinarySearch(0, bg, against, target, epsilon, maxIterations)
	} else {
		fg = BinarySearch(bg, 1, against, target, epsilon, maxIterations)
	}
	return RoundLightness(fg)
}

// solveBorderAlpha solves the alpha of fg over bg that reaches the border
// target against bg, capped so the border still separates from fg.
func solveBorderAlpha(bg, fg float64, targets Targets, epsilon float64, maxIterations int) float64 {
	blend := func(a float64) float64 { return bg + a*(fg-bg) }

	// Contrast against the surface grows with alpha.
	alpha := BinarySearch(0, 1, func(a float64) float64 {
		return Contrast(blend(a), bg)
	}, targets.Border, epsilon, maxIterations)

	// Text too close to its surface leaves no room for separation.
	if Contrast(fg, bg) <= targets.BorderSeparation+epsilon {
		return RoundLightness(alpha)
	}

	// Contrast between border and text shrinks with alpha.
	ceiling := BinarySearch(0, 1, func(a float64) float64 {
		return Contrast(fg, blend(a))
	}, targets.BorderSeparation, epsilon, maxIterations)

	return RoundLightness(math.Min(alpha, ceiling))
}
