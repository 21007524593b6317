package solver

// HueShiftEpsilon is the tolerance used when inverting the hue-shift curve.
const HueShiftEpsilon = 0.001

// HueShifter maps lightness to hue rotation in degrees.
type HueShifter struct {
	cfg           *HueShift
	maxIterations int
}

// NewHueShifter returns a shifter for cfg. A nil cfg shifts nothing.
func NewHueShifter(cfg *HueShift) HueShifter {
	return HueShifter{cfg: cfg, maxIterations: DefaultMaxIterations}
}

// Shift returns the hue rotation for lightness l.
func (h HueShifter) Shift(l float64) float64 {
	if h.cfg == nil {
		return 0
	}

	c := h.cfg.Curve
	x := func(t float64) float64 { return bezier(t, c.P1[0], c.P2[0]) }
	t := BinarySearch(0, 1, x, clamp(l, 0, 1), HueShiftEpsilon, h.maxIterations)

	return bezier(t, c.P1[1], c.P2[1]) * h.cfg.MaxRotation
}

// CalculateHueShift returns the hue rotation of cfg at lightness l.
func CalculateHueShift(l float64, cfg *HueShift) float64 {
	return NewHueShifter(cfg).Shift(l)
}

// bezier evaluates one component of a cubic Bézier whose endpoints are 0
// and 1.
func bezier(t, p1, p2 float64) float64 {
	mt := 1 - t
	return 3*mt*mt*t*p1 + 3*mt*t*t*p2 + t*t*t
}
