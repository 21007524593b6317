package solver

import "maps"

// Anchor is one configured background extreme.
type Anchor struct {
	Background float64 `json:"background" mapstructure:"background"`
	// Adjustable controls whether key-colour alignment may replace the
	// value. Nil means adjustable.
	Adjustable *bool `json:"adjustable,omitempty" mapstructure:"adjustable"`
}

// ModeAnchors is the start/end anchor pair for one polarity and mode.
type ModeAnchors struct {
	Start Anchor `json:"start" mapstructure:"start"`
	End   Anchor `json:"end" mapstructure:"end"`
}

// PolarityAnchors holds the anchor pairs of a polarity for both modes.
type PolarityAnchors struct {
	Light ModeAnchors `json:"light" mapstructure:"light"`
	Dark  ModeAnchors `json:"dark" mapstructure:"dark"`
}

// ForMode returns the anchor pair for m.
func (p PolarityAnchors) ForMode(m Mode) ModeAnchors {
	if m == ModeDark {
		return p.Dark
	}
	return p.Light
}

// Anchors holds every anchor block plus the key colours used to align the
// inverted end anchor. A nil block means the polarity is undeclared.
type Anchors struct {
	Page      *PolarityAnchors  `json:"page,omitempty" mapstructure:"page"`
	Inverted  *PolarityAnchors  `json:"inverted,omitempty" mapstructure:"inverted"`
	KeyColors map[string]string `json:"keyColors,omitempty" mapstructure:"keyColors"`
}

// ForPolarity returns the anchor block for p, if declared.
func (a Anchors) ForPolarity(p Polarity) (PolarityAnchors, bool) {
	switch p {
	case PolarityPage:
		if a.Page == nil {
			return PolarityAnchors{}, false
		}
		return *a.Page, true
	case PolarityInverted:
		if a.Inverted == nil {
			return PolarityAnchors{}, false
		}
		return *a.Inverted, true
	}
	return PolarityAnchors{}, false
}

// clone returns a copy sharing no mutable state with a.
func (a Anchors) clone() Anchors {
	out := a
	if a.Page != nil {
		page := *a.Page
		out.Page = &page
	}
	if a.Inverted != nil {
		inv := *a.Inverted
		out.Inverted = &inv
	}
	if a.KeyColors != nil {
		out.KeyColors = maps.Clone(a.KeyColors)
	}
	return out
}

// ContrastOffset shifts a surface's target contrast per mode.
type ContrastOffset struct {
	Light *float64 `json:"light,omitempty" mapstructure:"light"`
	Dark  *float64 `json:"dark,omitempty" mapstructure:"dark"`
}

// ForMode returns the offset for m, or 0.
func (o *ContrastOffset) ForMode(m Mode) float64 {
	if o == nil {
		return 0
	}
	v := o.Light
	if m == ModeDark {
		v = o.Dark
	}
	if v == nil {
		return 0
	}
	return *v
}

// State is an interaction state (hover, active, ...) solved relative to its
// surface.
type State struct {
	Name   string  `json:"name" mapstructure:"name"`
	Offset float64 `json:"offset" mapstructure:"offset"`
}

// Surface is one themeable element type.
type Surface struct {
	Slug           string          `json:"slug" mapstructure:"slug"`
	Polarity       Polarity        `json:"polarity" mapstructure:"polarity"`
	ContrastOffset *ContrastOffset `json:"contrastOffset,omitempty" mapstructure:"contrastOffset"`
	States         []State         `json:"states,omitempty" mapstructure:"states"`
}

// StateKey returns the background key of a state of s.
func (s Surface) StateKey(state State) string {
	return s.Slug + "-" + state.Name
}

// SurfaceGroup is an ordered cluster of surfaces forming one visual layer.
type SurfaceGroup struct {
	Surfaces []Surface `json:"surfaces" mapstructure:"surfaces"`
	// GapBefore advances the contrast progression without adding a surface.
	GapBefore float64 `json:"gapBefore,omitempty" mapstructure:"gapBefore"`
}

// Curve holds the two inner control points of a cubic Bézier running from
// (0,0) to (1,1).
type Curve struct {
	P1 [2]float64 `json:"p1" mapstructure:"p1"`
	P2 [2]float64 `json:"p2" mapstructure:"p2"`
}

// HueShift configures lightness-dependent hue rotation.
type HueShift struct {
	MaxRotation float64 `json:"maxRotation" mapstructure:"maxRotation"`
	Curve       Curve   `json:"curve" mapstructure:"curve"`
}

// Config is the complete solver input. It is never modified by the solver.
type Config struct {
	Anchors  Anchors        `json:"anchors" mapstructure:"anchors"`
	Groups   []SurfaceGroup `json:"groups" mapstructure:"groups"`
	HueShift *HueShift      `json:"hueShift,omitempty" mapstructure:"hueShift"`
}

// ModeSpec is the computed colour of one surface in one mode.
type ModeSpec struct {
	Background  float64 `json:"background"`
	Foreground  float64 `json:"foreground"`
	HueShift    float64 `json:"hueShift"`
	BorderAlpha float64 `json:"borderAlpha"`
}

// Computed holds a surface's specs for both modes.
type Computed struct {
	Light ModeSpec `json:"light"`
	Dark  ModeSpec `json:"dark"`
}

// ForMode returns the spec for m.
func (c Computed) ForMode(m Mode) ModeSpec {
	if m == ModeDark {
		return c.Dark
	}
	return c.Light
}

// SolvedSurface is an input surface together with its computed specs.
type SolvedSurface struct {
	Surface
	Computed Computed `json:"computed"`
}

// LightDark pairs a value for each mode.
type LightDark struct {
	Light float64 `json:"light"`
	Dark  float64 `json:"dark"`
}

// Result is the output of a solve.
type Result struct {
	Surfaces []SolvedSurface `json:"surfaces"`
	// Backgrounds is keyed by slug and by "<slug>-<state>".
	Backgrounds map[string]LightDark `json:"backgrounds"`
}
