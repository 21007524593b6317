package solver

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/surfacetone/internal/colour"
)

// Options are the solver tunables.
type Options struct {
	Epsilon       float64
	MaxIterations int
	Stagger       float64
	Targets       Targets
}

// DefaultOptions returns the default tunables.
func DefaultOptions() Options {
	return Options{
		Epsilon:       Epsilon,
		MaxIterations: DefaultMaxIterations,
		Stagger:       DefaultStagger,
		Targets:       DefaultTargets(),
	}
}

// Solver solves surface configurations. A Solver holds no per-call state and
// is safe for concurrent use.
type Solver struct {
	converter colour.Converter
	logger    hclog.Logger
	opts      Options
}

// Option configures a Solver.
type Option func(*Solver)

// WithConverter sets the colour converter used for key colours.
func WithConverter(c colour.Converter) Option {
	return func(s *Solver) {
		s.converter = c
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}

// WithOptions replaces the tunables. Zero fields keep their defaults.
func WithOptions(o Options) Option {
	return func(s *Solver) {
		if o.Epsilon > 0 {
			s.opts.Epsilon = o.Epsilon
		}
		if o.MaxIterations > 0 {
			s.opts.MaxIterations = o.MaxIterations
		}
		if o.Stagger != 0 {
			s.opts.Stagger = o.Stagger
		}
		if o.Targets.Text > 0 {
			s.opts.Targets.Text = o.Targets.Text
		}
		if o.Targets.Border > 0 {
			s.opts.Targets.Border = o.Targets.Border
		}
		if o.Targets.BorderSeparation > 0 {
			s.opts.Targets.BorderSeparation = o.Targets.BorderSeparation
		}
	}
}

// New returns a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		converter: colour.NewConverter(),
		logger:    hclog.NewNullLogger(),
		opts:      DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = hclog.NewNullLogger()
	}
	return s
}

// Options returns the solver's tunables.
func (s *Solver) Options() Options {
	return s.opts
}

// Solve solves cfg with a default Solver.
func Solve(cfg Config) (*Result, error) {
	return New().Solve(cfg)
}

// Solve computes background, foreground, border and hue-shift values for
// every surface of cfg. cfg is not modified.
func (s *Solver) Solve(cfg Config) (*Result, error) {
	used, err := Validate(cfg)
	if err != nil {
		return nil, err
	}

	anchors, err := AlignKeyColors(cfg.Anchors, s.converter, s.logger)
	if err != nil {
		return nil, err
	}

	// backgrounds[mode][key]
	backgrounds := map[Mode]map[string]float64{}
	for _, m := range Modes {
		backgrounds[m] = map[string]float64{}
	}

	for _, p := range Polarities {
		if !used[p] {
			continue
		}
		block, ok := anchors.ForPolarity(p)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingAnchors, p)
		}
		for _, m := range Modes {
			ctx := Context{Polarity: p, Mode: m}
			for k, v := range s.SolveSequence(cfg.Groups, ctx, block.ForMode(m)) {
				backgrounds[m][k] = v
			}
		}
	}

	result := &Result{Backgrounds: map[string]LightDark{}}
	shifter := NewHueShifter(cfg.HueShift)
	shifter.maxIterations = s.opts.MaxIterations

	for _, g := range cfg.Groups {
		for _, surface := range g.Surfaces {
			keys := []string{surface.Slug}
			for _, st := range surface.States {
				keys = append(keys, surface.StateKey(st))
			}
			for _, k := range keys {
				light, okLight := backgrounds[ModeLight][k]
				dark, okDark := backgrounds[ModeDark][k]
				if !okLight || !okDark {
					return nil, fmt.Errorf("%w: %s", ErrMissingSurface, k)
				}
				result.Backgrounds[k] = LightDark{Light: light, Dark: dark}
			}

			solved := SolvedSurface{Surface: copySurface(surface)}
			for _, m := range Modes {
				ctx := Context{Polarity: surface.Polarity, Mode: m}
				bg := backgrounds[m][surface.Slug]
				spec := SolveForeground(bg, ctx, shifter.Shift(bg), s.opts.Targets, s.opts.Epsilon, s.opts.MaxIterations)
				if m == ModeDark {
					solved.Computed.Dark = spec
				} else {
					solved.Computed.Light = spec
				}
			}
			result.Surfaces = append(result.Surfaces, solved)
		}
	}

	s.logger.Debug("solved surfaces", "surfaces", len(result.Surfaces), "backgrounds", len(result.Backgrounds))
	return result, nil
}

// Validate checks cfg for structural errors and returns the polarities its
// surfaces use.
func Validate(cfg Config) (map[Polarity]bool, error) {
	used := map[Polarity]bool{}
	seen := map[string]bool{}

	for gi, g := range cfg.Groups {
		for _, surface := range g.Surfaces {
			if surface.Slug == "" {
				return nil, fmt.Errorf("%w: group %d", ErrEmptySlug, gi)
			}
			if !surface.Polarity.Valid() {
				return nil, fmt.Errorf("%w: %q on surface %s", ErrInvalidPolarity, surface.Polarity, surface.Slug)
			}
			keys := []string{surface.Slug}
			for _, st := range surface.States {
				keys = append(keys, surface.StateKey(st))
			}
			for _, k := range keys {
				if seen[k] {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, k)
				}
				seen[k] = true
			}
			used[surface.Polarity] = true
		}
	}

	for _, p := range Polarities {
		block, ok := cfg.Anchors.ForPolarity(p)
		if !ok {
			if used[p] {
				return nil, fmt.Errorf("%w: %s", ErrMissingAnchors, p)
			}
			continue
		}
		for _, m := range Modes {
			pair := block.ForMode(m)
			if err := checkAnchor(pair.Start, p, m, "start"); err != nil {
				return nil, err
			}
			if err := checkAnchor(pair.End, p, m, "end"); err != nil {
				return nil, err
			}
		}
	}

	return used, nil
}

func checkAnchor(a Anchor, p Polarity, m Mode, name string) error {
	if a.Background < 0 || a.Background > 1 {
		return fmt.Errorf("%w: %s.%s.%s = %v", ErrAnchorOutOfRange, p, m, name, a.Background)
	}
	return nil
}

// copySurface returns s with its own copies of referenced data.
func copySurface(s Surface) Surface {
	out := s
	if s.ContrastOffset != nil {
		off := ContrastOffset{}
		if s.ContrastOffset.Light != nil {
			v := *s.ContrastOffset.Light
			off.Light = &v
		}
		if s.ContrastOffset.Dark != nil {
			v := *s.ContrastOffset.Dark
			off.Dark = &v
		}
		out.ContrastOffset = &off
	}
	if s.States != nil {
		out.States = append([]State(nil), s.States...)
	}
	return out
}
