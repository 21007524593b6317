package solver

import "math"

// DefaultStagger separates surfaces sharing a group by a fraction of the
// per-position contrast step, in source order.
const DefaultStagger = 0.2

// Target is the contrast a background is solved for.
type Target struct {
	// Key is the background key: the slug, or "<slug>-<state>".
	Key      string
	Slug     string
	State    string
	Contrast float64
}

// Progression describes the contrast range a sequence interpolates across.
type Progression struct {
	StartContrast float64
	EndContrast   float64
	Delta         float64
	MinContrast   float64
	MaxContrast   float64
	MinBackground float64
	MaxBackground float64
}

// NewProgression derives the progression of n surfaces between the anchors
// of ctx.
func NewProgression(ctx Context, anchors ModeAnchors, n int) Progression {
	start := ctx.BackgroundContrast(anchors.Start.Background)
	end := ctx.BackgroundContrast(anchors.End.Background)

	var delta float64
	if n > 1 {
		delta = (end - start) / float64(n-1)
	}

	return Progression{
		StartContrast: start,
		EndContrast:   end,
		Delta:         delta,
		MinContrast:   math.Min(start, end),
		MaxContrast:   math.Max(start, end),
		MinBackground: math.Min(anchors.Start.Background, anchors.End.Background),
		MaxBackground: math.Max(anchors.Start.Background, anchors.End.Background),
	}
}

// Clamp restricts a contrast target to the anchor range.
func (p Progression) Clamp(c float64) float64 {
	return clamp(c, p.MinContrast, p.MaxContrast)
}

// countSurfaces returns the number of surfaces of polarity p.
func countSurfaces(groups []SurfaceGroup, p Polarity) int {
	n := 0
	for _, g := range groups {
		for _, s := range g.Surfaces {
			if s.Polarity == p {
				n++
			}
		}
	}
	return n
}

// SequenceTargets assigns every surface of ctx.Polarity, and each of its
// states, a clamped target contrast. Targets are returned in source order.
func SequenceTargets(groups []SurfaceGroup, ctx Context, anchors ModeAnchors, stagger float64) ([]Target, Progression) {
	prog := NewProgression(ctx, anchors, countSurfaces(groups, ctx.Polarity))

	var targets []Target
	position := 0
	gapTotal := 0.0
	for _, g := range groups {
		gapTotal += g.GapBefore

		j := 0
		for _, s := range g.Surfaces {
			if s.Polarity != ctx.Polarity {
				continue
			}

			// Surfaces advance one step each; siblings in a group add a stagger.
			index := float64(position) + gapTotal
			raw := prog.StartContrast +
				index*prog.Delta +
				stagger*prog.Delta*float64(j) +
				s.ContrastOffset.ForMode(ctx.Mode)
			base := prog.Clamp(raw)

			targets = append(targets, Target{Key: s.Slug, Slug: s.Slug, Contrast: base})
			for _, st := range s.States {
				targets = append(targets, Target{
					Key:      s.StateKey(st),
					Slug:     s.Slug,
					State:    st.Name,
					Contrast: prog.Clamp(base + st.Offset),
				})
			}
			position++
			j++
		}
	}

	return targets, prog
}

// SolveSequence solves the background lightness of every surface of
// ctx.Polarity, keyed by slug and "<slug>-<state>".
func (s *Solver) SolveSequence(groups []SurfaceGroup, ctx Context, anchors ModeAnchors) map[string]float64 {
	targets, prog := SequenceTargets(groups, ctx, anchors, s.opts.Stagger)

	out := make(map[string]float64, len(targets))
	for _, t := range targets {
		r := Search(prog.MinBackground, prog.MaxBackground, ctx.BackgroundContrast, t.Contrast, s.opts.Epsilon, s.opts.MaxIterations)
		if !r.Converged {
			s.logger.Debug("background search did not converge",
				"surface", t.Key, "context", ctx.String(),
				"target", t.Contrast, "residual", ctx.BackgroundContrast(r.X)-t.Contrast)
		}
		out[t.Key] = RoundLightness(r.X)
	}

	s.logger.Trace("solved background sequence", "context", ctx.String(), "surfaces", len(out),
		"start", prog.StartContrast, "end", prog.EndContrast, "delta", prog.Delta)
	return out
}
