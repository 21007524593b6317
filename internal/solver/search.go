// Package solver computes perceptually balanced surface lightness values.
//
// Every surface of a theme is assigned a target perceptual contrast, derived
// from a pair of anchor backgrounds, and the background lightness reaching
// that contrast is recovered by root-finding. Foreground, border and hue-shift
// values are then derived from the solved background.
package solver

import "math"

// DefaultMaxIterations bounds every bisection performed by the solver.
// Realistic inputs converge in well under 20 iterations.
const DefaultMaxIterations = 100

// SearchResult describes the outcome of a bisection.
type SearchResult struct {
	X          float64
	Iterations int
	Converged  bool
}

// BinarySearch returns an x in [min, max] for which evaluate(x) lies within
// epsilon of target. evaluate must be monotone (not necessarily strictly).
// When the search does not converge within maxIterations the midpoint of the
// final bracket is returned.
func BinarySearch(min, max float64, evaluate func(float64) float64, target, epsilon float64, maxIterations int) float64 {
	return Search(min, max, evaluate, target, epsilon, maxIterations).X
}

// Search is BinarySearch with convergence details.
func Search(min, max float64, evaluate func(float64) float64, target, epsilon float64, maxIterations int) SearchResult {
	atMin := evaluate(min)
	atMax := evaluate(max)

	// Flat function: every x is equally good.
	if atMin == atMax {
		return SearchResult{X: min, Converged: math.Abs(atMin-target) <= epsilon}
	}

	increasing := atMax > atMin

	// Targets at or past a saturated end return that end without iterating.
	if increasing {
		if target <= atMin+epsilon {
			return SearchResult{X: min, Converged: true}
		}
		if target >= atMax-epsilon {
			return SearchResult{X: max, Converged: true}
		}
	} else {
		if target >= atMin-epsilon {
			return SearchResult{X: min, Converged: true}
		}
		if target <= atMax+epsilon {
			return SearchResult{X: max, Converged: true}
		}
	}

	lo, hi := min, max
	for i := 1; i <= maxIterations; i++ {
		mid := (lo + hi) / 2
		deviation := evaluate(mid) - target
		if math.Abs(deviation) <= epsilon {
			return SearchResult{X: mid, Iterations: i, Converged: true}
		}

		// Past the target in the direction of travel: the root is below mid.
		if (deviation > 0) == increasing {
			hi = mid
		} else {
			lo = mid
		}
	}

	return SearchResult{X: (lo + hi) / 2, Iterations: maxIterations}
}
