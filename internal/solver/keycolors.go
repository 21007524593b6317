package solver

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/surfacetone/internal/colour"
)

// Bounds applied to the averaged key-colour lightness.
const (
	KeyColorMinLightness = 0.05
	KeyColorMaxLightness = 0.95
)

// KeyColorLightness returns the average OKLCH lightness of every key colour
// conv can parse, and the number parsed. Unparseable colours are skipped.
func KeyColorLightness(keyColors map[string]string, conv colour.Converter, logger hclog.Logger) (float64, int) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	// Map order is random; sum in name order so results are bit-identical.
	names := make([]string, 0, len(keyColors))
	for name := range keyColors {
		names = append(names, name)
	}
	sort.Strings(names)

	sum := 0.0
	n := 0
	for _, name := range names {
		c, err := conv.Convert(keyColors[name])
		if err != nil {
			logger.Debug("skipping key colour", "name", name, "value", keyColors[name], "error", err)
			continue
		}
		sum += c.L
		n++
	}

	if n == 0 {
		return 0, 0
	}
	return sum / float64(n), n
}

// AlignKeyColors returns a copy of anchors whose inverted end backgrounds
// follow the average lightness of the key colours. When no key colour
// parses the copy carries the declared values. End anchors marked
// non-adjustable keep their values.
func AlignKeyColors(anchors Anchors, conv colour.Converter, logger hclog.Logger) (Anchors, error) {
	out := anchors.clone()
	if len(anchors.KeyColors) == 0 {
		return out, nil
	}

	avg, n := KeyColorLightness(anchors.KeyColors, conv, logger)
	if n == 0 {
		return out, nil
	}
	if out.Inverted == nil {
		return Anchors{}, fmt.Errorf("%w: %d key colours declared", ErrMissingInvertedAnchors, n)
	}

	l := RoundLightness(clamp(avg, KeyColorMinLightness, KeyColorMaxLightness))
	if adjustable(out.Inverted.Light.End) {
		out.Inverted.Light.End.Background = l
	}
	if adjustable(out.Inverted.Dark.End) {
		out.Inverted.Dark.End.Background = l
	}
	return out, nil
}

func adjustable(a Anchor) bool {
	return a.Adjustable == nil || *a.Adjustable
}
