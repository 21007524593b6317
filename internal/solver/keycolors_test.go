package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/jmylchreest/surfacetone/internal/colour"
)

var testConverter = colour.TableConverter{
	"#3366ff": {L: 0.55, C: 0.2, H: 264},
	"#ff6633": {L: 0.70, C: 0.18, H: 40},
	"#111111": {L: 0.01, C: 0, H: 0},
}

func invertedAnchors() *PolarityAnchors {
	return &PolarityAnchors{
		Light: ModeAnchors{Start: Anchor{Background: 0.25}, End: Anchor{Background: 0.45}},
		Dark:  ModeAnchors{Start: Anchor{Background: 0.90}, End: Anchor{Background: 0.75}},
	}
}

func TestAlignKeyColors(t *testing.T) {
	anchors := Anchors{
		Page:      &PolarityAnchors{Light: pageLight, Dark: pageLight},
		Inverted:  invertedAnchors(),
		KeyColors: map[string]string{"primary": "#3366ff", "accent": "#ff6633"},
	}

	got, err := AlignKeyColors(anchors, testConverter, nil)
	if err != nil {
		t.Fatalf("AlignKeyColors() error = %v", err)
	}

	if got.Inverted.Light.End.Background != 0.625 || got.Inverted.Dark.End.Background != 0.625 {
		t.Errorf("inverted ends = %v, %v, want 0.625", got.Inverted.Light.End.Background, got.Inverted.Dark.End.Background)
	}
	if got.Inverted.Light.Start.Background != 0.25 {
		t.Errorf("start anchor changed to %v", got.Inverted.Light.Start.Background)
	}
	if anchors.Inverted.Light.End.Background != 0.45 {
		t.Errorf("input anchors modified: %v", anchors.Inverted.Light.End.Background)
	}
	if got.Inverted == anchors.Inverted {
		t.Error("aligned anchors share the inverted block with the input")
	}
}

func TestAlignKeyColorsClamps(t *testing.T) {
	anchors := Anchors{
		Inverted:  invertedAnchors(),
		KeyColors: map[string]string{"ink": "#111111"},
	}

	got, err := AlignKeyColors(anchors, testConverter, nil)
	if err != nil {
		t.Fatalf("AlignKeyColors() error = %v", err)
	}
	if got.Inverted.Dark.End.Background != KeyColorMinLightness {
		t.Errorf("end = %v, want %v", got.Inverted.Dark.End.Background, KeyColorMinLightness)
	}
}

func TestAlignKeyColorsSkipsUnparseable(t *testing.T) {
	tests := []struct {
		name      string
		keyColors map[string]string
		want      float64
	}{
		{
			name:      "one bad colour",
			keyColors: map[string]string{"primary": "#3366ff", "broken": "not-a-colour"},
			want:      0.55,
		},
		{
			name:      "all bad colours",
			keyColors: map[string]string{"a": "nope", "b": "also nope"},
			want:      0.45,
		},
		{
			name:      "no key colours",
			keyColors: nil,
			want:      0.45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchors := Anchors{Inverted: invertedAnchors(), KeyColors: tt.keyColors}
			got, err := AlignKeyColors(anchors, testConverter, nil)
			if err != nil {
				t.Fatalf("AlignKeyColors() error = %v", err)
			}
			if got.Inverted.Light.End.Background != tt.want {
				t.Errorf("end = %v, want %v", got.Inverted.Light.End.Background, tt.want)
			}
		})
	}
}

func TestAlignKeyColorsMissingInverted(t *testing.T) {
	anchors := Anchors{KeyColors: map[string]string{"primary": "#3366ff"}}

	_, err := AlignKeyColors(anchors, testConverter, nil)
	if !errors.Is(err, ErrMissingInvertedAnchors) {
		t.Errorf("error = %v, want ErrMissingInvertedAnchors", err)
	}

	// Nothing parses, so there is nothing to align.
	anchors.KeyColors = map[string]string{"primary": "???"}
	if _, err := AlignKeyColors(anchors, testConverter, nil); err != nil {
		t.Errorf("unparseable colours without inverted anchors: error = %v", err)
	}
}

func TestAlignKeyColorsPinnedEnd(t *testing.T) {
	pinned := false
	inv := invertedAnchors()
	inv.Dark.End.Adjustable = &pinned
	anchors := Anchors{Inverted: inv, KeyColors: map[string]string{"primary": "#3366ff"}}

	got, err := AlignKeyColors(anchors, testConverter, nil)
	if err != nil {
		t.Fatalf("AlignKeyColors() error = %v", err)
	}
	if got.Inverted.Dark.End.Background != 0.75 {
		t.Errorf("pinned dark end = %v, want 0.75", got.Inverted.Dark.End.Background)
	}
	if got.Inverted.Light.End.Background != 0.55 {
		t.Errorf("light end = %v, want 0.55", got.Inverted.Light.End.Background)
	}
}

func TestKeyColorLightnessWithCSSConverter(t *testing.T) {
	avg, n := KeyColorLightness(map[string]string{
		"white": "#ffffff",
		"black": "#000000",
		"bad":   "rgb(",
	}, colour.NewConverter(), nil)

	if n != 2 {
		t.Fatalf("parsed %d colours, want 2", n)
	}
	if math.Abs(avg-0.5) > 1e-3 {
		t.Errorf("average = %v, want 0.5", avg)
	}
}

func TestKeyColorLightnessSkipsMalformedNumbers(t *testing.T) {
	avg, n := KeyColorLightness(map[string]string{
		"brand":  "oklch(0.6 0.1 20)",
		"typo":   "oklch(1.2.3 0.1 20)",
		"spiral": "oklch(0.8 0.1 100000000000000000000000000000000000000)",
	}, colour.NewConverter(), nil)

	if n != 2 {
		t.Fatalf("parsed %d colours, want 2", n)
	}
	if math.Abs(avg-0.7) > 1e-9 {
		t.Errorf("average = %v, want 0.7", avg)
	}
}
