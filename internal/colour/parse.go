package colour

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	hexRegex   = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	rgbRegex   = regexp.MustCompile(`^rgba?\(\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)\s*[,\s]\s*([0-9.]+%?)`)
	hslRegex   = regexp.MustCompile(`^hsla?\(\s*(-?[0-9.]+)(?:deg)?\s*[,\s]\s*([0-9.]+)%?\s*[,\s]\s*([0-9.]+)%?`)
	oklchRegex = regexp.MustCompile(`^oklch\(\s*([0-9.]+%?)\s+([0-9.]+%?)\s+(-?[0-9.]+)(?:deg)?`)
	oklabRegex = regexp.MustCompile(`^oklab\(\s*([0-9.]+%?)\s+(-?[0-9.]+)\s+(-?[0-9.]+)`)
)

// Parse parses a hex, rgb(), hsl(), oklch() or oklab() literal.
func Parse(literal string) (colorful.Color, error) {
	value := strings.ToLower(strings.TrimSpace(literal))

	if hexRegex.MatchString(value) {
		return parseHex(value)
	}

	if m := rgbRegex.FindStringSubmatch(value); m != nil {
		var rgb [3]float64
		for i := range rgb {
			v, err := channel(m[i+1], 255)
			if err != nil {
				return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", literal, err)
			}
			rgb[i] = v
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	}

	if m := hslRegex.FindStringSubmatch(value); m != nil {
		h, errH := number(m[1])
		s, errS := number(m[2])
		l, errL := number(m[3])
		if err := errors.Join(errH, errS, errL); err != nil {
			return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", literal, err)
		}
		// Handle percentage values.
		if s > 1 {
			s /= 100
		}
		if l > 1 {
			l /= 100
		}
		return colorful.Hsl(normaliseHue(h), clamp01(s), clamp01(l)), nil
	}

	o, ok, err := parseOKLCH(value)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", literal, err)
	}
	if ok {
		return colorful.OkLch(o.L, o.C, o.H), nil
	}

	if m := oklabRegex.FindStringSubmatch(value); m != nil {
		l, errL := lightness(m[1])
		a, errA := number(m[2])
		b, errB := number(m[3])
		if err := errors.Join(errL, errA, errB); err != nil {
			return colorful.Color{}, fmt.Errorf("invalid colour %q: %w", literal, err)
		}
		return colorful.OkLab(l, a, b), nil
	}

	return colorful.Color{}, fmt.Errorf("unsupported colour %q", literal)
}

// parseHex parses #rgb, #rrggbb and #rrggbbaa. Alpha is ignored.
func parseHex(value string) (colorful.Color, error) {
	hex := strings.TrimPrefix(value, "#")

	// Expand shorthand format (RGB -> RRGGBB).
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 8 {
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid hex colour %q: %w", value, err)
	}
	return c, nil
}

// parseOKLCH reports whether value is an oklch() literal and, if so, its
// components.
func parseOKLCH(value string) (OKLCH, bool, error) {
	m := oklchRegex.FindStringSubmatch(value)
	if m == nil {
		return OKLCH{}, false, nil
	}

	l, err := lightness(m[1])
	if err != nil {
		return OKLCH{}, true, err
	}

	c := m[2]
	chroma, err := number(strings.TrimSuffix(c, "%"))
	if err != nil {
		return OKLCH{}, true, err
	}
	if strings.HasSuffix(c, "%") {
		// 100% chroma is 0.4 in CSS Color 4.
		chroma = chroma / 100 * 0.4
	}

	h, err := number(m[3])
	if err != nil {
		return OKLCH{}, true, err
	}

	return OKLCH{L: l, C: chroma, H: normaliseHue(h)}, true, nil
}

// lightness reads an OK lightness written either as 0-1 or as a percentage.
func lightness(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := number(strings.TrimSuffix(s, "%"))
		return clamp01(v / 100), err
	}
	v, err := number(s)
	return clamp01(v), err
}

// channel reads an rgb() channel written either as 0-max or as a percentage.
func channel(s string, max float64) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := number(strings.TrimSuffix(s, "%"))
		return clamp01(v / 100), err
	}
	v, err := number(s)
	return clamp01(v / max), err
}

// number parses a finite decimal. The regexes admit strings such as "1.2.3"
// that are not numbers.
func number(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return f, nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
