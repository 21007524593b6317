package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/surfacetone/internal/solver"
)

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := LoadSettings("", nil)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Solver != solver.DefaultOptions() {
		t.Errorf("Solver = %+v, want defaults %+v", s.Solver, solver.DefaultOptions())
	}
	if s.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", s.Format, FormatJSON)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := `solver:
  stagger: 0.3
  max-iterations: 50
targets:
  text: 60
output:
  format: table
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	t.Setenv("SURFACETONE_SOLVER_STAGGER", "0.4")

	s, err := LoadSettings(path, map[string]any{KeyMaxIterations: 75})
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if s.Solver.Stagger != 0.4 {
		t.Errorf("Stagger = %v, want env value 0.4", s.Solver.Stagger)
	}
	if s.Solver.MaxIterations != 75 {
		t.Errorf("MaxIterations = %v, want override 75", s.Solver.MaxIterations)
	}
	if s.Solver.Targets.Text != 60 {
		t.Errorf("Targets.Text = %v, want file value 60", s.Solver.Targets.Text)
	}
	if s.Solver.Targets.Border != solver.DefaultBorderContrast {
		t.Errorf("Targets.Border = %v, want default", s.Solver.Targets.Border)
	}
	if s.Format != FormatTable {
		t.Errorf("Format = %q, want %q", s.Format, FormatTable)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"), nil); err != nil {
		t.Errorf("LoadSettings() error = %v, want nil for a missing file", err)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{name: "zero epsilon", overrides: map[string]any{KeyEpsilon: 0}},
		{name: "negative iterations", overrides: map[string]any{KeyMaxIterations: -1}},
		{name: "unknown format", overrides: map[string]any{KeyOutputFormat: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSettings("", tt.overrides); err == nil {
				t.Error("LoadSettings() succeeded, want error")
			}
		})
	}
}

const themeJSON = `{
  "anchors": {
    "page": {
      "light": {"start": {"background": 0.98}, "end": {"background": 0.90}},
      "dark": {"start": {"background": 0.15}, "end": {"background": 0.28}}
    },
    "inverted": {
      "light": {"start": {"background": 0.25}, "end": {"background": 0.45, "adjustable": true}},
      "dark": {"start": {"background": 0.90}, "end": {"background": 0.75, "adjustable": false}}
    },
    "keyColors": {"primary": "#3366ff"}
  },
  "groups": [
    {"surfaces": [{"slug": "page", "polarity": "page"}]},
    {
      "gapBefore": 1,
      "surfaces": [
        {
          "slug": "card",
          "polarity": "page",
          "contrastOffset": {"dark": 2.5},
          "states": [{"name": "hover", "offset": -3}]
        },
        {"slug": "button", "polarity": "inverted"}
      ]
    }
  ],
  "hueShift": {"maxRotation": 60, "curve": {"p1": [0.5, 0], "p2": [0.5, 1]}}
}`

const themeYAML = `anchors:
  page:
    light: {start: {background: 0.98}, end: {background: 0.90}}
    dark: {start: {background: 0.15}, end: {background: 0.28}}
  inverted:
    light: {start: {background: 0.25}, end: {background: 0.45, adjustable: true}}
    dark: {start: {background: 0.90}, end: {background: 0.75, adjustable: false}}
  keyColors:
    primary: "#3366ff"
groups:
  - surfaces:
      - {slug: page, polarity: page}
  - gapBefore: 1
    surfaces:
      - slug: card
        polarity: page
        contrastOffset: {dark: 2.5}
        states:
          - {name: hover, offset: -3}
      - {slug: button, polarity: inverted}
hueShift:
  maxRotation: 60
  curve:
    p1: [0.5, 0]
    p2: [0.5, 1]
`

func TestLoadSolverConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json", file: "theme.json", content: themeJSON},
		{name: "yaml", file: "theme.yaml", content: themeYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write theme: %v", err)
			}

			cfg, err := LoadSolverConfig(path)
			if err != nil {
				t.Fatalf("LoadSolverConfig() error = %v", err)
			}
			checkTheme(t, cfg)
		})
	}
}

func checkTheme(t *testing.T, cfg solver.Config) {
	t.Helper()

	if cfg.Anchors.Page == nil {
		t.Fatal("page anchors missing")
	}
	if cfg.Anchors.Page.Light.Start.Background != 0.98 || cfg.Anchors.Page.Dark.End.Background != 0.28 {
		t.Errorf("page anchors = %+v", cfg.Anchors.Page)
	}
	if cfg.Anchors.Inverted == nil {
		t.Fatal("inverted anchors missing")
	}
	if a := cfg.Anchors.Inverted.Dark.End.Adjustable; a == nil || *a {
		t.Errorf("inverted dark end adjustable = %v, want false", a)
	}
	if len(cfg.Anchors.KeyColors) != 1 {
		t.Errorf("key colours = %v", cfg.Anchors.KeyColors)
	}

	if len(cfg.Groups) != 2 || len(cfg.Groups[1].Surfaces) != 2 {
		t.Fatalf("groups = %+v", cfg.Groups)
	}
	if cfg.Groups[1].GapBefore != 1 {
		t.Errorf("gapBefore = %v, want 1", cfg.Groups[1].GapBefore)
	}

	card := cfg.Groups[1].Surfaces[0]
	if card.Slug != "card" || card.Polarity != solver.PolarityPage {
		t.Errorf("card = %+v", card)
	}
	if card.ContrastOffset == nil || card.ContrastOffset.Dark == nil || *card.ContrastOffset.Dark != 2.5 || card.ContrastOffset.Light != nil {
		t.Errorf("card contrast offset = %+v", card.ContrastOffset)
	}
	if len(card.States) != 1 || card.States[0].Name != "hover" || card.States[0].Offset != -3 {
		t.Errorf("card states = %+v", card.States)
	}
	if cfg.Groups[1].Surfaces[1].Polarity != solver.PolarityInverted {
		t.Errorf("button polarity = %q", cfg.Groups[1].Surfaces[1].Polarity)
	}

	if cfg.HueShift == nil || cfg.HueShift.MaxRotation != 60 || cfg.HueShift.Curve.P2 != [2]float64{0.5, 1} {
		t.Errorf("hueShift = %+v", cfg.HueShift)
	}
}

func TestParseSolverConfigSolves(t *testing.T) {
	cfg, err := ParseSolverConfig(strings.NewReader(themeJSON), "json")
	if err != nil {
		t.Fatalf("ParseSolverConfig() error = %v", err)
	}
	if _, err := solver.Solve(cfg); err != nil {
		t.Errorf("Solve() error = %v", err)
	}
}

func TestParseSolverConfigWithoutPageAnchors(t *testing.T) {
	doc := `{
  "anchors": {"inverted": {
    "light": {"start": {"background": 0.2}, "end": {"background": 0.35}},
    "dark": {"start": {"background": 0.95}, "end": {"background": 0.85}}
  }},
  "groups": [{"surfaces": [{"slug": "page", "polarity": "page"}, {"slug": "card", "polarity": "page"}]}]
}`

	cfg, err := ParseSolverConfig(strings.NewReader(doc), "json")
	if err != nil {
		t.Fatalf("ParseSolverConfig() error = %v", err)
	}
	if cfg.Anchors.Page != nil {
		t.Errorf("page anchors = %+v, want undeclared", cfg.Anchors.Page)
	}
	if _, err := solver.Solve(cfg); !errors.Is(err, solver.ErrMissingAnchors) {
		t.Errorf("Solve() error = %v, want %v", err, solver.ErrMissingAnchors)
	}
}

func TestLoadSolverConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSolverConfig(filepath.Join(dir, "theme.ini")); err == nil {
		t.Error("unsupported extension accepted")
	}
	if _, err := LoadSolverConfig(filepath.Join(dir, "absent.json")); err == nil {
		t.Error("missing file accepted")
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSolverConfig(broken); err == nil {
		t.Error("malformed JSON accepted")
	}
}
