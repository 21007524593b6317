package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/surfacetone/internal/colour"
	"github.com/jmylchreest/surfacetone/internal/solver"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		configPath string
		mode       string
		tint       string
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview solved surfaces as colour swatches",
		Long: `Render every solved surface as a swatch showing its background, text and
border. Swatches are tinted with the first key colour unless --tint names
another key colour or a colour literal.

Colour output is used only when stdout is a terminal.

Examples:
  surfacetone preview -c theme.json
  surfacetone preview -c theme.json --mode dark --tint "#3366ff"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			modes, err := parseModes(mode)
			if err != nil {
				return err
			}

			cfg, result, err := a.solveFile(configPath)
			if err != nil {
				return err
			}

			base, err := resolveTint(cfg.Anchors.KeyColors, tint, colour.NewConverter())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			styled := !plain && isTerminal(out)
			a.logger.Debug("rendering preview", "modes", mode, "styled", styled, "tinted", base != nil)

			for i, m := range modes {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s mode\n", m)
				fmt.Fprint(out, previewTable(result, m, base, lipgloss.NewRenderer(out), styled).Render())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "theme configuration file (required)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "both", "mode to preview (light, dark, both)")
	cmd.Flags().StringVar(&tint, "tint", "", "key colour name or colour literal used to tint swatches")
	cmd.Flags().BoolVar(&plain, "plain", false, "never emit colour")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func parseModes(s string) ([]solver.Mode, error) {
	switch strings.ToLower(s) {
	case "", "both":
		return solver.Modes, nil
	case string(solver.ModeLight):
		return []solver.Mode{solver.ModeLight}, nil
	case string(solver.ModeDark):
		return []solver.Mode{solver.ModeDark}, nil
	}
	return nil, fmt.Errorf("unknown mode %q (want light, dark or both)", s)
}

// resolveTint picks the colour swatches are tinted with. An explicit tint
// may name a key colour or be a literal; otherwise the first parseable key
// colour by name is used. No key colours means neutral swatches.
func resolveTint(keyColors map[string]string, tint string, conv colour.Converter) (*colour.OKLCH, error) {
	if tint != "" {
		literal := tint
		if v, ok := keyColors[strings.ToLower(tint)]; ok {
			literal = v
		} else if v, ok := keyColors[tint]; ok {
			literal = v
		}
		c, err := conv.Convert(literal)
		if err != nil {
			return nil, fmt.Errorf("invalid tint: %w", err)
		}
		return &c, nil
	}

	names := make([]string, 0, len(keyColors))
	for name := range keyColors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if c, err := conv.Convert(keyColors[name]); err == nil {
			return &c, nil
		}
	}
	return nil, nil
}

// previewTable lists the surfaces of one mode with their swatch colours.
func previewTable(result *solver.Result, m solver.Mode, base *colour.OKLCH, r *lipgloss.Renderer, styled bool) *Table {
	t := NewTable([]string{"Swatch", "Surface", "Background", "Text", "Border"})

	for _, s := range result.Surfaces {
		spec := s.Computed.ForMode(m)
		bg := colour.Swatch(spec.Background, spec.HueShift, base).Hex()
		fg := colour.Swatch(spec.Foreground, spec.HueShift, base).Hex()
		border := colour.Swatch(colour.Alpha(spec.Foreground, spec.Background, spec.BorderAlpha), spec.HueShift, base).Hex()

		swatch := ""
		if styled {
			swatch = r.NewStyle().
				Background(lipgloss.Color(bg)).
				Foreground(lipgloss.Color(fg)).
				Render(" Aa ") +
				r.NewStyle().Background(lipgloss.Color(border)).Render(" ")
		}
		t.AddRow(swatch, s.Slug, bg, fg, fmt.Sprintf("%s @ %.2f", fg, spec.BorderAlpha))

		for _, st := range s.States {
			bgs := result.Backgrounds[s.StateKey(st)]
			l := bgs.Light
			if m == solver.ModeDark {
				l = bgs.Dark
			}
			stateBG := colour.Swatch(l, spec.HueShift, base).Hex()
			swatch := ""
			if styled {
				swatch = r.NewStyle().
					Background(lipgloss.Color(stateBG)).
					Foreground(lipgloss.Color(fg)).
					Render(" Aa ")
			}
			t.AddRow(swatch, "  "+s.StateKey(st), stateBG, "", "")
		}
	}
	return t
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}
