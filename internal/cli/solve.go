package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/surfacetone/internal/config"
	"github.com/jmylchreest/surfacetone/internal/solver"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		configPath string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve surface lightness values from a theme configuration",
		Long: `Solve background, foreground, border and hue-shift values for every surface
declared in a theme configuration (JSON, YAML or TOML).

Examples:
  # Solve and print JSON
  surfacetone solve -c theme.json

  # Write the result to a file
  surfacetone solve -c theme.yaml -o solved.json

  # Human readable summary
  surfacetone solve -c theme.json --format table

  # Read the configuration from stdin
  cat theme.json | surfacetone solve -c -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := a.solveFile(configPath)
			if err != nil {
				return err
			}

			if outputPath == "" {
				return writeResult(cmd.OutOrStdout(), result, a.settings.Format)
			}

			//nolint:gosec // G304: output path is supplied by the user
			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := writeAndClose(f, result, a.settings.Format); err != nil {
				return fmt.Errorf("write %s: %w", outputPath, err)
			}
			if !a.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %d surfaces to %s\n", len(result.Surfaces), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "theme configuration file, or - for JSON on stdin (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to a file instead of stdout")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// solveFile loads and solves a theme configuration.
func (a *app) solveFile(path string) (solver.Config, *solver.Result, error) {
	cfg, err := config.LoadSolverConfig(path)
	if err != nil {
		return solver.Config{}, nil, err
	}
	a.logger.Debug("loaded configuration", "path", path, "groups", len(cfg.Groups))

	result, err := a.newSolver().Solve(cfg)
	if err != nil {
		return solver.Config{}, nil, fmt.Errorf("solve %s: %w", path, err)
	}
	return cfg, result, nil
}

// writeAndClose writes result to w and closes it. A failed close is
// reported even when the write succeeded.
func writeAndClose(w io.WriteCloser, result *solver.Result, format string) error {
	err := writeResult(w, result, format)
	if cerr := w.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	return err
}

// writeResult writes result in the given format.
func writeResult(w io.Writer, result *solver.Result, format string) error {
	switch format {
	case config.FormatTable:
		_, err := io.WriteString(w, resultTable(result).Render())
		return err
	default:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
}

// resultTable lists every background key with its solved values.
func resultTable(result *solver.Result) *Table {
	t := NewTable([]string{"Surface", "Polarity", "Light BG", "Light FG", "Light Border", "Dark BG", "Dark FG", "Dark Border", "Hue Shift"})
	t.AlignRight(2, 3, 4, 5, 6, 7, 8)

	for _, s := range result.Surfaces {
		l, d := s.Computed.Light, s.Computed.Dark
		t.AddRow(s.Slug, string(s.Polarity),
			lightness(l.Background), lightness(l.Foreground), lightness(l.BorderAlpha),
			lightness(d.Background), lightness(d.Foreground), lightness(d.BorderAlpha),
			fmt.Sprintf("%.1f°/%.1f°", l.HueShift, d.HueShift))

		for _, st := range s.States {
			bgs := result.Backgrounds[s.StateKey(st)]
			t.AddRow("  "+s.StateKey(st), "",
				lightness(bgs.Light), "", "",
				lightness(bgs.Dark), "", "", "")
		}
	}
	return t
}

func lightness(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
