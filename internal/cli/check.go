package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/surfacetone/internal/colour"
	"github.com/jmylchreest/surfacetone/internal/solver"
)

// checkTolerance is the Lc shortfall accepted before a surface fails.
const checkTolerance = 0.5

var errCheckFailed = errors.New("contrast check failed")

// Finding is the text contrast audit of one surface in one mode.
type Finding struct {
	Slug     string
	Mode     solver.Mode
	Contrast float64
	Ratio    float64
	Pass     bool
}

// Audit compares the text contrast of every solved surface with target.
func Audit(result *solver.Result, target float64) []Finding {
	var findings []Finding
	for _, s := range result.Surfaces {
		for _, m := range solver.Modes {
			spec := s.Computed.ForMode(m)
			lc := solver.Contrast(spec.Foreground, spec.Background)
			findings = append(findings, Finding{
				Slug:     s.Slug,
				Mode:     m,
				Contrast: lc,
				Ratio:    colour.LightnessRatio(spec.Foreground, spec.Background),
				Pass:     lc >= target-checkTolerance,
			})
		}
	}
	return findings
}

func newCheckCmd(a *app) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every surface reaches the text contrast target",
		Long: `Solve a theme configuration and report surfaces whose text cannot reach the
target contrast, for example because an anchor sits too close to mid-grey.

Exits with a non-zero status when any surface fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, result, err := a.solveFile(configPath)
			if err != nil {
				return err
			}

			target := a.newSolver().Options().Targets.Text
			findings := Audit(result, target)

			t := NewTable([]string{"Surface", "Mode", "Lc", "WCAG", "Result"})
			t.AlignRight(2, 3)
			failed := 0
			for _, f := range findings {
				status := "ok"
				if !f.Pass {
					status = "FAIL"
					failed++
				}
				if f.Pass && a.quiet {
					continue
				}
				t.AddRow(f.Slug, string(f.Mode), fmt.Sprintf("%.1f", f.Contrast), fmt.Sprintf("%.2f:1", f.Ratio), status)
			}

			out := cmd.OutOrStdout()
			if t.Len() > 0 {
				fmt.Fprint(out, t.Render())
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d surface modes below Lc %.0f", errCheckFailed, failed, len(findings), target)
			}
			if !a.quiet {
				fmt.Fprintf(out, "✓ %d surface modes reach Lc %.0f\n", len(findings), target)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "theme configuration file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
