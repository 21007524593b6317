// Package cli provides the command-line interface for surfacetone.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/surfacetone/internal/config"
	"github.com/jmylchreest/surfacetone/internal/solver"
	"github.com/jmylchreest/surfacetone/internal/version"
)

// app carries state shared by the commands of one root command.
type app struct {
	verbose      bool
	quiet        bool
	settingsPath string

	settings config.Settings
	logger   hclog.Logger
}

// settingFlags maps tunable flags to their setting keys.
var settingFlags = map[string]string{
	"epsilon":           config.KeyEpsilon,
	"max-iterations":    config.KeyMaxIterations,
	"stagger":           config.KeyStagger,
	"text-contrast":     config.KeyTextContrast,
	"border-contrast":   config.KeyBorderContrast,
	"border-separation": config.KeyBorderSeparation,
	"format":            config.KeyOutputFormat,
}

// NewRootCmd builds the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{logger: hclog.NewNullLogger()}

	rootCmd := &cobra.Command{
		Use:   "surfacetone",
		Short: "Solve perceptually balanced surface lightness for light and dark themes",
		Long: `surfacetone computes background, text and border lightness for a set of UI
surfaces so that each one reaches a target perceptual contrast, in both light
and dark modes.

Surfaces are declared in groups between a pair of anchor backgrounds. The
solver interpolates a contrast target for every surface and finds the
background lightness that reaches it.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	defaults := solver.DefaultOptions()
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&a.settingsPath, "settings", "", "settings file (default $XDG_CONFIG_HOME/surfacetone/settings.yaml)")
	flags.Float64("epsilon", defaults.Epsilon, "contrast tolerance of every search")
	flags.Int("max-iterations", defaults.MaxIterations, "iteration bound of every search")
	flags.Float64("stagger", defaults.Stagger, "contrast separation of surfaces sharing a group, as a fraction of a step")
	flags.Float64("text-contrast", defaults.Targets.Text, "target contrast (Lc) of text against its surface")
	flags.Float64("border-contrast", defaults.Targets.Border, "target contrast (Lc) of borders against their surface")
	flags.Float64("border-separation", defaults.Targets.BorderSeparation, "minimum contrast (Lc) between borders and text")
	flags.String("format", config.FormatJSON, "output format (json, table)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newPreviewCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))

	return rootCmd
}

// init configures logging and resolves settings for the running command.
func (a *app) init(cmd *cobra.Command) error {
	level := hclog.Warn
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "surfacetone",
		Output: cmd.ErrOrStderr(),
		Level:  level,
	})

	path := a.settingsPath
	if path == "" {
		if p, err := config.DefaultSettingsPath(); err == nil {
			path = p
		}
	}

	overrides := make(map[string]any)
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if key, ok := settingFlags[f.Name]; ok {
			overrides[key] = f.Value.String()
		}
	})

	settings, err := config.LoadSettings(path, overrides)
	if err != nil {
		return err
	}
	a.settings = settings
	a.logger.Debug("settings resolved", "path", path, "options", fmt.Sprintf("%+v", settings.Solver), "format", settings.Format)
	return nil
}

// newSolver returns a solver configured from the resolved settings.
func (a *app) newSolver() *solver.Solver {
	return solver.New(
		solver.WithLogger(a.logger),
		solver.WithOptions(a.settings.Solver),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
