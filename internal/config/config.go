// Package config loads solver configuration documents and tool settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmylchreest/surfacetone/internal/solver"
)

// Setting keys.
const (
	KeyEpsilon          = "solver.epsilon"
	KeyMaxIterations    = "solver.max-iterations"
	KeyStagger          = "solver.stagger"
	KeyTextContrast     = "targets.text"
	KeyBorderContrast   = "targets.border"
	KeyBorderSeparation = "targets.border-separation"
	KeyOutputFormat     = "output.format"
)

const envPrefix = "SURFACETONE"

// Output formats.
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Settings are the tool settings: solver tunables and output preferences.
type Settings struct {
	Solver solver.Options
	Format string
}

// LoadSettings resolves settings using the precedence:
// defaults < settings file < environment variables < overrides.
// An empty path skips the settings file; a missing file is not an error.
func LoadSettings(path string, overrides map[string]any) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := mergeConfigFile(v, path); err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	for k, val := range overrides {
		v.Set(k, val)
	}

	s := Settings{
		Solver: solver.Options{
			Epsilon:       v.GetFloat64(KeyEpsilon),
			MaxIterations: v.GetInt(KeyMaxIterations),
			Stagger:       v.GetFloat64(KeyStagger),
			Targets: solver.Targets{
				Text:             v.GetFloat64(KeyTextContrast),
				Border:           v.GetFloat64(KeyBorderContrast),
				BorderSeparation: v.GetFloat64(KeyBorderSeparation),
			},
		},
		Format: strings.ToLower(v.GetString(KeyOutputFormat)),
	}

	if s.Solver.Epsilon <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %v", KeyEpsilon, s.Solver.Epsilon)
	}
	if s.Solver.MaxIterations <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", KeyMaxIterations, s.Solver.MaxIterations)
	}
	if s.Format != FormatJSON && s.Format != FormatTable {
		return Settings{}, fmt.Errorf("unknown output format %q (want %s or %s)", s.Format, FormatJSON, FormatTable)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	defaults := solver.DefaultOptions()
	v.SetDefault(KeyEpsilon, defaults.Epsilon)
	v.SetDefault(KeyMaxIterations, defaults.MaxIterations)
	v.SetDefault(KeyStagger, defaults.Stagger)
	v.SetDefault(KeyTextContrast, defaults.Targets.Text)
	v.SetDefault(KeyBorderContrast, defaults.Targets.Border)
	v.SetDefault(KeyBorderSeparation, defaults.Targets.BorderSeparation)
	v.SetDefault(KeyOutputFormat, FormatJSON)
}

func mergeConfigFile(v *viper.Viper, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	//nolint:gosec // G304: settings path is supplied by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if ext := formatFromPath(path); ext != "" {
		v.SetConfigType(ext)
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// DefaultSettingsPath returns ~/.config/surfacetone/settings.yaml.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config dir: %w", err)
	}
	return filepath.Join(dir, "surfacetone", "settings.yaml"), nil
}
