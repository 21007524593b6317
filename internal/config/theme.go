package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jmylchreest/surfacetone/internal/solver"
)

// LoadSolverConfig reads a solver configuration document. The format is
// taken from the file extension (.json, .yaml, .yml, .toml). A path of "-"
// reads JSON from stdin.
func LoadSolverConfig(path string) (solver.Config, error) {
	if path == "-" {
		return ParseSolverConfig(os.Stdin, "json")
	}

	format := formatFromPath(path)
	if format == "" {
		return solver.Config{}, fmt.Errorf("unsupported config format %q (want .json, .yaml or .toml)", filepath.Ext(path))
	}

	//nolint:gosec // G304: config path is supplied by the user
	f, err := os.Open(path)
	if err != nil {
		return solver.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseSolverConfig(f, format)
	if err != nil {
		return solver.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseSolverConfig decodes a solver configuration document in format.
func ParseSolverConfig(r io.Reader, format string) (solver.Config, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return solver.Config{}, fmt.Errorf("parse config: %w", err)
	}

	var cfg solver.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return solver.Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	}
	return ""
}
