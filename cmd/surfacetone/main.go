// Surfacetone - A perceptual surface lightness solver
//
// Surfacetone computes background, text and border lightness for UI
// surfaces so every surface reaches a target contrast in light and dark
// themes.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/surfacetone/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
