// Package diagfmt renders errors, token streams, syntax trees and symbol
// tables for the command line.
package diagfmt

import (
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto uses a path relative to the working directory when it is shorter.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeBasename
)

// PrettyOpts configures human-readable error output.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the failing line.
	Context  int
	PathMode PathMode
	// NoSource prints only the headline.
	NoSource bool
}

// JSONOpts configures JSON error output.
type JSONOpts struct {
	PathMode PathMode
}

func formatPath(p string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(p); err == nil {
			return abs
		}
	case PathModeBasename:
		return filepath.Base(p)
	default:
		wd, err := os.Getwd()
		if err != nil || !filepath.IsAbs(p) {
			return p
		}
		if rel, err := filepath.Rel(wd, p); err == nil && len(rel) < len(p) {
			return rel
		}
	}
	return p
}

// palette returns c with colouring forced on or off.
func palette(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
