// Package project reads narratr.toml, the optional manifest that sets the
// output directory and build defaults for the sources next to it.
package project

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"

	"narratr/internal/diag"
	"narratr/internal/source"
	"narratr/internal/version"
)

// Manifest is a loaded narratr.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name       string `toml:"name"`
	MinVersion string `toml:"min_version,omitempty"`
	Main       string `toml:"main,omitempty"` // default input for `narratr build`
}

type BuildConfig struct {
	OutDir string `toml:"out_dir,omitempty"`
	Jobs   int    `toml:"jobs,omitempty"`
	Cache  *bool  `toml:"cache,omitempty"`
}

// Load finds and parses the manifest governing startDir. ok is false when
// there is none.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, manifestErr("%s: failed to parse TOML: %v", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, manifestErr("%s: missing [package]", path)
	}
	if strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, manifestErr("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, manifestErr("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, manifestErr("%s: [build].jobs must not be negative", path)
	}
	if v := cfg.Package.MinVersion; v != "" {
		if !semver.IsValid(v) {
			return Config{}, manifestErr("%s: [package].min_version %q is not a semantic version like v0.1.0", path, v)
		}
		if !version.AtLeast(v) {
			return Config{}, diag.Errorf(diag.PrjVersion, source.Span{}, 0,
				"%s requires narratr %s or newer, this is %s", path, v, version.Version)
		}
	}
	return cfg, nil
}

func manifestErr(format string, args ...any) error {
	return diag.Errorf(diag.PrjManifest, source.Span{}, 0, format, args...)
}

// OutDir is the absolute output directory, or "" when not configured.
func (m *Manifest) OutDir() string {
	if m == nil || m.Config.Build.OutDir == "" {
		return ""
	}
	if filepath.IsAbs(m.Config.Build.OutDir) {
		return m.Config.Build.OutDir
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Build.OutDir))
}

// CacheEnabled defaults to true.
func (m *Manifest) CacheEnabled() bool {
	if m == nil || m.Config.Build.Cache == nil {
		return true
	}
	return *m.Config.Build.Cache
}

// MainPath is the manifest's default input, or "".
func (m *Manifest) MainPath() string {
	if m == nil || m.Config.Package.Main == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Package.Main))
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}
