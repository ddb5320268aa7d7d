// Package version holds the compiler version. The variables can be
// overridden at build time with -ldflags "-X narratr/internal/version.Version=...".
package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/mod/semver"
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version, with the leading "v".
	Version = "v0.1.0-dev"

	GitCommit = ""

	// BuildDate is ISO-8601 when set.
	BuildDate = ""
)

// Valid reports whether Version is a well-formed semantic version.
func Valid() bool {
	return semver.IsValid(Version)
}

// AtLeast reports whether the running compiler satisfies min. Prerelease
// builds of min itself count as satisfying it.
func AtLeast(min string) bool {
	if !semver.IsValid(min) {
		return false
	}
	cur := Version
	if semver.Prerelease(cur) != "" && semver.Compare(semver.Canonical(strings.TrimSuffix(cur, semver.Prerelease(cur))), min) >= 0 {
		return true
	}
	return semver.Compare(cur, min) >= 0
}

// Colored renders Version with one colour per component.
func Colored() string {
	v := strings.TrimPrefix(Version, "v")
	pre := ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v, pre = v[:i], v[i:]
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2]) + pre
}

// Banner is the text printed by `narratr version`.
func Banner() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "narratr %s\n", Colored())
	if GitCommit != "" {
		fmt.Fprintf(&sb, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, "built:  %s\n", BuildDate)
	}
	return sb.String()
}
