package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"narratr/internal/project"
)

const defaultMain = "main.ntr"

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path|name]",
		Short: "Create a narratr project",
		Long: `Init writes a narratr.toml manifest and a hello-world main.ntr into the
target directory (the current one by default), creating it when needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	manifestPath := filepath.Join(target, project.ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "story"
	}
	data, err := project.Encode(project.Config{
		Package: project.PackageConfig{Name: name, Main: defaultMain},
		Build:   project.BuildConfig{OutDir: "build"},
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, defaultMain)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(helloStory), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", defaultMain, err)
		}
		createdMain = true
	}

	if quiet(cmd) {
		return nil
	}
	out := cmd.OutOrStdout()
	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err := filepath.Rel(wd, target); err == nil {
			rel = r
		}
	}
	printf(out, "Initialized narratr project in %s\n", rel)
	printf(out, "  - %s\n", project.ManifestName)
	if createdMain {
		printf(out, "  - %s\n", defaultMain)
	} else {
		printf(out, "  - %s (existing)\n", defaultMain)
	}
	return nil
}

const helloStory = `scene $1 {
    setup:
        exposition "You wake up in a small room."
        moves up($2)
    action:
        say "Type 'move up' to leave, or 'exit' to quit."
    cleanup:
}

scene $2 {
    setup:
        win "You found the way out."
    action:
    cleanup:
}

start: $1
`
