package main

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"narratr/internal/diagfmt"
)

const watchDebounce = 150 * time.Millisecond

// watchBuild builds once and then again whenever one of the inputs is
// written, until the command context is cancelled.
func watchBuild(cmd *cobra.Command, plan *buildPlan, f *buildFlags) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(plan.req.Files))
	dirs := make(map[string]bool)
	for _, file := range plan.req.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	// editors often replace files on save, so watch the directories
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	stderr := cmd.ErrOrStderr()
	rebuild := func() {
		if err := buildOnce(cmd, plan, f); err != nil && !errors.Is(err, errReported) {
			diagfmt.Error(stderr, err, nil, diagfmt.PrettyOpts{})
		}
	}
	rebuild()
	if !quiet(cmd) {
		printf(stderr, "watching %d file(s), press Ctrl-C to stop\n", len(targets))
	}

	ctx := cmd.Context()
	fire := make(chan struct{}, 1)
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !targets[abs] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			if !quiet(cmd) {
				printf(stderr, "change detected, rebuilding\n")
			}
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printf(stderr, "watch: %v\n", err)
		}
	}
}
