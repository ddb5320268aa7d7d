package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"narratr/internal/buildpipeline"
	"narratr/internal/diag"
	"narratr/internal/diagfmt"
	"narratr/internal/driver"
	"narratr/internal/project"
	"narratr/internal/source"
	"narratr/internal/trace"
	"narratr/internal/ui"
)

type buildFlags struct {
	output     string
	outDir     string
	tree       bool
	treeFormat string
	symtab     bool
	inert      bool
	jobs       int
	ui         string
	watch      bool
	noCache    bool
	noFormat   bool
	diagFormat string
}

type buildPlan struct {
	req      buildpipeline.Request
	manifest *project.Manifest
	useUI    bool
}

func newBuildCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build [flags] [file.ntr...]",
		Short: "Compile narratr sources to Go",
		Long: `Build compiles each source into a standalone Go program (package main).
Without arguments the [package].main entry of narratr.toml is built. The output
defaults to <name>.go next to the source, or inside [build].out_dir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := planBuild(cmd, args, &f)
			if err != nil {
				return err
			}
			if f.watch {
				return watchBuild(cmd, plan, &f)
			}
			return buildOnce(cmd, plan, &f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "output file (single input only)")
	fl.StringVar(&f.outDir, "out-dir", "", "output directory (overrides [build].out_dir)")
	fl.BoolVar(&f.tree, "tree", false, "print the syntax tree")
	fl.StringVar(&f.treeFormat, "tree-format", "pretty", "syntax tree format (pretty|json)")
	fl.BoolVar(&f.symtab, "symtab", false, "print the symbol table")
	fl.BoolVar(&f.inert, "inert", false, "parse only; do not generate code")
	fl.IntVarP(&f.jobs, "jobs", "j", 0, "parallel compilations (0 = [build].jobs or GOMAXPROCS)")
	fl.StringVar(&f.ui, "ui", "auto", "progress display (auto|on|off)")
	fl.BoolVarP(&f.watch, "watch", "w", false, "rebuild when a source changes")
	fl.BoolVar(&f.noCache, "no-cache", false, "ignore the output cache")
	fl.BoolVar(&f.noFormat, "no-format", false, "skip gofmt on the generated code")
	fl.StringVar(&f.diagFormat, "diag-format", "pretty", "error format (pretty|json)")
	return cmd
}

func planBuild(cmd *cobra.Command, args []string, f *buildFlags) (*buildPlan, error) {
	switch f.diagFormat {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unknown --diag-format %q (expected pretty|json)", f.diagFormat)
	}
	switch f.treeFormat {
	case "pretty", "json":
	default:
		return nil, fmt.Errorf("unknown --tree-format %q (expected pretty|json)", f.treeFormat)
	}
	mode, err := readMode("ui", f.ui)
	if err != nil {
		return nil, err
	}

	startDir := "."
	if len(args) > 0 {
		startDir = filepath.Dir(args[0])
	}
	manifest, _, err := project.Load(startDir)
	if err != nil {
		return nil, err
	}

	files := args
	if len(files) == 0 {
		entry := manifest.MainPath()
		if entry == "" {
			return nil, fmt.Errorf("no input files: pass file.ntr or set [package].main in %s", project.ManifestName)
		}
		files = []string{entry}
	}

	opts := driver.Options{
		Output:   f.output,
		OutDir:   f.outDir,
		Inert:    f.inert,
		KeepTree: f.tree || f.symtab,
		NoFormat: f.noFormat,
	}
	if opts.OutDir == "" {
		opts.OutDir = manifest.OutDir()
	}
	jobs := f.jobs
	if jobs == 0 && manifest != nil {
		jobs = manifest.Config.Build.Jobs
	}
	if manifest.CacheEnabled() && !f.noCache && !f.inert {
		if cache, err := driver.OpenCache("narratr"); err == nil {
			opts.Cache = cache
		} else {
			trace.Point(trace.FromContext(cmd.Context()), trace.ScopeDriver, "cache_unavailable", err.Error())
		}
	}

	useUI := resolveMode(mode, cmd.OutOrStdout()) &&
		!quiet(cmd) && !f.tree && !f.symtab && !f.watch && f.diagFormat == "pretty"
	return &buildPlan{
		req:      buildpipeline.Request{Files: files, Jobs: jobs, Options: opts},
		manifest: manifest,
		useUI:    useUI,
	}, nil
}

func buildOnce(cmd *cobra.Command, plan *buildPlan, f *buildFlags) error {
	ctx := cmd.Context()
	bag := diag.NewBag(len(plan.req.Files))
	req := plan.req
	req.Reporter = diag.BagReporter{Bag: bag}

	var (
		res buildpipeline.Result
		err error
	)
	if plan.useUI {
		res, err = ui.RunBuild(ctx, "narratr build", cmd.OutOrStdout(), req)
	} else {
		res, err = buildpipeline.Build(ctx, &req)
	}
	if err != nil && !errors.Is(err, buildpipeline.ErrBuildFailed) {
		return err
	}
	return report(cmd, plan, f, res, bag)
}

// report prints errors, dumps and the per-file summary. It returns
// errReported when any file failed.
func report(cmd *cobra.Command, plan *buildPlan, f *buildFlags, res buildpipeline.Result, bag *diag.Bag) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	useColor, err := colorEnabled(cmd, stderr)
	if err != nil {
		return err
	}
	many := len(res.Files) > 1

	var failed []diagfmt.Reported
	for _, fr := range res.Files {
		var file *source.File
		if fr.Result != nil {
			file = fr.Result.File
		}
		if fr.Err != nil {
			failed = append(failed, diagfmt.Reported{Err: fr.Err, File: file})
			if f.diagFormat == "pretty" {
				diagfmt.Error(stderr, fr.Err, file, diagfmt.PrettyOpts{Color: useColor, Context: 1})
			}
			continue
		}
		r := fr.Result
		if (f.tree || f.symtab) && many {
			printf(stdout, "== %s ==\n", fr.Path)
		}
		if f.tree && r.Program != nil {
			if err := writeTree(stdout, r, f.treeFormat); err != nil {
				return err
			}
		}
		if f.symtab && r.Symbols != nil {
			if err := diagfmt.FormatSymtab(stdout, r.Symbols.View().Entries()); err != nil {
				return err
			}
		}
		if !quiet(cmd) && !plan.useUI {
			switch {
			case r.Output == "":
				printf(stdout, "parsed %s\n", fr.Path)
			case r.Cached:
				printf(stdout, "compiled %s -> %s (cached)\n", fr.Path, r.Output)
			default:
				printf(stdout, "compiled %s -> %s\n", fr.Path, r.Output)
			}
		}
		if timingsEnabled(cmd) && !many {
			printf(stderr, "%s", r.Timer.Summary())
		}
	}
	if timingsEnabled(cmd) && many {
		printStageTimings(stderr, res.Timings, res.Elapsed)
	}
	if !bag.HasErrors() {
		return nil
	}
	if f.diagFormat == "json" {
		if err := diagfmt.FormatJSON(stdout, failed, diagfmt.JSONOpts{}); err != nil {
			return err
		}
	} else if many {
		printf(stderr, "%d of %d file(s) failed\n", bag.Len(), len(res.Files))
	}
	return errReported
}

func writeTree(w io.Writer, r *driver.Result, format string) error {
	if strings.EqualFold(format, "json") {
		return diagfmt.FormatTreeJSON(w, r.Program)
	}
	return diagfmt.FormatTree(w, r.Program)
}
