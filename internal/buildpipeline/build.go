// Package buildpipeline compiles several source files concurrently and
// reports per-file progress.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"narratr/internal/diag"
	"narratr/internal/driver"
	"narratr/internal/source"
	"narratr/internal/trace"
)

// ErrBuildFailed is wrapped by the error Build returns when any file failed.
var ErrBuildFailed = errors.New("build failed")

// Request configures a build.
type Request struct {
	Files []string
	// Jobs limits concurrent compilations; zero means GOMAXPROCS.
	Jobs int
	// Options is applied to every file. Options.Output is only allowed for a
	// single file.
	Options  driver.Options
	Progress ProgressSink
	// Reporter, when set, receives the diagnostic of every failed file.
	Reporter diag.Reporter
}

// FileResult is the outcome for one input.
type FileResult struct {
	Path    string
	Result  *driver.Result
	Err     error
	Timings Timings
}

// Result holds per-file outcomes in input order.
type Result struct {
	Files   []FileResult
	Timings Timings
	Elapsed time.Duration
}

// Failed returns the results that carry an error.
func (r Result) Failed() []FileResult {
	var out []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// Build compiles every file of req. A failing file does not stop the others;
// cancelling ctx does.
func Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	if len(req.Files) == 0 {
		return result, fmt.Errorf("no input files")
	}
	if req.Options.Output != "" && len(req.Files) > 1 {
		return result, fmt.Errorf("an explicit output path needs exactly one input, got %d", len(req.Files))
	}
	if dup := firstDuplicateOutput(req); dup != "" {
		return result, fmt.Errorf("several inputs would be written to %s", dup)
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build")
	span.WithExtra("files", fmt.Sprint(len(req.Files)))
	defer span.End("")

	started := time.Now()
	emitQueued(req.Progress, req.Files)

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	result.Files = make([]FileResult, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(req.Files)))
	for i, path := range req.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.Files[i] = compileOne(gctx, path, req)
			if errors.Is(result.Files[i].Err, context.Canceled) {
				return result.Files[i].Err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.Fail(err)
		return result, err
	}

	for _, f := range result.Files {
		for stage, dur := range f.Timings.stages {
			result.Timings.Add(stage, dur)
		}
	}
	result.Elapsed = time.Since(started)

	if failed := result.Failed(); len(failed) > 0 {
		err := fmt.Errorf("%w: %d of %d file(s) had errors", ErrBuildFailed, len(failed), len(req.Files))
		emitOverall(req.Progress, StatusError, err, result.Elapsed)
		span.Fail(err)
		return result, err
	}
	emitOverall(req.Progress, StatusDone, nil, result.Elapsed)
	return result, nil
}

func compileOne(ctx context.Context, path string, req *Request) FileResult {
	opts := req.Options
	var (
		current Stage
		timings Timings
	)
	// Compile calls the observer synchronously on this goroutine.
	opts.Observer = func(ev driver.PhaseEvent) {
		if req.Options.Observer != nil {
			req.Options.Observer(ev)
		}
		stage := stageOf(ev.Name)
		if ev.Status != driver.PhaseStart {
			timings.Add(stage, ev.Elapsed)
			return
		}
		if stage != current {
			current = stage
			emit(req.Progress, Event{File: path, Stage: stage, Status: StatusWorking})
		}
	}

	started := time.Now()
	res, err := driver.Compile(ctx, path, opts)
	elapsed := time.Since(started)
	switch {
	case err != nil:
		var id source.FileID
		if res != nil && res.File != nil {
			id = res.File.ID
		}
		diag.ReportError(req.Reporter, id, err)
		emit(req.Progress, Event{File: path, Stage: current, Status: StatusError, Err: err, Elapsed: elapsed})
	case res.Cached:
		emit(req.Progress, Event{File: path, Stage: StageWrite, Status: StatusCached, Elapsed: elapsed})
	default:
		emit(req.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: elapsed})
	}
	return FileResult{Path: path, Result: res, Err: err, Timings: timings}
}

func firstDuplicateOutput(req *Request) string {
	if req.Options.Output != "" || req.Options.Inert {
		return ""
	}
	outs := make([]string, 0, len(req.Files))
	for _, f := range req.Files {
		out, err := filepath.Abs(driver.OutputPath(f, req.Options.OutDir))
		if err != nil {
			out = driver.OutputPath(f, req.Options.OutDir)
		}
		outs = append(outs, out)
	}
	slices.Sort(outs)
	for i := 1; i < len(outs); i++ {
		if outs[i] == outs[i-1] {
			return outs[i]
		}
	}
	return ""
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

func emitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		emit(sink, Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitOverall(sink ProgressSink, status Status, err error, elapsed time.Duration) {
	emit(sink, Event{Stage: StageWrite, Status: status, Err: err, Elapsed: elapsed})
}
