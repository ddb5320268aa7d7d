package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"narratr/internal/ast"
	"narratr/internal/codegen"
	"narratr/internal/diag"
	"narratr/internal/lexer"
	"narratr/internal/observ"
	"narratr/internal/parser"
	"narratr/internal/project"
	"narratr/internal/source"
	"narratr/internal/symtab"
	"narratr/internal/trace"
)

// Options controls one compilation.
type Options struct {
	// Output is the destination file. Empty derives <base>.go inside OutDir.
	Output string
	// OutDir defaults to the directory of the input.
	OutDir string
	// Inert stops after parsing; nothing is generated or written.
	Inert bool
	// KeepTree forces a full parse even when the cache has the output.
	KeepTree bool
	NoFormat bool
	Lexer    lexer.Options
	Cache    *Cache
	Observer PhaseObserver
}

// Result describes a compilation, successful or not. File is set as soon as
// the source is loaded so callers can quote it in diagnostics.
type Result struct {
	Path    string
	File    *source.File
	Program *ast.Program
	Symbols *symtab.Table
	Code    []byte
	Output  string // written file, empty for inert builds
	Cached  bool
	Timer   *observ.Timer

	observer PhaseObserver
}

// Compile runs load, lex, parse, codegen and write for path. The output file
// is only touched after every earlier phase succeeded.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopeUnit, "compile")
	span.WithExtra("path", path)

	res := &Result{Path: path, Timer: observ.NewTimer(), observer: opts.Observer}
	err := res.run(ctx, opts)
	if err != nil {
		span.Fail(err)
	}
	detail := "ok"
	switch {
	case err != nil:
		detail = "failed"
	case res.Cached:
		detail = "cached"
	}
	span.End(detail)
	return res, err
}

func (r *Result) run(ctx context.Context, opts Options) error {
	fileSet := source.NewFileSet()
	if err := r.phase(ctx, "load", func(context.Context) (err error) {
		r.File, err = load(fileSet, r.Path)
		return err
	}); err != nil {
		return err
	}

	out := opts.Output
	if out == "" {
		out = OutputPath(r.Path, opts.OutDir)
	}
	srcName := filepath.Base(r.Path)

	var key project.Digest
	useCache := opts.Cache != nil && !opts.Inert && !opts.KeepTree
	if useCache {
		key = CacheKey(r.File, srcName, opts.NoFormat)
		if hit, ok, err := opts.Cache.Get(key); err == nil && ok {
			r.Cached = true
			r.Code = hit.Code
			return r.phase(ctx, "write", func(context.Context) error {
				return r.write(out)
			})
		}
	}

	if err := r.phase(ctx, "lex", func(context.Context) error {
		_, err := lexer.Tokenize(r.File, opts.Lexer)
		return err
	}); err != nil {
		return err
	}
	if err := r.phase(ctx, "parse", func(ctx context.Context) (err error) {
		r.Program, r.Symbols, err = parser.ParseFile(ctx, r.File, parser.Options{Lexer: opts.Lexer})
		return err
	}); err != nil {
		return err
	}
	if opts.Inert {
		return nil
	}
	if err := r.phase(ctx, "codegen", func(context.Context) (err error) {
		r.Code, err = codegen.Generate(r.Program, r.Symbols.View(), codegen.Options{Source: srcName, NoFormat: opts.NoFormat})
		return err
	}); err != nil {
		return err
	}
	if err := r.phase(ctx, "write", func(context.Context) error {
		return r.write(out)
	}); err != nil {
		return err
	}
	if useCache {
		if err := opts.Cache.Put(key, &CachePayload{Source: srcName, Code: r.Code}); err != nil {
			trace.Point(trace.FromContext(ctx), trace.ScopeUnit, "cache_put_failed", err.Error())
		}
	}
	return nil
}

// phase runs fn inside a trace span and a timer entry.
func (r *Result) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := trace.Start(ctx, trace.ScopePhase, name)
	r.notify(PhaseEvent{Path: r.Path, Name: name, Status: PhaseStart})
	started := time.Now()
	err := r.Timer.Measure(name, func() error { return fn(ctx) })
	status := PhaseEnd
	if err != nil {
		span.Fail(err)
		status = PhaseFailed
	}
	span.End("")
	r.notify(PhaseEvent{Path: r.Path, Name: name, Status: status, Elapsed: time.Since(started)})
	return err
}

func (r *Result) notify(ev PhaseEvent) {
	if r.observer != nil {
		r.observer(ev)
	}
}

func (r *Result) write(out string) error {
	if err := writeAtomic(out, r.Code); err != nil {
		return diag.Errorf(diag.IOWriteError, source.Span{}, 0, "cannot write %s: %v", out, unwrapPathErr(err))
	}
	r.Output = out
	return nil
}

// OutputPath is <outDir>/<base>.go, with outDir defaulting to the input's directory.
func OutputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".go"
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, base)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// unwrapPathErr drops the op/path prefix of *fs.PathError; callers print the path themselves.
func unwrapPathErr(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
