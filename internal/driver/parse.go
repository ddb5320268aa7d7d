package driver

import (
	"context"

	"narratr/internal/ast"
	"narratr/internal/parser"
	"narratr/internal/source"
	"narratr/internal/symtab"
	"narratr/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Program *ast.Program
	Symbols *symtab.Table
}

// Parse loads and parses path without generating code.
func Parse(ctx context.Context, path string, opts parser.Options) (*ParseResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeUnit, "parse_file")
	span.WithExtra("path", path)
	defer span.End("")

	fs := source.NewFileSet()
	file, err := load(fs, path)
	if err != nil {
		span.Fail(err)
		return nil, err
	}
	res := &ParseResult{FileSet: fs, File: file}
	res.Program, res.Symbols, err = parser.ParseFile(ctx, file, opts)
	if err != nil {
		span.Fail(err)
	}
	return res, err
}
