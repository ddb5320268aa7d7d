package driver

import (
	"narratr/internal/diag"
	"narratr/internal/lexer"
	"narratr/internal/source"
	"narratr/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize lexes path. On a lexical error the tokens read so far are kept.
func Tokenize(path string, opts lexer.Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	file, err := load(fs, path)
	if err != nil {
		return nil, err
	}
	toks, err := lexer.Tokenize(file, opts)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: toks}, err
}

func load(fs *source.FileSet, path string) (*source.File, error) {
	id, err := fs.Load(path)
	if err != nil {
		return nil, diag.Errorf(diag.IOLoadFileError, source.Span{}, 0, "cannot read %s: %v", path, unwrapPathErr(err))
	}
	return fs.Get(id), nil
}
