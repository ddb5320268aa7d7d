package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hello = `scene $1 {
    setup:
        say "Hello, World!"
    action:
    cleanup:
}
start: $1
`

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"--color", "off"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "hello.ntr", hello)

	code, stdout, stderr := runCLI(t, "build", "--ui", "off", "--no-cache", path)
	require.Equal(t, 0, code, stderr)
	want := filepath.Join(dir, "hello.go")
	assert.Equal(t, "compiled "+path+" -> "+want+"\n", stdout)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Contains(t, string(data), `say("Hello, World!")`)
}

func TestBuildCommandReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.ntr", strings.Replace(hello, "start: $1\n", "", 1))

	code, stdout, stderr := runCLI(t, "build", "--ui", "off", "--no-cache", path)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "ERROR: missing start scene declaration")
	assert.NoFileExists(t, filepath.Join(dir, "broken.go"))
}

func TestBuildCommandJSONDiagnostics(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "broken.ntr", "scene $1 {\n    setup:\n        say \"open\n")

	code, stdout, _ := runCLI(t, "build", "--ui", "off", "--no-cache", "--diag-format", "json", path)
	assert.Equal(t, 1, code)

	var got struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code  string `json:"code"`
			Phase string `json:"phase"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got), stdout)
	require.Equal(t, 1, got.Count)
	assert.True(t, strings.HasPrefix(got.Diagnostics[0].Code, "LEX"), got.Diagnostics[0].Code)
}

func TestBuildCommandTreeAndSymtab(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "hello.ntr", hello)

	code, stdout, stderr := runCLI(t, "-q", "build", "--ui", "off", "--no-cache", "--inert", "--tree", "--symtab", path)
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "program\n"), stdout)
	assert.Contains(t, stdout, "GLOBAL.$1 : [$1, scene_block $1, scene, ")
	assert.NoFileExists(t, filepath.Join(dir, "hello.go"))
}

func TestBuildCommandRejectsFlags(t *testing.T) {
	code, _, stderr := runCLI(t, "build", "--diag-format", "xml", "x.ntr")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown --diag-format "xml"`)

	code, _, stderr = runCLI(t, "build", "--ui", "sometimes", "x.ntr")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid --ui value")
}

func TestInitThenBuild(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cave")

	code, stdout, stderr := runCLI(t, "init", dir)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "narratr.toml")
	assert.FileExists(t, filepath.Join(dir, "narratr.toml"))
	assert.FileExists(t, filepath.Join(dir, "main.ntr"))

	code, _, stderr = runCLI(t, "init", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "project already initialized")

	code, _, stderr = runCLI(t, "-q", "build", "--ui", "off", "--no-cache", filepath.Join(dir, "main.ntr"))
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(dir, "build", "main.go"))
}

func TestTokenizeCommand(t *testing.T) {
	path := writeSource(t, t.TempDir(), "hello.ntr", hello)

	code, stdout, stderr := runCLI(t, "tokenize", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Hello, World!")

	code, stdout, _ = runCLI(t, "tokenize", "--format", "json", path)
	require.Equal(t, 0, code)
	var toks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &toks))
	assert.NotEmpty(t, toks)
}

func TestParseCommand(t *testing.T) {
	path := writeSource(t, t.TempDir(), "hello.ntr", hello)

	code, stdout, stderr := runCLI(t, "parse", path)
	require.Equal(t, 0, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "program\n"), stdout)

	code, stdout, _ = runCLI(t, "parse", "--symtab", path)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "GLOBAL.$1")

	code, _, stderr = runCLI(t, "parse", filepath.Join(t.TempDir(), "missing.ntr"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot read")
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json")
	require.Equal(t, 0, code)
	var got versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "narratr", got.Tool)
	assert.NotEmpty(t, got.Version)

	code, stdout, _ = runCLI(t, "version")
	require.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "narratr "), stdout)
}
