package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/turtlefmt/formatter"
)

const (
	messy = "@prefix : <http://example.com/> .\n:b :p 2 . :a :p 1 .\n"
	tidy  = "@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n@prefix : <http://example.com/> .\n\n:a :p 1 .\n\n:b :p 2 .\n"
)

type result struct {
	stdout, stderr string
	err            error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatStdin(t *testing.T) {
	res := run(t, messy, "format")
	require.NoError(t, res.err)
	assert.Equal(t, tidy, res.stdout)
}

func TestFormatStdinJSONLD(t *testing.T) {
	res := run(t, `{"@id": "http://example.com/s", "http://example.com/p": {"@id": "http://example.com/o"}}`,
		"format", "--input-format", "jsonld")
	require.NoError(t, res.err)
	assert.Equal(t, "<http://example.com/s> <http://example.com/p> <http://example.com/o> .\n", res.stdout)
}

func TestFormatUnknownInputFormat(t *testing.T) {
	res := run(t, messy, "format", "--input-format", "rdfxml")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "rdfxml")
}

func TestFormatFilesToStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ttl", messy)

	res := run(t, "", "format", path)
	require.NoError(t, res.err)
	assert.Equal(t, tidy, res.stdout)
	assert.Equal(t, messy, readFile(t, path), "without -w the file is untouched")
}

func TestFormatWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ttl", messy)
	b := writeFile(t, dir, "nested/deep/b.ttl", messy)
	other := writeFile(t, dir, "notes.txt", "not turtle")

	res := run(t, "", "format", "-w", dir)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Equal(t, tidy, readFile(t, a))
	assert.Equal(t, tidy, readFile(t, b))
	assert.Equal(t, "not turtle", readFile(t, other))
}

func TestFormatGlob(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "x/a.ttl", messy)
	b := writeFile(t, dir, "y/b.ttl", messy)

	res := run(t, "", "format", "-w", filepath.Join(dir, "**", "a.ttl"))
	require.NoError(t, res.err)
	assert.Equal(t, tidy, readFile(t, a))
	assert.Equal(t, messy, readFile(t, b))

	res = run(t, "", "format", filepath.Join(dir, "**", "*.nothing"))
	assert.Error(t, res.err)
}

func TestFormatWritesJSONLDNextToInput(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "data.jsonld", `{"@id": "http://example.com/s", "http://example.com/p": {"@id": "http://example.com/o"}}`)

	res := run(t, "", "format", "-w", src)
	require.NoError(t, res.err)
	assert.Equal(t, "<http://example.com/s> <http://example.com/p> <http://example.com/o> .\n",
		readFile(t, filepath.Join(dir, "data.ttl")))
}

func TestFormatParseError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.ttl", "<http://example.com/s> <http://example.com/p> .\n")

	res := run(t, "", "format", path)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "bad.ttl")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ttl", tidy)
	bad := writeFile(t, dir, "bad.ttl", messy)

	res := run(t, "", "check", good)
	require.NoError(t, res.err)

	res = run(t, "", "check", dir)
	require.ErrorIs(t, res.err, ErrCheckFailed)
	assert.Contains(t, res.stderr, bad+" is not formatted")
	assert.NotContains(t, res.stderr, good)
	assert.Equal(t, messy, readFile(t, bad), "check never writes")

	res = run(t, messy, "check")
	assert.ErrorIs(t, res.err, ErrCheckFailed)
	res = run(t, tidy, "check")
	assert.NoError(t, res.err)
}

func TestStyleFlags(t *testing.T) {
	input := "@prefix : <http://example.com/> .\n:a :p ( 1 2 ) ; :q 3 .\n"

	res := run(t, input, "format", "--indent", "4", "--wrap", "always", "--eol", "crlf")
	require.NoError(t, res.err)
	want := strings.Join([]string{
		"@prefix rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .",
		"@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .",
		"@prefix : <http://example.com/> .",
		"",
		":a :p (",
		"    1",
		"    2",
		"    ) ;",
		"    :q 3 .",
		"",
	}, "\r\n")
	assert.Equal(t, want, res.stdout)

	res = run(t, input, "format", "--wrap", "sometimes")
	assert.ErrorIs(t, res.err, formatter.ErrInvalidStyle)

	res = run(t, input, "format", "--max-line-length", "0")
	assert.ErrorIs(t, res.err, formatter.ErrInvalidStyle)
}

func TestStyleFile(t *testing.T) {
	dir := t.TempDir()
	stylePath := writeFile(t, dir, "style.yaml", "indentSize: 3\nwrapListItems: NEVER\n")

	res := run(t, "", "style", "--style", stylePath, "--max-line-length", "60")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "indentSize: 3\n")
	assert.Contains(t, res.stdout, "wrapListItems: NEVER\n")
	assert.Contains(t, res.stdout, "maxLineLength: 60\n")

	parsed, err := formatter.ParseStyle([]byte(res.stdout))
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.IndentSize)

	res = run(t, "", "style", "--style", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, res.err)
}

func TestVersion(t *testing.T) {
	res := run(t, "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "turtlefmt version "+Version+"\n", res.stdout)
}

func TestLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ttl", messy)

	res := run(t, "", "--log-level", "info", "format", "-w", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "msg=formatted")
	assert.Contains(t, res.stderr, "changed=true")

	res = run(t, "", "format", "-w", path)
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ttl", "")
	b := writeFile(t, dir, "sub/b.nt", "")
	c := writeFile(t, dir, "sub/c.jsonld", "")
	writeFile(t, dir, "sub/d.txt", "")

	paths, err := expandPaths([]string{dir, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b, c}, paths)

	_, err = expandPaths([]string{filepath.Join(dir, "missing.ttl")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
