package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/fsnotify/fsnotify"
	"github.com/nocap-js/nocap"
	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/printer"
)

type runResult struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// js returns src as the CLI prints it when there is no slang to rewrite.
func js(t *testing.T, src string) string {
	t.Helper()
	program, err := parser.Parse(context.Background(), src)
	assert.NoError(t, err)
	return printer.Print(program)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUsage(t *testing.T) {
	res := run(t, "")
	assert.ErrorIs(t, res.err, errUsage)
	assert.Equal(t, res.err.Error(), "Usage: nocap <file>")
	assert.Equal(t, res.stdout, "")
}

func TestRewriteFile(t *testing.T) {
	path := writeFile(t, "app.js", "deadass(ok, () => {\n  print(\"hi\")\n})\n")
	res := run(t, "", path)
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, `if (ok) { console.log("hi") }`))
}

func TestRewriteCodeAndStdin(t *testing.T) {
	res := run(t, "", "-c", "yap(1)")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "console.warn(1)"))

	res = run(t, "panic(e)", "--stdin")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "console.error(e)"))
}

func TestMultipleInputs(t *testing.T) {
	path := writeFile(t, "app.js", "x")
	res := run(t, "", "-c", "x", path)
	assert.Error(t, res.err)
	assert.Equal(t, res.err.Error(), "multiple input sources specified")
}

func TestMissingFile(t *testing.T) {
	res := run(t, "", filepath.Join(t.TempDir(), "missing.js"))
	assert.Error(t, res.err)
	assert.True(t, os.IsNotExist(res.err))
}

func TestParseError(t *testing.T) {
	res := run(t, "", "-c", "deadass(x, () => {")
	assert.Error(t, res.err)
	assert.Equal(t, res.stdout, "")
}

func TestWriteInPlace(t *testing.T) {
	path := writeFile(t, "app.js", "print(1)")
	res := run(t, "", "-w", path)
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, "")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(data), js(t, "console.log(1)"))
}

func TestWriteRequiresFile(t *testing.T) {
	res := run(t, "", "-w", "-c", "print(1)")
	assert.Error(t, res.err)
	assert.Equal(t, res.err.Error(), "--write requires a file argument")
}

func TestOutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "build", "out.js")
	res := run(t, "", "-c", "print(1)", "-o", out)
	assert.NoError(t, res.err)

	data, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, string(data), js(t, "console.log(1)"))
}

func TestNamingFlags(t *testing.T) {
	res := run(t, "", "-c", "spinBack(2, () => vibeCheck(() => a(), () => b()))",
		"--loop-var", "n", "--catch-param", "oops")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "for (let n = 0; n < 2; n++) { try { a() } catch (oops) { b() } }"))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("NOCAP_LOOP_VAR", "k")
	res := run(t, "", "-c", "spinBack(1, () => {})")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "for (let k = 0; k < 1; k++) {}"))
}

func TestConfigFile(t *testing.T) {
	config := writeFile(t, "nocap.yaml", "catch-param: problem\n")
	res := run(t, "", "--config", config, "-c", "vibeCheck(() => a(), () => b())")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "try { a() } catch (problem) { b() }"))
}

func TestVerbose(t *testing.T) {
	res := run(t, "", "-v", "--no-color", "-c", "print(1)\nsus()")
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, js(t, "console.log(1)\nsus()"))
	assert.Contains(t, res.stderr, "rule=print")
	assert.Contains(t, res.stderr, "outcome=\"shape mismatch\"")
}

func TestASTCommand(t *testing.T) {
	res := run(t, "", "ast", "-c", "print(1)")
	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"type": "Program"`)
	assert.Contains(t, res.stdout, `"type": "CallExpression"`)
	assert.Contains(t, res.stdout, `"value": "print"`)
	assert.False(t, strings.Contains(res.stdout, "console"))

	res = run(t, "", "ast", "--rewrite", "-c", "print(1)")
	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"value": "console"`)
	assert.Contains(t, res.stdout, `"type": "MemberExpression"`)
}

func TestASTJSONShape(t *testing.T) {
	src := "x = a + 1"
	program, err := nocap.Parse(context.Background(), src)
	assert.NoError(t, err)
	root := nodeToJSON(program, parser.NewFile("", src))
	assert.Equal(t, root.Type, "Program")
	assert.Len(t, root.Children, 1)

	stmt := root.Children[0]
	assert.Equal(t, stmt.Type, "ExpressionStatement")
	assign := stmt.Children[0]
	assert.Equal(t, assign.Type, "AssignExpression")
	assert.Len(t, assign.Children, 2)

	x := assign.Children[0]
	assert.Equal(t, x.Type, "Identifier")
	assert.Equal(t, x.Value, any("x"))
	assert.Equal(t, x.Line, 1)
	assert.Equal(t, x.Column, 1)

	sum := assign.Children[1]
	assert.Equal(t, sum.Type, "BinaryExpression")
	a := sum.Children[0]
	assert.Equal(t, a.Value, any("a"))
	assert.Equal(t, a.Column, 5)
}

func TestCheckCommand(t *testing.T) {
	path := writeFile(t, "app.js", "print(1)\nspinBack(n, () => {})\n")
	res := run(t, "", "check", path)
	var exit *exitError
	assert.True(t, errors.As(res.err, &exit))
	assert.Equal(t, exit.code, 1)
	assert.Equal(t, res.stdout, path+":2:1: spinBack argument 1 must be a number literal\n")

	clean := writeFile(t, "clean.js", "print(1)\n")
	res = run(t, "", "check", clean)
	assert.NoError(t, res.err)
	assert.Equal(t, res.stdout, "")
}

func TestCheckFriendly(t *testing.T) {
	res := run(t, "", "check", "--friendly", "--no-color", "-c", "bet(a, () => {})")
	assert.Error(t, res.err)
	assert.Contains(t, res.stdout, "E2003")
	assert.Contains(t, res.stdout, "bet(a, () => {})")
}

func TestCheckAggregatesErrors(t *testing.T) {
	bad := writeFile(t, "bad.js", "deadass(")
	missing := filepath.Join(t.TempDir(), "missing.js")
	good := writeFile(t, "good.js", "x = lowkey(a)")

	res := run(t, "", "check", bad, missing, good)
	var exit *exitError
	assert.True(t, errors.As(res.err, &exit))
	assert.Contains(t, res.stderr, "missing.js")
	assert.Contains(t, res.stderr, "bad.js")
	assert.Contains(t, res.stdout, "lowkey expected 2 arguments, got 1")
}

func TestDocsCommand(t *testing.T) {
	res := run(t, "", "docs", "deadass")
	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"signature": "deadass(expression, arrow function)"`)

	res = run(t, "", "docs", "--category", "aliases")
	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, "console.error")
}

func TestVersionCommand(t *testing.T) {
	res := run(t, "", "version")
	assert.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "nocap dev"))

	res = run(t, "", "version", "-o", "json")
	assert.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"version":"dev"`)
}

func TestIsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.js")
	assert.True(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Write}, path))
	assert.True(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Create}, path))
	assert.False(t, isChange(fsnotify.Event{Name: path, Op: fsnotify.Chmod}, path))
	assert.False(t, isChange(fsnotify.Event{Name: path + "~", Op: fsnotify.Write}, path))
}

func TestWatchRejectsWrite(t *testing.T) {
	path := writeFile(t, "app.js", "print(1)")
	res := run(t, "", "--watch", "-w", path)
	assert.Error(t, res.err)
	assert.Equal(t, res.err.Error(), "--watch cannot be combined with --write")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(data), "print(1)")
}

func TestWriteSkipsUnchangedFile(t *testing.T) {
	path := writeFile(t, "app.js", "print(1)")
	res := run(t, "", "-w", path)
	assert.NoError(t, res.err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	assert.NoError(t, os.Chtimes(path, old, old))

	res = run(t, "", "-w", path)
	assert.NoError(t, res.err)
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old))

	assert.NoError(t, os.WriteFile(path, []byte("yap(1)"), 0o644))
	assert.NoError(t, os.Chtimes(path, old, old))
	res = run(t, "", "-w", path)
	assert.NoError(t, res.err)
	info, err = os.Stat(path)
	assert.NoError(t, err)
	assert.False(t, info.ModTime().Equal(old))
}

func TestWriteIfChanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.js")
	assert.NoError(t, writeIfChanged(path, "a;\n"))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, string(data), "a;\n")
}

func TestWatchRequiresFile(t *testing.T) {
	res := run(t, "", "--watch", "-c", "x")
	assert.Error(t, res.err)
	assert.Equal(t, res.err.Error(), "--watch requires a file argument")
}
