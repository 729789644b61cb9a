package printer

import (
	"strings"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/parser"
)

func TestPrint(t *testing.T) {
	program, err := parser.ParseFile("var a = [1, 2, 3]")
	assert.NoError(t, err)
	assert.Equal(t, Print(program), "var a = [1, 2, 3];\n")
}

func TestPrintEndsWithOneNewline(t *testing.T) {
	program, err := parser.ParseFile("f()\n\n\ng()\n\n")
	assert.NoError(t, err)
	out := Print(program)
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasSuffix(out, "\n\n"))
}

func TestPrintEmpty(t *testing.T) {
	assert.Equal(t, Print(nil), "")
	assert.Equal(t, Print(&ast.Program{}), "")

	program, err := parser.ParseFile("")
	assert.NoError(t, err)
	assert.Equal(t, Print(program), "")
}

func TestPrintIsStable(t *testing.T) {
	program, err := parser.ParseFile("for (var i = 0; i < 10; i++) {}")
	assert.NoError(t, err)
	once := Print(program)

	again, err := parser.ParseFile(once)
	assert.NoError(t, err)
	assert.Equal(t, Print(again), once)
}
