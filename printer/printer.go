// Package printer renders go-fast syntax trees as JavaScript source.
package printer

import (
	"strings"

	"github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/generator"
)

// Print renders program with go-fast's generator. The output always ends in
// exactly one newline, and an empty program prints as the empty string.
func Print(program *ast.Program) string {
	if program == nil {
		return ""
	}
	out := strings.TrimRight(generator.Generate(program), "\n")
	if strings.TrimSpace(out) == "" {
		return ""
	}
	return out + "\n"
}
