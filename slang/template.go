package slang

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nocap-js/nocap/astutil"
	"github.com/t14raptor/go-fast/ast"
	fast "github.com/t14raptor/go-fast/parser"
)

// parseTemplate parses a fixed snippet of JavaScript and replaces the
// identifiers $0, $1, ... with args. Snippets are part of the catalog, so a
// parse failure is a programming error.
func parseTemplate(src string, args ...ast.Expr) *ast.Program {
	program, err := fast.ParseFile(src)
	if err != nil {
		panic(fmt.Sprintf("slang: bad template %q: %v", src, err))
	}
	astutil.Apply(program, func(c *astutil.Cursor) bool {
		id, ok := c.Node().(*ast.Identifier)
		if !ok {
			return true
		}
		// Template offsets mean nothing in the rewritten source
		id.Idx = 0
		if !c.Replaceable() || !strings.HasPrefix(id.Name, "$") {
			return true
		}
		n, err := strconv.Atoi(id.Name[1:])
		if err != nil || n >= len(args) {
			return true
		}
		c.Replace(args[n])
		return false
	}, nil)
	return program
}

// expr returns the expression a template made of one expression statement
// denotes.
func expr(src string, args ...ast.Expr) ast.Expr {
	program := parseTemplate(src, args...)
	return program.Body[0].Stmt.(*ast.ExpressionStatement).Expression.Expr
}

// buildTemplate returns a buildFunc for an expression template.
func buildTemplate(src string) buildFunc {
	return func(s *site, args []ast.Expr) any {
		return expr(src, args...)
	}
}

// find returns the first node of type T in the tree rooted at root.
func find[T any](root any) (T, bool) {
	var found T
	var ok bool
	astutil.Inspect(root, func(n any) bool {
		if ok {
			return false
		}
		found, ok = n.(T)
		return !ok
	})
	return found, ok
}

var reserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "enum": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "null": true,
	"return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
}

// isIdentifier reports whether name can be spliced into a template as a
// binding name.
func isIdentifier(name string) bool {
	if name == "" || reserved[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
