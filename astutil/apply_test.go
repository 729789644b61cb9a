package astutil

import (
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
	"github.com/t14raptor/go-fast/ast"
	fast "github.com/t14raptor/go-fast/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := fast.ParseFile(src)
	assert.NoError(t, err)
	return program
}

func names(root any) []string {
	var out []string
	Inspect(root, func(n any) bool {
		if id, ok := n.(*ast.Identifier); ok {
			out = append(out, id.Name)
		}
		return true
	})
	return out
}

func TestInspectOrder(t *testing.T) {
	program := parse(t, "a + b; f(c)")
	assert.Equal(t, names(program), []string{"a", "b", "f", "c"})
}

func TestInspectSkipsChildren(t *testing.T) {
	program := parse(t, "f(a); g(b)")
	var seen []string
	Inspect(program, func(n any) bool {
		if id, ok := n.(*ast.Identifier); ok {
			seen = append(seen, id.Name)
		}
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}
		callee := call.Callee.Expr.(*ast.Identifier)
		return callee.Name != "f"
	})
	assert.Equal(t, seen, []string{"g", "b"})
}

func TestReplace(t *testing.T) {
	program := parse(t, "x = a + b")
	Apply(program, func(c *Cursor) bool {
		if id, ok := c.Node().(*ast.Identifier); ok && id.Name == "a" {
			assert.True(t, c.Replaceable())
			c.Replace(&ast.Identifier{Name: "z"})
		}
		return true
	}, nil)
	assert.Equal(t, names(program), []string{"x", "z", "b"})
}

func TestReplacementIsTraversed(t *testing.T) {
	program := parse(t, "f(a)")
	Apply(program, func(c *Cursor) bool {
		if id, ok := c.Node().(*ast.Identifier); ok && id.Name == "a" {
			c.Replace(&ast.BinaryExpression{
				Left:  &ast.Expression{Expr: &ast.Identifier{Name: "l"}},
				Right: &ast.Expression{Expr: &ast.Identifier{Name: "r"}},
			})
		}
		return true
	}, nil)
	assert.Equal(t, names(program), []string{"f", "l", "r"})
}

func TestReplaceOutsideSlotPanics(t *testing.T) {
	program := parse(t, "try {} catch (e) {}")
	defer func() {
		assert.NotNil(t, recover())
	}()
	Apply(program, func(c *Cursor) bool {
		if id, ok := c.Node().(*ast.Identifier); ok && id.Name == "e" {
			assert.False(t, c.Replaceable())
			c.Replace(&ast.Identifier{Name: "x"})
		}
		return true
	}, nil)
	t.Fatal("Replace did not panic")
}

func TestParentAndAncestor(t *testing.T) {
	program := parse(t, "x = f(a)")
	Apply(program, func(c *Cursor) bool {
		id, ok := c.Node().(*ast.Identifier)
		if !ok || id.Name != "a" {
			return true
		}
		_, ok = c.Parent().(*ast.CallExpression)
		assert.True(t, ok)
		assert.Equal(t, c.Name(), "ArgumentList")
		assert.Equal(t, c.Index(), 0)
		_, ok = c.Ancestor(1).(*ast.AssignExpression)
		assert.True(t, ok)
		assert.True(t, c.Ancestor(100) == nil)
		return true
	}, nil)
}

func TestSequenceRemoveAhead(t *testing.T) {
	program := parse(t, "first(); second(); third()")
	var visited []string
	Apply(program, func(c *Cursor) bool {
		call, ok := c.Node().(*ast.CallExpression)
		if !ok {
			return true
		}
		name := call.Callee.Expr.(*ast.Identifier).Name
		visited = append(visited, name)
		return true
	}, func(c *Cursor) bool {
		seq := c.Sequence()
		if seq == nil || seq.IndexOf(c.Node().(ast.Stmt)) != 0 {
			return true
		}
		assert.True(t, seq.Owner() == any(program))
		assert.Equal(t, seq.Len(), 3)
		seq.RemoveAt(1)
		return true
	})
	assert.Equal(t, visited, []string{"first", "third"})
	assert.Len(t, program.Body, 2)
}

func TestPostFalseAborts(t *testing.T) {
	program := parse(t, "a; b; c")
	var seen []string
	result := Apply(program, nil, func(c *Cursor) bool {
		id, ok := c.Node().(*ast.Identifier)
		if !ok {
			return true
		}
		seen = append(seen, id.Name)
		return id.Name != "b"
	})
	assert.True(t, result == any(program))
	assert.Equal(t, seen, []string{"a", "b"})
}

func TestEnclosingFunc(t *testing.T) {
	program := parse(t, "function outer() { const f = () => { inner() } }\ntop()")
	found := map[string]any{}
	Apply(program, func(c *Cursor) bool {
		if call, ok := c.Node().(*ast.CallExpression); ok {
			found[call.Callee.Expr.(*ast.Identifier).Name] = c.EnclosingFunc()
		}
		return true
	}, nil)

	arrow, ok := found["inner"].(*ast.ArrowFunctionLiteral)
	assert.True(t, ok)
	assert.True(t, found["top"] == nil)

	SetAsync(arrow)
	assert.True(t, arrow.Async)
}

func TestVisitsOnce(t *testing.T) {
	shared := &ast.Identifier{Name: "shared"}
	program := &ast.Program{Body: ast.Statements{
		{Stmt: &ast.ExpressionStatement{Expression: &ast.Expression{Expr: shared}}},
		{Stmt: &ast.ExpressionStatement{Expression: &ast.Expression{Expr: shared}}},
	}}
	assert.Len(t, names(program), 1)
	assert.True(t, Apply(nil, nil, nil) == nil)
}
