package slang

import (
	"fmt"

	"github.com/nocap-js/nocap/astutil"
	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/syntax"
	"github.com/t14raptor/go-fast/ast"
)

// Validator reports slang still present in a program. Run after a rewrite,
// it finds the calls that were skipped because their shape did not match.
type Validator struct {
	file *parser.File
}

var _ syntax.Validator = (*Validator)(nil)

// NewValidator returns a Validator for leftover slang. file, which may be
// nil, resolves positions.
func NewValidator(file *parser.File) *Validator {
	return &Validator{file: file}
}

// Validate implements syntax.Validator. The program is not modified.
func (v *Validator) Validate(program *ast.Program) []syntax.ValidationError {
	var errs []syntax.ValidationError
	if program == nil {
		return nil
	}
	astutil.Apply(program, func(c *astutil.Cursor) bool {
		if err := v.checkNode(c); err != nil {
			errs = append(errs, *err)
		}
		return true
	}, nil)
	return errs
}

func (v *Validator) checkNode(c *astutil.Cursor) *syntax.ValidationError {
	switch n := c.Node().(type) {
	case *ast.CallExpression:
		_, rule := ruleCall(n)
		if rule == nil {
			return nil
		}
		return &syntax.ValidationError{
			Message:  fmt.Sprintf("%s was not rewritten (expected %s as %s)", rule.Name, rule.Signature(), rule.Placement()),
			Node:     n,
			Position: v.file.Position(n.Callee.Expr.(*ast.Identifier).Idx),
		}

	case *ast.Identifier:
		alias, ok := LookupAlias(n.Name)
		if !ok || isNamePosition(c) {
			return nil
		}
		return &syntax.ValidationError{
			Message:  fmt.Sprintf("%s was not rewritten to %s", alias.Name, alias.Target()),
			Node:     n,
			Position: v.file.Position(n.Idx),
		}
	}
	return nil
}
