package nocap

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/nocap-js/nocap/astutil"
	"github.com/nocap-js/nocap/errors"
	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/slang"
	"github.com/t14raptor/go-fast/ast"
)

// Check rewrites source and reports the slang it could not rewrite, along
// with calls whose names look like misspelled slang. Only parse failures
// are returned as an error.
func Check(ctx context.Context, source string, opts ...Option) ([]*errors.Diagnostic, error) {
	result, err := Rewrite(ctx, source, opts...)
	if err != nil {
		return nil, err
	}
	return result.Diagnostics(), nil
}

// Diagnostics describes each shape mismatch in the report and each probable
// misspelling of a slang name, in source order.
func (r *Result) Diagnostics() []*errors.Diagnostic {
	var diags []*errors.Diagnostic
	for _, e := range r.report.Filter(slang.ShapeMismatch) {
		rule, _ := slang.Lookup(e.Rule)
		diags = append(diags, &errors.Diagnostic{
			Code:     mismatchCode(rule, e.Reason),
			Message:  e.Rule + " " + e.Reason,
			Location: r.location(e.Pos),
			Hint:     "expected " + rule.Signature() + " as " + rule.Placement(),
		})
	}
	astutil.Inspect(r.program, func(node any) bool {
		call, ok := node.(*ast.CallExpression)
		if !ok || call.Callee == nil {
			return true
		}
		callee, ok := call.Callee.Expr.(*ast.Identifier)
		if !ok || len(callee.Name) < 4 || slang.IsSlang(callee.Name) {
			return true
		}
		pos := r.file.Position(callee.Idx)
		if !pos.IsValid() {
			return true
		}
		suggestions := errors.SuggestSimilar(callee.Name, slangNames())
		if len(suggestions) == 0 {
			return true
		}
		diags = append(diags, &errors.Diagnostic{
			Code:     errors.E2004,
			Message:  callee.Name + " is not a slang construct",
			Location: r.location(pos),
			Hint:     errors.FormatSuggestions(suggestions),
		})
		return true
	})
	sortDiagnostics(diags)
	return diags
}

func mismatchCode(rule *slang.Rule, reason string) errors.ErrorCode {
	switch {
	case rule.Position == slang.Continuation:
		return errors.E2003
	case strings.HasPrefix(reason, "must be"):
		return errors.E2002
	default:
		return errors.E2001
	}
}

func (r *Result) location(pos parser.Position) errors.SourceLocation {
	return errors.SourceLocation{
		Filename: r.filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Source:   r.file.Line(pos.Line),
	}
}

func slangNames() []string {
	var names []string
	for _, r := range slang.Rules() {
		names = append(names, r.Name)
	}
	for _, a := range slang.Aliases() {
		names = append(names, a.Name)
	}
	return names
}

func sortDiagnostics(diags []*errors.Diagnostic) {
	slices.SortStableFunc(diags, func(a, b *errors.Diagnostic) int {
		if c := cmp.Compare(a.Location.Line, b.Location.Line); c != 0 {
			return c
		}
		return cmp.Compare(a.Location.Column, b.Location.Column)
	})
}
