package slang

import (
	"github.com/nocap-js/nocap/astutil"
	"github.com/t14raptor/go-fast/ast"
)

// bareCall returns stmt as a call to a named function and that name, for
// statements of the form name(args).
func bareCall(stmt ast.Stmt) (*ast.CallExpression, string) {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok || es.Expression == nil {
		return nil, ""
	}
	call, callee := namedCall(es.Expression.Expr)
	if call == nil {
		return nil, ""
	}
	return call, callee.Name
}

// continuation returns the statement at index i of seq when it is a call to
// the continuation name with matching arguments.
func continuation(seq *astutil.Sequence, i int, names ...string) (*ast.CallExpression, *Rule) {
	if i >= seq.Len() {
		return nil, nil
	}
	call, name := bareCall(seq.At(i))
	for _, want := range names {
		if name != want {
			continue
		}
		rule, ok := Lookup(name)
		if !ok {
			return nil, nil
		}
		if _, ok := rule.MatchArgs(arguments(call)); !ok {
			return nil, nil
		}
		return call, rule
	}
	return nil, nil
}

// foldIf builds the if statement for deadass and folds the bet and orNah
// statements that follow it. Each bet becomes the alternative of the if
// built before it, so the chain reads in source order. An orNah ends the
// chain.
func foldIf(p *pass, seq *astutil.Sequence, at int, args []ast.Expr) (ast.Stmt, []Event) {
	root := buildIf(args[0], args[1].(*ast.ArrowFunctionLiteral))
	last := root
	var folded []Event
	for {
		call, rule := continuation(seq, at+1, "bet", "orNah")
		if rule == nil {
			break
		}
		seq.RemoveAt(at + 1)
		folded = append(folded, p.event(rule, call, Matched, ""))
		args := arguments(call)
		if rule.Name == "orNah" {
			last.Alternate = wrapStmt(extractBlock(args[0].(*ast.ArrowFunctionLiteral)))
			break
		}
		next := buildIf(args[0], args[1].(*ast.ArrowFunctionLiteral))
		last.Alternate = wrapStmt(next)
		last = next
	}
	return root, folded
}

// foldTry builds the try statement for vibeCheck. Only the statement
// immediately after it is considered for the finally block.
func foldTry(p *pass, seq *astutil.Sequence, at int, args []ast.Expr) (ast.Stmt, []Event) {
	var finally *ast.BlockStatement
	var folded []Event
	if call, rule := continuation(seq, at+1, "sayLess"); rule != nil {
		seq.RemoveAt(at + 1)
		finally = extractBlock(arguments(call)[0].(*ast.ArrowFunctionLiteral))
		folded = append(folded, p.event(rule, call, Matched, ""))
	}
	return buildTry(p.cfg, args[0].(*ast.ArrowFunctionLiteral), args[1].(*ast.ArrowFunctionLiteral), finally), folded
}
