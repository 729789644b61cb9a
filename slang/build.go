package slang

import (
	"github.com/nocap-js/nocap/astutil"
	"github.com/nocap-js/nocap/parser"
	"github.com/t14raptor/go-fast/ast"
)

// site is the context a rule is applied in.
type site struct {
	cursor *astutil.Cursor
	cfg    *config
}

func wrapExpr(x ast.Expr) *ast.Expression {
	return &ast.Expression{Expr: x}
}

func wrapStmt(s ast.Stmt) *ast.Statement {
	return &ast.Statement{Stmt: s}
}

func block(stmts ...ast.Stmt) *ast.BlockStatement {
	b := &ast.BlockStatement{List: make(ast.Statements, 0, len(stmts))}
	for _, s := range stmts {
		b.List = append(b.List, ast.Statement{Stmt: s})
	}
	return b
}

// extractBlock returns the body of cb as a block. A concise body becomes a
// block holding one expression statement.
func extractBlock(cb *ast.ArrowFunctionLiteral) *ast.BlockStatement {
	if cb.Body == nil {
		return block()
	}
	switch body := cb.Body.Body.(type) {
	case *ast.BlockStatement:
		return body
	case *ast.Expression:
		return block(&ast.ExpressionStatement{Expression: body})
	}
	return block()
}

// firstIdentParam returns cb's first parameter when it is a plain identifier.
func firstIdentParam(cb *ast.ArrowFunctionLiteral) (*ast.Identifier, bool) {
	if len(cb.ParameterList.List) == 0 {
		return nil, false
	}
	target := cb.ParameterList.List[0].Target
	if target == nil {
		return nil, false
	}
	id, ok := target.Target.(*ast.Identifier)
	return id, ok
}

// buildInvoke wraps the arrow in an immediately invoked call.
func buildInvoke(async bool) buildFunc {
	return func(s *site, args []ast.Expr) any {
		cb := args[0].(*ast.ArrowFunctionLiteral)
		if async {
			cb.Async = true
		}
		return expr("($0)()", cb)
	}
}

// buildSleep produces an awaited timer and marks the enclosing function
// async.
func buildSleep(s *site, args []ast.Expr) any {
	if fn := s.cursor.EnclosingFunc(); fn != nil {
		astutil.SetAsync(fn)
	}
	program := parseTemplate("async () => { await new Promise(resolve => setTimeout(resolve, $0)); }", args[0])
	await, _ := find[*ast.AwaitExpression](program)
	return await
}

func buildWhile(s *site, args []ast.Expr) any {
	return &ast.WhileStatement{
		Test: wrapExpr(args[0]),
		Body: wrapStmt(extractBlock(args[1].(*ast.ArrowFunctionLiteral))),
	}
}

// buildFor produces a counting loop. The loop variable is the callback's
// first parameter, or the configured default.
func buildFor(s *site, args []ast.Expr) any {
	cb := args[1].(*ast.ArrowFunctionLiteral)
	index := s.cfg.loopVar
	if id, ok := firstIdentParam(cb); ok {
		index = id.Name
	}
	src := "for (let " + index + " = 0; " + index + " < 0; " + index + "++) {}"
	loop := parseTemplate(src).Body[0].Stmt.(*ast.ForStatement)
	loop.Test.Expr.(*ast.BinaryExpression).Right = wrapExpr(args[0])
	loop.Body = wrapStmt(extractBlock(cb))
	return loop
}

func buildReturn(s *site, args []ast.Expr) any {
	return &ast.ReturnStatement{Argument: wrapExpr(args[0])}
}

func buildThrow(s *site, args []ast.Expr) any {
	return &ast.ThrowStatement{Argument: wrapExpr(args[0])}
}

// buildIf produces the if statement for a deadass, bet or orNah chain.
func buildIf(cond ast.Expr, cb *ast.ArrowFunctionLiteral) *ast.IfStatement {
	return &ast.IfStatement{Test: wrapExpr(cond), Consequent: wrapStmt(extractBlock(cb))}
}

// buildTry produces try/catch with an optional finally block. The catch
// binding is the catch callback's first parameter, or the configured
// default.
func buildTry(cfg *config, tryFn, catchFn *ast.ArrowFunctionLiteral, finally *ast.BlockStatement) *ast.TryStatement {
	param, ok := firstIdentParam(catchFn)
	if !ok {
		param = &ast.Identifier{Name: cfg.catchParam}
	}
	return &ast.TryStatement{
		Body: extractBlock(tryFn),
		Catch: &ast.CatchStatement{
			Parameter: &ast.BindingTarget{Target: param},
			Body:      extractBlock(catchFn),
		},
		Finally: finally,
	}
}

// position returns where the call's callee starts.
func (c *config) position(id *ast.Identifier) parser.Position {
	return c.file.Position(id.Idx)
}
