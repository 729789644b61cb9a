// Package slang rewrites slang calls and identifiers into standard
// JavaScript.
//
// The catalog maps names to rules. Aliases such as print stand for a member
// expression and are replaced wherever they are used as a value. Call rules
// such as deadass(cond, () => {...}) fire only when their arguments and
// position fit; anything else is left as an ordinary call.
//
// A Rewriter makes a single depth-first pass over the tree. Replacements are
// traversed in turn, so slang nested inside a rewritten construct is
// rewritten as well. deadass and vibeCheck also consume the bet, orNah and
// sayLess statements that follow them.
package slang

import (
	"errors"

	"github.com/nocap-js/nocap/astutil"
	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/syntax"
	"github.com/rs/zerolog"
	"github.com/t14raptor/go-fast/ast"
)

const (
	// DefaultCatchParam names the catch binding when the catch callback has
	// no identifier parameter.
	DefaultCatchParam = "err"
	// DefaultLoopVar names the spinBack loop variable when the callback has
	// no identifier parameter.
	DefaultLoopVar = "i"
)

// ErrNilProgram is returned by Transform when given no program.
var ErrNilProgram = errors.New("slang: nil program")

type config struct {
	logger     zerolog.Logger
	catchParam string
	loopVar    string
	file       *parser.File
}

// Option configures a Rewriter.
type Option func(*config)

// WithLogger sets the logger that receives a debug event for every rule
// decision.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSource names the source the rewritten programs were parsed from, so
// report events carry lines and columns.
func WithSource(filename, src string) Option {
	return func(c *config) {
		c.file = parser.NewFile(filename, src)
	}
}

// WithCatchParam sets the catch binding used when vibeCheck's catch
// callback has no identifier parameter.
func WithCatchParam(name string) Option {
	return func(c *config) {
		if isIdentifier(name) {
			c.catchParam = name
		}
	}
}

// WithLoopVar sets the loop variable used when spinBack's callback has no
// identifier parameter.
func WithLoopVar(name string) Option {
	return func(c *config) {
		if isIdentifier(name) {
			c.loopVar = name
		}
	}
}

// Rewriter applies the catalog to syntax trees. It holds only configuration
// and may be shared between goroutines working on distinct trees.
type Rewriter struct {
	cfg config
}

var _ syntax.Transformer = (*Rewriter)(nil)

// New returns a Rewriter configured by opts.
func New(opts ...Option) *Rewriter {
	cfg := config{
		logger:     zerolog.Nop(),
		catchParam: DefaultCatchParam,
		loopVar:    DefaultLoopVar,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Rewriter{cfg: cfg}
}

// Rewrite rewrites program in place and returns the decisions made.
func (r *Rewriter) Rewrite(program *ast.Program) *Report {
	p := &pass{cfg: &r.cfg, report: &Report{}}
	if program != nil {
		astutil.Apply(program, p.visit, nil)
	}
	return p.report
}

// Transform rewrites program in place.
func (r *Rewriter) Transform(program *ast.Program) (*ast.Program, error) {
	if program == nil {
		return nil, ErrNilProgram
	}
	r.Rewrite(program)
	return program, nil
}

// pass holds the state of one traversal.
type pass struct {
	cfg    *config
	report *Report
}

func (p *pass) visit(c *astutil.Cursor) bool {
	// A replacement may itself be handled under its new kind
	for p.dispatch(c) {
	}
	return true
}

// dispatch applies the catalog to the current node and reports whether the
// node was replaced.
func (p *pass) dispatch(c *astutil.Cursor) bool {
	switch n := c.Node().(type) {
	case *ast.ExpressionStatement:
		return p.statement(c, n)
	case *ast.CallExpression:
		return p.call(c, n)
	case *ast.Identifier:
		return p.ident(c, n)
	}
	return false
}

func (p *pass) record(e Event) {
	p.report.add(e)
	ev := p.cfg.logger.Debug().
		Str("rule", e.Rule).
		Str("outcome", e.Outcome.String()).
		Int("line", e.Pos.Line).
		Int("column", e.Pos.Column)
	if e.Reason != "" {
		ev = ev.Str("reason", e.Reason)
	}
	if e.Folded > 0 {
		ev = ev.Int("folded", e.Folded)
	}
	ev.Msg("slang")
}

// event describes a decision about a call to rule.
func (p *pass) event(rule *Rule, call *ast.CallExpression, outcome Outcome, reason string) Event {
	callee := call.Callee.Expr.(*ast.Identifier)
	return Event{Rule: rule.Name, Outcome: outcome, Pos: p.cfg.position(callee), Reason: reason}
}

func (p *pass) mismatch(rule *Rule, call *ast.CallExpression, reason string) {
	p.record(p.event(rule, call, ShapeMismatch, reason))
}

// namedCall returns x as a call whose callee is a plain identifier.
func namedCall(x ast.Expr) (*ast.CallExpression, *ast.Identifier) {
	call, ok := x.(*ast.CallExpression)
	if !ok || call.Callee == nil {
		return nil, nil
	}
	callee, ok := call.Callee.Expr.(*ast.Identifier)
	if !ok {
		return nil, nil
	}
	return call, callee
}

// ruleCall returns x as a call to a catalog rule.
func ruleCall(x ast.Expr) (*ast.CallExpression, *Rule) {
	call, callee := namedCall(x)
	if call == nil {
		return nil, nil
	}
	rule, ok := Lookup(callee.Name)
	if !ok {
		return nil, nil
	}
	return call, rule
}

// arguments returns the expressions of call's argument list.
func arguments(call *ast.CallExpression) []ast.Expr {
	args := make([]ast.Expr, len(call.ArgumentList))
	for i := range call.ArgumentList {
		args[i] = call.ArgumentList[i].Expr
	}
	return args
}

// statement handles rules that replace a whole expression statement.
func (p *pass) statement(c *astutil.Cursor, stmt *ast.ExpressionStatement) bool {
	if stmt.Expression == nil {
		return false
	}
	call, rule := ruleCall(stmt.Expression.Expr)
	if rule == nil || rule.Position == Expression {
		return false
	}
	misplaced := rule.Position == Continuation
	switch rule.Position {
	case TopLevel:
		_, ok := c.Parent().(*ast.Program)
		misplaced = misplaced || !ok
	case InFunction:
		misplaced = misplaced || c.EnclosingFunc() == nil
	}
	var seq *astutil.Sequence
	if rule.Position == Sequence {
		seq = c.Sequence()
		misplaced = misplaced || seq == nil || !isBody(seq.Owner())
	}
	if misplaced {
		p.mismatch(rule, call, "must be "+rule.Placement())
		return false
	}
	args := arguments(call)
	if reason, ok := rule.MatchArgs(args); !ok {
		p.mismatch(rule, call, reason)
		return false
	}

	s := &site{cursor: c, cfg: p.cfg}
	matched := p.event(rule, call, Matched, "")
	switch rule.Position {
	case TopLevel:
		stmt.Expression.Expr = rule.build(s, args).(ast.Expr)
		p.record(matched)
	case Sequence:
		at := seq.IndexOf(stmt)
		result, folded := rule.fold(p, seq, at, args)
		c.Replace(result)
		matched.Folded = len(folded)
		p.record(matched)
		for _, e := range folded {
			p.record(e)
		}
	default:
		c.Replace(rule.build(s, args))
		p.record(matched)
	}
	return true
}

// call handles rules that replace the call expression itself.
func (p *pass) call(c *astutil.Cursor, call *ast.CallExpression) bool {
	_, rule := ruleCall(call)
	if rule == nil || !c.Replaceable() {
		return false
	}
	if rule.Position != Expression {
		if _, ok := c.Parent().(*ast.ExpressionStatement); ok {
			// Already decided by the enclosing statement
			return false
		}
		p.mismatch(rule, call, "must be "+rule.Placement())
		return false
	}
	args := arguments(call)
	if reason, ok := rule.MatchArgs(args); !ok {
		p.mismatch(rule, call, reason)
		return false
	}
	matched := p.event(rule, call, Matched, "")
	c.Replace(rule.build(&site{cursor: c, cfg: p.cfg}, args))
	p.record(matched)
	return true
}

// ident replaces alias identifiers used as values.
func (p *pass) ident(c *astutil.Cursor, id *ast.Identifier) bool {
	alias, ok := LookupAlias(id.Name)
	if !ok {
		return false
	}
	pos := p.cfg.position(id)
	if isNamePosition(c) {
		p.record(Event{Rule: alias.Name, Outcome: NotApplicable, Pos: pos})
		return false
	}
	c.Replace(alias.Replacement())
	p.record(Event{Rule: alias.Name, Outcome: Matched, Pos: pos})
	return true
}

func isBody(owner any) bool {
	switch owner.(type) {
	case *ast.BlockStatement, *ast.Program:
		return true
	}
	return false
}

// isNamePosition reports whether the identifier at c names something rather
// than refers to a value: a property, member, method or field name, a
// declared binding or a label. Most of these never sit in an expression
// slot; the rest are recognized by walking up through patterns.
func isNamePosition(c *astutil.Cursor) bool {
	if !c.Replaceable() {
		return true
	}
	var child any = c.Node()
	for depth := 0; ; depth++ {
		switch parent := c.Ancestor(depth).(type) {
		case *ast.PropertyKeyed:
			if holds(parent.Key, child) {
				return !parent.Computed
			}
			child = parent
		case *ast.PropertyShort:
			return !holds(parent.Initializer, child)
		case *ast.Property, *ast.ObjectLiteral, *ast.ArrayLiteral, *ast.SpreadElement:
			// Possibly part of a destructuring pattern
			child = parent
		case *ast.AssignExpression:
			if !holds(parent.Left, child) {
				return false
			}
			child = parent
		case *ast.ObjectPattern, *ast.ArrayPattern:
			return true
		case *ast.MethodDefinition:
			return holds(parent.Key, child) && !parent.Computed
		case *ast.FieldDefinition:
			return holds(parent.Key, child) && !parent.Computed
		default:
			return false
		}
	}
}

// holds reports whether the expression slot x contains n.
func holds(x *ast.Expression, n any) bool {
	return x != nil && x.Expr != nil && any(x.Expr) == n
}
