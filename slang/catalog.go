package slang

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nocap-js/nocap/astutil"
	"github.com/t14raptor/go-fast/ast"
)

// ArgKind describes what a rule accepts in one argument slot.
type ArgKind int

const (
	ArgExpr   ArgKind = iota // any expression other than a spread
	ArgArrow                 // an arrow function
	ArgNumber                // a numeric literal
)

func (k ArgKind) String() string {
	switch k {
	case ArgArrow:
		return "arrow function"
	case ArgNumber:
		return "number literal"
	default:
		return "expression"
	}
}

// Position is where a call must appear for its rule to fire.
type Position int

const (
	// Expression rules replace the call wherever it appears.
	Expression Position = iota
	// Statement rules replace the expression statement that consists of the
	// call.
	Statement
	// Sequence rules are statements directly inside a block or program body
	// that may fold the statements following them.
	Sequence
	// TopLevel rules are statements directly inside the program body.
	TopLevel
	// Continuation rules are only consumed by a preceding Sequence rule.
	Continuation
	// InFunction rules are statements inside a function body.
	InFunction
)

func (p Position) String() string {
	switch p {
	case Statement:
		return "statement"
	case Sequence:
		return "sequence"
	case TopLevel:
		return "top-level statement"
	case Continuation:
		return "continuation"
	case InFunction:
		return "function statement"
	default:
		return "expression"
	}
}

// buildFunc constructs the replacement for a matched call: an ast.Expr for
// Expression and TopLevel rules, an ast.Stmt otherwise. args holds at least
// as many elements as the rule declares.
type buildFunc func(s *site, args []ast.Expr) any

// foldFunc builds the statement for a Sequence rule whose statement is at
// index at of seq, consuming following statements. It returns the events
// for the consumed statements.
type foldFunc func(p *pass, seq *astutil.Sequence, at int, args []ast.Expr) (ast.Stmt, []Event)

// Rule is a call-shaped rewrite keyed by callee name.
type Rule struct {
	Name     string
	Args     []ArgKind
	Position Position

	// Continues names the continuation rules a Sequence rule folds.
	Continues []string

	build buildFunc
	fold  foldFunc
}

// Signature returns the rule written as a call, e.g. "spinBack(number literal, arrow function)".
func (r *Rule) Signature() string {
	kinds := make([]string, len(r.Args))
	for i, k := range r.Args {
		kinds[i] = k.String()
	}
	return fmt.Sprintf("%s(%s)", r.Name, strings.Join(kinds, ", "))
}

// MatchArgs checks args against the rule's argument kinds. Arguments beyond
// the declared ones are ignored. On a mismatch it returns a description of
// the first offending slot.
func (r *Rule) MatchArgs(args []ast.Expr) (string, bool) {
	if len(args) < len(r.Args) {
		return fmt.Sprintf("expected %d arguments, got %d", len(r.Args), len(args)), false
	}
	for i, kind := range r.Args {
		if !kind.accepts(args[i]) {
			return fmt.Sprintf("argument %d must be %s", i+1, article(kind.String())), false
		}
	}
	return "", true
}

// Placement describes where a call to the rule must appear, e.g. "a
// top-level statement".
func (r *Rule) Placement() string {
	switch r.Position {
	case Statement:
		return "an expression statement"
	case Sequence:
		return "a statement in a block or program body"
	case TopLevel:
		return "a top-level statement"
	case Continuation:
		return "a statement following " + continued(r.Name)
	case InFunction:
		return "a statement inside a function"
	default:
		return "an expression"
	}
}

// continued returns the rule that folds the continuation name.
func continued(name string) string {
	for _, r := range rules {
		if slices.Contains(r.Continues, name) {
			return r.Name
		}
	}
	return "its construct"
}

func article(s string) string {
	if s != "" && strings.ContainsRune("aeiou", rune(s[0])) {
		return "an " + s
	}
	return "a " + s
}

func (k ArgKind) accepts(x ast.Expr) bool {
	switch k {
	case ArgArrow:
		_, ok := x.(*ast.ArrowFunctionLiteral)
		return ok
	case ArgNumber:
		_, ok := x.(*ast.NumberLiteral)
		return ok
	default:
		_, spread := x.(*ast.SpreadElement)
		return x != nil && !spread
	}
}

// Alias is a bare identifier that stands for a member expression.
type Alias struct {
	Name   string
	target string
}

// Target returns the aliased expression as source text, e.g. "console.log".
func (a *Alias) Target() string {
	return a.target
}

// Replacement returns a new member expression for the alias target.
func (a *Alias) Replacement() ast.Expr {
	return expr(a.target)
}

var aliases = map[string]*Alias{
	"print": {Name: "print", target: "console.log"},
	"yap":   {Name: "yap", target: "console.warn"},
	"panic": {Name: "panic", target: "console.error"},
}

var rules = map[string]*Rule{}

func register(r *Rule) {
	rules[r.Name] = r
}

func init() {
	register(&Rule{Name: "sus", Args: []ArgKind{ArgExpr}, Position: Expression, build: buildTemplate("!$0")})
	register(&Rule{Name: "lowkey", Args: []ArgKind{ArgExpr, ArgExpr}, Position: Expression, build: buildTemplate("$0 && $1")})
	register(&Rule{Name: "highkey", Args: []ArgKind{ArgExpr, ArgExpr}, Position: Expression, build: buildTemplate("$0 || $1")})
	register(&Rule{Name: "weUp", Args: []ArgKind{ArgArrow}, Position: Expression, build: buildInvoke(false)})
	register(&Rule{Name: "asyncAF", Args: []ArgKind{ArgArrow}, Position: Expression, build: buildInvoke(true)})
	register(&Rule{Name: "chill", Args: []ArgKind{ArgExpr}, Position: Expression, build: buildSleep})

	register(&Rule{Name: "runItBack", Args: []ArgKind{ArgExpr, ArgArrow}, Position: Statement, build: buildWhile})
	register(&Rule{Name: "spinBack", Args: []ArgKind{ArgNumber, ArgArrow}, Position: Statement, build: buildFor})
	register(&Rule{Name: "itsGiving", Args: []ArgKind{ArgExpr}, Position: InFunction, build: buildReturn})
	register(&Rule{Name: "onGod", Args: []ArgKind{ArgExpr}, Position: Statement, build: buildThrow})

	register(&Rule{Name: "mainCharacter", Args: []ArgKind{ArgArrow}, Position: TopLevel, build: buildInvoke(false)})

	register(&Rule{Name: "deadass", Args: []ArgKind{ArgExpr, ArgArrow}, Position: Sequence, Continues: []string{"bet", "orNah"}, fold: foldIf})
	register(&Rule{Name: "vibeCheck", Args: []ArgKind{ArgArrow, ArgArrow}, Position: Sequence, Continues: []string{"sayLess"}, fold: foldTry})

	register(&Rule{Name: "bet", Args: []ArgKind{ArgExpr, ArgArrow}, Position: Continuation})
	register(&Rule{Name: "orNah", Args: []ArgKind{ArgArrow}, Position: Continuation})
	register(&Rule{Name: "sayLess", Args: []ArgKind{ArgArrow}, Position: Continuation})
}

// Lookup returns the call rule with the given name.
func Lookup(name string) (*Rule, bool) {
	r, ok := rules[name]
	return r, ok
}

// LookupAlias returns the identifier alias with the given name.
func LookupAlias(name string) (*Alias, bool) {
	a, ok := aliases[name]
	return a, ok
}

// IsSlang reports whether name is a call rule or an alias.
func IsSlang(name string) bool {
	_, rule := rules[name]
	_, alias := aliases[name]
	return rule || alias
}

// Rules returns every call rule sorted by name.
func Rules() []*Rule {
	list := make([]*Rule, 0, len(rules))
	for _, r := range rules {
		list = append(list, r)
	}
	slices.SortFunc(list, func(a, b *Rule) int { return strings.Compare(a.Name, b.Name) })
	return list
}

// Aliases returns every identifier alias sorted by name.
func Aliases() []*Alias {
	list := make([]*Alias, 0, len(aliases))
	for _, a := range aliases {
		list = append(list, a)
	}
	slices.SortFunc(list, func(a, b *Alias) int { return strings.Compare(a.Name, b.Name) })
	return list
}
