// Package astutil traverses and edits go-fast syntax trees.
//
// Apply walks every node reachable through exported fields and hands each
// one to the caller through a Cursor. Nodes that sit in an ast.Expression or
// ast.Statement slot can be replaced in place; the wrapper itself is never
// reported as a node.
package astutil

import (
	"reflect"

	"github.com/t14raptor/go-fast/ast"
)

// ApplyFunc is invoked by Apply for each node n, even if n is nil, before
// and/or after the node's children, using a Cursor describing the current
// node and providing operations on it.
//
// The return value of ApplyFunc controls the syntax tree traversal.
// See Apply for details.
type ApplyFunc func(*Cursor) bool

var (
	astPkg   = reflect.TypeOf(ast.Program{}).PkgPath()
	exprType = reflect.TypeOf(ast.Expression{})
	stmtType = reflect.TypeOf(ast.Statement{})
)

// Apply traverses a syntax tree recursively, starting with root, and
// calling pre and post for each node as described below. Apply returns the
// syntax tree, possibly modified.
//
// If pre is not nil, it is called for each node before the node's children
// are traversed (pre-order). If pre returns false, no children are
// traversed, and post is not called for that node.
//
// If post is not nil, and a prior call of pre didn't return false, post is
// called for each node after its children are traversed (post-order). If
// post returns false, traversal is terminated and Apply returns immediately.
//
// Children are traversed after pre returns, so a node replaced by pre is
// traversed under its new identity. Each node is visited at most once.
func Apply(root any, pre, post ApplyFunc) (result any) {
	if root == nil {
		return nil
	}
	a := &application{pre: pre, post: post, seen: make(map[any]bool)}
	defer func() {
		if r := recover(); r != nil {
			if r != abort {
				panic(r)
			}
			result = root
		}
	}()
	a.node(nil, "", -1, reflect.Value{}, nil, root)
	return root
}

// Inspect traverses the tree rooted at root in depth-first order, calling f
// for each node. If f returns false, the children of that node are skipped.
func Inspect(root any, f func(n any) bool) {
	Apply(root, func(c *Cursor) bool { return f(c.Node()) }, nil)
}

var abort = new(int)

type application struct {
	pre, post ApplyFunc
	seen      map[any]bool
	stack     []any
	cursor    Cursor
}

// node visits n, the concrete node held by slot when slot is valid.
func (a *application) node(parent any, name string, index int, slot reflect.Value, seq *Sequence, n any) {
	if n == nil || a.seen[n] {
		return
	}
	a.seen[n] = true

	saved := a.cursor
	a.cursor = Cursor{parent: parent, name: name, index: index, slot: slot, seq: seq, node: n, stack: a.stack}
	if a.pre != nil && !a.pre(&a.cursor) {
		a.cursor = saved
		return
	}
	n = a.cursor.node
	if n != nil {
		a.seen[n] = true
		a.children(n)
	}
	if a.post != nil {
		a.cursor.stack = a.stack
		if !a.post(&a.cursor) {
			panic(abort)
		}
	}
	a.cursor = saved
}

func (a *application) children(n any) {
	v := reflect.ValueOf(n)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return
	}
	a.stack = append(a.stack, n)
	s := v.Elem()
	t := s.Type()
	for i := 0; i < s.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		a.field(n, t.Field(i).Name, -1, s.Field(i))
	}
	a.stack = a.stack[:len(a.stack)-1]
}

func (a *application) field(parent any, name string, index int, f reflect.Value) {
	switch f.Kind() {
	case reflect.Struct:
		switch {
		case f.Type() == exprType || f.Type() == stmtType:
			a.wrapper(parent, name, index, nil, f)
		case f.Type().PkgPath() == astPkg && f.CanAddr():
			a.node(parent, name, index, reflect.Value{}, nil, f.Addr().Interface())
		}
	case reflect.Pointer:
		if f.IsNil() || f.Elem().Kind() != reflect.Struct || f.Type().Elem().PkgPath() != astPkg {
			return
		}
		if e := f.Type().Elem(); e == exprType || e == stmtType {
			a.wrapper(parent, name, index, nil, f.Elem())
			return
		}
		a.node(parent, name, index, reflect.Value{}, nil, f.Interface())
	case reflect.Interface:
		if f.IsNil() {
			return
		}
		a.field(parent, name, index, f.Elem())
	case reflect.Slice:
		if f.Type().Elem() == stmtType && f.CanSet() {
			seq := &Sequence{owner: parent, list: f}
			for seq.next = 0; seq.next < f.Len(); seq.next++ {
				i := seq.next
				a.wrapper(parent, name, i, seq, f.Index(i))
			}
			return
		}
		for i := 0; i < f.Len(); i++ {
			a.field(parent, name, i, f.Index(i))
		}
	}
}

// wrapper visits the node held by an Expression or Statement value w.
func (a *application) wrapper(parent any, name string, index int, seq *Sequence, w reflect.Value) {
	if !w.CanAddr() {
		return
	}
	slot := inner(w)
	if !slot.IsValid() || slot.IsNil() {
		return
	}
	a.node(parent, name, index, slot, seq, slot.Interface())
}

// inner returns the interface field of an Expression or Statement value.
func inner(w reflect.Value) reflect.Value {
	if w.Type() == exprType {
		return w.FieldByName("Expr")
	}
	return w.FieldByName("Stmt")
}

// A Cursor describes a node encountered during Apply. Information about
// the node and its parent is available from the Node, Parent, Name, and
// Index methods.
//
// The methods Replace and Sequence modify the syntax tree and may only be
// called from within the ApplyFunc that received the cursor.
type Cursor struct {
	parent any
	name   string
	index  int
	slot   reflect.Value
	seq    *Sequence
	node   any
	stack  []any
}

// Node returns the current node.
func (c *Cursor) Node() any { return c.node }

// Parent returns the node that holds the current node, looking through
// Expression and Statement wrappers.
func (c *Cursor) Parent() any { return c.parent }

// Name returns the name of the parent field that contains the current node.
func (c *Cursor) Name() string { return c.name }

// Index reports the index of the current node in the slice of the parent
// field that contains it, or -1 if the field is not a slice.
func (c *Cursor) Index() int { return c.index }

// Ancestor returns the n-th ancestor of the current node. Ancestor(0) is the
// parent. It returns nil past the root.
func (c *Cursor) Ancestor(n int) any {
	i := len(c.stack) - 1 - n
	if i < 0 || i >= len(c.stack) {
		return nil
	}
	return c.stack[i]
}

// Replaceable reports whether the current node sits in an Expression or
// Statement slot.
func (c *Cursor) Replaceable() bool { return c.slot.IsValid() }

// Replace replaces the current node with n. It panics when the node is not
// replaceable or when n does not fit the slot.
func (c *Cursor) Replace(n any) {
	if !c.slot.IsValid() {
		panic("astutil: Replace called on a node outside an Expression or Statement slot")
	}
	c.slot.Set(reflect.ValueOf(n))
	c.node = n
}

// Sequence returns the statement list containing the current node, or nil
// if the node is not an element of one.
func (c *Cursor) Sequence() *Sequence { return c.seq }

// EnclosingFunc returns the innermost function literal or arrow function
// containing the current node.
func (c *Cursor) EnclosingFunc() any {
	for i := len(c.stack) - 1; i >= 0; i-- {
		switch fn := c.stack[i].(type) {
		case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral:
			return fn
		}
	}
	return nil
}

// SetAsync marks fn, a function literal or arrow function, as async.
func SetAsync(fn any) {
	switch fn := fn.(type) {
	case *ast.FunctionLiteral:
		fn.Async = true
	case *ast.ArrowFunctionLiteral:
		fn.Async = true
	}
}

// Sequence is a statement list being traversed by Apply. Elements removed
// ahead of the current position are never visited.
type Sequence struct {
	owner any
	list  reflect.Value
	next  int
}

// Owner returns the node holding the list: a program, block, switch case or
// similar.
func (s *Sequence) Owner() any { return s.owner }

// Len returns the number of statements in the list.
func (s *Sequence) Len() int { return s.list.Len() }

// At returns the statement at index i.
func (s *Sequence) At(i int) ast.Stmt {
	st, _ := s.list.Index(i).FieldByName("Stmt").Interface().(ast.Stmt)
	return st
}

// IndexOf returns the index of stmt in the list, or -1.
func (s *Sequence) IndexOf(stmt ast.Stmt) int {
	for i := 0; i < s.list.Len(); i++ {
		if s.At(i) == stmt {
			return i
		}
	}
	return -1
}

// RemoveAt deletes the statement at index i.
func (s *Sequence) RemoveAt(i int) {
	n := s.list.Len()
	reflect.Copy(s.list.Slice(i, n), s.list.Slice(i+1, n))
	s.list.Index(n - 1).Set(reflect.Zero(stmtType))
	s.list.SetLen(n - 1)
	if i < s.next {
		s.next--
	}
}
