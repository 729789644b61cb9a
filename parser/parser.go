// Package parser parses JavaScript source into go-fast syntax trees.
//
// Parse is a thin layer over the go-fast parser. It adds cancellation, a
// source name for diagnostics and errors that carry a code, a position and
// the offending source line.
package parser

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/t14raptor/go-fast/ast"
	fast "github.com/t14raptor/go-fast/parser"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	filename string
}

// WithFilename sets the name reported in errors and positions.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// Parse parses src as a script. Syntax errors are returned as *Errors.
func Parse(ctx context.Context, src string, opts ...Option) (*ast.Program, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	program, err := fast.ParseFile(src)
	if err != nil {
		return nil, fromFast(err, NewFile(cfg.filename, src))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return program, nil
}

// Position is a location in a source file. Line and Column are 1-based; the
// zero Position is invalid.
type Position struct {
	Filename string
	Offset   int // byte offset
	Line     int
	Column   int // in characters
}

// IsValid reports whether the position refers to a line.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	var s string
	if p.IsValid() {
		s = fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if p.Filename != "" {
		if s == "" {
			return p.Filename
		}
		return p.Filename + ":" + s
	}
	if s == "" {
		return "-"
	}
	return s
}

// File maps node indexes of one parsed source back to lines and columns.
type File struct {
	name  string
	src   string
	lines []int // offset of the first byte of each line
}

// NewFile indexes the lines of src.
func NewFile(name, src string) *File {
	lines := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &File{name: name, src: src, lines: lines}
}

// Name returns the file name given to NewFile.
func (f *File) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

// Position converts a go-fast node index into a position. An index below
// the base go-fast counts from means no position.
func (f *File) Position(idx ast.Idx) Position {
	base := idxBase()
	if f == nil || int(idx) < base {
		return Position{}
	}
	return f.OffsetPosition(int(idx) - base)
}

// idxBase returns the index go-fast assigns to the first byte of a source,
// measured once on a fixed snippet.
var idxBase = sync.OnceValue(func() int {
	program, err := fast.ParseFile(" x")
	if err != nil || len(program.Body) == 0 {
		return 1
	}
	if es, ok := program.Body[0].Stmt.(*ast.ExpressionStatement); ok && es.Expression != nil {
		if id, ok := es.Expression.Expr.(*ast.Identifier); ok {
			return int(id.Idx) - 1
		}
	}
	return 1
})

// OffsetPosition converts a byte offset into a position.
func (f *File) OffsetPosition(offset int) Position {
	if f == nil || offset < 0 {
		return Position{}
	}
	offset = min(offset, len(f.src))
	line := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	start := f.lines[line]
	return Position{
		Filename: f.name,
		Offset:   offset,
		Line:     line + 1,
		Column:   utf8.RuneCountInString(f.src[start:offset]) + 1,
	}
}

// Line returns the text of the 1-based line n without its line terminator.
func (f *File) Line(n int) string {
	if f == nil || n < 1 || n > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := len(f.src)
	if n < len(f.lines) {
		end = f.lines[n] - 1
	}
	return strings.TrimSuffix(f.src[start:end], "\r")
}
