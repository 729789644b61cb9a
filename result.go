package nocap

import (
	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/slang"
	"github.com/t14raptor/go-fast/ast"
)

// Result is the outcome of rewriting one source text.
type Result struct {
	program  *ast.Program
	code     string
	report   *slang.Report
	source   string
	filename string
	file     *parser.File
}

// Code returns the printed JavaScript.
func (r *Result) Code() string {
	return r.code
}

// Program returns the rewritten syntax tree.
func (r *Result) Program() *ast.Program {
	return r.program
}

// Report returns the slang decisions made during the rewrite.
func (r *Result) Report() *slang.Report {
	return r.report
}

// Source returns the source text that was rewritten.
func (r *Result) Source() string {
	return r.source
}

// Filename returns the filename associated with the source, if any.
func (r *Result) Filename() string {
	return r.filename
}

// Changed reports whether any slang was rewritten.
func (r *Result) Changed() bool {
	return r.report.Changed()
}
