// Package nocap rewrites JavaScript written with slang helpers into standard
// JavaScript.
//
// Source is parsed, rewritten by the slang catalog and printed again:
//
//	out, err := nocap.Transform(ctx, `deadass(ok, () => print("hi"))`)
//	// if (ok) {
//	//   console.log("hi");
//	// }
//
// Parsing and printing are done by go-fast. Programs that use no slang come
// back as go-fast's rendering of the input.
package nocap

import (
	"context"
	"fmt"

	"github.com/nocap-js/nocap/parser"
	"github.com/nocap-js/nocap/printer"
	"github.com/nocap-js/nocap/slang"
	"github.com/nocap-js/nocap/syntax"
	"github.com/rs/zerolog"
	"github.com/t14raptor/go-fast/ast"
)

// Option configures parsing, rewriting and printing.
type Option func(*options)

type options struct {
	filename     string
	logger       *zerolog.Logger
	catchParam   string
	loopVar      string
	transformers []syntax.Transformer
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	return opts
}

func (o *options) slangOpts(source string) []slang.Option {
	opts := []slang.Option{
		slang.WithSource(o.filename, source),
		slang.WithCatchParam(o.catchParam),
		slang.WithLoopVar(o.loopVar),
	}
	if o.logger != nil {
		opts = append(opts, slang.WithLogger(*o.logger))
	}
	return opts
}

// WithFilename sets the filename reported in positions and errors.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets a logger that receives a debug event for every slang
// decision.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithCatchParam sets the catch binding used when a vibeCheck catch callback
// declares no parameter. The default is "err". Names that are not valid
// identifiers are ignored.
func WithCatchParam(name string) Option {
	return func(o *options) {
		o.catchParam = name
	}
}

// WithLoopVar sets the loop variable used when a spinBack callback declares
// no parameter. The default is "i". Names that are not valid identifiers
// are ignored.
func WithLoopVar(name string) Option {
	return func(o *options) {
		o.loopVar = name
	}
}

// WithTransformers adds transformers that run after the slang rewrite, in
// the order given. This option is additive.
func WithTransformers(transformers ...syntax.Transformer) Option {
	return func(o *options) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// Parse parses source into a syntax tree without rewriting it.
func Parse(ctx context.Context, source string, opts ...Option) (*ast.Program, error) {
	o := collectOptions(opts...)
	return parser.Parse(ctx, source, o.parserOpts()...)
}

// Rewrite parses source, applies the slang catalog and any configured
// transformers, and prints the result. Nothing is returned on a parse or
// transformer error.
func Rewrite(ctx context.Context, source string, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	rewriter := slang.New(o.slangOpts(source)...)
	report := rewriter.Rewrite(program)
	if len(o.transformers) > 0 {
		program, err = syntax.Chain(o.transformers...).Transform(program)
		if err != nil {
			return nil, fmt.Errorf("transform: %w", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Result{
		program:  program,
		code:     printer.Print(program),
		report:   report,
		source:   source,
		filename: o.filename,
		file:     parser.NewFile(o.filename, source),
	}, nil
}

// Transform is a convenience function that rewrites source and returns the
// printed output.
func Transform(ctx context.Context, source string, opts ...Option) (string, error) {
	result, err := Rewrite(ctx, source, opts...)
	if err != nil {
		return "", err
	}
	return result.Code(), nil
}
