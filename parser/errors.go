package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nocap-js/nocap/errors"
)

// ErrorOpts holds the data for a parser error. Cause wins over Message when
// both are set.
type ErrorOpts struct {
	ErrType    string
	Code       errors.ErrorCode
	Message    string
	Cause      error
	Position   Position
	SourceCode string
}

// ParserError is implemented by every error Parse returns.
type ParserError interface {
	Type() string
	Code() errors.ErrorCode
	Message() string
	Cause() error
	Position() Position
	SourceCode() string
	Error() string
	errors.FriendlyError
}

// NewParserError returns a BaseParserError for opts.
func NewParserError(opts ErrorOpts) *BaseParserError {
	return &BaseParserError{opts: opts}
}

// BaseParserError is the simplest implementation of ParserError.
type BaseParserError struct {
	opts ErrorOpts
}

func (e *BaseParserError) Error() string {
	msg := e.Message()
	if e.opts.Position.IsValid() {
		msg = fmt.Sprintf("%s (%s)", msg, e.opts.Position)
	}
	if e.opts.ErrType != "" {
		msg = e.opts.ErrType + ": " + msg
	}
	return msg
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the error for display by errors.Formatter.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	pos := e.opts.Position
	f := &errors.FormattedError{
		Code:     e.opts.Code,
		Kind:     e.opts.ErrType,
		Message:  e.Message(),
		Filename: pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
	}
	if pos.IsValid() && e.opts.SourceCode != "" {
		f.SourceLines = []errors.SourceLineEntry{
			{Number: pos.Line, Text: e.opts.SourceCode, IsMain: true},
		}
	}
	return f
}

func (e *BaseParserError) Type() string { return e.opts.ErrType }

// Code returns the diagnostic code, if one was assigned.
func (e *BaseParserError) Code() errors.ErrorCode { return e.opts.Code }

func (e *BaseParserError) Message() string {
	if e.opts.Cause != nil && e.opts.Message == "" {
		return e.opts.Cause.Error()
	}
	return e.opts.Message
}

func (e *BaseParserError) Cause() error { return e.opts.Cause }

func (e *BaseParserError) Position() Position { return e.opts.Position }

func (e *BaseParserError) SourceCode() string { return e.opts.SourceCode }

func (e *BaseParserError) Unwrap() error { return e.opts.Cause }

// SyntaxError is reported for source the go-fast parser rejects.
type SyntaxError struct {
	*BaseParserError
}

// NewSyntaxError returns a SyntaxError for opts.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	opts.ErrType = "syntax error"
	return &SyntaxError{BaseParserError: NewParserError(opts)}
}

// go-fast reports "name: Line L:C message", joined with a count when there
// is more than one.
var (
	fastErrorPattern = regexp.MustCompile(`Line (\d+):(\d+) (.+)`)
	moreErrorsSuffix = regexp.MustCompile(` \(and \d+ more errors?\)$`)
)

// fromFast converts a go-fast parse error into Errors. The location is
// recovered from the message.
func fromFast(err error, file *File) *Errors {
	text := moreErrorsSuffix.ReplaceAllString(err.Error(), "")
	opts := ErrorOpts{Cause: err, Message: text, Position: Position{Filename: file.Name()}}
	if m := fastErrorPattern.FindStringSubmatch(text); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		opts.Message = m[3]
		opts.Position.Line = line
		opts.Position.Column = col
		opts.SourceCode = file.Line(line)
	}
	opts.Code = classify(opts.Message)
	return NewErrors([]ParserError{NewSyntaxError(opts)})
}

func classify(msg string) errors.ErrorCode {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unterminated"):
		return errors.E1002
	case strings.HasPrefix(lower, "unexpected"), strings.Contains(lower, "invalid or unexpected token"):
		return errors.E1001
	default:
		return errors.E1003
	}
}

// Errors is the error returned by Parse. It holds one or more ParserError
// values and reports the first through the ParserError methods.
type Errors struct {
	errs []ParserError
}

// NewErrors returns nil for an empty list.
func NewErrors(errs []ParserError) *Errors {
	if len(errs) == 0 {
		return nil
	}
	return &Errors{errs: errs}
}

func (e *Errors) Error() string {
	switch len(e.errs) {
	case 0:
		return ""
	case 1:
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e.errs[0].Error(), len(e.errs)-1)
}

// Errors returns the underlying parser errors.
func (e *Errors) Errors() []ParserError { return e.errs }

// Count returns the number of errors.
func (e *Errors) Count() int { return len(e.errs) }

// First returns the first error, or nil.
func (e *Errors) First() ParserError {
	if len(e.errs) == 0 {
		return nil
	}
	return e.errs[0]
}

// FriendlyErrorMessage formats every error.
func (e *Errors) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).FormatMultiple(e.ToFormattedMultiple())
}

// ToFormattedMultiple converts all errors for display.
func (e *Errors) ToFormattedMultiple() []*errors.FormattedError {
	var formatted []*errors.FormattedError
	for _, err := range e.errs {
		if f, ok := err.(interface{ ToFormatted() *errors.FormattedError }); ok {
			formatted = append(formatted, f.ToFormatted())
			continue
		}
		formatted = append(formatted, &errors.FormattedError{Kind: "error", Message: err.Error()})
	}
	return formatted
}

func (e *Errors) Type() string {
	if f := e.First(); f != nil {
		return f.Type()
	}
	return ""
}

func (e *Errors) Code() errors.ErrorCode {
	if f := e.First(); f != nil {
		return f.Code()
	}
	return ""
}

func (e *Errors) Message() string {
	if f := e.First(); f != nil {
		return f.Message()
	}
	return ""
}

func (e *Errors) Cause() error {
	if f := e.First(); f != nil {
		return f.Cause()
	}
	return nil
}

func (e *Errors) Position() Position {
	if f := e.First(); f != nil {
		return f.Position()
	}
	return Position{}
}

func (e *Errors) SourceCode() string {
	if f := e.First(); f != nil {
		return f.SourceCode()
	}
	return ""
}

// Unwrap exposes every error to errors.Is and errors.As.
func (e *Errors) Unwrap() []error {
	result := make([]error, len(e.errs))
	for i, err := range e.errs {
		result[i] = err
	}
	return result
}
