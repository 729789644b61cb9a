// Package errors defines error types with source locations and the
// formatter used to render them for people.
package errors

import "fmt"

// SourceLocation represents a position in source code.
type SourceLocation struct {
	Filename string
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Source   string // The line of source code
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FriendlyError is an interface for errors that have a human friendly message
// in addition to a the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// Diagnostic is a located finding about a program that is not fatal, such as
// slang that was left untouched by a rewrite.
type Diagnostic struct {
	Code     ErrorCode
	Message  string
	Location SourceLocation
	Hint     string
}

// Error implements the error interface using the "file:line:col: message"
// form understood by editors.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Location, d.Message)
}

// ToFormatted converts the diagnostic to a FormattedError for display.
func (d *Diagnostic) ToFormatted() *FormattedError {
	fe := &FormattedError{
		Code:     d.Code,
		Kind:     "warning",
		Message:  d.Message,
		Filename: d.Location.Filename,
		Line:     d.Location.Line,
		Column:   d.Location.Column,
		Hint:     d.Hint,
	}
	if d.Location.Source != "" {
		fe.SourceLines = []SourceLineEntry{
			{Number: d.Location.Line, Text: d.Location.Source, IsMain: true},
		}
	}
	return fe
}

// FriendlyErrorMessage renders the diagnostic without colors.
func (d *Diagnostic) FriendlyErrorMessage() string {
	return NewFormatter(false).Format(d.ToFormatted())
}
