package syntax

import (
	"fmt"
	"strings"

	"github.com/nocap-js/nocap/parser"
	"github.com/t14raptor/go-fast/ast"
)

// ValidationError describes a problem found in a syntax tree.
type ValidationError struct {
	Message  string          // description of the violation
	Node     any             // the offending node
	Position parser.Position // source location
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	switch {
	case pos.Filename != "":
		return fmt.Sprintf("%s at %s", e.Message, pos)
	case pos.IsValid():
		return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.Line, pos.Column)
	}
	return e.Message
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the first error for errors.Is/As compatibility.
func (e *ValidationErrors) Unwrap() error {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}
	return nil
}

// Validator inspects a syntax tree and returns validation errors.
// Validators should not modify the tree.
type Validator interface {
	// Validate checks the tree and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(program *ast.Program) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Program) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(p *ast.Program) []ValidationError {
	return f(p)
}

// ValidateAll runs each validator over program and collects their errors in
// order.
func ValidateAll(program *ast.Program, validators ...Validator) []ValidationError {
	var errs []ValidationError
	for _, v := range validators {
		if v == nil {
			continue
		}
		errs = append(errs, v.Validate(program)...)
	}
	return errs
}
