package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Parse errors
//   - E2xxx: Slang diagnostics
type ErrorCode string

const (
	// Parse errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unexpected token
	E1002 ErrorCode = "E1002" // Unterminated literal
	E1003 ErrorCode = "E1003" // Invalid syntax

	// Slang diagnostics (E2xxx)
	E2001 ErrorCode = "E2001" // Arguments do not fit the construct
	E2002 ErrorCode = "E2002" // Construct used outside statement position
	E2003 ErrorCode = "E2003" // Continuation without a preceding construct
	E2004 ErrorCode = "E2004" // Probable misspelling of a construct
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unexpected token",
	E1002: "unterminated literal",
	E1003: "invalid syntax",

	E2001: "arguments do not fit the construct",
	E2002: "construct used outside statement position",
	E2003: "continuation without a preceding construct",
	E2004: "probable misspelling",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "parse"
	case '2':
		return "slang"
	default:
		return "unknown"
	}
}
