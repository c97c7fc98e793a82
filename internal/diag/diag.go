// Package diag provides diagnostic (error/warning) types shared by every
// stage of the interpreter.
package diag

import (
	"errors"
	"fmt"
	"sun-lang/internal/span"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Stable diagnostic codes. W-codes are soft and never stop a run.
const (
	CodeUnknownChar     = "W1001" // lexer skipped a character
	CodeUnexpectedToken = "W2001" // parser fell back to an identifier

	CodeExpect        = "E2001" // token did not match the expected kind
	CodeConstNoInit   = "E2002" // const declared without a value
	CodeBadNumber     = "E2003" // number literal is not a valid float
	CodeRedeclared    = "E3001" // name already bound in this scope
	CodeUnresolved    = "E3002" // name not found in any scope
	CodeInvalidAssign = "E3003" // assignment target is not an identifier
	CodeUnknownNode   = "E3004" // evaluator met a node it cannot handle
)

// Diagnostic is a message tied to a location in source.
type Diagnostic struct {
	Code     string    `json:"code"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	Span     span.Span `json:"span"`
	Hint     string    `json:"hint,omitempty"`
}

// String returns a human-readable representation of the diagnostic.
func (d Diagnostic) String() string {
	prefix := d.Severity.String()
	loc := fmt.Sprintf("%d:%d", d.Span.Start.Line, d.Span.Start.Column)
	msg := fmt.Sprintf("[%s] %s at %s: %s", d.Code, prefix, loc, d.Message)
	if d.Hint != "" {
		msg += " (hint: " + d.Hint + ")"
	}
	return msg
}

// Errorf creates an error diagnostic at the given span.
func Errorf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Warningf creates a warning diagnostic at the given span.
func Warningf(code string, s span.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// Fatal is an error-severity diagnostic carried as a Go error. Stages return
// it instead of terminating the process; only the CLI decides to exit.
type Fatal struct {
	Diagnostic
}

func (e *Fatal) Error() string {
	return e.Diagnostic.String()
}

// NewFatal wraps an error diagnostic built from the arguments.
func NewFatal(code string, s span.Span, format string, args ...interface{}) *Fatal {
	return &Fatal{Diagnostic: Errorf(code, s, format, args...)}
}

// HasCode reports whether err is a *Fatal carrying the given code.
func HasCode(err error, code string) bool {
	var f *Fatal
	if !errors.As(err, &f) {
		return false
	}
	return f.Code == code
}
