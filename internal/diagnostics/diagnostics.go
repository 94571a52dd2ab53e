// Package diagnostics is the error/warning reporting contract: stable
// error codes, a DiagnosticError carrying the source location
// every pass attaches to a node, and a Logger that collects them across a
// whole compilation without aborting early. Passes keep
// walking and poison downstream types rather than stopping at the first
// error.
package diagnostics

import (
	"fmt"

	"github.com/tailslide/tailslide-go/internal/token"
)

// Code is a stable diagnostic identifier: a letter prefix plus a
// three-digit number. E codes are errors from resolve (E009 comes from
// the optimizer's final validation), T codes are typecheck errors, and
// W codes are warnings (from lint, plus W008/W009 from resolve and W010
// from constfold).
type Code string

const (
	ErrUndeclaredIdentifier Code = "E001"
	ErrDuplicateDeclaration Code = "E002"
	ErrUndeclaredLabel      Code = "E003"
	ErrDuplicateLabel       Code = "E004"
	ErrUnknownFunction      Code = "E005"
	ErrUnknownEvent         Code = "E006"
	ErrStateNotFound        Code = "E007"

	ErrTypeMismatch       Code = "T001"
	ErrInvalidCast        Code = "T002"
	ErrWrongArgumentCount Code = "T003"
	ErrWrongArgumentType  Code = "T004"
	ErrNotAnLValue        Code = "T005"
	ErrVoidInExpression   Code = "T006"
	ErrMissingReturn      Code = "T007"
	ErrInvalidOperands    Code = "T008"

	WarnConditionAlwaysTrue  Code = "W001"
	WarnConditionAlwaysFalse Code = "W002"
	WarnAssignmentInCond     Code = "W003"
	WarnMultipleEventHandler Code = "W004"
	WarnUnusedVariable       Code = "W005"
	WarnUnusedFunction       Code = "W006"
	WarnDeadCode             Code = "W007"
	WarnJumpToWrongLabel     Code = "W008"
	WarnDuplicateLabelName   Code = "W009"
	WarnDivisionByZero       Code = "W010"

	ErrDeclarationNotAllowed  Code = "E008"
	ErrDuplicateGlobal        Code = "E009"
	ErrTooManyEventArguments  Code = "E010"
	ErrTooFewEventArguments   Code = "E011"
	ErrWrongArgumentTypeEvent Code = "E012"
)

// Severity distinguishes a hard failure (compilation cannot continue to
// emission) from an advisory warning.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

func severityOf(c Code) Severity {
	if len(c) > 0 && c[0] == 'W' {
		return SeverityWarning
	}
	return SeverityError
}

// DiagnosticError is one reported problem: a code, its source location,
// and a human-readable message. It implements error so it can travel
// through ordinary Go error-returning signatures as well as being
// collected in a Logger.
type DiagnosticError struct {
	Code     Code
	Severity Severity
	File     string
	Range    token.Range
	Message  string

	// Synthesized marks a diagnostic raised against a node a pass
	// inserted; callers use this to decide whether a
	// diagnostic is even reportable against original source: synthesized
	// nodes never surface source-level diagnostics on their
	// own account, only via the original node that caused their
	// insertion.
	Synthesized bool
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("%s: %s: %s: %s", e.Range.Start, e.Severity, e.Code, e.Message)
}

// NewError builds a SeverityError-level diagnostic at r.
func NewError(code Code, file string, r token.Range, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityError, File: file, Range: r, Message: message}
}

// NewErrorf is NewError with fmt.Sprintf-style formatting.
func NewErrorf(code Code, file string, r token.Range, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, file, r, fmt.Sprintf(format, args...))
}

// NewWarning builds a diagnostic at r whose severity follows the code's
// prefix: SeverityWarning for a W code, SeverityError otherwise.
func NewWarning(code Code, file string, r token.Range, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: severityOf(code), File: file, Range: r, Message: message}
}

// NewWarningf is NewWarning with fmt.Sprintf-style formatting.
func NewWarningf(code Code, file string, r token.Range, format string, args ...interface{}) *DiagnosticError {
	return NewWarning(code, file, r, fmt.Sprintf(format, args...))
}

// Logger accumulates diagnostics across every pass of one compilation.
// Passes never abort on the first error: they keep walking,
// poisoning types downstream, so a single compile reports everything
// wrong with a script in one run.
type Logger struct {
	diags []*DiagnosticError
}

// NewLogger returns an empty Logger.
func NewLogger() *Logger { return &Logger{} }

// Add appends d, ignoring a nil (a pass that decided not to report after
// all, e.g. because the offending node turned out synthesized).
func (l *Logger) Add(d *DiagnosticError) {
	if d != nil {
		l.diags = append(l.diags, d)
	}
}

// Errorf is a convenience for NewErrorf followed by Add.
func (l *Logger) Errorf(code Code, file string, r token.Range, format string, args ...interface{}) {
	l.Add(NewErrorf(code, file, r, format, args...))
}

// Warnf is a convenience for NewWarningf followed by Add.
func (l *Logger) Warnf(code Code, file string, r token.Range, format string, args ...interface{}) {
	l.Add(NewWarningf(code, file, r, format, args...))
}

// All returns every diagnostic collected so far, in report order.
func (l *Logger) All() []*DiagnosticError { return l.diags }

// HasErrors reports whether any SeverityError diagnostic was collected;
// a compilation with only warnings may still proceed to emission.
func (l *Logger) HasErrors() bool {
	for _, d := range l.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns only the SeverityError-level diagnostics.
func (l *Logger) Errors() []*DiagnosticError {
	var out []*DiagnosticError
	for _, d := range l.diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the SeverityWarning-level diagnostics.
func (l *Logger) Warnings() []*DiagnosticError {
	var out []*DiagnosticError
	for _, d := range l.diags {
		if d.Severity == SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}
