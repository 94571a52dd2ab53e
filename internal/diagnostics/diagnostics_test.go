package diagnostics

import (
	"testing"

	"github.com/tailslide/tailslide-go/internal/token"
)

func TestLoggerCollectsErrorsAndWarnings(t *testing.T) {
	l := NewLogger()
	l.Errorf(ErrUndeclaredIdentifier, "a.lsl", token.Range{}, "undeclared %q", "foo")
	l.Warnf(WarnUnusedVariable, "a.lsl", token.Range{}, "unused %q", "bar")

	if !l.HasErrors() {
		t.Fatal("HasErrors should report true once an error-severity diagnostic is added")
	}
	if len(l.All()) != 2 {
		t.Fatalf("All() should return both diagnostics, got %d", len(l.All()))
	}
	if len(l.Errors()) != 1 || len(l.Warnings()) != 1 {
		t.Fatalf("Errors()/Warnings() should partition by severity, got %d/%d", len(l.Errors()), len(l.Warnings()))
	}
}

func TestLoggerWithOnlyWarningsHasNoErrors(t *testing.T) {
	l := NewLogger()
	l.Warnf(WarnDeadCode, "a.lsl", token.Range{}, "dead code")

	if l.HasErrors() {
		t.Error("a compilation with only warnings should not report HasErrors")
	}
}

func TestSeverityOfInfersFromCodePrefix(t *testing.T) {
	if severityOf(WarnConditionAlwaysTrue) != SeverityWarning {
		t.Error("a W-prefixed code should be SeverityWarning")
	}
	if severityOf(ErrTypeMismatch) != SeverityError {
		t.Error("a non-W-prefixed code should be SeverityError")
	}
}

func TestDiagnosticErrorImplementsError(t *testing.T) {
	d := NewError(ErrTypeMismatch, "a.lsl", token.Range{}, "boom")
	var err error = d
	if err.Error() == "" {
		t.Error("DiagnosticError.Error() should produce a non-empty message")
	}
}

func TestApplyAssertionsSuppressesMatchedDiagnostic(t *testing.T) {
	l := NewLogger()
	l.Errorf(ErrUndeclaredIdentifier, "a.lsl", token.Range{Start: token.Position{Line: 3}}, "undeclared %q", "foo")
	source := "integer x;\n\ninteger y = foo; // ASSERT: error E001 at line 3\n"

	if err := l.ApplyAssertions(source); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(l.All()) != 0 {
		t.Fatalf("asserted diagnostic should have been suppressed, got %v", l.All())
	}
}

func TestApplyAssertionsFailsOnUnmatchedAssertion(t *testing.T) {
	l := NewLogger()
	source := "integer x; // ASSERT: error E001 at line 1\n"

	if err := l.ApplyAssertions(source); err == nil {
		t.Fatal("expected an error for an assertion with no matching diagnostic")
	}
}

func TestApplyAssertionsLeavesUnassertedDiagnosticsAlone(t *testing.T) {
	l := NewLogger()
	l.Errorf(ErrUndeclaredIdentifier, "a.lsl", token.Range{Start: token.Position{Line: 5}}, "undeclared %q", "bar")

	if err := l.ApplyAssertions("integer x;\n"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(l.All()) != 1 {
		t.Fatalf("a diagnostic with no ASSERT comment should be reported normally, got %v", l.All())
	}
}

func TestSeverityString(t *testing.T) {
	if SeverityError.String() != "error" {
		t.Errorf("SeverityError.String() = %q, want %q", SeverityError.String(), "error")
	}
	if SeverityWarning.String() != "warning" {
		t.Errorf("SeverityWarning.String() = %q, want %q", SeverityWarning.String(), "warning")
	}
}
