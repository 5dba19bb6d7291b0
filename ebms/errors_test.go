package ebms

import (
	"errors"
	"testing"
)

func TestErrorPredicates(t *testing.T) {
	e := &Error{Code: CodeValueInconsistent, Severity: SeverityFailure}
	if !e.Is0004() {
		t.Error("expected Is0004 to be true")
	}
	if e.Is0003() || e.Is0010() {
		t.Error("expected only Is0004 to match")
	}
	if e.IsWarning() {
		t.Error("expected failure severity, not warning")
	}
}

func TestAsError(t *testing.T) {
	e := &Error{Code: CodeInvalidReceipt, Severity: SeverityFailure, Description: "missing ref"}
	wrapped := errors.New("wrap: " + e.Error())

	if _, ok := AsError(wrapped); ok {
		t.Error("plain wrapped string should not resolve via errors.As")
	}

	if got, ok := AsError(e); !ok || got != e {
		t.Errorf("expected AsError to recover the original *Error, got %v, %v", got, ok)
	}
}

func TestErrorListFailuresAndWarnings(t *testing.T) {
	var list ErrorList
	list.Fail(CodeValueInconsistent, "bad value", "detail-1")
	list.Warn(CodeExternalPayloadError, "unresolved attachment", "att-1")

	if !list.HasFailures() {
		t.Error("expected HasFailures to be true")
	}
	if len(list.Failures()) != 1 {
		t.Errorf("expected 1 failure, got %d", len(list.Failures()))
	}
	if len(list.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %d", len(list.Warnings()))
	}
	if len(list.Entries()) != 2 {
		t.Errorf("expected 2 entries total, got %d", len(list.Entries()))
	}
}

func TestCatalogDescribeFallsBackToDefaultLocale(t *testing.T) {
	c := DefaultCatalog()
	c.Set(CodeValueInconsistent, "fr", "Valeur incohérente.")

	if got := c.Describe(CodeValueInconsistent, "fr"); got != "Valeur incohérente." {
		t.Errorf("expected French description, got %q", got)
	}
	if got := c.Describe(CodeValueInconsistent, "de"); got == "" {
		t.Error("expected fallback to default locale, got empty description")
	}
	if got := c.Describe(ErrorCode("EBMS:9999"), "en"); got == "" {
		t.Error("expected a generic fallback description for an unregistered code")
	}
}
