package ebms

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode is one of the ebMS 3.0 error codes this core can raise.
type ErrorCode string

// Error codes raised by the header processing pipeline. See SPEC_FULL.md §7
// for the trigger conditions.
const (
	CodeValueNotRecognized     ErrorCode = "EBMS:0003"
	CodeValueInconsistent      ErrorCode = "EBMS:0004"
	CodeInvalidReceipt         ErrorCode = "EBMS:0006"
	CodeInvalidHeader          ErrorCode = "EBMS:0009"
	CodeProcessingModeMismatch ErrorCode = "EBMS:0010"
	CodeExternalPayloadError   ErrorCode = "EBMS:0011"
)

// Severity distinguishes a stage-failing error from an advisory warning.
// ErrorList can hold both; the header processor's own warnings (spec.md
// Phase P2a step 3's same-id reference note and Phase P2a step 7's
// unresolvable-attachment note) are recorded on MessageState via
// RecordWarning rather than in the ErrorList.
type Severity string

const (
	SeverityFailure Severity = "failure"
	SeverityWarning Severity = "warning"
)

// Error is a single ebMS-level fault or warning produced by this core.
// It implements the error interface so it composes with errors.Is/As,
// mirroring wsman.Fault.
type Error struct {
	Code        ErrorCode
	Severity    Severity
	Description string
	Detail      string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, string(e.Code))
	}
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}
	return "ebms: " + strings.Join(parts, ": ")
}

// Is0003 reports whether e is a ValueNotRecognized error.
func (e *Error) Is0003() bool { return e.Code == CodeValueNotRecognized }

// Is0004 reports whether e is a ValueInconsistent error.
func (e *Error) Is0004() bool { return e.Code == CodeValueInconsistent }

// Is0006 reports whether e is an InvalidReceipt error.
func (e *Error) Is0006() bool { return e.Code == CodeInvalidReceipt }

// Is0009 reports whether e is an InvalidHeader error.
func (e *Error) Is0009() bool { return e.Code == CodeInvalidHeader }

// Is0010 reports whether e is a ProcessingModeMismatch error.
func (e *Error) Is0010() bool { return e.Code == CodeProcessingModeMismatch }

// Is0011 reports whether e is an ExternalPayloadError error.
func (e *Error) Is0011() bool { return e.Code == CodeExternalPayloadError }

// IsWarning reports whether e is advisory rather than stage-failing.
func (e *Error) IsWarning() bool { return e.Severity == SeverityWarning }

// AsError unwraps err into an *Error, mirroring wsman.IsFault/ParseFault's
// errors.As-based composability.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// ErrorList accumulates Error entries across a single Process invocation.
// Entries may be failures (which stop the pipeline) or warnings (which do
// not).
type ErrorList struct {
	entries []*Error
}

// Append adds an entry to the list.
func (l *ErrorList) Append(e *Error) {
	l.entries = append(l.entries, e)
}

// Fail appends a SeverityFailure entry built from code/description/detail.
// It is a convenience used throughout package header.
func (l *ErrorList) Fail(code ErrorCode, description, detail string) {
	l.Append(&Error{Code: code, Severity: SeverityFailure, Description: description, Detail: detail})
}

// Warn appends a SeverityWarning entry built from code/description/detail.
func (l *ErrorList) Warn(code ErrorCode, description, detail string) {
	l.Append(&Error{Code: code, Severity: SeverityWarning, Description: description, Detail: detail})
}

// HasFailures reports whether any SeverityFailure entry has been appended.
func (l *ErrorList) HasFailures() bool {
	for _, e := range l.entries {
		if e.Severity == SeverityFailure {
			return true
		}
	}
	return false
}

// Entries returns all accumulated entries, failures and warnings alike.
func (l *ErrorList) Entries() []*Error {
	return l.entries
}

// Failures returns only the SeverityFailure entries.
func (l *ErrorList) Failures() []*Error {
	var out []*Error
	for _, e := range l.entries {
		if e.Severity == SeverityFailure {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns only the SeverityWarning entries.
func (l *ErrorList) Warnings() []*Error {
	var out []*Error
	for _, e := range l.entries {
		if e.Severity == SeverityWarning {
			out = append(out, e)
		}
	}
	return out
}

// Error implements the error interface by joining failure descriptions,
// mirroring wsman.Fault.Error's part-joining style. An empty list renders
// as an empty string; callers should check HasFailures first.
func (l *ErrorList) Error() string {
	var parts []string
	for _, e := range l.Failures() {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// Catalog maps an error code and locale to a human-readable description.
// The zero value is usable; entries are seeded by DefaultCatalog.
type Catalog struct {
	descriptions map[ErrorCode]map[string]string
}

// DefaultLocale is used by Describe when a requested locale has no entry.
const DefaultLocale = "en"

// DefaultCatalog returns the built-in English descriptions for every code
// this core raises.
func DefaultCatalog() *Catalog {
	c := &Catalog{descriptions: map[ErrorCode]map[string]string{}}
	c.Set(CodeValueNotRecognized, DefaultLocale, "An unrecognized value was encountered.")
	c.Set(CodeValueInconsistent, DefaultLocale, "A value is inconsistent with another value or with its context.")
	c.Set(CodeInvalidReceipt, DefaultLocale, "The Receipt signal is invalid.")
	c.Set(CodeInvalidHeader, DefaultLocale, "The Messaging header failed schema validation.")
	c.Set(CodeProcessingModeMismatch, DefaultLocale, "The message cannot be matched to a Processing Mode.")
	c.Set(CodeExternalPayloadError, DefaultLocale, "An error occurred relating to an external payload and its references.")
	return c
}

// Set registers or replaces a locale's description for code.
func (c *Catalog) Set(code ErrorCode, locale, description string) {
	if c.descriptions == nil {
		c.descriptions = map[ErrorCode]map[string]string{}
	}
	if c.descriptions[code] == nil {
		c.descriptions[code] = map[string]string{}
	}
	c.descriptions[code][locale] = description
}

// Describe returns code's description in locale, falling back to
// DefaultLocale and then to a generic message if neither is registered.
func (c *Catalog) Describe(code ErrorCode, locale string) string {
	if c.descriptions != nil {
		if byLocale, ok := c.descriptions[code]; ok {
			if d, ok := byLocale[locale]; ok {
				return d
			}
			if d, ok := byLocale[DefaultLocale]; ok {
				return d
			}
		}
	}
	return fmt.Sprintf("ebMS error %s", code)
}
