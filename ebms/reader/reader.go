// Package reader implements the Messaging Reader (SPEC_FULL.md §4.1's
// Phase P0 collaborator): deserializing an ebMS Messaging SOAP header
// element into a typed ebms.Messaging tree, collecting schema-validation
// diagnostics along a side channel rather than failing outright on
// recoverable shape problems.
package reader

import (
	"encoding/xml"
	"fmt"

	"github.com/ebms-as4/engine/ebms"
)

// Diagnostic is a single schema-validation complaint collected while
// reading a Messaging element. Path is a best-effort locator (an element
// name, not a full XPath); Message is human-readable.
type Diagnostic struct {
	Path    string
	Message string
}

// Read decodes data (the raw bytes of a single Messaging element,
// including its start and end tags) into an ebms.Messaging tree.
//
// Read returns (nil, diagnostics, nil) only when data is not well-formed
// XML at all (an xml.SyntaxError) — the trigger Phase P0 maps to
// EBMS:0009. A well-formed-but-schema-loose document still produces a
// best-effort *ebms.Messaging: unknown child elements are ignored without a
// diagnostic, and a timestamp that doesn't parse is reported as a
// diagnostic. Phase P1's cardinality check is the
// stronger and more specific signal for a structurally broken-but-parseable
// header.
func Read(data []byte) (*ebms.Messaging, []Diagnostic, error) {
	var msg ebms.Messaging
	if err := xml.Unmarshal(data, &msg); err != nil {
		var synErr *xml.SyntaxError
		if asSyntaxError(err, &synErr) {
			return nil, []Diagnostic{{Path: "Messaging", Message: synErr.Error()}}, nil
		}
		return nil, nil, fmt.Errorf("reader: decode Messaging: %w", err)
	}

	var diagnostics []Diagnostic
	diagnostics = append(diagnostics, validateTimestamps(&msg)...)

	return &msg, diagnostics, nil
}

func asSyntaxError(err error, target **xml.SyntaxError) bool {
	se, ok := err.(*xml.SyntaxError)
	if !ok {
		return false
	}
	*target = se
	return true
}

// validateTimestamps flags a MessageInfo.Timestamp that does not parse as
// an xsd:dateTime value.
func validateTimestamps(msg *ebms.Messaging) []Diagnostic {
	var out []Diagnostic
	for _, um := range msg.UserMessage {
		if _, err := um.MessageInfo.ParsedTimestamp(); err != nil {
			out = append(out, Diagnostic{
				Path:    "UserMessage/MessageInfo/Timestamp",
				Message: "timestamp is not a valid xsd:dateTime: " + err.Error(),
			})
		}
	}
	for _, sm := range msg.SignalMessage {
		if _, err := sm.MessageInfo.ParsedTimestamp(); err != nil {
			out = append(out, Diagnostic{
				Path:    "SignalMessage/MessageInfo/Timestamp",
				Message: "timestamp is not a valid xsd:dateTime: " + err.Error(),
			})
		}
	}
	return out
}
