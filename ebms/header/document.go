package header

import (
	"bytes"
	"encoding/xml"

	"github.com/ebms-as4/engine/ebms"
)

// Document is a minimal, dependency-free SOAPDocument implementation that
// scans the raw envelope bytes for a Body element in the requested SOAP
// version's namespace and reports whether it has any child element or
// non-whitespace text.
// XML parsing of the envelope is an external collaborator per
// SPEC_FULL.md §1; Document exists so the header package and its tests do
// not need a full SOAP stack to exercise Phase P2a step 5. A production
// host is expected to supply its own SOAPDocument backed by whatever XML
// layer it already uses to locate headers.
type Document struct {
	raw []byte
}

// NewDocument wraps raw envelope bytes.
func NewDocument(raw []byte) *Document {
	return &Document{raw: raw}
}

// Raw returns the wrapped bytes unchanged.
func (d *Document) Raw() []byte {
	return d.raw
}

// BodyHasPayload reports whether the SOAP Body element in version's
// namespace exists and has at least one child element or non-whitespace
// text content; whitespace-only text does not count.
func (d *Document) BodyHasPayload(version ebms.SOAPVersion) bool {
	ns := version.String()
	dec := xml.NewDecoder(bytes.NewReader(d.raw))

	depth := -1 // depth of the Body element once found; -1 means not found yet
	for {
		tok, err := dec.Token()
		if err != nil {
			return false
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == -1 {
				if t.Name.Local == "Body" && t.Name.Space == ns {
					depth = 0
					continue
				}
				continue
			}
			if depth == 0 {
				// Any start element directly inside Body is a child.
				return true
			}
		case xml.EndElement:
			if depth == 0 && t.Name.Local == "Body" && t.Name.Space == ns {
				return false
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				// Non-whitespace text content also counts as a payload.
				return true
			}
		}
	}
}
