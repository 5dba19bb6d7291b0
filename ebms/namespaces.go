// Package ebms provides the AS4/ebMS3 protocol data model: the typed tree
// that an ebMS Messaging SOAP header unmarshals into, Processing Mode and
// MPC configuration records, and the per-request MessageState that the
// header processing pipeline (package header) populates.
package ebms

// XML Namespace URIs used by the ebMS 3.0 Core Specification and its AS4
// Profile.
const (
	// NsEbMS is the ebMS 3.0 Core namespace; the Messaging header element
	// and all of its children live here.
	NsEbMS = "http://docs.oasis-open.org/ebxml-msg/ebms/v3.0/ns/core/200704/"

	// NsSoap11 is the SOAP 1.1 envelope namespace.
	NsSoap11 = "http://schemas.xmlsoap.org/soap/envelope/"

	// NsSoap12 is the SOAP 1.2 envelope namespace.
	NsSoap12 = "http://www.w3.org/2003/05/soap-envelope"
)

// SOAPVersion identifies which SOAP envelope namespace a P-Mode leg's
// protocol is bound to.
type SOAPVersion int

const (
	// SOAP11 selects the SOAP 1.1 envelope namespace and body element name.
	SOAP11 SOAPVersion = iota
	// SOAP12 selects the SOAP 1.2 envelope namespace and body element name.
	SOAP12
)

// String returns the SOAP version's namespace URI.
func (v SOAPVersion) String() string {
	switch v {
	case SOAP11:
		return NsSoap11
	case SOAP12:
		return NsSoap12
	default:
		return "unknown"
	}
}

// BodyLocalName returns the local name of the SOAP body element for this
// version. Both SOAP 1.1 and 1.2 call it "Body"; the distinction that
// matters to callers is the namespace, exposed via String.
func (v SOAPVersion) BodyLocalName() string {
	return "Body"
}

// MessagingQName is the qualified name the Header Processor Chain (package
// header) keys its Messaging-element processor registration on.
var MessagingQName = QName{Space: NsEbMS, Local: "Messaging"}

// QName is a minimal namespace-qualified element name, independent of
// encoding/xml.Name so the data model has no hard dependency on how a
// given SOAP header arrived (decoded document vs. hand-built test fixture).
type QName struct {
	Space string
	Local string
}

// DefaultMPCURI is the well-known URI the ebMS 3.0 Core Specification
// reserves for the default Message Partition Channel.
const DefaultMPCURI = NsEbMS + "defaultMPC"

// GzipCompressionType is the sole compression type recognized by the AS4
// Profile (§6).
const GzipCompressionType = "application/gzip"
