package ebms

import (
	"encoding/xml"
	"time"
)

// timestampLayouts are the xsd:dateTime-compatible layouts
// MessageInfo.ParsedTimestamp tries, in order. xsd:dateTime permits an optional fractional-second and
// either "Z" or a numeric offset, which time.RFC3339Nano covers; it does not
// require the offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Messaging is the envelope-level container for an ebMS header: zero-or-one
// UserMessage and zero-or-one SignalMessage. Exactly one of UserMessage or
// SignalMessage is present on a successfully-processed message; having
// both, or neither, is a cardinality error the header processor reports
// (see package header).
type Messaging struct {
	XMLName       xml.Name        `xml:"Messaging"`
	MustUnderstand string         `xml:"mustUnderstand,attr,omitempty"`
	UserMessage   []*UserMessage  `xml:"UserMessage"`
	SignalMessage []*SignalMessage `xml:"SignalMessage"`
}

// UserMessageCount returns the number of UserMessage children, for the
// cardinality check in header Phase P1.
func (m *Messaging) UserMessageCount() int {
	if m == nil {
		return 0
	}
	return len(m.UserMessage)
}

// SignalMessageCount returns the number of SignalMessage children, for the
// cardinality check in header Phase P1.
func (m *Messaging) SignalMessageCount() int {
	if m == nil {
		return 0
	}
	return len(m.SignalMessage)
}

// MessageInfo carries the identifiers and timestamp common to both
// UserMessage and SignalMessage. Timestamp is kept as the raw xsd:dateTime
// string rather than time.Time so an unparseable value becomes a reader
// diagnostic (SPEC_FULL.md §3) instead of a hard decode failure.
type MessageInfo struct {
	Timestamp      string `xml:"Timestamp"`
	MessageID      string `xml:"MessageId"`
	RefToMessageID string `xml:"RefToMessageId,omitempty"`
}

// ParsedTimestamp parses Timestamp as an xsd:dateTime value.
func (m MessageInfo) ParsedTimestamp() (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, m.Timestamp); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// UserMessage is a business payload message.
type UserMessage struct {
	MessageInfo      MessageInfo       `xml:"MessageInfo"`
	PartyInfo        PartyInfo         `xml:"PartyInfo"`
	CollaborationInfo CollaborationInfo `xml:"CollaborationInfo"`
	MessageProperties []Property       `xml:"MessageProperties>Property"`
	PayloadInfo      *PayloadInfo      `xml:"PayloadInfo"`
	MPC              string            `xml:"mpc,attr,omitempty"`
}

// PartyInfo holds the sending (From) and receiving (To) party descriptors.
type PartyInfo struct {
	From Party `xml:"From"`
	To   Party `xml:"To"`
}

// Party is one side of a PartyInfo: a role plus one-or-more party ids. The
// AS4 Profile requires exactly one id per side; more than one is a
// cardinality error (see header Phase P2a step 1).
type Party struct {
	Role     string     `xml:"Role"`
	PartyIDs []PartyID  `xml:"PartyId"`
}

// PartyID is a single identifier for a trading partner, optionally scoped
// by a type URI.
type PartyID struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// CollaborationInfo describes the business context of a UserMessage.
type CollaborationInfo struct {
	AgreementRef   *AgreementRef `xml:"AgreementRef"`
	Service        Service       `xml:"Service"`
	Action         string        `xml:"Action"`
	ConversationID string        `xml:"ConversationId"`
}

// AgreementRef optionally names the bilateral agreement and, via PMode, the
// specific P-Mode id the sender believes governs the message.
type AgreementRef struct {
	Value string `xml:",chardata"`
	PMode string `xml:"pmode,attr,omitempty"`
}

// Service names the business service a UserMessage belongs to, optionally
// scoped by a type URI.
type Service struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Property is a single name/value pair, used both for MessageProperties and
// for PartInfo.PartProperties.
type Property struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

// PayloadInfo lists the parts that make up a UserMessage's payload.
type PayloadInfo struct {
	PartInfo []PartInfo `xml:"PartInfo"`
}

// PartInfo describes a single payload part. An empty Href means the part is
// the SOAP body payload itself; a non-empty Href must be a "cid:"-prefixed
// reference to a MIME attachment.
type PartInfo struct {
	Href           string     `xml:"href,attr,omitempty"`
	PartProperties []Property `xml:"PartProperties>Property"`
}

// Property names recognized case-insensitively on a PartInfo.
const (
	PropMimeType        = "MimeType"
	PropCompressionType = "CompressionType"
	PropCharacterSet    = "CharacterSet"
)

// SignalMessage carries a PullRequest, a Receipt, or a list of Errors.
// Exactly one of those three is present (header Phase P2b).
type SignalMessage struct {
	MessageInfo MessageInfo  `xml:"MessageInfo"`
	PullRequest *PullRequest `xml:"PullRequest"`
	Receipt     *Receipt     `xml:"Receipt"`
	Error       []SignalError `xml:"Error"`
}

// PullRequest asks the counterparty to deliver any queued message on MPC.
type PullRequest struct {
	MPC string `xml:"mpc,attr,omitempty"`
}

// Receipt is an opaque acknowledgement of a prior UserMessage; its content
// is not interpreted by this core beyond requiring a RefToMessageId on the
// enclosing MessageInfo (header Phase P2b step 2).
type Receipt struct {
	Content []byte `xml:",innerxml"`
}

// ErrorCategory is one of the predefined ebMS error categories (Core
// Specification §6.2). This core only parses and logs it; it never
// validates or rejects based on category (see DESIGN.md / SPEC_FULL §9).
type ErrorCategory string

// Predefined ebMS error categories.
const (
	CategoryContent       ErrorCategory = "Content"
	CategoryCommunication ErrorCategory = "Communication"
	CategoryUnpackaging   ErrorCategory = "Unpackaging"
	CategoryProcessing    ErrorCategory = "Processing"
	CategorySecurity      ErrorCategory = "Security"
)

// SignalError is a single ebMS Error element carried inside an incoming
// SignalMessage. It is distinct from ebms.Error (the error this core
// itself raises): a SignalError is data the core reads, never produces.
type SignalError struct {
	Code               string        `xml:"errorCode,attr"`
	Severity           string        `xml:"severity,attr"`
	Category           ErrorCategory `xml:"category,attr,omitempty"`
	RefToMessageInError string       `xml:"refToMessageInError,attr,omitempty"`
	Description        string        `xml:"Description"`
	ErrorDetail        string        `xml:"ErrorDetail,omitempty"`
}
