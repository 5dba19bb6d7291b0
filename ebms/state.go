package ebms

// Attachment is a single MIME part borrowed from the MIME extraction layer
// (out of scope, §1). The core reads an attachment's ContentID and may set
// its declared character set exactly once (Phase P2a step 7); it never
// reads or mutates Content.
type Attachment struct {
	ContentID   string
	MimeType    string
	CharacterSet string
	Content     []byte
}

// EffectiveLeg names which numbered leg of a two-leg P-Mode governs a
// UserMessage, alongside the leg itself.
type EffectiveLeg struct {
	Number int // 1 or 2
	Leg    *Leg
}

// MessageState is the mutable per-request accumulator the header
// processing pipeline populates. A MessageState is created empty at
// envelope receipt and is never shared across goroutines: exactly one
// in-flight request owns it for its lifetime (SPEC_FULL.md §5).
type MessageState struct {
	Locale string

	Messaging *Messaging
	PMode     *PMode

	EffectivePModeLeg EffectiveLeg

	MPC *MPC

	InitiatorID string
	ResponderID string

	SOAPBodyPayloadPresent bool

	OriginalSOAPDocument []byte
	OriginalAttachments  []*Attachment

	// CompressedAttachmentIDs maps an attachment's content id to the
	// compression mode declared for it (currently always
	// GzipCompressionType, the sole recognized value).
	CompressedAttachmentIDs map[string]string

	warnings []*Error
}

// NewMessageState returns an empty MessageState for locale. An empty locale
// is valid; Catalog.Describe falls back to DefaultLocale.
func NewMessageState(locale string) *MessageState {
	return &MessageState{
		Locale:                  locale,
		CompressedAttachmentIDs: map[string]string{},
	}
}

// RecordWarning appends a non-fatal diagnostic surfaced via Diagnostics,
// distinct from the ErrorList a failed Process call returns.
func (s *MessageState) RecordWarning(e *Error) {
	s.warnings = append(s.warnings, e)
}

// Diagnostics returns warnings accumulated during processing, whether or
// not the overall Process call succeeded.
func (s *MessageState) Diagnostics() []*Error {
	return s.warnings
}
