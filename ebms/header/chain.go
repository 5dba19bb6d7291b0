// Package header implements the Header Processor Chain and the Messaging
// Header Processor (SPEC_FULL.md §4.1, §4.2): the stage that extracts the
// ebMS Messaging SOAP header, cross-validates it against attachments and
// P-Mode configuration, and populates an ebms.MessageState for downstream
// consumption.
package header

import (
	"context"

	"github.com/ebms-as4/engine/ebms"
)

// SOAPDocument is the minimal view of the enclosing SOAP envelope a header
// Processor needs. XML parsing of the envelope itself is an external
// collaborator (SPEC_FULL.md §1); a host's XML layer implements this
// interface over whatever document representation it already built while
// locating the header elements.
type SOAPDocument interface {
	// BodyHasPayload reports whether the SOAP Body element for the given
	// SOAP version exists and has at least one child node.
	BodyHasPayload(version ebms.SOAPVersion) bool

	// Raw returns the original, undecoded SOAP document bytes, stored into
	// MessageState.OriginalSOAPDocument on a successful UserMessage commit.
	Raw() []byte
}

// HeaderElement is a single SOAP header element as seen in document order,
// keyed by qualified name, with its raw (undecoded) bytes.
type HeaderElement struct {
	Name ebms.QName
	Data []byte
}

// Processor handles one recognized SOAP header element. On FAILURE (a
// false return), errs has been appended with one or more ebMS error
// entries; on SUCCESS (true), state has been populated per the processor's
// contract. A Processor never returns an error value for ebMS-level
// faults — only for genuinely structural/IO faults from its collaborators,
// which it returns instead of a bool (see MessagingHeaderProcessor.Process).
type Processor interface {
	Process(ctx context.Context, doc SOAPDocument, data []byte, attachments []*ebms.Attachment, state *ebms.MessageState, errs *ebms.ErrorList) (bool, error)
}

// Chain is a mapping from qualified name to Processor, dispatching in the
// order headers appear in the envelope. A failure short-circuits
// remaining headers; already-accumulated state is preserved for
// diagnostic emission.
type Chain struct {
	byName map[ebms.QName]Processor
	order  []ebms.QName
}

// NewChain returns an empty Chain.
func NewChain() *Chain {
	return &Chain{byName: map[ebms.QName]Processor{}}
}

// Register associates name with p. Registering the same name twice
// replaces the processor but keeps its original position in order.
func (c *Chain) Register(name ebms.QName, p Processor) {
	if _, exists := c.byName[name]; !exists {
		c.order = append(c.order, name)
	}
	c.byName[name] = p
}

// Dispatch processes headers in the order given, which should match
// document order. Headers with no registered processor are skipped
// without error — an ebMS gateway tolerates SOAP headers it does not
// recognize unless they carry mustUnderstand="true", a concern left to
// the host's SOAP layer. Dispatch stops at the first Processor failure or
// structural error and returns whatever ErrorList has accumulated so far.
func (c *Chain) Dispatch(ctx context.Context, doc SOAPDocument, headers []HeaderElement, attachments []*ebms.Attachment, state *ebms.MessageState) (*ebms.ErrorList, error) {
	errs := &ebms.ErrorList{}
	for _, h := range headers {
		p, ok := c.byName[h.Name]
		if !ok {
			continue
		}
		ok, err := p.Process(ctx, doc, h.Data, attachments, state, errs)
		if err != nil {
			return errs, err
		}
		if !ok {
			break
		}
	}
	return errs, nil
}

// RegisteredOrder returns the qualified names in their registration order,
// for hosts that want to log or introspect the chain's configuration.
func (c *Chain) RegisteredOrder() []ebms.QName {
	out := make([]ebms.QName, len(c.order))
	copy(out, c.order)
	return out
}
