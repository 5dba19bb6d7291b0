package header

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html/charset"

	"github.com/ebms-as4/engine/ebms"
	"github.com/ebms-as4/engine/ebms/mpc"
	"github.com/ebms-as4/engine/ebms/pmode"
	"github.com/ebms-as4/engine/ebms/pull"
	"github.com/ebms-as4/engine/ebms/reader"
)

// MessagingHeaderProcessor orchestrates extraction, cross-validation, and
// MessageState population for the ebMS Messaging SOAP header element. It
// is the governing processor registered under ebms.MessagingQName
// (SPEC_FULL.md §4.1); it is also usable standalone, without a Chain, by
// callers that only ever see the one header.
type MessagingHeaderProcessor struct {
	PModeResolver pmode.Resolver
	MPCRegistry   mpc.Registry
	PullRegistry  *pull.Registry
	Catalog       *ebms.Catalog

	// ServerAddress is the single host-provided configuration value this
	// core consumes (SPEC_FULL.md §6), passed to PModeResolver.Resolve as
	// the responderAddress hint.
	ServerAddress string

	// Logger receives structural, non-ebMS-level diagnostics (correlation
	// id, advisory notes). A nil Logger means slog.Default.
	Logger *slog.Logger
}

var _ Processor = (*MessagingHeaderProcessor)(nil)

func (p *MessagingHeaderProcessor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *MessagingHeaderProcessor) catalog() *ebms.Catalog {
	if p.Catalog != nil {
		return p.Catalog
	}
	return ebms.DefaultCatalog()
}

func (p *MessagingHeaderProcessor) describe(code ebms.ErrorCode, locale string) string {
	return p.catalog().Describe(code, locale)
}

// Process implements Processor. See SPEC_FULL.md §4.1 for the full,
// ordered phase-by-phase algorithm this method follows exactly.
func (p *MessagingHeaderProcessor) Process(ctx context.Context, doc SOAPDocument, data []byte, attachments []*ebms.Attachment, state *ebms.MessageState, errs *ebms.ErrorList) (bool, error) {
	correlationID := uuid.New().String()
	log := p.logger().With("correlation_id", correlationID)

	// Phase P0: Parse.
	msg, diagnostics, err := reader.Read(data)
	if err != nil {
		return false, err
	}
	if msg == nil {
		for _, d := range diagnostics {
			errs.Fail(ebms.CodeInvalidHeader, p.describe(ebms.CodeInvalidHeader, state.Locale), d.Message)
		}
		if len(diagnostics) == 0 {
			errs.Fail(ebms.CodeInvalidHeader, p.describe(ebms.CodeInvalidHeader, state.Locale), "")
		}
		log.Warn("messaging header failed schema validation", "diagnostics", len(diagnostics))
		return false, nil
	}

	// Phase P1: Cardinality.
	state.Messaging = msg
	u, s := msg.UserMessageCount(), msg.SignalMessageCount()
	if u+s != 1 {
		errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, state.Locale), "expected exactly one of UserMessage or SignalMessage")
		return false, nil
	}

	if u == 1 {
		return p.processUserMessage(ctx, doc, msg.UserMessage[0], attachments, state, errs, log)
	}
	return p.processSignalMessage(ctx, doc, msg.SignalMessage[0], attachments, state, errs, log)
}

// processUserMessage implements Phase P2a followed by the shared Phase P3
// commit.
func (p *MessagingHeaderProcessor) processUserMessage(ctx context.Context, doc SOAPDocument, um *ebms.UserMessage, attachments []*ebms.Attachment, state *ebms.MessageState, errs *ebms.ErrorList, log *slog.Logger) (bool, error) {
	locale := state.Locale

	// Step 1: party cardinality.
	from, to := um.PartyInfo.From.PartyIDs, um.PartyInfo.To.PartyIDs
	if len(from) != 1 || len(to) != 1 {
		errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "PartyInfo.From and PartyInfo.To must each carry exactly one PartyId")
		return false, nil
	}
	initiatorID, responderID := from[0].Value, to[0].Value
	state.InitiatorID = initiatorID
	state.ResponderID = responderID

	// Step 2: P-Mode resolution.
	var pmodeID string
	if um.CollaborationInfo.AgreementRef != nil {
		pmodeID = um.CollaborationInfo.AgreementRef.PMode
	}
	pm, ok := p.PModeResolver.Resolve(pmodeID, um.CollaborationInfo.Service.Value, um.CollaborationInfo.Action, initiatorID, responderID, p.ServerAddress)
	if !ok {
		errs.Fail(ebms.CodeProcessingModeMismatch, p.describe(ebms.CodeProcessingModeMismatch, locale), "no P-Mode resolved")
		return false, nil
	}

	// Step 3: leg selection.
	thisID, refID := um.MessageInfo.MessageID, um.MessageInfo.RefToMessageID
	if refID != "" && refID == thisID {
		state.RecordWarning(&ebms.Error{
			Code:        ebms.CodeValueInconsistent,
			Severity:    ebms.SeverityWarning,
			Description: "RefToMessageId equals MessageId",
			Detail:      thisID,
		})
		log.Warn("message references itself", "message_id", thisID)
	}
	useLeg1 := refID == "" || refID == thisID
	if pm.MEPBinding.RequiredLegs == 2 && pm.Leg2 == nil {
		errs.Fail(ebms.CodeProcessingModeMismatch, p.describe(ebms.CodeProcessingModeMismatch, locale), "P-Mode requires two legs but leg2 is absent")
		return false, nil
	}
	legNumber := 1
	effectiveLeg := pm.Leg1
	if !useLeg1 {
		legNumber = 2
		effectiveLeg = pm.Leg2
	}
	if effectiveLeg == nil {
		errs.Fail(ebms.CodeProcessingModeMismatch, p.describe(ebms.CodeProcessingModeMismatch, locale), "selected leg is absent from P-Mode")
		return false, nil
	}
	state.EffectivePModeLeg = ebms.EffectiveLeg{Number: legNumber, Leg: effectiveLeg}

	// Step 4: MPC validation (config side).
	if effectiveLeg.BusinessInfo.MPCID != "" && !p.MPCRegistry.Contains(effectiveLeg.BusinessInfo.MPCID) {
		errs.Fail(ebms.CodeProcessingModeMismatch, p.describe(ebms.CodeProcessingModeMismatch, locale), "leg businessInfo.mpcId not registered: "+effectiveLeg.BusinessInfo.MPCID)
		return false, nil
	}

	// Step 5: body-payload presence.
	bodyPresent := doc.BodyHasPayload(effectiveLeg.Protocol.SOAPVersion)
	state.SOAPBodyPayloadPresent = bodyPresent

	// Step 6: MPC resolution (message side).
	effectiveMPCID := um.MPC
	if effectiveMPCID == "" {
		effectiveMPCID = effectiveLeg.BusinessInfo.MPCID
	}
	resolvedMPC, ok := p.MPCRegistry.GetOrDefault(effectiveMPCID)
	if !ok {
		errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "unknown mpc: "+effectiveMPCID)
		return false, nil
	}

	// Step 7: payload/attachment cross-check.
	var parts []ebms.PartInfo
	if um.PayloadInfo != nil {
		parts = um.PayloadInfo.PartInfo
	}
	if !p.crossCheckPayload(parts, attachments, bodyPresent, state, errs, log) {
		return false, nil
	}

	// Phase P3: commit.
	state.PMode = pm
	state.MPC = resolvedMPC
	state.OriginalAttachments = attachments
	if doc != nil {
		state.OriginalSOAPDocument = doc.Raw()
	}
	return true, nil
}

// crossCheckPayload implements Phase P2a step 7, appending to errs and
// returning false on the first violation.
func (p *MessagingHeaderProcessor) crossCheckPayload(parts []ebms.PartInfo, attachments []*ebms.Attachment, bodyPresent bool, state *ebms.MessageState, errs *ebms.ErrorList, log *slog.Logger) bool {
	locale := state.Locale

	if len(parts) == 0 {
		if bodyPresent {
			errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "SOAP body payload present but not referenced by PayloadInfo")
			return false
		}
		if len(attachments) > 0 {
			errs.Fail(ebms.CodeExternalPayloadError, p.describe(ebms.CodeExternalPayloadError, locale), "attachments present but not referenced by PayloadInfo")
			return false
		}
		return true
	}

	if len(attachments) > len(parts) {
		errs.Fail(ebms.CodeExternalPayloadError, p.describe(ebms.CodeExternalPayloadError, locale), "more attachments than PartInfo entries")
		return false
	}

	specifiedAttachmentCount := 0
	for _, part := range parts {
		if part.Href == "" {
			if !bodyPresent {
				errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "PartInfo with no href but SOAP body has no payload")
				return false
			}
			continue
		}

		specifiedAttachmentCount++
		attID := strings.TrimPrefix(part.Href, "cid:")
		att, found := findAttachment(attachments, attID)
		if !found {
			log.Warn("PartInfo references unresolved attachment", "content_id", attID)
			state.RecordWarning(&ebms.Error{
				Code:        ebms.CodeExternalPayloadError,
				Severity:    ebms.SeverityWarning,
				Description: "PartInfo references an attachment not present in this request",
				Detail:      attID,
			})
		}

		mimePresent, compressionPresent, ok := p.scanPartProperties(part.PartProperties, attID, att, state, errs)
		if !ok {
			return false
		}
		if compressionPresent && !mimePresent {
			errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "CompressionType set without MimeType: "+attID)
			return false
		}
	}

	if specifiedAttachmentCount != len(attachments) {
		errs.Fail(ebms.CodeExternalPayloadError, p.describe(ebms.CodeExternalPayloadError, locale), "attachment count disagrees with PartInfo href count")
		return false
	}

	return true
}

// scanPartProperties implements the case-insensitive property scan of
// step 7's bullet list. ok is false once a Fail has been appended.
func (p *MessagingHeaderProcessor) scanPartProperties(props []ebms.Property, attID string, att *ebms.Attachment, state *ebms.MessageState, errs *ebms.ErrorList) (mimePresent, compressionPresent, ok bool) {
	locale := state.Locale
	for _, prop := range props {
		switch strings.ToLower(prop.Name) {
		case strings.ToLower(ebms.PropMimeType):
			if prop.Value != "" {
				mimePresent = true
			}
		case strings.ToLower(ebms.PropCompressionType):
			if prop.Value == "" {
				continue
			}
			if !ebms.IsKnownCompressionType(prop.Value) {
				errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "unrecognized CompressionType: "+prop.Value)
				return mimePresent, compressionPresent, false
			}
			compressionPresent = true
			state.CompressedAttachmentIDs[attID] = prop.Value
		case strings.ToLower(ebms.PropCharacterSet):
			if prop.Value == "" {
				continue
			}
			enc, canonical := charset.Lookup(prop.Value)
			if enc == nil {
				errs.Fail(ebms.CodeValueInconsistent, p.describe(ebms.CodeValueInconsistent, locale), "unparseable CharacterSet: "+prop.Value)
				return mimePresent, compressionPresent, false
			}
			if att != nil {
				att.CharacterSet = canonical
			}
		default:
			// unknown property names are ignored without warning (§6).
		}
	}
	return mimePresent, compressionPresent, true
}

// processSignalMessage implements Phase P2b followed by the applicable
// part of the Phase P3 commit (pMode, originalSoapDocument and
// originalAttachments — mpc/initiatorId/responderId are UserMessage-only
// slots).
func (p *MessagingHeaderProcessor) processSignalMessage(ctx context.Context, doc SOAPDocument, sm *ebms.SignalMessage, attachments []*ebms.Attachment, state *ebms.MessageState, errs *ebms.ErrorList, log *slog.Logger) (bool, error) {
	locale := state.Locale

	switch {
	case sm.PullRequest != nil:
		if _, ok := p.MPCRegistry.Get(sm.PullRequest.MPC); !ok {
			errs.Fail(ebms.CodeValueNotRecognized, p.describe(ebms.CodeValueNotRecognized, locale), "unknown pull mpc: "+sm.PullRequest.MPC)
			return false, nil
		}
		pm, ok := p.PullRegistry.Resolve(ctx, sm)
		if !ok {
			errs.Fail(ebms.CodeValueNotRecognized, p.describe(ebms.CodeValueNotRecognized, locale), "no pull-request processor claimed the signal")
			return false, nil
		}
		state.PMode = pm

	case sm.Receipt != nil:
		if sm.MessageInfo.RefToMessageID == "" {
			errs.Fail(ebms.CodeInvalidReceipt, p.describe(ebms.CodeInvalidReceipt, locale), "Receipt without RefToMessageId")
			return false, nil
		}

	default:
		// Error-bearing signal: a terminal observation, not a source of
		// new faults here. refToMessageInError validation against §6.2.6
		// is advisory-only logging, never a hard check (SPEC_FULL.md §9).
		logSignalErrors(log, sm.Error)
	}

	// Phase P3 commit (signal path): originalSoapDocument and
	// originalAttachments are always recorded; mpc/initiatorId/responderId/
	// compressedAttachmentIds have no meaning for a signal message.
	state.OriginalAttachments = attachments
	if doc != nil {
		state.OriginalSOAPDocument = doc.Raw()
	}
	return true, nil
}

// logSignalErrors is advisory-only: it never appends to the ErrorList.
// This is the one place spec.md's "structurally unreachable block" in the
// source would have hard-failed on refToMessageInError; the Core
// Specification treats that as optional logging, so that is all this
// does.
func logSignalErrors(log *slog.Logger, errs []ebms.SignalError) {
	for _, e := range errs {
		log.Info("incoming error signal", "code", e.Code, "severity", e.Severity, "ref_to_message_in_error", e.RefToMessageInError)
	}
}

func findAttachment(attachments []*ebms.Attachment, contentID string) (*ebms.Attachment, bool) {
	for _, a := range attachments {
		if a.ContentID == contentID {
			return a, true
		}
	}
	return nil, false
}
