// Package engine provides an AS4/ebMS3 inbound message-handling core: parsing,
// cross-validating, and dispatching the ebMS Messaging SOAP header against a
// host's P-Mode configuration and MIME attachments.
//
// # Architecture
//
// The library is organized the way a header-processing pipeline is staged:
//
//	┌─────────────────────────────────────────────────────────┐
//	│  ebms/header   Messaging Header Processor + chain        │
//	├─────────────────────────────────────────────────────────┤
//	│  ebms/reader   XSD-diagnostic deserialization             │
//	│  ebms/pmode    P-Mode resolution (static YAML catalog)    │
//	│  ebms/mpc      Message Partition Channel registry         │
//	│  ebms/pull     Pull-request processor registry            │
//	├─────────────────────────────────────────────────────────┤
//	│  ebms          Data model, error catalog, message state   │
//	└─────────────────────────────────────────────────────────┘
//
// SOAP envelope parsing, MIME attachment extraction, WS-Security, transport,
// and P-Mode/MPC persistence are external collaborators this core consumes
// through interfaces; it does not implement them.
//
// # Quick Start
//
//	resolver, err := pmode.LoadCatalog(catalogFile)
//	proc := &header.MessagingHeaderProcessor{
//	    PModeResolver: resolver,
//	    MPCRegistry:   mpc.NewStaticRegistry(),
//	    PullRegistry:  pull.NewRegistry(),
//	}
//	state := ebms.NewMessageState(ebms.DefaultLocale)
//	errs := &ebms.ErrorList{}
//	ok, err := proc.Process(ctx, doc, messagingHeaderBytes, attachments, state, errs)
package engine
