package gnrccoap

import "github.com/kb2ma/gocoap/nanocoap"

// PathSource tags whether a Transfer's path is a caller-provided
// literal string or a pointer into a parsed inbound packet's option
// stream (spec §3: "a tag records which").
type PathSource uint8

const (
	// PathLiteral is used for outbound transfers the caller builds by
	// hand, carrying a '/'-prefixed path string.
	PathLiteral PathSource = iota
	// PathFromOptions is used for inbound transfers, whose path lives
	// in the parsed request's Uri-Path options.
	PathFromOptions
)

// Transfer is the request/response abstraction handlers and callers
// operate on (spec §3).
type Transfer struct {
	// Code is the method (outbound request) or response code
	// (inbound/outbound response).
	Code nanocoap.Code

	Payload       []byte
	ContentFormat nanocoap.MediaType

	source  PathSource
	literal string
	pkt     *nanocoap.Packet
}

// NewTransfer builds an outbound transfer with a literal, caller-owned
// path. path must start with '/'.
func NewTransfer(code nanocoap.Code, path string, payload []byte, format nanocoap.MediaType) Transfer {
	return Transfer{
		Code:          code,
		Payload:       payload,
		ContentFormat: format,
		source:        PathLiteral,
		literal:       path,
	}
}

// newInboundTransfer builds a Transfer whose path aliases pkt's parsed
// option stream.
func newInboundTransfer(pkt *nanocoap.Packet) Transfer {
	return Transfer{
		Code:          pkt.Code,
		Payload:       pkt.Payload,
		ContentFormat: pkt.ContentFormat,
		source:        PathFromOptions,
		pkt:           pkt,
	}
}

// Path materializes the transfer's path as a string. Prefer
// MatchesPath when only an equality test is needed, since that avoids
// allocating for inbound transfers.
func (t Transfer) Path() string {
	if t.source == PathFromOptions {
		return nanocoap.PathString(t.pkt)
	}
	return t.literal
}

// MatchesPath reports whether t's path equals path, using the
// appropriate comparator for t's path source (spec §4.2).
func (t Transfer) MatchesPath(path string) bool {
	if t.source == PathFromOptions {
		return nanocoap.ComparePath(t.pkt, path) == 0
	}
	return nanocoap.CompareLiteralPath(t.literal, path) == 0
}
