// Package nanocoap implements the wire codec, path matcher, and endpoint
// dispatch table for a minimal, non-confirmable-only subset of CoAP
// (RFC 7252) over UDP. Parsing is allocation-free: a Packet borrows its
// option values and payload directly from the caller's buffer and keeps
// the token in a fixed-size array of its own.
package nanocoap
