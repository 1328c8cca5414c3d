// Package secoap is the DTLS adapter contract of spec §4.8: a thin
// wrapper around a UDP socket that either completes a DTLS handshake
// internally or delivers decrypted application data to a handler,
// alongside the peer's session metadata. Session management internals
// (retransmission, cookie exchange, record layer) are a deliberate
// non-goal; only the create/init/read/send surface and the restricted
// cipher set are specified here, adapted from RIOT's tdtls.c.
package secoap
