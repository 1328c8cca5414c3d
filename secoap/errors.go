package secoap

import "errors"

var (
	// ErrUnsupportedCipher is returned by Create when asked for a
	// cipher suite outside the restricted set spec §4.8 names.
	ErrUnsupportedCipher = errors.New("secoap: unsupported cipher suite")

	// ErrNoCredential is the error a PSKLookup callback returns when it
	// cannot resolve a credential for the requested identity. The
	// Adapter itself does not call the lookup or return this error.
	ErrNoCredential = errors.New("secoap: no credential for identity")

	// ErrHandshakeIncomplete is returned by Send before the session
	// has finished its handshake.
	ErrHandshakeIncomplete = errors.New("secoap: handshake incomplete")
)
