package nanocoap

import "errors"

// Error kinds surfaced by the codec and dispatcher (see spec §7).
var (
	// ErrBadFormat covers a short header, a reserved version, a
	// truncated option extension, or a malformed payload marker.
	ErrBadFormat = errors.New("nanocoap: bad format")

	// ErrNotSupported is returned by Packet.RequireNON for message
	// types other than NON, the only type this minimal variant's
	// dispatchers accept.
	ErrNotSupported = errors.New("nanocoap: not supported")

	// ErrInvalidPath is returned by the encoder when a request path
	// does not start with '/'.
	ErrInvalidPath = errors.New("nanocoap: path must be absolute")

	// ErrNoSpace is returned when a response would exceed the
	// destination buffer.
	ErrNoSpace = errors.New("nanocoap: response buffer too small")
)
