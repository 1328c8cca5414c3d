package gnrccoap

import "errors"

// Error kinds surfaced by the registry, send pipeline, and dispatcher
// (spec §7), beyond the codec-level errors already defined by nanocoap.
var (
	// ErrAlreadyRegistered is returned when a listener is registered
	// twice (spec §4.4).
	ErrAlreadyRegistered = errors.New("gnrccoap: listener already registered")

	// ErrNoPortAvailable is returned when every port in the ephemeral
	// range is already bound (spec §4.4).
	ErrNoPortAvailable = errors.New("gnrccoap: no ephemeral port available")

	// ErrTransportFailed is returned when the underlying transport
	// could not dispatch an outbound datagram (spec §4.5/§7).
	ErrTransportFailed = errors.New("gnrccoap: transport dispatch failed")

	// ErrAlreadyStarted is returned by a second call to Module.Init
	// (mirrors RIOT gnrc_coap_init's -EEXIST).
	ErrAlreadyStarted = errors.New("gnrccoap: module already initialized")

	// ErrPoolExhausted is logged when the buffer pool has no free
	// buffer; Module.Send then returns 0 and the read loop retries
	// (spec §5: "out-of-buffer returns a send failed").
	ErrPoolExhausted = errors.New("gnrccoap: buffer pool exhausted")
)
