// Package gnrccoap is the buffer-pool-aware CoAP flavor: a listener/port
// registry keyed by UDP source port, a reference-counted packet buffer
// pool, a dedicated receive-loop goroutine, and a two-stage response
// builder that reuses the request buffer. It builds on nanocoap's wire
// codec and path matcher.
package gnrccoap
