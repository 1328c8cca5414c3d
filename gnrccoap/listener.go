package gnrccoap

import "net"

// listenerKind distinguishes a server listener, which dispatches
// requests to an EndpointSet, from a client listener, which routes
// responses to a single Sender's callback (spec §3: "Listener: either
// a server listener ... or a client listener").
type listenerKind uint8

const (
	listenerServer listenerKind = iota
	listenerClient
)

// Listener binds one UDP port and persists until process exit; removal
// is not specified (spec §3 Lifecycle).
type Listener struct {
	port      int
	kind      listenerKind
	conn      *net.UDPConn
	transport Transport

	endpoints *EndpointSet // server listeners only
	sender    *Sender      // client listeners only
}

// Port returns the UDP port this listener is bound to.
func (l *Listener) Port() int { return l.port }
