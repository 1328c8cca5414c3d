package gnrccoap

import (
	"net"

	"golang.org/x/net/ipv6"

	"github.com/kb2ma/gocoap/internal/logging"
	"github.com/kb2ma/gocoap/nanocoap"
)

// Transport abstracts the final dispatch step of the send pipeline
// (spec §4.5 step 5: "hand the assembled datagram to the transport
// dispatcher"), so secoap's DTLS adapter can satisfy the same
// interface as a plain UDP socket.
type Transport interface {
	WriteTo(b []byte, addr *net.UDPAddr) (int, error)
}

// UDPTransport sends over a bound *net.UDPConn. It uses
// golang.org/x/net/ipv6 to attach the per-packet IPv6 hop-limit
// control message that spec §4.5 step 4 ("prepend IPv6 header") calls
// for; plain net.UDPConn has no per-write hook for that.
type UDPTransport struct {
	pc       *ipv6.PacketConn
	hopLimit int
}

// NewUDPTransport wraps conn, setting hopLimit on every outbound
// datagram.
func NewUDPTransport(conn *net.UDPConn, hopLimit int) *UDPTransport {
	return &UDPTransport{pc: ipv6.NewPacketConn(conn), hopLimit: hopLimit}
}

// WriteTo implements Transport.
func (t *UDPTransport) WriteTo(b []byte, addr *net.UDPAddr) (int, error) {
	cm := &ipv6.ControlMessage{HopLimit: t.hopLimit}
	n, err := t.pc.WriteTo(b, cm, addr)
	if err != nil {
		return 0, ErrTransportFailed
	}
	return n, nil
}

// Send runs the outbound pipeline of spec §4.5: encode transfer as a
// CoAP request (steps 1-2) into a pool buffer, then hand the encoded
// bytes to l's transport, which layers UDP/IPv6 (steps 3-4) before
// dispatch (step 5). It returns the total byte length on success, or 0
// on any encoding or dispatch failure (step 6) — callers distinguish
// only success/failure, per spec. l must be a listener obtained from
// RegisterClient.
func (m *Module) Send(l *Listener, dest *net.UDPAddr, tokenLen int, transfer Transfer) int {
	if l.sender == nil {
		return 0
	}
	token := l.sender.newToken(tokenLen)

	buf, ok := m.pool.Get()
	if !ok {
		logging.Tracef("gnrccoap: %v on send, port %d", ErrPoolExhausted, l.port)
		l.sender.fail()
		return 0
	}
	defer buf.Release()

	n, err := nanocoap.BuildRequest(buf.Bytes(), transfer.Code, m.nextMessageID(), token, transfer.Path(), transfer.Payload, transfer.ContentFormat)
	if err != nil {
		l.sender.fail()
		return 0
	}

	if _, err := l.transport.WriteTo(buf.Bytes()[:n], dest); err != nil {
		l.sender.fail()
		return 0
	}
	return n
}
