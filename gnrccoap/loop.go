package gnrccoap

import (
	"net"

	"github.com/kb2ma/gocoap/internal/bufpool"
	"github.com/kb2ma/gocoap/internal/logging"
	"github.com/kb2ma/gocoap/nanocoap"
)

// inboundDatagram is one mailbox event: a stacked datagram view
// reduced to what the dispatcher actually needs (spec §4.6 step 1-3),
// since this implementation uses a real net.UDPConn per listener
// rather than a packet-snip stack.
type inboundDatagram struct {
	listener *Listener
	buf      *bufpool.Buffer
	n        int
	from     *net.UDPAddr
}

// readLoop owns one listener's socket, feeding the shared mailbox
// (spec §5: "suspension points: the dispatcher suspends only at
// mailbox receive"). A full mailbox drops the datagram rather than
// blocking the reader, matching the bounded-queue-depth configuration
// surface (spec §6).
func (m *Module) readLoop(l *Listener) {
	for {
		buf, ok := m.pool.Get()
		if !ok {
			m.metrics.recordDropped("pool_exhausted")
			logging.Errorf("gnrccoap: %v, port %d read stalled", ErrPoolExhausted, l.port)
			continue
		}
		n, from, err := l.conn.ReadFromUDP(buf.Bytes())
		if err != nil {
			buf.Release()
			return
		}
		d := inboundDatagram{listener: l, buf: buf, n: n, from: from}
		select {
		case m.mailbox <- d:
		default:
			logging.Tracef("gnrccoap: mailbox full, dropping datagram from %v on port %d", from, l.port)
			m.metrics.recordDropped("mailbox_full")
			buf.Release()
		}
	}
}

// dispatchLoop is the single dedicated worker task of spec §5/§4.6,
// the sole consumer of the mailbox.
func (m *Module) dispatchLoop() {
	for d := range m.mailbox {
		m.handleDatagram(d)
	}
}

func (m *Module) handleDatagram(d inboundDatagram) {
	defer d.buf.Release()

	l := d.listener
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("gnrccoap: handler panic on port %d: %v", l.port, r)
		}
	}()
	data := d.buf.Bytes()[:d.n]

	if l.kind == listenerServer && m.healthProbeEnabled() && isHealthProbe(data) {
		l.transport.WriteTo(imokReply, d.from)
		return
	}

	pkt, err := nanocoap.Parse(data)
	if err != nil {
		logging.Tracef("gnrccoap: parse failure from %v on port %d: %v", d.from, l.port, err)
		m.metrics.recordDropped("parse_error")
		return
	}
	m.metrics.recordParsed()

	if err := pkt.RequireNON(); err != nil {
		logging.Tracef("gnrccoap: dropping message from %v on port %d: %v", d.from, l.port, err)
		m.metrics.recordDropped("unsupported_type")
		return
	}

	switch l.kind {
	case listenerServer:
		if !pkt.Code.IsRequest() {
			logging.Tracef("gnrccoap: server listener on port %d dropped non-request", l.port)
			m.metrics.recordDropped("wrong_direction")
			return
		}
		m.handleServerRequest(l, pkt, d.buf.Bytes(), d.from)
	case listenerClient:
		if pkt.Code.IsRequest() {
			logging.Tracef("gnrccoap: client listener on port %d dropped request", l.port)
			m.metrics.recordDropped("wrong_direction")
			return
		}
		m.handleClientResponse(l, pkt)
	}
}

// handleServerRequest implements spec §4.6 step 7: dispatch against
// the listener's endpoints, run the matched handler (or synthesize
// 4.04/5.00), finalize via the two-stage response builder, and send.
// The response is built in place over the same pool buffer the request
// was read into (spec I4, §4.7: "builders operate on the same buffer as
// the request"), but passed at its full pool-allocated capacity rather
// than the shorter inbound datagram length — the response (e.g. a
// populated /.well-known/core listing) is frequently larger than the
// request that triggered it, and ResponseWriter.Write must see the
// full spec §4.6 step 4 ResponseBufferSize headroom, not just the
// bytes the request happened to occupy.
func (m *Module) handleServerRequest(l *Listener, pkt *nanocoap.Packet, buf []byte, from *net.UDPAddr) {
	var rw ResponseWriter
	ep, found := l.endpoints.Dispatch(pkt)
	if !found {
		rw.reset(buf, len(pkt.Token()), nanocoap.NotFound)
	} else {
		rw.reset(buf, len(pkt.Token()), nanocoap.Content)
		m.metrics.recordDispatched()
		if err := ep.Handler(pkt, &rw); err != nil {
			logging.Tracef("gnrccoap: handler error for %s on port %d: %v", ep.Path, l.port, err)
			rw.SetCode(nanocoap.InternalServerError)
		}
	}

	n, err := rw.finalize(pkt.MessageID, pkt.Token())
	if err != nil {
		logging.Errorf("gnrccoap: finalizing response on port %d: %v", l.port, err)
		return
	}
	if _, err := l.transport.WriteTo(buf[:n], from); err != nil {
		logging.Errorf("gnrccoap: sending response from port %d: %v", l.port, err)
	}
}

// handleClientResponse implements spec §4.6 step 8 and the sender
// state machine's REQ -> SUCCESS transition: token mismatches are
// silently dropped (spec §7 TokenMismatch).
func (m *Module) handleClientResponse(l *Listener, pkt *nanocoap.Packet) {
	s := l.sender
	if s == nil {
		return
	}
	if !s.matchToken(pkt.Token()) {
		logging.Tracef("gnrccoap: token mismatch on port %d, dropping response", l.port)
		m.metrics.recordDropped("token_mismatch")
		return
	}
	s.succeed(newInboundTransfer(pkt))
}
