package nanocoap

import (
	"net"

	"github.com/kb2ma/gocoap/internal/logging"
)

// ResponseBufferSize is the default size of the buffer a handler
// writes its response into (spec §6 configuration surface).
const ResponseBufferSize = 128

// ListenAndServe resolves addr, binds a UDP socket, and serves requests
// against endpoints forever. It is the allocation-free nano flavor's
// standalone entry point, adapted from the teacher's server.go
// ListenAndServe/Serve pair.
func ListenAndServe(network, addr string, endpoints *EndpointSet) error {
	uaddr, err := net.ResolveUDPAddr(network, addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP(network, uaddr)
	if err != nil {
		return err
	}
	return Serve(conn, endpoints)
}

// Serve reads datagrams from conn and dispatches each one against
// endpoints until conn is closed or a non-temporary error occurs.
func Serve(conn *net.UDPConn, endpoints *EndpointSet) error {
	buf := make([]byte, 1500)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Temporary() {
				continue
			}
			return err
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		go handleDatagram(conn, data, addr, endpoints)
	}
}

func handleDatagram(conn *net.UDPConn, data []byte, addr *net.UDPAddr, endpoints *EndpointSet) {
	defer func() {
		if r := recover(); r != nil {
			logging.Errorf("[nanocoap] handler panic: %v", r)
		}
	}()

	pkt, err := Parse(data)
	if err != nil {
		logging.Tracef("[nanocoap] parse failure from %v: %v", addr, err)
		return
	}
	if err := pkt.RequireNON(); err != nil {
		logging.Tracef("[nanocoap] dropping message from %v: %v", addr, err)
		return
	}
	if !pkt.Code.IsRequest() {
		logging.Tracef("[nanocoap] dropping non-request message from %v", addr)
		return
	}

	rbuf := make([]byte, ResponseBufferSize)
	ep, ok := endpoints.Dispatch(pkt)
	var respLen int
	if !ok {
		respLen, err = BuildReply(pkt, NotFound, rbuf, nil, NoFormat)
	} else {
		respLen, err = ep.Handler(pkt, rbuf)
		if err != nil {
			respLen, err = BuildReply(pkt, InternalServerError, rbuf, nil, NoFormat)
		}
	}
	if err != nil {
		logging.Tracef("[nanocoap] building reply to %v: %v", addr, err)
		return
	}

	if _, err := conn.WriteToUDP(rbuf[:respLen], addr); err != nil {
		logging.Tracef("[nanocoap] write to %v failed: %v", addr, err)
	}
}
