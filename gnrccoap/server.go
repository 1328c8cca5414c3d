package gnrccoap

import (
	"sort"

	"github.com/kb2ma/gocoap/nanocoap"
)

// Handler handles one inbound request through the two-stage response
// builder (spec §4.7), rather than the raw-buffer return nanocoap's
// HandlerFunc uses: rw's cursor already sits past the request's
// header and token, and after Handler returns the dispatcher writes
// the header with the echoed token and message ID, the Content-Format
// option and the 0xFF marker. A non-nil error tells the
// dispatcher to rewrite the response as 5.00 Internal Server Error
// (spec §4.6 step 7 / §7 NoSpace).
type Handler func(pkt *nanocoap.Packet, rw *ResponseWriter) error

// Endpoint is a server-side (path, method, handler) tuple (spec §3),
// using gnrccoap's own Handler type.
type Endpoint struct {
	Path    string
	Method  nanocoap.Code
	Handler Handler
}

// EndpointSet is an ordered collection of endpoints for one server
// listener, kept in lexicographic path order (spec I2).
type EndpointSet struct {
	endpoints []Endpoint
}

// NewEndpointSet returns an empty endpoint set with no built-in
// discovery resource. Servers normally want NewServerEndpointSet.
func NewEndpointSet() *EndpointSet {
	return &EndpointSet{}
}

// NewServerEndpointSet returns an endpoint set pre-seeded with the
// built-in /.well-known/core discovery endpoint (spec §4.3), always
// registered first and skipped when listing its own payload.
func NewServerEndpointSet() *EndpointSet {
	s := &EndpointSet{}
	s.Add(Endpoint{Path: nanocoap.WellKnownCorePath, Method: nanocoap.GET, Handler: s.handleWellKnownCore})
	return s
}

// Add inserts ep, keeping the set in lexicographic path order (I2).
func (s *EndpointSet) Add(ep Endpoint) {
	i := sort.Search(len(s.endpoints), func(i int) bool {
		return s.endpoints[i].Path >= ep.Path
	})
	s.endpoints = append(s.endpoints, Endpoint{})
	copy(s.endpoints[i+1:], s.endpoints[i:])
	s.endpoints[i] = ep
}

// Dispatch scans endpoints in lexicographic order against pkt's parsed
// Uri-Path, stopping early once an endpoint's path compares greater
// than the request's (spec §4.2 dispatch policy).
func (s *EndpointSet) Dispatch(pkt *nanocoap.Packet) (Endpoint, bool) {
	for _, ep := range s.endpoints {
		cmp := nanocoap.ComparePath(pkt, ep.Path)
		switch {
		case cmp > 0:
			continue
		case cmp < 0:
			return Endpoint{}, false
		default:
			if pkt.Code == ep.Method {
				return ep, true
			}
			return Endpoint{}, false
		}
	}
	return Endpoint{}, false
}

func (s *EndpointSet) handleWellKnownCore(_ *nanocoap.Packet, rw *ResponseWriter) error {
	first := true
	for _, ep := range s.endpoints {
		if ep.Path == nanocoap.WellKnownCorePath {
			continue
		}
		if !first {
			rw.Write([]byte{','})
		}
		first = false
		rw.Write([]byte(ep.Path))
	}
	rw.SetContentFormat(nanocoap.MediaTypeLinkFormat)
	return nil
}
