package nanocoap

import (
	"bytes"
	"sort"
)

// WellKnownCorePath is the built-in discovery resource every server
// registers first (spec §4.3).
const WellKnownCorePath = "/.well-known/core"

// HandlerFunc handles one request and writes a response into rbuf,
// returning the number of bytes written. A non-nil error (spec:
// "handler may return a negative value") tells the dispatcher to
// rewrite the response as 5.00 Internal Server Error.
type HandlerFunc func(pkt *Packet, rbuf []byte) (int, error)

// Endpoint is a server-side (path, method, handler) tuple (spec §3).
type Endpoint struct {
	Path    string
	Method  Code
	Handler HandlerFunc
}

// EndpointSet is an ordered collection of endpoints for one listener,
// kept in lexicographic path order (spec I2) so Dispatch can stop
// scanning as soon as it passes where a match could be.
type EndpointSet struct {
	endpoints []Endpoint
}

// NewEndpointSet returns an empty endpoint set, with no built-in
// discovery resource. Servers normally want NewServerEndpointSet.
func NewEndpointSet() *EndpointSet {
	return &EndpointSet{}
}

// NewServerEndpointSet returns an endpoint set pre-seeded with the
// built-in /.well-known/core discovery endpoint, always registered
// first (spec §4.3): its handler lists every other registered path.
func NewServerEndpointSet() *EndpointSet {
	s := &EndpointSet{}
	s.Add(Endpoint{Path: WellKnownCorePath, Method: GET, Handler: s.handleWellKnownCore})
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

// Dispatch scans endpoints in lexicographic order against pkt's
// parsed Uri-Path (spec §4.2/§4.3 dispatch policy): once an endpoint's
// path compares greater than the request's, no further endpoint can
// match, so the scan stops early.
func (s *EndpointSet) Dispatch(pkt *Packet) (Endpoint, bool) {
	for _, ep := range s.endpoints {
		cmp := ComparePath(pkt, ep.Path)
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

func (s *EndpointSet) handleWellKnownCore(pkt *Packet, rbuf []byte) (int, error) {
	var buf bytes.Buffer
	first := true
	for _, ep := range s.endpoints {
		if ep.Path == WellKnownCorePath {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.WriteString(ep.Path)
	}
	return BuildReply(pkt, Content, rbuf, buf.Bytes(), MediaTypeLinkFormat)
}
