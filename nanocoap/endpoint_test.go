package nanocoap

import (
	"bytes"
	"testing"
)

func TestDispatchFindsExactMatch(t *testing.T) {
	set := NewEndpointSet()
	var hits []string
	add := func(path string) {
		p := path
		set.Add(Endpoint{Path: p, Method: GET, Handler: func(pkt *Packet, rbuf []byte) (int, error) {
			hits = append(hits, p)
			return BuildReply(pkt, Content, rbuf, nil, NoFormat)
		}})
	}
	add("/a")
	add("/b/c")
	add("/z")

	for _, path := range []string{"/a", "/b/c", "/z"} {
		req := buildGetRequest(t, nil, 1, path)
		pkt, err := Parse(req)
		if err != nil {
			t.Fatalf("Parse(%q): %v", path, err)
		}
		ep, ok := set.Dispatch(pkt)
		if !ok {
			t.Fatalf("expected a match for %q", path)
		}
		if ep.Path != path {
			t.Fatalf("expected endpoint %q, got %q", path, ep.Path)
		}
	}
}

func TestDispatchMiss(t *testing.T) {
	set := NewEndpointSet()
	set.Add(Endpoint{Path: "/a", Method: GET, Handler: func(pkt *Packet, rbuf []byte) (int, error) {
		return BuildReply(pkt, Content, rbuf, nil, NoFormat)
	}})
	set.Add(Endpoint{Path: "/z", Method: GET, Handler: func(pkt *Packet, rbuf []byte) (int, error) {
		return BuildReply(pkt, Content, rbuf, nil, NoFormat)
	}})

	req := buildGetRequest(t, nil, 1, "/m")
	pkt, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := set.Dispatch(pkt); ok {
		t.Fatalf("expected no match for /m")
	}
}

func TestWellKnownCoreListsOtherEndpoints(t *testing.T) {
	set := NewServerEndpointSet()
	set.Add(Endpoint{Path: "/cli/stats", Method: GET})
	set.Add(Endpoint{Path: "/nh/lo", Method: POST})

	req := buildGetRequest(t, nil, 1, WellKnownCorePath)
	pkt, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ep, ok := set.Dispatch(pkt)
	if !ok {
		t.Fatalf("expected built-in well-known/core endpoint")
	}
	rbuf := make([]byte, ResponseBufferSize)
	n, err := ep.Handler(pkt, rbuf)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	resp, err := Parse(rbuf[:n])
	if err != nil {
		t.Fatalf("Parse reply: %v", err)
	}
	if resp.ContentFormat != MediaTypeLinkFormat {
		t.Fatalf("expected link-format, got %v", resp.ContentFormat)
	}
	if !bytes.Equal(resp.Payload, []byte("/cli/stats,/nh/lo")) {
		t.Fatalf("unexpected discovery payload: %q", resp.Payload)
	}
}

func TestWellKnownCoreEmpty(t *testing.T) {
	set := NewServerEndpointSet()
	req := buildGetRequest(t, []byte{0xaa}, 1, WellKnownCorePath)
	pkt, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ep, ok := set.Dispatch(pkt)
	if !ok {
		t.Fatalf("expected built-in endpoint")
	}
	rbuf := make([]byte, ResponseBufferSize)
	n, err := ep.Handler(pkt, rbuf)
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	resp, err := Parse(rbuf[:n])
	if err != nil {
		t.Fatalf("Parse reply: %v", err)
	}
	if resp.Code != Content {
		t.Fatalf("expected Content, got %v", resp.Code)
	}
	if len(resp.Payload) != 0 {
		t.Fatalf("expected empty payload, got %q", resp.Payload)
	}
}
