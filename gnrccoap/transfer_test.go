package gnrccoap

import (
	"testing"

	"github.com/kb2ma/gocoap/nanocoap"
)

func TestTransferLiteralPath(t *testing.T) {
	tr := NewTransfer(nanocoap.GET, "/cli/stats", nil, nanocoap.NoFormat)
	if tr.Path() != "/cli/stats" {
		t.Fatalf("Path() = %q; want /cli/stats", tr.Path())
	}
	if !tr.MatchesPath("/cli/stats") {
		t.Fatalf("MatchesPath(exact) = false; want true")
	}
	if tr.MatchesPath("/cli/other") {
		t.Fatalf("MatchesPath(different) = true; want false")
	}
}

func TestTransferInboundPath(t *testing.T) {
	req := make([]byte, 64)
	n, err := nanocoap.BuildRequest(req, nanocoap.GET, 1, []byte{0x01}, "/nh/lo", nil, nanocoap.NoFormat)
	if err != nil {
		t.Fatalf("BuildRequest: %v", err)
	}
	pkt, err := nanocoap.Parse(req[:n])
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tr := newInboundTransfer(pkt)
	if tr.Path() != "/nh/lo" {
		t.Fatalf("Path() = %q; want /nh/lo", tr.Path())
	}
	if !tr.MatchesPath("/nh/lo") {
		t.Fatalf("MatchesPath(exact) = false; want true")
	}
	if tr.MatchesPath("/nh/lo/extra") {
		t.Fatalf("MatchesPath(longer) = true; want false")
	}
}
