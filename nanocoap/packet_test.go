package nanocoap

import (
	"bytes"
	"testing"
)

// buildGetRequest assembles a minimal GET request for path, with the
// given token and message id, by hand (mirrors spec §8's wire
// examples) so tests don't depend on the request encoder living in
// another package.
func buildGetRequest(t *testing.T, token []byte, messageID uint16, path string) []byte {
	t.Helper()
	optLen, err := BuildPathOptions(nil, path)
	if err != nil {
		t.Fatalf("BuildPathOptions: %v", err)
	}
	buf := make([]byte, 4+len(token)+optLen)
	buf[0] = (Version << 6) | (uint8(TypeNON) << 4) | uint8(len(token))
	buf[1] = byte(GET)
	buf[2] = byte(messageID >> 8)
	buf[3] = byte(messageID)
	copy(buf[4:], token)
	if _, err := BuildPathOptions(buf[4+len(token):], path); err != nil {
		t.Fatalf("BuildPathOptions write: %v", err)
	}
	return buf
}

func TestParseWellKnownCoreRequest(t *testing.T) {
	buf := buildGetRequest(t, []byte{0x01}, 1, WellKnownCorePath)
	pkt, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pkt.Type != TypeNON || pkt.Code != GET || pkt.MessageID != 1 {
		t.Fatalf("unexpected header fields: %+v", pkt)
	}
	if !bytes.Equal(pkt.Token(), []byte{0x01}) {
		t.Fatalf("token mismatch: %x", pkt.Token())
	}
	if ComparePath(pkt, WellKnownCorePath) != 0 {
		t.Fatalf("expected path to match %q", WellKnownCorePath)
	}
	if len(pkt.Payload) != 0 {
		t.Fatalf("expected no payload, got %d bytes", len(pkt.Payload))
	}
}

func TestParseShortHeader(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3} {
		if _, err := Parse(make([]byte, n)); err != ErrBadFormat {
			t.Fatalf("len=%d: expected ErrBadFormat, got %v", n, err)
		}
	}
}

func TestParseBadVersion(t *testing.T) {
	buf := []byte{0x00, byte(GET), 0, 1}
	if _, err := Parse(buf); err != ErrBadFormat {
		t.Fatalf("expected ErrBadFormat for version 0, got %v", err)
	}
}

func TestParseTokenLengthNine(t *testing.T) {
	buf := []byte{(Version << 6) | (uint8(TypeNON) << 4) | 9, byte(GET), 0, 1}
	if _, err := Parse(buf); err != ErrBadFormat {
		t.Fatalf("expected ErrBadFormat for TKL=9, got %v", err)
	}
}

func TestParseReservedDeltaWithoutMarker(t *testing.T) {
	// byte0=header with TKL=0, byte1=code, bytes2-3=id, then an option
	// byte 0xF0: delta nibble 15, length nibble 0 -- not the full
	// 0xFF marker, so this must be rejected (spec §8 boundary case).
	buf := []byte{(Version << 6) | (uint8(TypeNON) << 4), byte(GET), 0, 1, 0xf0}
	if _, err := Parse(buf); err != ErrBadFormat {
		t.Fatalf("expected ErrBadFormat for reserved delta nibble, got %v", err)
	}
}

func TestParsePayloadMarkerWithEmptyPayload(t *testing.T) {
	buf := []byte{(Version << 6) | (uint8(TypeNON) << 4), byte(GET), 0, 1, 0xff}
	if _, err := Parse(buf); err != ErrBadFormat {
		t.Fatalf("expected ErrBadFormat for empty payload after marker, got %v", err)
	}
}

func TestParseContentFormatOption(t *testing.T) {
	rbuf := make([]byte, ResponseBufferSize)
	req := buildGetRequest(t, []byte{0x02}, 7, "/cli/stats")
	pkt, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	n, err := BuildReply(pkt, Content, rbuf, []byte{0x05}, MediaTypeOctetStream)
	if err != nil {
		t.Fatalf("BuildReply: %v", err)
	}
	resp, err := Parse(rbuf[:n])
	if err != nil {
		t.Fatalf("Parse reply: %v", err)
	}
	if resp.Code != Content {
		t.Fatalf("expected Content, got %v", resp.Code)
	}
	if resp.ContentFormat != MediaTypeOctetStream {
		t.Fatalf("expected octet-stream format, got %v", resp.ContentFormat)
	}
	if !bytes.Equal(resp.Payload, []byte{0x05}) {
		t.Fatalf("payload mismatch: %x", resp.Payload)
	}
	if !bytes.Equal(resp.Token(), []byte{0x02}) {
		t.Fatalf("expected echoed token, got %x", resp.Token())
	}
}

func TestBuildReplyNoSpace(t *testing.T) {
	req := buildGetRequest(t, nil, 1, "/test")
	pkt, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tiny := make([]byte, 2)
	if _, err := BuildReply(pkt, Content, tiny, []byte("too long"), MediaTypeText); err != ErrNoSpace {
		t.Fatalf("expected ErrNoSpace, got %v", err)
	}
}
