package nanocoap

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeExtRoundTrip(t *testing.T) {
	for _, v := range []int{0, 1, 12, 13, 14, 268, 269, 270, 65804 - 1} {
		nibble, ext := encodeExt(v)
		got, rest, err := decodeExt(nibble, ext)
		if err != nil {
			t.Fatalf("v=%d: decodeExt error: %v", v, err)
		}
		if got != v {
			t.Fatalf("v=%d: round trip got %d", v, got)
		}
		if len(rest) != 0 {
			t.Fatalf("v=%d: expected ext fully consumed, %d bytes left", v, len(rest))
		}
	}
}

func TestOptionIterLongSegment(t *testing.T) {
	// 20-byte segment requires the 1-byte length extension (>= 13).
	seg := bytes.Repeat([]byte("x"), 20)
	path := "/" + string(seg)
	n, err := BuildPathOptions(nil, path)
	if err != nil {
		t.Fatalf("BuildPathOptions: %v", err)
	}
	dst := make([]byte, n)
	if _, err := BuildPathOptions(dst, path); err != nil {
		t.Fatalf("BuildPathOptions write: %v", err)
	}

	buf := make([]byte, 4+len(dst))
	buf[0] = (Version << 6) | (uint8(TypeNON) << 4)
	buf[1] = byte(GET)
	copy(buf[4:], dst)

	pkt, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ComparePath(pkt, path) != 0 {
		t.Fatalf("expected long-segment path to round trip")
	}
}

func TestOptionIterTruncatedExtension(t *testing.T) {
	// delta nibble 13 (byte extension) but no extension byte follows.
	buf := []byte{(Version << 6) | (uint8(TypeNON) << 4), byte(GET), 0, 1, 0xd0}
	if _, err := Parse(buf); err != ErrBadFormat {
		t.Fatalf("expected ErrBadFormat for truncated extension, got %v", err)
	}
}

func TestDecodeEncodeUint(t *testing.T) {
	for _, v := range []uint32{0, 1, 42, 255, 256, 60000} {
		got := decodeUint(encodeUint(v))
		if got != v {
			t.Fatalf("v=%d: round trip got %d", v, got)
		}
	}
}
