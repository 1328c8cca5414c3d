package nanocoap

import "encoding/binary"

// BuildRequest computes (and, if dst is non-nil, writes) a NON request
// for path, echoing the dual-mode (nil-dst-counts) convention used
// throughout this package's encoders, so a caller can size one
// allocation before writing (spec §4.1 encoding contract). token must
// be 0..8 bytes; path must start with '/'.
func BuildRequest(dst []byte, code Code, messageID uint16, token []byte, path string, payload []byte, format MediaType) (int, error) {
	tokenLen := len(token)
	if tokenLen > maxTokenLen {
		return 0, ErrBadFormat
	}
	headerLen := 4 + tokenLen

	pathLen, err := BuildPathOptions(nil, path)
	if err != nil {
		return 0, err
	}
	// A root path ("/") has no segments and so writes no Uri-Path
	// option; the Content-Format delta must then be computed from
	// option 0, not from a Uri-Path option that was never emitted.
	lastOpt := OptionID(0)
	if pathLen > 0 {
		lastOpt = OptionURIPath
	}

	var cfLen int
	if len(payload) > 0 {
		cfLen = BuildContentFormatOption(nil, lastOpt, format)
	}

	total := headerLen + pathLen + cfLen
	if len(payload) > 0 {
		total += 1 + len(payload)
	}
	if dst == nil {
		return total, nil
	}
	if total > len(dst) {
		return 0, ErrNoSpace
	}

	dst[0] = (Version << 6) | (uint8(TypeNON) << 4) | uint8(tokenLen)
	dst[1] = byte(code)
	binary.BigEndian.PutUint16(dst[2:4], messageID)
	copy(dst[4:headerLen], token)

	off := headerLen
	n, _ := BuildPathOptions(dst[off:], path)
	off += n

	if len(payload) > 0 {
		off += BuildContentFormatOption(dst[off:], lastOpt, format)
		dst[off] = 0xff
		off++
		off += copy(dst[off:], payload)
	}
	return off, nil
}
