package nanocoap

import "encoding/binary"

// BuildReply writes a NON response for pkt into rbuf: the response
// code, the request's echoed token, and (if payload is non-empty) a
// Content-Format option followed by the 0xFF marker and payload (spec
// §4.1 encoding contract, §4.7 response builder). It returns the total
// number of bytes written, or ErrNoSpace if rbuf is too small.
func BuildReply(pkt *Packet, code Code, rbuf []byte, payload []byte, format MediaType) (int, error) {
	tokenLen := len(pkt.Token())
	headerLen := 4 + tokenLen

	var optLen int
	if len(payload) > 0 {
		optLen = BuildContentFormatOption(nil, 0, format)
	}
	total := headerLen + optLen
	if len(payload) > 0 {
		total += 1 + len(payload)
	}
	if total > len(rbuf) {
		return 0, ErrNoSpace
	}

	rbuf[0] = (Version << 6) | (uint8(TypeNON) << 4) | uint8(tokenLen)
	rbuf[1] = byte(code)
	binary.BigEndian.PutUint16(rbuf[2:4], pkt.MessageID)
	copy(rbuf[4:headerLen], pkt.Token())

	off := headerLen
	if len(payload) > 0 {
		off += BuildContentFormatOption(rbuf[off:], 0, format)
		rbuf[off] = 0xff
		off++
		off += copy(rbuf[off:], payload)
	}
	return off, nil
}
