package gnrccoap

import (
	"encoding/binary"

	"github.com/kb2ma/gocoap/nanocoap"
)

// responseReserve is the number of bytes reserved between the fixed
// header+token and the payload cursor, so the Content-Format option
// can be written into the gap after the handler has already written
// payload linearly (spec §4.7). Every response in this subset carries
// at most one option (Content-Format, <= 4 bytes with its header), so
// 10 bytes is ample headroom.
const responseReserve = 10

// ResponseWriter implements the two-stage response layout of spec
// §4.7: response_header positions the cursor past a reserved option
// gap, the handler writes payload through Write, SetContentFormat
// records response_content's format, and finalize (run by the
// dispatcher) writes the Content-Format option into the gap and
// reports the total length.
type ResponseWriter struct {
	buf        []byte
	tokenLen   int
	cursor     int
	payloadLen int
	format     nanocoap.MediaType
	code       nanocoap.Code
}

// reset implements response_header: overwrites the code, clears the
// content-type marker to "none", and sets the payload cursor past the
// reserved gap.
func (rw *ResponseWriter) reset(buf []byte, tokenLen int, code nanocoap.Code) {
	rw.buf = buf
	rw.tokenLen = tokenLen
	rw.code = code
	rw.format = nanocoap.NoFormat
	rw.payloadLen = 0
	rw.cursor = 4 + tokenLen + responseReserve
}

// SetCode overwrites the response code the dispatcher will finalize
// with, for handlers that decide their status after starting to write
// (e.g. discovering an error mid-handler).
func (rw *ResponseWriter) SetCode(code nanocoap.Code) {
	rw.code = code
}

// Write appends payload bytes at the cursor, advancing it.
func (rw *ResponseWriter) Write(p []byte) (int, error) {
	if rw.cursor+len(p) > len(rw.buf) {
		return 0, nanocoap.ErrNoSpace
	}
	n := copy(rw.buf[rw.cursor:], p)
	rw.cursor += n
	rw.payloadLen += n
	return n, nil
}

// SetContentFormat implements response_content: records the
// content-format the finalize step should emit. Call it after writing
// the payload (or with no payload written, in which case it is
// ignored: spec §4.1 only emits Content-Format when a payload exists).
func (rw *ResponseWriter) SetContentFormat(format nanocoap.MediaType) {
	rw.format = format
}

// finalize writes the Content-Format option into the reserved gap
// (compacting away any unused reserve), sets the 0xFF marker if
// payload exists, writes the fixed header, and returns the total
// response length.
func (rw *ResponseWriter) finalize(messageID uint16, token []byte) (int, error) {
	headerLen := 4 + rw.tokenLen
	hasPayload := rw.payloadLen > 0

	var optLen int
	if hasPayload {
		optLen = nanocoap.BuildContentFormatOption(nil, 0, rw.format)
	}
	markerLen := 0
	if hasPayload {
		markerLen = 1
	}
	optionsAndMarker := optLen + markerLen
	if optionsAndMarker > responseReserve {
		return 0, nanocoap.ErrNoSpace
	}

	payloadStart := headerLen + responseReserve
	newPayloadStart := headerLen + optionsAndMarker
	copy(rw.buf[newPayloadStart:newPayloadStart+rw.payloadLen], rw.buf[payloadStart:payloadStart+rw.payloadLen])

	if hasPayload {
		off := headerLen
		off += nanocoap.BuildContentFormatOption(rw.buf[off:], 0, rw.format)
		rw.buf[off] = 0xff
	}

	rw.buf[0] = (nanocoap.Version << 6) | (uint8(nanocoap.TypeNON) << 4) | uint8(rw.tokenLen)
	rw.buf[1] = byte(rw.code)
	binary.BigEndian.PutUint16(rw.buf[2:4], messageID)
	copy(rw.buf[4:headerLen], token)

	return newPayloadStart + rw.payloadLen, nil
}
