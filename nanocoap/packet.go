package nanocoap

import "encoding/binary"

// maxTokenLen is the largest token length the 4-bit TKL field can carry
// (RFC 7252 §3; values 9-15 are reserved).
const maxTokenLen = 8

// Packet is the parsed, borrowed form of a CoAP message (spec §3). It
// holds no copy of the input buffer beyond the fixed-size token array;
// options and payload alias buf directly.
type Packet struct {
	Type      Type
	Code      Code
	MessageID uint16

	// ContentFormat is NoFormat unless the option stream carried a
	// Content-Format option.
	ContentFormat MediaType

	Payload []byte

	buf           []byte
	optionsOffset int
	tokenLen      uint8
	token         [maxTokenLen]byte
}

// Token returns the message token, a slice over Packet's own fixed
// backing array (no heap allocation).
func (p *Packet) Token() []byte {
	return p.token[:p.tokenLen]
}

// RequireNON reports ErrNotSupported if p is not a NON message, the
// only type this minimal variant's dispatchers accept (spec §7
// "NotSupported — CON/ACK/RST types in the minimal variant. Dropped.").
func (p *Packet) RequireNON() error {
	if p.Type != TypeNON {
		return ErrNotSupported
	}
	return nil
}

// Options returns a fresh cursor over the packet's option stream,
// starting at the first option. Callers (the path matcher, endpoint
// dispatch) walk it directly rather than consulting a pre-built slice.
func (p *Packet) Options() OptionIter {
	return newOptionIter(p.buf[p.optionsOffset:])
}

// Parse decodes a CoAP message from buf. The token is copied into the
// Packet's fixed-size array; option values and payload are not copied
// and alias buf (spec §4.1 decoding contract).
func Parse(buf []byte) (*Packet, error) {
	if len(buf) < 4 {
		return nil, ErrBadFormat
	}
	if buf[0]>>6 != Version {
		return nil, ErrBadFormat
	}

	tokenLen := buf[0] & 0x0f
	if tokenLen > maxTokenLen {
		return nil, ErrBadFormat
	}
	if len(buf) < 4+int(tokenLen) {
		return nil, ErrBadFormat
	}

	pkt := &Packet{
		Type:          Type((buf[0] >> 4) & 0x3),
		Code:          Code(buf[1]),
		MessageID:     binary.BigEndian.Uint16(buf[2:4]),
		ContentFormat: NoFormat,
		buf:           buf,
		optionsOffset: 4 + int(tokenLen),
		tokenLen:      tokenLen,
	}
	copy(pkt.token[:], buf[4:4+tokenLen])

	it := pkt.Options()
	for opt, ok := it.Next(); ok; opt, ok = it.Next() {
		if opt.ID == OptionContentFormat {
			pkt.ContentFormat = MediaType(decodeUint(opt.Value))
		}
	}
	if it.Err() != nil {
		return nil, it.Err()
	}

	if payload, has := it.Payload(); has {
		if len(payload) == 0 {
			return nil, ErrBadFormat
		}
		pkt.Payload = payload
	}

	return pkt, nil
}
