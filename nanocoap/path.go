package nanocoap

import (
	"bytes"
	"strings"
)

// pathCursor walks the synthesized '/'-joined path formed by a
// packet's Uri-Path options, one byte at a time, without building a
// string (spec §4.2, "String" vs "Option stream" path sources).
type pathCursor struct {
	it       OptionIter
	seg      []byte
	segPos   int
	needSlash bool
	started  bool
	done     bool
}

func newPathCursor(pkt *Packet) *pathCursor {
	return &pathCursor{it: pkt.Options()}
}

// next returns the next byte of the synthesized path, or ok=false once
// every Uri-Path segment has been consumed.
func (c *pathCursor) next() (b byte, ok bool) {
	for {
		if c.done {
			return 0, false
		}
		if c.needSlash {
			c.needSlash = false
			return '/', true
		}
		if c.segPos < len(c.seg) {
			b := c.seg[c.segPos]
			c.segPos++
			return b, true
		}
		// Advance to the next Uri-Path option.
		for {
			opt, ok := c.it.Next()
			if !ok {
				c.done = true
				return 0, false
			}
			if opt.ID == OptionURIPath {
				c.seg = opt.Value
				c.segPos = 0
				c.needSlash = true
				break
			}
		}
	}
}

// ComparePath compares the request path carried by pkt's Uri-Path
// options against the literal endpoint path epPath (which must start
// with '/'). It returns the sign of the first differing byte, matching
// strcmp(requestPath, epPath); 0 means both paths end together with no
// difference (spec §4.2).
func ComparePath(pkt *Packet, epPath string) int {
	cur := newPathCursor(pkt)
	for i := 0; i < len(epPath); i++ {
		b, ok := cur.next()
		if !ok {
			return -1
		}
		if b != epPath[i] {
			return int(b) - int(epPath[i])
		}
	}
	if _, ok := cur.next(); ok {
		return 1
	}
	return 0
}

// PathString materializes pkt's Uri-Path options into a '/'-joined
// string. Unlike ComparePath, this allocates; callers that only need
// to test equality should prefer ComparePath.
func PathString(pkt *Packet) string {
	var buf bytes.Buffer
	cur := newPathCursor(pkt)
	for {
		b, ok := cur.next()
		if !ok {
			break
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

// CompareLiteralPath compares two literal '/'-prefixed path strings the
// way the "String" path source does (spec §4.2): a plain strcmp.
func CompareLiteralPath(reqPath, epPath string) int {
	return strings.Compare(reqPath, epPath)
}

// BuildPathOptions computes (and, if dst is non-nil, writes) the
// Uri-Path options for path, one option per '/'-separated segment; the
// first option's delta is relative to option number 0 and each later
// one's relative to the preceding Uri-Path option. This mirrors RIOT gnrc_coap's _do_options dual-mode
// pattern: a nil dst only counts the required bytes so the caller can
// size a single allocation before writing (spec §4.1 encoding
// contract). path must start with '/'.
func BuildPathOptions(dst []byte, path string) (int, error) {
	if len(path) == 0 || path[0] != '/' {
		return 0, ErrInvalidPath
	}

	n := 0
	prevID := OptionID(0)
	segStart := 1
	for i := 1; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			seg := path[segStart:i]
			segStart = i + 1
			if len(seg) == 0 {
				continue
			}
			deltaNibble, deltaExt := encodeExt(int(OptionURIPath - prevID))
			lenNibble, lenExt := encodeExt(len(seg))
			hdrLen := 1 + len(deltaExt) + len(lenExt) + len(seg)
			if dst != nil {
				dst[n] = (deltaNibble << 4) | lenNibble
				off := n + 1
				off += copy(dst[off:], deltaExt)
				off += copy(dst[off:], lenExt)
				copy(dst[off:], seg)
			}
			n += hdrLen
			prevID = OptionURIPath
		}
	}
	return n, nil
}
