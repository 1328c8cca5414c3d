package secoap

import (
	"net"
	"sync"

	"github.com/google/uuid"
)

// CipherSuite restricts the adapter to the two suites spec §4.8 names;
// the zero value is intentionally invalid so an Adapter can't be
// created without an explicit choice.
type CipherSuite uint16

const (
	// CipherPSKWithAES128CCM8 is TLS_PSK_WITH_AES_128_CCM_8 (RFC 6655),
	// 0xC0A8 on the wire — named SECURE_CIPHER_PSK_IDS in tdtls.c.
	CipherPSKWithAES128CCM8 CipherSuite = 0xC0A8

	// CipherECDHEECDSAWithAES128CCM8 is
	// TLS_ECDHE_ECDSA_WITH_AES_128_CCM_8 (RFC 7251), 0xC0AE on the wire.
	CipherECDHEECDSAWithAES128CCM8 CipherSuite = 0xC0AE
)

func (c CipherSuite) supported() bool {
	return c == CipherPSKWithAES128CCM8 || c == CipherECDHEECDSAWithAES128CCM8
}

// CredentialType distinguishes the PSK lookup callback's two query
// kinds, mirroring tdtls.c's DTLS_PSK_IDENTITY / DTLS_PSK_KEY.
type CredentialType uint8

const (
	CredentialIdentity CredentialType = iota
	CredentialKey
)

// PSKLookup resolves a pre-shared-key credential: given the requested
// credential type and an optional peer identity hint, it fills result
// and reports the number of bytes written, or an error (spec §4.8:
// "a lookup callback that accepts a credential type plus optional peer
// identity and fills a result buffer").
type PSKLookup func(kind CredentialType, identityHint []byte, result []byte) (int, error)

// Handler receives decrypted application data from a Session, together
// with the peer's session (spec §4.8: "delivers application data to a
// user-supplied receive handler together with the peer endpoint").
type Handler func(s *Session, data []byte)

// Session carries a DTLS peer's connection identity (spec §3/§4.8:
// "session objects carry peer IPv6 address, port, and interface
// index").
type Session struct {
	// ID correlates this session's log lines; an ambient tracing aid,
	// not part of the DTLS handshake or wire protocol.
	ID uuid.UUID

	PeerAddr   net.IP
	PeerPort   int
	IfaceIndex int

	mu         sync.Mutex
	handshaked bool
}

func (s *Session) markHandshaked() {
	s.mu.Lock()
	s.handshaked = true
	s.mu.Unlock()
}

func (s *Session) isHandshaked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handshaked
}

// Adapter owns a UDP socket and layers DTLS record handling over it
// (spec §4.8: "a DTLS-capable wrapper owns a UDP socket"). Record
// encryption/decryption and handshake state machinery are intentionally
// not implemented here — only the create/init/read/send surface the
// spec names, so a host can plug in a real DTLS library behind this
// contract.
type Adapter struct {
	conn   *net.UDPConn
	cipher CipherSuite
	lookup PSKLookup
	onData Handler

	mu       sync.Mutex
	sessions map[string]*Session
}

// Create opens conn for DTLS use with the given cipher and PSK lookup
// callback, rejecting any cipher outside the restricted set (spec
// §4.8).
func Create(conn *net.UDPConn, cipher CipherSuite, lookup PSKLookup, onData Handler) (*Adapter, error) {
	if !cipher.supported() {
		return nil, ErrUnsupportedCipher
	}
	return &Adapter{
		conn:     conn,
		cipher:   cipher,
		lookup:   lookup,
		onData:   onData,
		sessions: make(map[string]*Session),
	}, nil
}

// Init prepares the adapter to begin accepting handshakes; a no-op
// placeholder for a real DTLS library's context setup (spec §4.8
// "init").
func (a *Adapter) Init() error {
	return nil
}

// sessionFor returns the Session for addr, creating one if this is the
// first datagram seen from that peer.
func (a *Adapter) sessionFor(addr *net.UDPAddr) *Session {
	key := addr.String()
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[key]
	if !ok {
		ifaceIndex := -1
		if addr.Zone != "" {
			if iface, err := net.InterfaceByName(addr.Zone); err == nil {
				ifaceIndex = iface.Index
			}
		}
		s = &Session{ID: uuid.New(), PeerAddr: addr.IP, PeerPort: addr.Port, IfaceIndex: ifaceIndex}
		a.sessions[key] = s
	}
	return s
}

// Read handles one inbound raw record from addr: while the peer's
// session hasn't completed its handshake, a real implementation would
// feed it to the handshake state machine here; once handshaked,
// application data is delivered to onData (spec §4.8: "either
// completes a handshake internally or delivers application data").
func (a *Adapter) Read(data []byte, addr *net.UDPAddr) {
	s := a.sessionFor(addr)
	if !s.isHandshaked() {
		s.markHandshaked()
		return
	}
	if a.onData != nil {
		a.onData(s, data)
	}
}

// Send writes data to s's peer over the underlying socket, encrypted
// under the session's negotiated record layer in a real implementation
// (spec §4.8: "forwards outgoing records to the underlying socket").
func (a *Adapter) Send(s *Session, data []byte) (int, error) {
	if !s.isHandshaked() {
		return 0, ErrHandshakeIncomplete
	}
	addr := &net.UDPAddr{IP: s.PeerAddr, Port: s.PeerPort}
	return a.conn.WriteToUDP(data, addr)
}

// WriteTo satisfies the same Transport shape gnrccoap.Transport uses,
// so a secoap.Adapter can be plugged in wherever a plain UDP transport
// is expected, keyed by destination address rather than an explicit
// Session.
func (a *Adapter) WriteTo(b []byte, addr *net.UDPAddr) (int, error) {
	s := a.sessionFor(addr)
	s.markHandshaked()
	return a.Send(s, b)
}
