package gnrccoap

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"github.com/kb2ma/gocoap/internal/bufpool"
)

// Config is the host-supplied configuration surface (spec §6).
type Config struct {
	// EphemeralMin/EphemeralMax bound the client source-port range
	// (default 20000..21000).
	EphemeralMin int
	EphemeralMax int

	// ResponseBufferSize sizes every buffer the pool hands out, shared
	// by inbound reads and outbound responses (default 128).
	ResponseBufferSize int

	// QueueDepth sizes the dispatcher's mailbox channel (default 4).
	QueueDepth int

	// PoolSize is the number of buffers the shared pool holds.
	PoolSize int

	// HopLimit is the IPv6 hop limit set on outbound datagrams.
	HopLimit int
}

// DefaultConfig returns the spec §6 defaults.
func DefaultConfig() Config {
	return Config{
		EphemeralMin:       20000,
		EphemeralMax:       21000,
		ResponseBufferSize: 128,
		QueueDepth:         4,
		PoolSize:           8,
		HopLimit:           64,
	}
}

// Module holds the process-wide state spec §3 describes: the
// message-ID counter, the listener registry, and (since this
// implementation realizes the mailbox as a real channel rather than a
// bare thread mailbox) the shared buffer pool and dispatch queue.
type Module struct {
	cfg Config

	mu        sync.Mutex
	listeners []*Listener
	msgID     uint16

	startOnce sync.Once
	mailbox   chan inboundDatagram
	pool      *bufpool.Pool
	metrics   *Metrics

	healthProbe bool
}

// NewModule creates a Module with cfg. The dispatcher goroutine does
// not run until Init is called (or a listener is registered, which
// starts it implicitly). The message-ID counter is seeded from a PRNG
// (spec §3: "last-used message ID ... seeded from a PRNG"), rather
// than starting at a fixed value, so two processes don't produce
// overlapping message-ID sequences.
func NewModule(cfg Config) *Module {
	return &Module{
		cfg:     cfg,
		mailbox: make(chan inboundDatagram, cfg.QueueDepth),
		pool:    bufpool.New(cfg.PoolSize, cfg.ResponseBufferSize),
		msgID:   seedMessageID(),
	}
}

// seedMessageID draws a random initial message ID from crypto/rand,
// falling back to 1 if the system randomness source is unavailable
// (spec §3 only requires monotonicity thereafter, not a specific
// fallback value).
func seedMessageID() uint16 {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return binary.BigEndian.Uint16(b[:])
}

// SetMetrics installs an optional Prometheus metrics collector. A nil
// Metrics (the default) keeps every call on the hot path a no-op.
func (m *Module) SetMetrics(metrics *Metrics) {
	m.metrics = metrics
}

// Init starts the single dedicated dispatcher goroutine (spec §5: "a
// single dedicated worker task owns the dispatcher loop"). A second
// call fails with ErrAlreadyStarted.
func (m *Module) Init() error {
	already := true
	m.startOnce.Do(func() {
		already = false
		go m.dispatchLoop()
	})
	if already {
		return ErrAlreadyStarted
	}
	return nil
}

// ensureStarted lazily starts the dispatcher so RegisterServer/
// RegisterClient work even without an explicit Init call.
func (m *Module) ensureStarted() {
	m.startOnce.Do(func() {
		go m.dispatchLoop()
	})
}

// nextMessageID returns the next message ID, monotonic modulo 2^16
// within this process (spec I5).
func (m *Module) nextMessageID() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgID++
	return m.msgID
}

// register appends l to the registry, failing with ErrAlreadyRegistered
// if its port is already bound (spec I1/§4.4).
func (m *Module) register(l *Listener) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.listeners {
		if existing.port == l.port {
			return ErrAlreadyRegistered
		}
	}
	m.listeners = append(m.listeners, l)
	return nil
}

// Lookup finds the listener bound to port, an insertion-order scan
// acceptable given the expected small N (spec §4.4: "lookup by port
// returns the listener or none").
func (m *Module) Lookup(port int) (*Listener, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.listeners {
		if l.port == port {
			return l, true
		}
	}
	return nil, false
}

// RegisterServer binds a UDP socket on port and registers a server
// listener dispatching inbound requests to endpoints (spec §4.3/§4.4).
// Pass endpoints built with NewServerEndpointSet to get the built-in
// /.well-known/core discovery resource.
func (m *Module) RegisterServer(port int, endpoints *EndpointSet) (*Listener, error) {
	if port != 0 {
		if _, ok := m.Lookup(port); ok {
			return nil, ErrAlreadyRegistered
		}
	}
	conn, err := net.ListenUDP("udp6", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("gnrccoap: bind server port %d: %w", port, err)
	}
	boundPort := conn.LocalAddr().(*net.UDPAddr).Port
	l := &Listener{
		port:      boundPort,
		kind:      listenerServer,
		conn:      conn,
		transport: NewUDPTransport(conn, m.cfg.HopLimit),
		endpoints: endpoints,
	}
	if err := m.register(l); err != nil {
		conn.Close()
		return nil, err
	}
	m.ensureStarted()
	go m.readLoop(l)
	return l, nil
}

// RegisterClient allocates an ephemeral port for sender, scanning
// [EphemeralMin, EphemeralMax] and retrying on bind failure (spec §4.4
// allocation algorithm: candidate starts at MIN, binding failure means
// the port is taken, NoPortAvailable once candidate exceeds MAX).
func (m *Module) RegisterClient(sender *Sender) (*Listener, error) {
	for candidate := m.cfg.EphemeralMin; candidate <= m.cfg.EphemeralMax; candidate++ {
		conn, err := net.ListenUDP("udp6", &net.UDPAddr{Port: candidate})
		if err != nil {
			continue
		}
		boundPort := conn.LocalAddr().(*net.UDPAddr).Port
		l := &Listener{
			port:      boundPort,
			kind:      listenerClient,
			conn:      conn,
			transport: NewUDPTransport(conn, m.cfg.HopLimit),
			sender:    sender,
		}
		if err := m.register(l); err != nil {
			conn.Close()
			return nil, err
		}
		sender.listener = l
		m.ensureStarted()
		go m.readLoop(l)
		return l, nil
	}
	return nil, ErrNoPortAvailable
}
