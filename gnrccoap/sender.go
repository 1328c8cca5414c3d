package gnrccoap

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/kb2ma/gocoap/internal/logging"
)

// SenderState is a Sender's position in the state machine of spec
// §4.6: INIT -> REQ -> SUCCESS/FAIL.
type SenderState int

const (
	StateInit SenderState = iota
	StateReq
	StateSuccess
	StateFail
)

func (s SenderState) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateReq:
		return "REQ"
	case StateSuccess:
		return "SUCCESS"
	case StateFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// ResponseCallback is invoked when a Sender's outstanding request
// reaches a terminal state: SUCCESS is reported from the dispatcher
// goroutine and carries the parsed response Transfer; FAIL is reported
// from the goroutine that called Module.Send and carries a zero
// Transfer (spec §4.6, "terminal states SUCCESS and FAIL are reported to the
// caller via the response callback").
type ResponseCallback func(state SenderState, transfer Transfer)

// Sender is a client-side outbound-request holder awaiting a response
// (spec §3). It may be reused for a new request once its callback has
// fired.
type Sender struct {
	// ID correlates this sender's log lines across its lifetime; it is
	// not part of the wire protocol (the token is the CoAP-level
	// correlator, per spec §3/§8) and exists purely as an ambient
	// tracing aid.
	ID uuid.UUID

	mu       sync.Mutex
	state    SenderState
	token    []byte
	callback ResponseCallback
	listener *Listener
}

// NewSender creates a Sender in state INIT, reporting terminal
// transitions to cb.
func NewSender(cb ResponseCallback) *Sender {
	return &Sender{ID: uuid.New(), state: StateInit, callback: cb}
}

// State returns the sender's current state.
func (s *Sender) State() SenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// newToken generates a fresh random token of tokenLen bytes (0..8) and
// transitions to REQ, recording the token so a later response can be
// matched (spec §4.1: "for a new request, filled from a PRNG").
func (s *Sender) newToken(tokenLen int) []byte {
	token := make([]byte, tokenLen)
	rand.Read(token)
	s.mu.Lock()
	s.token = token
	s.state = StateReq
	s.mu.Unlock()
	return token
}

// matchToken reports whether candidate equals the sender's outstanding
// request token byte-for-byte (spec §8 quantified invariant, §4.6 step
// 6 token enforcement). It only matches while the sender is in REQ.
func (s *Sender) matchToken(candidate []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReq {
		return false
	}
	if len(candidate) != len(s.token) {
		return false
	}
	for i := range candidate {
		if candidate[i] != s.token[i] {
			return false
		}
	}
	return true
}

// succeed transitions the sender to SUCCESS and reports t to its
// callback.
func (s *Sender) succeed(t Transfer) {
	s.mu.Lock()
	s.state = StateSuccess
	cb := s.callback
	s.mu.Unlock()
	logging.Tracef("gnrccoap: sender %s -> SUCCESS", s.ID)
	if cb != nil {
		cb(StateSuccess, t)
	}
}

// fail transitions the sender to FAIL and reports it to its callback
// (spec §4.6: "REQ -- transport send failed --> FAIL").
func (s *Sender) fail() {
	s.mu.Lock()
	s.state = StateFail
	cb := s.callback
	s.mu.Unlock()
	logging.Tracef("gnrccoap: sender %s -> FAIL", s.ID)
	if cb != nil {
		cb(StateFail, Transfer{})
	}
}
