package main

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kb2ma/gocoap/gnrccoap"
	"github.com/kb2ma/gocoap/nanocoap"
)

// requestTimeout bounds how long a one-shot CLI request waits for a
// response; the core itself has no timeout contract (spec §5
// "cancellation/timeouts: not part of the core's contract"), so the
// CLI layers its own, as the spec's design notes anticipate.
const requestTimeout = 5 * time.Second

// runRequest implements the shared body of the get/post/put
// subcommands (spec §6: "<prog> get|post|put <addr> <port> <path>
// [data]"). It returns a non-nil error for any usage or send/response
// failure, which main turns into exit code 1.
func runRequest(code nanocoap.Code, args []string) error {
	addr := args[0]
	port, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", args[1], err)
	}
	path := args[2]
	var payload []byte
	format := nanocoap.NoFormat
	if len(args) == 4 {
		payload = []byte(args[3])
		format = nanocoap.MediaTypeOctetStream
	}

	dest := &net.UDPAddr{IP: net.ParseIP(addr), Port: port}
	if dest.IP == nil {
		return fmt.Errorf("invalid address %q", addr)
	}

	module := gnrccoap.NewModule(gnrccoap.DefaultConfig())
	if err := module.Init(); err != nil {
		return err
	}

	done := make(chan struct {
		state gnrccoap.SenderState
		t     gnrccoap.Transfer
	}, 1)
	sender := gnrccoap.NewSender(func(state gnrccoap.SenderState, t gnrccoap.Transfer) {
		done <- struct {
			state gnrccoap.SenderState
			t     gnrccoap.Transfer
		}{state, t}
	})

	l, err := module.RegisterClient(sender)
	if err != nil {
		return err
	}

	transfer := gnrccoap.NewTransfer(code, path, payload, format)
	if n := module.Send(l, dest, 4, transfer); n == 0 {
		return fmt.Errorf("msg send failed")
	}

	select {
	case result := <-done:
		if result.state != gnrccoap.StateSuccess {
			return fmt.Errorf("request failed")
		}
		fmt.Printf("%s %s\n", result.t.Code, string(result.t.Payload))
		return nil
	case <-time.After(requestTimeout):
		return fmt.Errorf("timed out waiting for response")
	}
}
