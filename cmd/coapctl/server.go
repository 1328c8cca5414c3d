package main

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/kb2ma/gocoap/gnrccoap"
	"github.com/kb2ma/gocoap/nanocoap"
)

var serverCmd = &cobra.Command{
	Use:   "server <port>",
	Short: "run a CoAP server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", args[0], err)
		}
		return runServer(port)
	},
}

// runServer implements spec §8 scenario 3's example server: a single
// endpoint, /cli/stats, returning an incrementing request counter as
// octet-stream, alongside the always-present /.well-known/core.
func runServer(port int) error {
	var count uint32

	endpoints := gnrccoap.NewServerEndpointSet()
	endpoints.Add(gnrccoap.Endpoint{
		Path:   "/cli/stats",
		Method: nanocoap.GET,
		Handler: func(pkt *nanocoap.Packet, rw *gnrccoap.ResponseWriter) error {
			n := atomic.AddUint32(&count, 1)
			rw.Write([]byte{byte(n)})
			rw.SetContentFormat(nanocoap.MediaTypeOctetStream)
			return nil
		},
	})

	module := gnrccoap.NewModule(gnrccoap.DefaultConfig())
	if _, err := module.RegisterServer(port, endpoints); err != nil {
		return err
	}
	fmt.Printf("listening on [::]:%d\n", port)
	select {}
}
