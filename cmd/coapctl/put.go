package main

import (
	"github.com/spf13/cobra"

	"github.com/kb2ma/gocoap/nanocoap"
)

var putCmd = &cobra.Command{
	Use:   "put <addr> <port> <path> [data]",
	Short: "send a PUT request",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(nanocoap.PUT, args)
	},
}
