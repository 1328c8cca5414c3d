package main

import (
	"github.com/spf13/cobra"

	"github.com/kb2ma/gocoap/nanocoap"
)

var postCmd = &cobra.Command{
	Use:   "post <addr> <port> <path> [data]",
	Short: "send a POST request",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(nanocoap.POST, args)
	},
}
