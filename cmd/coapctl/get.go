package main

import (
	"github.com/spf13/cobra"

	"github.com/kb2ma/gocoap/nanocoap"
)

var getCmd = &cobra.Command{
	Use:   "get <addr> <port> <path>",
	Short: "send a GET request",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(nanocoap.GET, args)
	},
}
