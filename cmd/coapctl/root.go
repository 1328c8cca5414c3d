package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "coapctl",
	Short:         "coapctl sends and serves NON-only CoAP requests",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(getCmd, postCmd, putCmd, serverCmd, tokenCmd)
}
