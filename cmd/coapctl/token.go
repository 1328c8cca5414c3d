package main

import (
	"crypto/rand"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <length 0..8>",
	Short: "print a random token of the given length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 || n > 8 {
			return fmt.Errorf("token length must be 0..8, got %q", args[0])
		}
		token := make([]byte, n)
		if _, err := rand.Read(token); err != nil {
			return err
		}
		fmt.Printf("% X\n", token)
		return nil
	},
}
