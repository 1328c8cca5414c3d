// Command coapctl is the shell front-end named in spec §6: get/post/put
// a path against a server, run a server, or print a random token of a
// given length.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
