// Command recommend ranks jobs and gigs from dataset files or the embedded
// samples without running the HTTP server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
