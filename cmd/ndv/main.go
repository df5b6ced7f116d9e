// Command ndv is the thin CLI collaborator described in §6.3 of the
// specification: it loads proof text from files, hands it to the core
// verifier library, and renders per-line results. The core itself knows
// nothing about files, terminals, or exit codes.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
