// Package debug provides the env-var-gated trace/verbosity facility
// shared by the verifier core and cmd/ndv: a cheap global switchboard
// for diagnostic output, without threading a logger handle through
// every call.
package debug

import (
	"fmt"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("NDV_DEBUG") != ""
	verboseMode = false
	quietMode   = false
	mu          sync.Mutex
)

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	mu.Lock()
	defer mu.Unlock()
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	mu.Lock()
	defer mu.Unlock()
	return quietMode
}

func Logf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func Printf(format string, args ...interface{}) {
	if Enabled() {
		fmt.Printf(format, args...)
	}
}

// TraceLine logs a single line's validation outcome: its label, the
// rule symbol that justified it, and whether it passed. Called from the
// rule engine's per-line entry point when debug output is enabled.
func TraceLine(label, symbol string, valid bool) {
	Logf("line %s: rule %s -> valid=%v\n", label, symbol, valid)
}

// PrintNormal prints output unless quiet mode is enabled
// Use this for normal informational output that should be suppressed in quiet mode
func PrintNormal(format string, args ...interface{}) {
	if !IsQuiet() {
		fmt.Printf(format, args...)
	}
}

// PrintlnNormal prints a line unless quiet mode is enabled
func PrintlnNormal(args ...interface{}) {
	if !IsQuiet() {
		fmt.Println(args...)
	}
}
