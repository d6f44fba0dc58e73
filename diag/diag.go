// Package diag is the runtime's "standard diagnostics channel" (spec.md §4.4
// step 7, §7): a terse leveled logger in the teacher's own idiom (x/fmtx
// wraps fmt.*; the bus services log with plain println/fmt.Printf rather
// than pulling in a structured-logging library), kept swappable for tests.
package diag

import (
	"os"
	"sync"

	"ib2c/x/fmtx"
)

// Sink receives one already-formatted diagnostic line. The default sink
// writes to stderr; tests may install their own to assert on output without
// scraping os.Stderr.
type Sink func(line string)

func writeStderr(line string) { fmtx.Fprintf(os.Stderr, "%s\n", line) }

var (
	mu   sync.Mutex
	sink Sink = writeStderr
)

// SetSink overrides where diagnostics go. Passing nil restores the default
// stderr sink.
func SetSink(s Sink) {
	mu.Lock()
	defer mu.Unlock()
	if s == nil {
		s = writeStderr
	}
	sink = s
}

func emit(level, format string, a ...any) {
	mu.Lock()
	s := sink
	mu.Unlock()
	s(level + ": " + fmtx.Sprintf(format, a...))
}

// Infof reports routine lifecycle information (server listening, client
// connected, module spawned).
func Infof(format string, a ...any) { emit("Info", format, a...) }

// Warnf reports a non-fatal diagnostic: a cycle-time overrun, a telemetry
// listen/accept or write failure (spec.md §7's non-fatal category).
// Snapshots dropped by telemetry.Server.Send are not reported.
func Warnf(format string, a ...any) { emit("Warning", format, a...) }
