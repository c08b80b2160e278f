// Package buildlog is the build-time warning shim used by trie builders,
// in place of the teacher's raw fmt.Fprintf-to-stderr style (kept here as
// a named package so the CLI can redirect or silence it without touching
// callers).
package buildlog

import "log"

var logger = log.New(logPrefixWriter{}, "", 0)

type logPrefixWriter struct{}

func (logPrefixWriter) Write(p []byte) (int, error) {
	return log.Writer().Write(append([]byte("[tongrams] "), p...))
}

// Warnf logs a build-time warning, per spec.md §4.7's "positive log10
// probabilities in the ARPA are clamped to 0 with a warning at build".
func Warnf(format string, args ...any) {
	logger.Printf(format, args...)
}
