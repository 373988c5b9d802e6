// Package logging provides concrete implementations of the csvsweep.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes the running log to stdout and diagnostics to stderr
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
