package csvsweep

// Logger provides a pluggable logging interface for scan operations.
// Implementations must be safe for concurrent use by multiple goroutines.
type Logger interface {
	// Verbose logs detailed diagnostic information.
	// Only logged when verbose mode is enabled.
	Verbose(format string, args ...interface{})

	// Info logs the running log of the scan (removed files, summary).
	// Always logged regardless of verbose mode.
	Info(format string, args ...interface{})

	// Error logs per-file failures and fatal errors.
	// Always logged regardless of verbose mode.
	Error(format string, args ...interface{})
}
