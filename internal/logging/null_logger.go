package logging

// NullLogger discards everything. Used by tests and by library callers
// that only want the ScanResult.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}
