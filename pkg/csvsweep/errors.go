package csvsweep

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Only configuration errors abort a scan. Read, decode and remove errors
// are reported per file and the walk continues.
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidReferenceSet indicates an encoded reference set could not be decoded.
	ErrInvalidReferenceSet = errors.New("invalid reference set")

	// ErrInvalidRoot indicates the scan root does not exist or is not a directory.
	ErrInvalidRoot = errors.New("invalid scan root")

	// ErrRead indicates a candidate file could not be opened or read.
	ErrRead = errors.New("read failed")

	// ErrDecode indicates a candidate file's first line is not valid text.
	ErrDecode = errors.New("not valid text")

	// ErrNoHeader indicates a candidate file has no readable first line.
	ErrNoHeader = errors.New("no header line")

	// ErrRemove indicates a matched file could not be deleted.
	ErrRemove = errors.New("remove failed")
)

// usageErrorMarkers are message fragments produced by cobra/pflag for
// command-line misuse.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"arg(s), received",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrInvalidReferenceSet):
		return ExitConfigError
	case errors.Is(err, ErrInvalidRoot):
		return ExitInvalidRoot
	}

	errStr := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(errStr, marker) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
