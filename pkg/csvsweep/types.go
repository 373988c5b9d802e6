package csvsweep

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ScanConfig contains the parameters of one sweep.
type ScanConfig struct {
	// Root is the directory whose subtree is scanned.
	Root string

	// MinMatches is the minimum intersection size that counts as a match.
	MinMatches int

	// Extension is the case-insensitive file name suffix of candidate files.
	Extension string

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the ScanConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *ScanConfig) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("Root is required: %w", ErrInvalidConfig))
	}

	if c.MinMatches < 1 {
		errs = append(errs, fmt.Errorf("min matches must be at least 1, got %d: %w", c.MinMatches, ErrInvalidConfig))
	}

	if strings.TrimSpace(c.Extension) == "" {
		errs = append(errs, fmt.Errorf("Extension is required: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// FileState is the terminal state a candidate file reached during a scan.
type FileState string

const (
	StateRemoved       FileState = "removed"
	StateRemoveFailed  FileState = "remove_failed"
	StateUnmatched     FileState = "unmatched"
	StateExtractFailed FileState = "extract_failed"
)

// Removal records a deleted file and the reference set that triggered it.
type Removal struct {
	Path string

	// SetIndex is the 1-based position of the matching reference set.
	SetIndex int
	SetName  string

	// MatchCount is the size of the header/reference intersection.
	MatchCount int
}

// Failure records a per-file error that did not abort the scan.
type Failure struct {
	Path  string
	State FileState
	Err   error
}

// ScanResult is returned by a single sweep. Counters only grow while the
// walk runs and are read by callers after it returns.
type ScanResult struct {
	// ID identifies the scan in diagnostic output.
	ID uuid.UUID

	// Root is the absolute path that was scanned.
	Root string

	// Examined counts candidate files, whatever their outcome.
	Examined int

	// Removed counts files actually deleted.
	Removed int

	Removals []Removal
	Failures []Failure
}
