package csvsweep

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Scan completed (per-file failures included)
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or reference sets
	ExitInvalidRoot  = 11 // Scan root missing or not a directory
)

const (
	// DefaultMinMatches is the minimum number of shared column names that
	// classifies a file as matching a reference set.
	DefaultMinMatches = 3

	// DefaultExtension is the file name suffix that marks a tabular file.
	// Comparison is case-insensitive.
	DefaultExtension = ".csv"

	// DelimiterSampleSize is the number of leading bytes the delimiter
	// detector looks at. Only the first line of the sample is counted.
	DelimiterSampleSize = 1024

	// MaxHeaderLineBytes bounds the first line read from a candidate file.
	// Longer lines are treated as undecodable.
	MaxHeaderLineBytes = 64 * 1024

	// ConfigFileName is the optional per-root configuration file.
	ConfigFileName = "csvsweep.yaml"

	// EnvPrefix namespaces the environment variables read by the CLI.
	EnvPrefix = "CSVSWEEP_"
)
