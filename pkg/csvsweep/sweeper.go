package csvsweep

// Sweeper walks a directory tree and removes tabular files whose headers
// match a forbidden reference set.
type Sweeper interface {
	// Run scans root and returns the final counters. Per-file failures are
	// recorded in the result; only setup errors are returned.
	Run(root string) (ScanResult, error)
}
