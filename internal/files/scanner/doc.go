// Package scanner walks a directory tree and removes tabular files whose
// header line matches a forbidden reference set.
//
// For every regular file whose name ends with the configured extension the
// scanner:
//   - reads and normalizes the first line (package header)
//   - evaluates it against the registry in order (package match)
//   - deletes the file on the first set that reaches the threshold
//
// Each file ends in exactly one csvsweep.FileState. Read, decode and remove
// failures are isolated to their file; the walk always continues.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests drive it with an in-memory tree.
package scanner
