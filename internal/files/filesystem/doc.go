// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines interfaces for the handful of operations a sweep needs
// (walk, open, stat, remove), enabling walker tests against an in-memory tree
// while production code uses the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Factory for directories plus file-level Stat/ReadFile/Remove
//   - Directory: Represents a directory that can be traversed
//   - File: Represents a discovered entry with metadata and a content reader
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with error injection
package filesystem
