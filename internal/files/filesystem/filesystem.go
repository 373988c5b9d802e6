package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// File represents an entry discovered during a walk
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walk root
	RelativePath() string

	// Info returns file metadata as reported without following symlinks
	Info() FileInfo

	// Open returns a reader over the file's content. Callers must close it.
	Open() (io.ReadCloser, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling fn for each file and directory.
	// A non-nil error argument reports an entry that could not be read; fn
	// decides whether to continue by returning nil.
	// If fn returns an error, walking stops.
	// Each directory is entered once and symbolic links are not followed.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Remove deletes the file at the given path
	Remove(path string) error
}
