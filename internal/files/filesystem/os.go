package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// osFile implements File interface for OS filesystem
type osFile struct {
	absPath string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string         { return f.absPath }
func (f *osFile) RelativePath() string { return f.relPath }
func (f *osFile) Info() FileInfo       { return f.info }

func (f *osFile) Open() (io.ReadCloser, error) {
	return os.Open(f.absPath)
}

// osDirectory implements Directory interface for OS filesystem
type osDirectory struct {
	absPath string
}

func (d *osDirectory) Path() string { return d.absPath }

// Walk uses filepath.Walk, which lstat's entries and therefore never
// descends into symlinked directories. Directory listings are read before
// their entries are visited, so fn may remove the file it is given.
func (d *osDirectory) Walk(fn func(File, error) error) error {
	return filepath.Walk(d.absPath, func(path string, info os.FileInfo, walkErr error) error {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", path, r)
				}
			}()

			if walkErr != nil {
				callbackErr = fn(nil, walkErr)
				return
			}

			relPath, relErr := filepath.Rel(d.absPath, path)
			if relErr != nil {
				callbackErr = fn(nil, fmt.Errorf("failed to get relative path: %w", relErr))
				return
			}

			callbackErr = fn(&osFile{
				absPath: path,
				relPath: relPath,
				info:    info,
			}, nil)
		}()

		return callbackErr
	})
}

// OSFileSystem implements FileSystemProvider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	return &osDirectory{absPath: absPath}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

var _ FileSystemProvider = (*OSFileSystem)(nil)
