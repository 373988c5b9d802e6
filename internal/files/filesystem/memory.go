package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
	fs      *MemoryFileSystem
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	if err, ok := f.fs.openErrors[f.absPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: f.absPath, Err: err}
	}
	if _, exists := f.fs.files[f.absPath]; !exists {
		return nil, &fs.PathError{Op: "open", Path: f.absPath, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

// Walk visits a snapshot of the tree in lexical order, so callbacks may
// remove entries while walking.
func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	var skipped []string
	for _, entry := range entries {
		if underAny(entry.absPath, skipped) {
			continue
		}

		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			if err, ok := d.fs.walkErrors[entry.absPath]; ok && entry.info.IsDir() {
				skipped = append(skipped, entry.absPath)
				callbackErr = fn(nil, &fs.PathError{Op: "open", Path: entry.absPath, Err: err})
				return
			}

			callbackErr = fn(entry, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Not safe for concurrent use.
type MemoryFileSystem struct {
	files map[string]*memoryFile // absolute path -> entry
	root  string

	openErrors   map[string]error
	removeErrors map[string]error
	walkErrors   map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:        make(map[string]*memoryFile),
		root:         root,
		openErrors:   make(map[string]error),
		removeErrors: make(map[string]error),
		walkErrors:   make(map[string]error),
	}
	mfs.files[root] = mfs.newEntry(root, nil, 0755|fs.ModeDir)

	return mfs
}

// AddFile adds a regular file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddBytes(filePath, []byte(content))
}

// AddBytes adds a regular file with raw content, e.g. binary data
func (mfs *MemoryFileSystem) AddBytes(filePath string, content []byte) {
	mfs.add(filePath, content, 0644)
}

// AddSymlink adds an entry reported as a symbolic link. Its content is
// readable through Open, like a link to a regular file would be.
func (mfs *MemoryFileSystem) AddSymlink(filePath string, content string) {
	mfs.add(filePath, []byte(content), 0777|fs.ModeSymlink)
}

// AddDir adds an empty directory
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.add(dirPath, nil, 0755|fs.ModeDir)
}

// FailOpen makes Open on the file at filePath return err
func (mfs *MemoryFileSystem) FailOpen(filePath string, err error) {
	mfs.openErrors[mfs.resolve(filePath)] = err
}

// FailRemove makes Remove on filePath return err
func (mfs *MemoryFileSystem) FailRemove(filePath string, err error) {
	mfs.removeErrors[mfs.resolve(filePath)] = err
}

// FailWalk makes the directory at dirPath unreadable during walks
func (mfs *MemoryFileSystem) FailWalk(dirPath string, err error) {
	mfs.walkErrors[mfs.resolve(dirPath)] = err
}

// Exists reports whether an entry exists at the given path
func (mfs *MemoryFileSystem) Exists(p string) bool {
	_, ok := mfs.files[mfs.resolve(p)]
	return ok
}

func (mfs *MemoryFileSystem) add(filePath string, content []byte, mode fs.FileMode) {
	absPath := mfs.resolve(filePath)
	mfs.files[absPath] = mfs.newEntry(absPath, content, mode)
	mfs.ensureDirectoriesExist(absPath)
}

func (mfs *MemoryFileSystem) newEntry(absPath string, content []byte, mode fs.FileMode) *memoryFile {
	relPath := "."
	if absPath != mfs.root {
		if rel, err := filepath.Rel(mfs.root, absPath); err == nil {
			relPath = filepath.ToSlash(rel)
		} else {
			relPath = absPath
		}
	}

	return &memoryFile{
		absPath: absPath,
		relPath: relPath,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    mode,
			modTime: time.Now(),
		},
		fs: mfs,
	}
}

// resolve maps a path onto the virtual tree, relative paths being
// interpreted against the root.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}

	mfs.files[dir] = mfs.newEntry(dir, nil, 0755|fs.ModeDir)
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}
	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %w", &fs.PathError{Op: "stat", Path: openPath, Err: fs.ErrNotExist})
	}
	if !file.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return file.content, nil
}

// Remove implements FileSystemProvider.Remove
func (mfs *MemoryFileSystem) Remove(filePath string) error {
	absPath := mfs.resolve(filePath)

	if err, ok := mfs.removeErrors[absPath]; ok {
		return &fs.PathError{Op: "remove", Path: filePath, Err: err}
	}

	file, exists := mfs.files[absPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.IsDir() && len(mfs.getEntriesUnder(absPath)) > 1 {
		return &fs.PathError{Op: "remove", Path: filePath, Err: fmt.Errorf("directory not empty")}
	}

	delete(mfs.files, absPath)
	return nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
