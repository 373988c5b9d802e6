package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/google/uuid"

	"github.com/vvka-141/csvsweep/internal/files/filesystem"
	"github.com/vvka-141/csvsweep/internal/files/header"
	"github.com/vvka-141/csvsweep/internal/match"
	"github.com/vvka-141/csvsweep/internal/registry"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

// Options tunes which files are candidates and when they match.
// Zero values fall back to csvsweep.DefaultMinMatches and csvsweep.DefaultExtension.
type Options struct {
	MinMatches int
	Extension  string
}

func (o Options) withDefaults() Options {
	if o.MinMatches == 0 {
		o.MinMatches = csvsweep.DefaultMinMatches
	}
	o.Extension = strings.ToLower(strings.TrimSpace(o.Extension))
	if o.Extension == "" {
		o.Extension = csvsweep.DefaultExtension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	return o
}

// Scanner walks a directory tree, reads the header line of every tabular
// file and removes the files matching a forbidden reference set.
// A Scanner runs one file at a time and keeps no state between runs, so
// the counters of each Run belong to that run alone.
type Scanner struct {
	sets       []registry.ReferenceSet
	logger     csvsweep.Logger
	fsProvider filesystem.FileSystemProvider
	opts       Options
}

// NewScanner creates a scanner over the OS filesystem.
// Panics if reg or logger is nil.
func NewScanner(reg *registry.Registry, logger csvsweep.Logger, opts Options) *Scanner {
	return NewScannerWithFS(reg, logger, opts, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if reg, logger or fsProvider is nil.
func NewScannerWithFS(reg *registry.Registry, logger csvsweep.Logger, opts Options, fsProvider filesystem.FileSystemProvider) *Scanner {
	if reg == nil {
		panic("registry cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		sets:       reg.Sets(),
		logger:     logger,
		fsProvider: fsProvider,
		opts:       opts.withDefaults(),
	}
}

// Run recursively scans root, removing every candidate file whose header
// matches a reference set.
//
// Per-file failures (unreadable file, undecodable header, denied removal,
// unreadable subdirectory) are logged, recorded in the result and skipped.
// Only an invalid threshold or root is returned as an error, before any
// file is touched.
func (s *Scanner) Run(root string) (csvsweep.ScanResult, error) {
	if s.opts.MinMatches < 1 {
		return csvsweep.ScanResult{}, fmt.Errorf("min matches must be at least 1, got %d: %w", s.opts.MinMatches, csvsweep.ErrInvalidConfig)
	}

	dir, err := s.fsProvider.Open(root)
	if err != nil {
		return csvsweep.ScanResult{}, fmt.Errorf("%w: %w", csvsweep.ErrInvalidRoot, err)
	}

	result := csvsweep.ScanResult{
		ID:   uuid.New(),
		Root: dir.Path(),
	}
	s.logger.Verbose("scan %s: walking %s (extension %s, min matches %d, %d reference sets)",
		result.ID, result.Root, s.opts.Extension, s.opts.MinMatches, len(s.sets))

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				s.logger.Error("Error walking %s: %v", pathErr.Path, pathErr.Err)
			} else {
				s.logger.Error("Error walking %s: %v", result.Root, err)
			}
			return nil
		}
		if !s.isCandidate(file.Info()) {
			return nil
		}
		state := s.processFile(file, &result)
		s.logger.Verbose("scan %s: %s -> %s", result.ID, file.RelativePath(), state)
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("failed to walk %s: %w", result.Root, err)
	}

	s.logger.Verbose("scan %s: examined %d, removed %d, failed %d",
		result.ID, result.Examined, result.Removed, len(result.Failures))
	return result, nil
}

// isCandidate accepts regular files whose name ends with the configured
// extension, ignoring case. Symlinks and directories are never candidates.
func (s *Scanner) isCandidate(info filesystem.FileInfo) bool {
	if info == nil || !info.Mode().IsRegular() {
		return false
	}
	return strings.HasSuffix(strings.ToLower(info.Name()), s.opts.Extension)
}

// processFile drives one candidate to its terminal state.
func (s *Scanner) processFile(file filesystem.File, result *csvsweep.ScanResult) csvsweep.FileState {
	result.Examined++
	path := file.Path()

	headers, err := header.Read(file)
	if err != nil {
		s.logger.Error("Error reading headers from %s: %v", path, err)
		result.Failures = append(result.Failures, csvsweep.Failure{
			Path:  path,
			State: csvsweep.StateExtractFailed,
			Err:   err,
		})
		return csvsweep.StateExtractFailed
	}

	m, ok := match.Evaluate(headers, s.sets, s.opts.MinMatches)
	if !ok {
		s.logger.Verbose("%s: no reference set reached %d of [%s]",
			file.RelativePath(), s.opts.MinMatches, strings.Join(headers.Sorted(), ", "))
		return csvsweep.StateUnmatched
	}

	if err := s.fsProvider.Remove(path); err != nil {
		err = fmt.Errorf("%w: %w", csvsweep.ErrRemove, err)
		s.logger.Error("Error removing %s: %v", path, err)
		result.Failures = append(result.Failures, csvsweep.Failure{
			Path:  path,
			State: csvsweep.StateRemoveFailed,
			Err:   err,
		})
		return csvsweep.StateRemoveFailed
	}

	result.Removed++
	result.Removals = append(result.Removals, csvsweep.Removal{
		Path:       path,
		SetIndex:   m.SetIndex,
		SetName:    m.SetName,
		MatchCount: m.Count,
	})
	s.logger.Info("Removed: %s (matched set %d by %d matches)", path, m.SetIndex, m.Count)
	return csvsweep.StateRemoved
}

// Verify Scanner implements the interface at compile time
var _ csvsweep.Sweeper = (*Scanner)(nil)
