package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csvsweep/internal/files/filesystem"
	"github.com/vvka-141/csvsweep/internal/registry"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

type recordingLogger struct {
	mu      sync.Mutex
	infos   []string
	errs    []string
	verbose []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		registry.Encoded{Name: "survey", Tokens: registry.Encode([]string{"pid", "age", "gender", "bmi"})},
		registry.Encoded{Name: "berths", Tokens: registry.Encode([]string{"id", "haven", "berth_name", "depth"})},
	)
	require.NoError(t, err)
	return reg
}

func newTestScanner(t *testing.T, opts Options) (*Scanner, *filesystem.MemoryFileSystem, *recordingLogger) {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/data")
	logger := &recordingLogger{}
	return NewScannerWithFS(testRegistry(t), logger, opts, mfs), mfs, logger
}

func TestNewScannerWithFS_NilArgs(t *testing.T) {
	reg := testRegistry(t)
	logger := &recordingLogger{}
	mfs := filesystem.NewMemoryFileSystem("/")

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil registry", func() { NewScannerWithFS(nil, logger, Options{}, mfs) }},
		{"nil logger", func() { NewScannerWithFS(reg, nil, Options{}, mfs) }},
		{"nil filesystem", func() { NewScannerWithFS(reg, logger, Options{}, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	tests := []struct {
		in   Options
		want Options
	}{
		{Options{}, Options{MinMatches: 3, Extension: ".csv"}},
		{Options{MinMatches: 5, Extension: "TSV"}, Options{MinMatches: 5, Extension: ".tsv"}},
		{Options{MinMatches: 1, Extension: " .Csv "}, Options{MinMatches: 1, Extension: ".csv"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.withDefaults())
	}
}

func TestRun_MatchingFileRemoved(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddFile("a.csv", "id,haven,berth_name,x\n1,2,3,4\n")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Examined)
	assert.Equal(t, 1, result.Removed)
	assert.False(t, mfs.Exists("a.csv"))
	require.Len(t, result.Removals, 1)
	assert.Equal(t, csvsweep.Removal{Path: "/data/a.csv", SetIndex: 2, SetName: "berths", MatchCount: 3}, result.Removals[0])
	assert.Equal(t, []string{"Removed: /data/a.csv (matched set 2 by 3 matches)"}, logger.infos)
	assert.Empty(t, logger.errs)
}

func TestRun_NonMatchingFileKept(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddFile("b.csv", "foo;bar;baz\n")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Examined)
	assert.Equal(t, 0, result.Removed)
	assert.True(t, mfs.Exists("b.csv"))
	assert.Empty(t, logger.infos)
	assert.Empty(t, result.Failures)
}

func TestRun_UnmatchedHeadersLoggedVerbose(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddFile("b.csv", "Foo;bar\n")

	_, err := s.Run("/data")
	require.NoError(t, err)
	assert.Contains(t, logger.verbose, "b.csv: no reference set reached 3 of [bar, foo]")
}

func TestRun_DelimiterCountedOnRawLine(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("tabs.csv", "pid;age;gender\t\t\t\t\n1;2;3\n")
	mfs.AddFile("semi.csv", "pid;age;gender\n1;2;3\n")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	assert.Equal(t, 1, result.Removed)
	assert.True(t, mfs.Exists("tabs.csv"))
	assert.False(t, mfs.Exists("semi.csv"))
}

func TestRun_CROnlyLineEndings(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("mac.csv", "pid,age,gender\r1,2,3\r4,5,6\r")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Removed)
	assert.False(t, mfs.Exists("mac.csv"))
	require.Len(t, result.Removals, 1)
	assert.Equal(t, 3, result.Removals[0].MatchCount)
}

func TestRun_BinaryFileLoggedAndSkipped(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddBytes("a_binary.csv", []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff, 0xfe, 0x00})
	mfs.AddFile("z_match.csv", "pid,age,gender\n")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	assert.Equal(t, 1, result.Removed)
	assert.True(t, mfs.Exists("a_binary.csv"))
	assert.False(t, mfs.Exists("z_match.csv"))

	require.Len(t, result.Failures, 1)
	assert.Equal(t, csvsweep.StateExtractFailed, result.Failures[0].State)
	assert.True(t, errors.Is(result.Failures[0].Err, csvsweep.ErrDecode))
	require.Len(t, logger.errs, 1)
	assert.Contains(t, logger.errs[0], "Error reading headers from /data/a_binary.csv")
}

func TestRun_UnreadableAndEmptyFiles(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("locked.csv", "pid,age,gender\n")
	mfs.FailOpen("locked.csv", fs.ErrPermission)
	mfs.AddFile("empty.csv", "")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	assert.Equal(t, 0, result.Removed)
	require.Len(t, result.Failures, 2)

	byPath := map[string]error{}
	for _, f := range result.Failures {
		byPath[f.Path] = f.Err
	}
	assert.True(t, errors.Is(byPath["/data/locked.csv"], csvsweep.ErrRead))
	assert.True(t, errors.Is(byPath["/data/locked.csv"], fs.ErrPermission))
	assert.True(t, errors.Is(byPath["/data/empty.csv"], csvsweep.ErrNoHeader))
}

func TestRun_RemoveFailureDoesNotAbort(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddFile("a.csv", "pid,age,gender\n")
	mfs.FailRemove("a.csv", fs.ErrPermission)
	mfs.AddFile("b.csv", "id,haven,berth_name\n")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Examined)
	assert.Equal(t, 1, result.Removed)
	assert.True(t, mfs.Exists("a.csv"))
	assert.False(t, mfs.Exists("b.csv"))

	require.Len(t, result.Failures, 1)
	assert.Equal(t, csvsweep.StateRemoveFailed, result.Failures[0].State)
	assert.True(t, errors.Is(result.Failures[0].Err, csvsweep.ErrRemove))
	assert.True(t, errors.Is(result.Failures[0].Err, fs.ErrPermission))
	require.Len(t, logger.errs, 1)
	assert.Contains(t, logger.errs[0], "Error removing /data/a.csv")
}

func TestRun_VanishedFileIsRemoveFailure(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("a.csv", "pid,age,gender\n")
	mfs.FailRemove("a.csv", fs.ErrNotExist)

	result, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Removed)
	require.Len(t, result.Failures, 1)
	assert.True(t, errors.Is(result.Failures[0].Err, fs.ErrNotExist))
}

func TestRun_CandidateSelection(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	header := "pid,age,gender\n"
	mfs.AddFile("upper.CSV", header)
	mfs.AddFile("mixed.CsV", header)
	mfs.AddFile("nested/deep/er/file.csv", header)
	mfs.AddFile("notes.txt", header)
	mfs.AddFile("data.csv.bak", header)
	mfs.AddFile("csv", header)
	mfs.AddSymlink("link.csv", header)
	mfs.AddDir("folder.csv")

	result, err := s.Run("/data")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Examined)
	assert.Equal(t, 3, result.Removed)
	assert.False(t, mfs.Exists("upper.CSV"))
	assert.False(t, mfs.Exists("mixed.CsV"))
	assert.False(t, mfs.Exists("nested/deep/er/file.csv"))
	for _, kept := range []string{"notes.txt", "data.csv.bak", "csv", "link.csv", "folder.csv"} {
		assert.True(t, mfs.Exists(kept), kept)
	}
}

func TestRun_CustomExtension(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{Extension: "tsv"})
	mfs.AddFile("a.tsv", "pid\tage\tgender\n")
	mfs.AddFile("b.csv", "pid,age,gender\n")

	result, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Examined)
	assert.False(t, mfs.Exists("a.tsv"))
	assert.True(t, mfs.Exists("b.csv"))
}

func TestRun_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		threshold   int
		wantRemoved int
	}{
		{1, 1},
		{2, 1},
		{3, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("threshold_%d", tt.threshold), func(t *testing.T) {
			s, mfs, _ := newTestScanner(t, Options{MinMatches: tt.threshold})
			mfs.AddFile("two.csv", "id,haven,other\n")

			result, err := s.Run("/data")
			require.NoError(t, err)
			assert.Equal(t, 1, result.Examined)
			assert.Equal(t, tt.wantRemoved, result.Removed)
			assert.Equal(t, tt.wantRemoved == 0, mfs.Exists("two.csv"))
		})
	}
}

func TestRun_FirstMatchingSetReported(t *testing.T) {
	reg, err := registry.New(
		registry.Encoded{Name: "small", Tokens: registry.Encode([]string{"a", "b", "c"})},
		registry.Encoded{Name: "large", Tokens: registry.Encode([]string{"a", "b", "c", "d", "e"})},
	)
	require.NoError(t, err)

	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("x.csv", "a,b,c,d,e\n")
	s := NewScannerWithFS(reg, &recordingLogger{}, Options{}, mfs)

	result, err := s.Run("/data")
	require.NoError(t, err)
	require.Len(t, result.Removals, 1)
	assert.Equal(t, 1, result.Removals[0].SetIndex)
	assert.Equal(t, 3, result.Removals[0].MatchCount)
}

func TestRun_UnreadableSubdirectorySkipped(t *testing.T) {
	s, mfs, logger := newTestScanner(t, Options{})
	mfs.AddFile("private/a.csv", "pid,age,gender\n")
	mfs.AddFile("public/b.csv", "pid,age,gender\n")
	mfs.FailWalk("private", fs.ErrPermission)

	result, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Examined)
	assert.Equal(t, 1, result.Removed)
	assert.True(t, mfs.Exists("private/a.csv"))
	require.Len(t, logger.errs, 1)
	assert.Equal(t, "Error walking /data/private: permission denied", logger.errs[0])
}

func TestRun_InvalidRoot(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("file.csv", "pid,age,gender\n")

	_, err := s.Run("/nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvsweep.ErrInvalidRoot))

	_, err = s.Run("/data/file.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvsweep.ErrInvalidRoot))
	assert.True(t, mfs.Exists("file.csv"))
}

func TestRun_NegativeThresholdRejectedBeforeWalking(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{MinMatches: -1})
	mfs.AddFile("a.csv", "pid,age,gender\n")

	_, err := s.Run("/data")
	require.Error(t, err)
	assert.True(t, errors.Is(err, csvsweep.ErrInvalidConfig))
	assert.True(t, mfs.Exists("a.csv"))
}

func TestRun_EmptyTree(t *testing.T) {
	s, _, _ := newTestScanner(t, Options{})

	result, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Examined)
	assert.Equal(t, 0, result.Removed)
	assert.Equal(t, "/data", result.Root)
	assert.NotEqual(t, uuid.Nil, result.ID)
}

// Counters belong to a single run: running again over the already swept
// tree starts from zero.
func TestRun_CountersArePerRun(t *testing.T) {
	s, mfs, _ := newTestScanner(t, Options{})
	mfs.AddFile("a.csv", "pid,age,gender\n")
	mfs.AddFile("b.csv", "foo,bar\n")

	first, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 2, first.Examined)
	assert.Equal(t, 1, first.Removed)

	second, err := s.Run("/data")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Examined)
	assert.Equal(t, 0, second.Removed)
	assert.NotEqual(t, first.ID, second.ID)
}
