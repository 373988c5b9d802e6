// Package header extracts the normalized set of column names from the
// first line of a delimited text file.
package header

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vvka-141/csvsweep/internal/files/delimiter"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

// Set is the normalized set of column names of one file. Entries are
// lowercase, trimmed and never empty.
type Set map[string]struct{}

// NewSet builds a Set from raw names, normalizing them the same way Parse does.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s.add(n)
	}
	return s
}

func (s Set) add(name string) {
	if n := Normalize(name); n != "" {
		s[n] = struct{}{}
	}
}

// Sorted returns the entries in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Normalize trims surrounding whitespace and lowercases name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Source is anything that can be opened for reading, such as a
// filesystem.File discovered during a walk.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Read opens src and parses its first line.
// Open and read failures wrap csvsweep.ErrRead; see Parse for the rest.
func Read(src Source) (Set, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", csvsweep.ErrRead, err)
	}
	defer rc.Close()

	return Parse(rc)
}

// Parse reads only the first line of r and tokenizes it on the delimiter
// inferred from that line. Quoted tokens may contain the delimiter.
//
// A line ends at the first CR or LF. The delimiter is counted on the raw
// line, surrounding whitespace included; only the tokenizer sees the
// trimmed line.
//
// A leading byte-order mark is honoured (UTF-16 input carrying one is
// transcoded). Returns an error wrapping csvsweep.ErrNoHeader when there is
// no non-blank first line, and csvsweep.ErrDecode when the line is not text.
func Parse(r io.Reader) (Set, error) {
	raw, err := firstLine(r)
	if err != nil {
		return nil, err
	}

	if !utf8.ValidString(raw) || strings.ContainsRune(raw, 0) {
		return nil, fmt.Errorf("%w: first line is not UTF-8 text", csvsweep.ErrDecode)
	}

	line := strings.TrimSpace(raw)
	if line == "" {
		return nil, csvsweep.ErrNoHeader
	}

	sample := raw
	if len(sample) > csvsweep.DelimiterSampleSize {
		sample = sample[:csvsweep.DelimiterSampleSize]
	}

	cr := csv.NewReader(strings.NewReader(line))
	cr.Comma = delimiter.Detect(sample)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	fields, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", csvsweep.ErrDecode, err)
	}

	return NewSet(fields...), nil
}

// firstLine returns the first line of r without its terminator.
// Lines longer than csvsweep.MaxHeaderLineBytes are rejected.
func firstLine(r io.Reader) (string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))

	sc := bufio.NewScanner(decoded)
	sc.Buffer(make([]byte, 0, 4096), csvsweep.MaxHeaderLineBytes+1)
	sc.Split(scanLine)

	if !sc.Scan() {
		err := sc.Err()
		switch {
		case err == nil:
			return "", csvsweep.ErrNoHeader
		case errors.Is(err, bufio.ErrTooLong):
			return "", fmt.Errorf("%w: first line longer than %d bytes", csvsweep.ErrDecode, csvsweep.MaxHeaderLineBytes)
		default:
			return "", fmt.Errorf("%w: %w", csvsweep.ErrRead, err)
		}
	}

	line := sc.Text()
	if len(line) > csvsweep.MaxHeaderLineBytes {
		return "", fmt.Errorf("%w: first line longer than %d bytes", csvsweep.ErrDecode, csvsweep.MaxHeaderLineBytes)
	}
	return line, nil
}

// scanLine is a bufio.SplitFunc that ends a line at the first CR or LF.
func scanLine(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
