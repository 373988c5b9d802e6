// Package delimiter infers the single-character field separator of a
// delimited text file from its first line.
package delimiter

import "strings"

// Candidates lists the recognised delimiters in tie-break priority order.
var Candidates = []rune{',', ';', '\t', '|'}

// Default is returned when no candidate occurs in the line.
const Default = ','

// Detect returns the candidate occurring most often in the first line of
// sample. Ties go to the candidate listed first in Candidates; a line
// containing none of them yields Default.
//
// Only the first line is inspected. Column-count consistency on later
// lines is never checked.
func Detect(sample string) rune {
	line := FirstLine(sample)

	best, bestCount := Default, 0
	for _, c := range Candidates {
		if n := strings.Count(line, string(c)); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}

// FirstLine returns sample up to, not including, the first '\n'.
func FirstLine(sample string) string {
	if i := strings.IndexByte(sample, '\n'); i >= 0 {
		return sample[:i]
	}
	return sample
}
