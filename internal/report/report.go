// Package report renders the end-of-scan summary.
//
// The plain form is two lines, "Processed: N files" and "Removed: N files",
// and is what scripts and CI logs see. When stdout is a terminal the same
// counts are decorated with lipgloss, plus a muted footer that mentions
// per-file failures and the scan ID.
package report

import (
	"fmt"
	"strings"

	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

// Render returns the summary for result, terminated by a newline.
func Render(result csvsweep.ScanResult, styled bool) string {
	if !styled {
		return Plain(result)
	}
	return Styled(result)
}

// Plain renders the undecorated summary.
func Plain(result csvsweep.ScanResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Processed: %d files\n", result.Examined)
	fmt.Fprintf(&b, "Removed: %d files\n", result.Removed)
	return b.String()
}

// Styled renders the summary with colors and a footer.
func Styled(result csvsweep.ScanResult) string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Processed:") + " " + CountStyle.Render(fmt.Sprintf("%d", result.Examined)) + " files\n")

	removed := fmt.Sprintf("%d", result.Removed)
	if result.Removed > 0 {
		removed = RemovedStyle.Render(SymbolCheck + " " + removed)
	} else {
		removed = CountStyle.Render(removed)
	}
	b.WriteString(LabelStyle.Render("Removed:") + " " + removed + " files\n")

	if n := len(result.Failures); n > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("%s %d file(s) could not be processed", SymbolBullet, n)) + "\n")
	}
	b.WriteString(MutedStyle.Render("scan "+result.ID.String()) + "\n")
	return b.String()
}
