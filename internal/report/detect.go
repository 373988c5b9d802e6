package report

import (
	"os"

	"golang.org/x/term"
)

// Mode decides whether the summary is decorated.
type Mode int

const (
	// ModePlain is used for CI, pipes, redirected output and NO_COLOR.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading a terminal.
	ModeStyled
)

// DetectMode determines how the summary should be rendered.
//
// Returns ModePlain if:
//   - CSVSWEEP_NON_INTERACTIVE=1 is set
//   - CI is set
//   - NO_COLOR is set
//   - stdout is not a terminal
func DetectMode() Mode {
	if os.Getenv("CSVSWEEP_NON_INTERACTIVE") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModePlain
	}
	return ModeStyled
}

// IsStyled is a convenience wrapper around DetectMode.
func IsStyled() bool {
	return DetectMode() == ModeStyled
}
