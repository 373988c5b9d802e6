package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name           string
		nonInteractive string
		ci             string
		noColor        string
	}{
		{"CSVSWEEP_NON_INTERACTIVE", "1", "", ""},
		{"CI", "", "true", ""},
		{"NO_COLOR", "", "", "1"},
		// stdout is not a terminal under go test
		{"no terminal", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CSVSWEEP_NON_INTERACTIVE", tt.nonInteractive)
			t.Setenv("CI", tt.ci)
			t.Setenv("NO_COLOR", tt.noColor)

			assert.Equal(t, ModePlain, DetectMode())
			assert.False(t, IsStyled())
		})
	}
}
