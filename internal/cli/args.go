package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalRoot accepts zero or one root directory argument.
func OptionalRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf(`accepts at most 1 arg(s), received %d

Usage: %s`, len(args), cmd.UseLine())
	}
	return nil
}

// RequireTokens validates that at least one token argument is provided.
func RequireTokens(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`requires at least 1 arg(s), received 0

Usage: %s

Example:
  %s pid age gender`, cmd.UseLine(), cmd.CommandPath())
	}
	return nil
}
