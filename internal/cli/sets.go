package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvsweep/internal/config"
)

var setsCmd = &cobra.Command{
	Use:   "sets [root]",
	Short: "List the reference sets a scan of root would use",
	Long: `Sets decodes the built-in and configured reference sets and prints each one
with its position, name and column names. Positions match the set numbers
reported by "Removed: ... (matched set N ...)".

Configuration is resolved exactly as for a scan, so an invalid csvsweep.yaml
fails here too.`,
	Args: OptionalRoot,
	RunE: runSets,
}

func init() {
	setsCmd.Flags().StringVar(&sweepFlags.configPath, "config", "",
		"Path to a csvsweep.yaml file (default: <root>/csvsweep.yaml if present)")
	rootCmd.AddCommand(setsCmd)
}

func runSets(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	cfg, _, err := loadFileConfig(cmd, newFileSystem(), root)
	if err != nil {
		return err
	}
	reg, err := config.BuildRegistry(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, set := range reg.Sets() {
		fmt.Fprintf(out, "%d. %s (%d columns)\n", i+1, set.Name(), set.Len())
		fmt.Fprintf(out, "   %s\n", strings.Join(set.Tokens(), ", "))
	}
	return nil
}
