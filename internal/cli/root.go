package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csvsweep [root]",
	Short: "Remove CSV files whose headers match forbidden column sets",
	Long: `csvsweep walks a directory tree, reads the header line of every CSV file
and deletes the files that share at least --min-matches column names with
one of the configured reference sets.

Deletion is permanent. There is no dry run and no recycle bin.

Arguments:
  root    Directory to scan (default: current working directory).
          A directory named like a subcommand (encode, sets, version,
          help, completion) must be given with a path prefix, e.g. ./sets

Configuration (highest precedence first):
  1. Command-line flags
  2. Environment: CSVSWEEP_MIN_MATCHES, CSVSWEEP_EXTENSION, CSVSWEEP_CONFIG
     (a .env file in the working directory is loaded first)
  3. csvsweep.yaml (--config, else <root>/csvsweep.yaml when present)
  4. Defaults: --min-matches 3, --extension .csv

Exit Codes:
  0  - Scan completed (per-file failures are reported, not fatal)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or reference sets
  11 - Scan root missing or not a directory

Examples:
  csvsweep
  csvsweep ./exports --min-matches 4
  csvsweep /srv/share --config ./csvsweep.yaml -v
  csvsweep ./sets`,
	Args:         OptionalRoot,
	RunE:         runSweep,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	registerSweepFlags(rootCmd)
}

func registerSweepFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&sweepFlags.minMatches, "min-matches", "m", 0,
		"Minimum number of shared column names that marks a file for removal (default 3)")
	cmd.Flags().StringVar(&sweepFlags.configPath, "config", "",
		"Path to a csvsweep.yaml file (default: <root>/csvsweep.yaml if present)")
	cmd.Flags().StringVar(&sweepFlags.extension, "extension", "",
		"File name extension of candidate files, case-insensitive (default .csv)")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
