package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/csvsweep/internal/config"
	"github.com/vvka-141/csvsweep/internal/files/filesystem"
	"github.com/vvka-141/csvsweep/internal/files/scanner"
	"github.com/vvka-141/csvsweep/internal/logging"
	"github.com/vvka-141/csvsweep/internal/report"
)

// newFileSystem is replaced in tests.
var newFileSystem = func() filesystem.FileSystemProvider {
	return filesystem.NewOSFileSystem()
}

// styledOutput decides whether the summary is decorated.
var styledOutput = report.IsStyled

func runSweep(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	fsProvider := newFileSystem()
	s, err := resolveSettings(cmd, fsProvider, root)
	if err != nil {
		return err
	}

	reg, err := config.BuildRegistry(s.fileConfig)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := logging.NewConsoleLoggerWithWriters(s.scan.Verbose, out, cmd.ErrOrStderr())
	if s.configPath != "" {
		logger.Verbose("Using config file %s", s.configPath)
	}
	logger.Verbose("Loaded %d reference set(s)", reg.Len())

	sc := scanner.NewScannerWithFS(reg, logger, scanner.Options{
		MinMatches: s.scan.MinMatches,
		Extension:  s.scan.Extension,
	}, fsProvider)

	fmt.Fprintf(out, "Starting CSV file search in: %s\n", root)

	result, err := sc.Run(root)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, report.Render(result, styledOutput()))
	return nil
}
