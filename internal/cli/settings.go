package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/csvsweep/internal/config"
	"github.com/vvka-141/csvsweep/internal/files/filesystem"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

const (
	envMinMatches = csvsweep.EnvPrefix + "MIN_MATCHES"
	envExtension  = csvsweep.EnvPrefix + "EXTENSION"
	envConfig     = csvsweep.EnvPrefix + "CONFIG"
)

type sweepFlagValues struct {
	minMatches int
	configPath string
	extension  string
}

var sweepFlags sweepFlagValues

func resetSweepFlags() {
	sweepFlags = sweepFlagValues{}
}

// settings is the fully resolved input of one sweep.
type settings struct {
	scan       csvsweep.ScanConfig
	fileConfig *config.FileConfig
	configPath string
}

// resolveRoot returns the absolute scan root, defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %w", csvsweep.ErrInvalidRoot, err)
	}
	return abs, nil
}

// resolveSettings merges flags, environment, csvsweep.yaml and defaults.
// Nothing on disk is modified here, so every configuration error surfaces
// before the walk starts.
func resolveSettings(cmd *cobra.Command, fsProvider filesystem.FileSystemProvider, root string) (*settings, error) {
	_ = godotenv.Load()

	s := &settings{
		scan: csvsweep.ScanConfig{
			Root:       root,
			MinMatches: csvsweep.DefaultMinMatches,
			Extension:  csvsweep.DefaultExtension,
			Verbose:    getVerboseFlag(cmd),
		},
	}

	cfg, path, err := loadFileConfig(cmd, fsProvider, root)
	if err != nil {
		return nil, err
	}
	s.fileConfig, s.configPath = cfg, path

	// Lowest to highest precedence: file, environment, flags.
	if cfg != nil {
		if cfg.MinMatches != nil {
			s.scan.MinMatches = *cfg.MinMatches
		}
		if cfg.Extension != "" {
			s.scan.Extension = cfg.Extension
		}
	}

	if v, ok := os.LookupEnv(envMinMatches); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s=%q is not an integer: %w", envMinMatches, v, csvsweep.ErrInvalidConfig)
		}
		s.scan.MinMatches = n
	}
	if v := os.Getenv(envExtension); v != "" {
		s.scan.Extension = v
	}

	if cmd.Flags().Changed("min-matches") {
		s.scan.MinMatches = sweepFlags.minMatches
	}
	if cmd.Flags().Changed("extension") {
		s.scan.Extension = sweepFlags.extension
	}

	if err := s.scan.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFileConfig picks the config file (flag, then environment, then the
// root) and loads it. A missing file is only an error when it was named
// explicitly.
func loadFileConfig(cmd *cobra.Command, fsProvider filesystem.FileSystemProvider, root string) (*config.FileConfig, string, error) {
	var (
		path     string
		explicit bool
		cfg      *config.FileConfig
		err      error
	)
	switch {
	case cmd.Flags().Lookup("config") != nil && cmd.Flags().Changed("config"):
		path, explicit = sweepFlags.configPath, true
	case os.Getenv(envConfig) != "":
		path, explicit = os.Getenv(envConfig), true
	}

	if explicit {
		cfg, err = config.Load(fsProvider, path)
	} else {
		path = filepath.Join(root, config.ConfigFileName)
		cfg, err = config.LoadFromRoot(fsProvider, root)
	}
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicit {
				return nil, path, fmt.Errorf("config file %s: %w: %w", path, csvsweep.ErrInvalidConfig, err)
			}
			return nil, "", nil
		}
		if errors.Is(err, csvsweep.ErrInvalidConfig) {
			return nil, path, err
		}
		return nil, path, fmt.Errorf("failed to load %s: %w: %w", path, csvsweep.ErrInvalidConfig, err)
	}
	return cfg, path, nil
}
