package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/csvsweep/internal/files/filesystem"
	"github.com/vvka-141/csvsweep/internal/registry"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConfigFileName is looked up in the scan root when no explicit file is given.
const ConfigFileName = csvsweep.ConfigFileName

// FileConfig is the content of csvsweep.yaml. Pointer fields distinguish
// "not set" from zero values so lower-precedence sources can fill them.
type FileConfig struct {
	MinMatches     *int               `yaml:"min_matches,omitempty"`
	Extension      string             `yaml:"extension,omitempty"`
	IncludeBuiltin *bool              `yaml:"include_builtin,omitempty"`
	ReferenceSets  []registry.Encoded `yaml:"reference_sets,omitempty"`
}

// Load reads and parses the config file at path. Unknown keys are rejected
// so a misspelled option cannot silently fall back to a default.
func Load(fsProvider filesystem.FileSystemProvider, path string) (*FileConfig, error) {
	data, err := fsProvider.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w: %w", path, csvsweep.ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// LoadFromRoot loads <root>/csvsweep.yaml.
func LoadFromRoot(fsProvider filesystem.FileSystemProvider, root string) (*FileConfig, error) {
	return Load(fsProvider, filepath.Join(root, ConfigFileName))
}

// UsesBuiltin reports whether the embedded reference sets are active.
// They are unless the file explicitly disables them.
func (c *FileConfig) UsesBuiltin() bool {
	return c == nil || c.IncludeBuiltin == nil || *c.IncludeBuiltin
}

// BuildRegistry decodes the effective reference sets: built-ins first
// (unless disabled), then the sets declared in the file.
func BuildRegistry(c *FileConfig) (*registry.Registry, error) {
	var encoded []registry.Encoded
	if c.UsesBuiltin() {
		builtin, err := registry.Builtin()
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, builtin...)
	}
	if c != nil {
		encoded = append(encoded, c.ReferenceSets...)
	}
	return registry.New(encoded...)
}

// Marshal renders cfg as YAML, e.g. for `csvsweep encode --yaml`.
func Marshal(cfg *FileConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
