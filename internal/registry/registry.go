// Package registry decodes and holds the forbidden reference sets that
// candidate headers are matched against.
//
// Reference sets are stored obfuscated: every column name is individually
// base64 encoded. The encoding is not a secret, only a way to keep the raw
// names out of the source tree. Sets are decoded once at startup and never
// mutated afterwards.
package registry

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/csvsweep/internal/files/header"
	"github.com/vvka-141/csvsweep/pkg/csvsweep"
)

//go:embed builtin.yaml
var builtinYAML []byte

// Encoded is the stored form of a reference set.
type Encoded struct {
	Name   string   `yaml:"name"`
	Tokens []string `yaml:"tokens"`
}

type encodedFile struct {
	ReferenceSets []Encoded `yaml:"reference_sets"`
}

// Builtin returns the encoded reference sets shipped with the binary.
func Builtin() ([]Encoded, error) {
	var f encodedFile
	if err := yaml.Unmarshal(builtinYAML, &f); err != nil {
		return nil, fmt.Errorf("registry: parse builtin.yaml: %w: %w", csvsweep.ErrInvalidReferenceSet, err)
	}
	return f.ReferenceSets, nil
}

// ReferenceSet is a decoded, immutable sequence of normalized column names.
type ReferenceSet struct {
	name   string
	tokens []string
	lookup map[string]struct{}
}

// Name returns the set's label, used only for reporting.
func (s ReferenceSet) Name() string { return s.name }

// Tokens returns a copy of the decoded names in stored order.
func (s ReferenceSet) Tokens() []string {
	out := make([]string, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Len returns the number of distinct names in the set.
func (s ReferenceSet) Len() int { return len(s.lookup) }

// Contains reports whether the normalized name belongs to the set.
func (s ReferenceSet) Contains(name string) bool {
	_, ok := s.lookup[name]
	return ok
}

// DecodeToken decodes one base64 token and normalizes the result.
func DecodeToken(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(token))
	if err != nil {
		return "", fmt.Errorf("token %q: %w: %w", token, csvsweep.ErrInvalidReferenceSet, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("token %q: %w: decoded bytes are not UTF-8", token, csvsweep.ErrInvalidReferenceSet)
	}
	name := header.Normalize(string(raw))
	if name == "" {
		return "", fmt.Errorf("token %q: %w: decodes to an empty name", token, csvsweep.ErrInvalidReferenceSet)
	}
	return name, nil
}

// EncodeToken is the inverse of DecodeToken for already-normalized names.
func EncodeToken(name string) string {
	return base64.StdEncoding.EncodeToString([]byte(name))
}

// Encode encodes every name. Decode(name, Encode(names)) yields the
// normalized names in the same order.
func Encode(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = EncodeToken(n)
	}
	return out
}

// Decode builds a ReferenceSet from its encoded tokens. Any malformed token
// fails the whole set.
func Decode(name string, tokens []string) (ReferenceSet, error) {
	if len(tokens) == 0 {
		return ReferenceSet{}, fmt.Errorf("set %q: %w: no tokens", name, csvsweep.ErrInvalidReferenceSet)
	}

	set := ReferenceSet{
		name:   name,
		tokens: make([]string, 0, len(tokens)),
		lookup: make(map[string]struct{}, len(tokens)),
	}
	for i, tok := range tokens {
		decoded, err := DecodeToken(tok)
		if err != nil {
			return ReferenceSet{}, fmt.Errorf("set %q entry %d: %w", name, i+1, err)
		}
		set.tokens = append(set.tokens, decoded)
		set.lookup[decoded] = struct{}{}
	}
	return set, nil
}

// Registry is the ordered list of decoded reference sets. Order only
// decides which set is reported when several could match.
type Registry struct {
	sets []ReferenceSet
}

// New decodes all sets up front. It fails on the first malformed set so a
// scan never runs with a partially decoded policy.
func New(encoded ...Encoded) (*Registry, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("registry: %w: no reference sets configured", csvsweep.ErrInvalidReferenceSet)
	}

	r := &Registry{sets: make([]ReferenceSet, 0, len(encoded))}
	for i, e := range encoded {
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("set-%d", i+1)
		}
		set, err := Decode(name, e.Tokens)
		if err != nil {
			return nil, fmt.Errorf("registry: %w", err)
		}
		r.sets = append(r.sets, set)
	}
	return r, nil
}

// NewBuiltin decodes the embedded reference sets.
func NewBuiltin() (*Registry, error) {
	encoded, err := Builtin()
	if err != nil {
		return nil, err
	}
	return New(encoded...)
}

// Sets returns the decoded sets in registry order.
func (r *Registry) Sets() []ReferenceSet {
	out := make([]ReferenceSet, len(r.sets))
	copy(out, r.sets)
	return out
}

// Len returns the number of sets.
func (r *Registry) Len() int { return len(r.sets) }
