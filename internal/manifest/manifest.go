// Package manifest loads the metadata manifest that records how an
// experiment's code was fetched and run.
//
// A manifest is an immutable nested mapping decoded from YAML. Values are
// addressed by key paths, e.g. implementation.source.repository.
package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/repro/internal/constants"
	"github.com/mrz1836/repro/internal/errors"
)

// Manifest is a parsed manifest document. It is read-only after Parse.
type Manifest struct {
	root map[string]any
}

// Source is the recorded location of the experiment's code.
type Source struct {
	Repository string
	Commit     string
}

// Parse decodes raw YAML into a Manifest.
// It fails with errors.ErrManifestSyntax when the text is not well-formed
// or its root is not a mapping.
func Parse(data []byte) (*Manifest, error) {
	var doc any
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrManifestSyntax, err)
	}

	root, ok := asMapping(doc)
	if !ok {
		return nil, fmt.Errorf("%w: document root must be a mapping, got %T", errors.ErrManifestSyntax, doc)
	}
	return &Manifest{root: root}, nil
}

// Load reads and parses the manifest at path. Read failures are reported in
// the manifest syntax category since the pipeline cannot tell them apart from
// an unusable document.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- the manifest path is the user's explicit input
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrManifestSyntax, err)
	}
	return Parse(data)
}

// Lookup returns the value at path. See the package-level Lookup.
func (m *Manifest) Lookup(path ...string) (any, error) {
	return Lookup(m.root, path...)
}

// Source returns the recorded repository locator and revision.
// Errors wrap errors.ErrMissingSource.
func (m *Manifest) Source() (Source, error) {
	repository, err := m.stringAt(constants.ManifestRepositoryPath)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", errors.ErrMissingSource, err)
	}
	commit, err := m.stringAt(constants.ManifestCommitPath)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", errors.ErrMissingSource, err)
	}
	return Source{Repository: repository, Commit: commit}, nil
}

// Command returns the recorded experiment argv.
// Errors wrap errors.ErrMissingExecutable.
func (m *Manifest) Command() ([]string, error) {
	v, err := m.Lookup(constants.ManifestCommandPath...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMissingExecutable, err)
	}
	argv, ok := stringSlice(v)
	if !ok || len(argv) == 0 {
		return nil, fmt.Errorf("%w: %w: %s must be a non-empty list of strings",
			errors.ErrMissingExecutable, errors.ErrInvalidManifestValue, joinPath(constants.ManifestCommandPath))
	}
	return argv, nil
}

// SetupCommand returns the optional setup command. A string is returned as a
// single-element slice; the caller decides whether to run it through a shell.
func (m *Manifest) SetupCommand() ([]string, bool) {
	v, err := m.Lookup(constants.ManifestSetupPath...)
	if err != nil {
		return nil, false
	}
	if s, ok := v.(string); ok && s != "" {
		return []string{s}, true
	}
	argv, ok := stringSlice(v)
	if !ok || len(argv) == 0 {
		return nil, false
	}
	return argv, true
}

func (m *Manifest) stringAt(path []string) (string, error) {
	v, err := m.Lookup(path...)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s must be a non-empty string", errors.ErrInvalidManifestValue, joinPath(path))
	}
	return s, nil
}

func stringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
