// Package devcontainer reads and writes dev container configuration files
// (devcontainer.json), the container build descriptor repro uses to describe
// an experiment's execution environment.
package devcontainer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mrz1836/repro/internal/errors"
)

// BuildSpec is the "build" section of a descriptor.
type BuildSpec struct {
	Dockerfile string `json:"dockerfile,omitempty"`
	Context    string `json:"context,omitempty"`
}

// Descriptor is the subset of a dev container configuration repro understands.
type Descriptor struct {
	Name              Label      `json:"name,omitempty"`
	Image             string     `json:"image,omitempty"`
	Build             *BuildSpec `json:"build,omitempty"`
	PostCreateCommand Command    `json:"postCreateCommand,omitzero"`

	// Path is the file the descriptor was loaded from. Empty for
	// descriptors built in memory.
	Path string `json:"-"`
}

// Dockerfile returns the build.dockerfile value, or "" when none is set.
func (d *Descriptor) Dockerfile() string {
	if d.Build == nil {
		return ""
	}
	return d.Build.Dockerfile
}

// DockerfilePath resolves build.dockerfile against the descriptor's directory.
func (d *Descriptor) DockerfilePath() string {
	if d.Dockerfile() == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(d.Path), d.Dockerfile())
}

// ContextDir resolves build.context against the descriptor's directory.
// The context defaults to the directory holding the descriptor.
func (d *Descriptor) ContextDir() string {
	ctxDir := "."
	if d.Build != nil && d.Build.Context != "" {
		ctxDir = d.Build.Context
	}
	return filepath.Join(filepath.Dir(d.Path), ctxDir)
}

// DisplayName returns the configured name or "unnamed".
func (d *Descriptor) DisplayName() string {
	if d.Name == "" {
		return "unnamed"
	}
	return string(d.Name)
}

// Label is a free-form display value. Strings decode as-is; any other JSON
// scalar or structure keeps its compact JSON text.
type Label string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Label(s)
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return err
		}
		*l = Label(compact.String())
	}
	return nil
}

// Command is a lifecycle command. The JSON form is a single string run
// through a shell, an array of strings run without one, or an object of
// named commands that run in parallel.
type Command struct {
	Line     string
	Args     []string
	Parallel map[string]Command
}

// ShellCommand returns a Command run through a shell.
func ShellCommand(line string) Command {
	return Command{Line: line}
}

// IsZero reports whether no command is set.
func (c Command) IsZero() bool {
	return c.Line == "" && len(c.Args) == 0 && len(c.Parallel) == 0
}

// IsExec reports whether the command is in array form.
func (c Command) IsExec() bool {
	return len(c.Args) > 0
}

// IsParallel reports whether the command is in object form.
func (c Command) IsParallel() bool {
	return len(c.Parallel) > 0
}

// Names returns the parallel command names in sorted order.
func (c Command) Names() []string {
	names := make([]string, 0, len(c.Parallel))
	for name := range c.Parallel {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// String renders the command for display. Parallel commands render as
// "name: command" pairs in name order.
func (c Command) String() string {
	switch {
	case c.IsParallel():
		parts := make([]string, 0, len(c.Parallel))
		for _, name := range c.Names() {
			parts = append(parts, name+": "+c.Parallel[name].String())
		}
		return strings.Join(parts, "; ")
	case c.IsExec():
		return strings.Join(c.Args, " ")
	default:
		return c.Line
	}
}

// ShellLine renders the command as a single shell line. Parallel commands
// run one after another in name order.
func (c Command) ShellLine() string {
	if !c.IsParallel() {
		return c.String()
	}
	parts := make([]string, 0, len(c.Parallel))
	for _, name := range c.Names() {
		parts = append(parts, c.Parallel[name].ShellLine())
	}
	return strings.Join(parts, " && ")
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	switch {
	case c.IsParallel():
		return json.Marshal(c.Parallel)
	case c.IsExec():
		return json.Marshal(c.Args)
	default:
		return json.Marshal(c.Line)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Command{}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var named map[string]Command
		if err := json.Unmarshal(data, &named); err != nil {
			return err
		}
		*c = Command{Parallel: named}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var args []string
		if err := json.Unmarshal(data, &args); err != nil {
			return err
		}
		*c = Command{Args: args}
		return nil
	}
	var line string
	if err := json.Unmarshal(data, &line); err != nil {
		return err
	}
	*c = Command{Line: line}
	return nil
}

// Parse decodes a descriptor written in the relaxed dialect and validates
// it against the descriptor schema.
func Parse(data []byte) (*Descriptor, error) {
	clean, err := Standardize(data)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(clean, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDescriptorInvalid, err)
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	var d Descriptor
	if err := json.Unmarshal(clean, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDescriptorInvalid, err)
	}
	return &d, nil
}

// Load reads and parses the descriptor at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from discovery or the user
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	d.Path = path
	return d, nil
}

// Marshal encodes the descriptor as indented JSON with a trailing newline.
// Field order is fixed, so equal descriptors encode to identical bytes.
func Marshal(d *Descriptor) ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode descriptor")
	}
	return append(data, '\n'), nil
}
