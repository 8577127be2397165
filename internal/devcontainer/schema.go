package devcontainer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mrz1836/repro/internal/errors"
)

const schemaURL = "https://repro.schemas.local/devcontainer.schema.json"

// descriptorSchema types only the keys repro reads to build an image.
// Everything else, including name, is left to the dev container tooling.
const descriptorSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "$defs": {
    "command": {
      "oneOf": [
        {"type": "string"},
        {"type": "array", "items": {"type": "string"}}
      ]
    }
  },
  "properties": {
    "image": {"type": "string"},
    "build": {
      "type": "object",
      "properties": {
        "dockerfile": {"type": "string"},
        "context": {"type": "string"}
      }
    },
    "postCreateCommand": {
      "oneOf": [
        {"$ref": "#/$defs/command"},
        {"type": "object", "additionalProperties": {"$ref": "#/$defs/command"}}
      ]
    }
  }
}`

//nolint:gochecknoglobals // compiled once on first use
var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	errCompile     error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(descriptorSchema)); err != nil {
			errCompile = fmt.Errorf("descriptor schema load failed: %w", err)
			return
		}
		compiledSchema, errCompile = c.Compile(schemaURL)
	})
	return compiledSchema, errCompile
}

// Validate checks a decoded JSON document against the descriptor schema.
// The document must come from encoding/json (maps, slices, float64, string, bool).
func Validate(doc any) error {
	s, err := schema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrDescriptorInvalid, err)
	}
	return nil
}
