package devcontainer

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"

	"github.com/mrz1836/repro/internal/errors"
)

// Standardize rewrites the relaxed JSON dialect used by dev container
// configuration files into plain JSON. Comments and trailing commas become
// whitespace, so line numbers in later decode errors still match the file.
// data is not modified.
func Standardize(data []byte) ([]byte, error) {
	out, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrDescriptorInvalid, err)
	}
	return out, nil
}
