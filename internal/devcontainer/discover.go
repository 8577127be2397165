package devcontainer

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/repro/internal/constants"
)

// Find returns the descriptor files under root, in the order dev container
// tooling looks for them:
//
//	.devcontainer/devcontainer.json
//	.devcontainer.json
//	.devcontainer/<folder>/devcontainer.json
//
// Only regular files are returned. The first element, if any, is the
// descriptor that should be used.
func Find(root string) []string {
	candidates := []string{
		filepath.Join(root, constants.DevContainerDir, constants.DevContainerFile),
		filepath.Join(root, constants.DevContainerRootFile),
	}

	// Glob only fails on a malformed pattern, and this one is fixed.
	nested, _ := filepath.Glob(filepath.Join(root, constants.DevContainerDir, "*", constants.DevContainerFile))
	candidates = append(candidates, nested...)

	found := make([]string, 0, len(candidates))
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		found = append(found, path)
	}
	return found
}
