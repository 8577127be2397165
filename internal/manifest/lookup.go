package manifest

import (
	"fmt"
	"strings"

	"github.com/mrz1836/repro/internal/errors"
)

// Lookup walks path through nested mappings and returns the value found.
//
// It fails with a *errors.LookupError:
//   - LookupNotAMapping when a value before the end of the path is not a
//     mapping; the error names the sub-path consumed so far.
//   - LookupMissingKey when a key is absent; the error names the attempted
//     sub-path including that key.
//
// An empty path returns v itself.
func Lookup(v any, path ...string) (any, error) {
	out := v
	for i, key := range path {
		m, ok := asMapping(out)
		if !ok {
			return nil, &errors.LookupError{Kind: errors.LookupNotAMapping, Path: clonePath(path[:i])}
		}
		next, ok := m[key]
		if !ok {
			return nil, &errors.LookupError{Kind: errors.LookupMissingKey, Path: clonePath(path[:i+1])}
		}
		out = next
	}
	return out, nil
}

// asMapping normalizes the mapping types yaml.v3 can produce. Documents with
// non-string keys decode to map[any]any; their keys are compared by their
// printed form.
func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func clonePath(p []string) []string {
	return append([]string(nil), p...)
}

func joinPath(p []string) string {
	return strings.Join(p, errors.PathSeparator)
}
