package mapping

import (
	"fmt"
	"strconv"
	"strings"
)

// groupStep is one "Name" or "Name:N" segment of a dotted source_group
// path.
type groupStep struct {
	Name string
	Rep  int // -1 if unpinned
}

// parseGroupPath splits a source_group path like "SG4.SG8:2.SG10" into
// its steps. An empty path yields no steps (root).
func parseGroupPath(path string) ([]groupStep, error) {
	if path == "" {
		return nil, nil
	}
	parts := strings.Split(path, ".")
	steps := make([]groupStep, 0, len(parts))
	for _, part := range parts {
		name := part
		rep := -1
		if idx := strings.IndexByte(part, ':'); idx >= 0 {
			name = part[:idx]
			n, err := strconv.Atoi(part[idx+1:])
			if err != nil {
				return nil, fmt.Errorf("mapping: invalid repetition pin in %q: %w", path, err)
			}
			rep = n
		}
		if name == "" {
			return nil, fmt.Errorf("mapping: empty group name in path %q", path)
		}
		steps = append(steps, groupStep{Name: name, Rep: rep})
	}
	return steps, nil
}
