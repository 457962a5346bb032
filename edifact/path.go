package edifact

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed field-path reference, as used on the left-hand side of a
// mapping rule: "tag[qualifier]?(.element_idx(.component_idx)?)?", plus the
// legacy "tag.c<id>.d<id>" convention where c/d give 1-based element and
// component positions.
type Path struct {
	Tag          string
	Qualifier    string // empty if unqualified
	HasQualifier bool
	ElementIdx   int // 0-based; -1 if unspecified (defaults to the segment's qualifier-bearing element)
	ComponentIdx int // 0-based; -1 if unspecified
}

// ParsePath parses a mapping-rule path string. It accepts both the
// bracket/dot form ("NAD[MS].1.2") and the legacy "c<id>.d<id>" element
// convention ("NAD.c2.d1"), normalizing both to 0-based ElementIdx /
// ComponentIdx.
func ParsePath(s string) (*Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("edifact: empty path")
	}

	p := &Path{ElementIdx: -1, ComponentIdx: -1}

	tag := s
	if br := strings.IndexByte(s, '['); br >= 0 {
		end := strings.IndexByte(s[br:], ']')
		if end < 0 {
			return nil, fmt.Errorf("edifact: unterminated qualifier in path %q", s)
		}
		end += br
		p.Qualifier = s[br+1 : end]
		p.HasQualifier = true
		tag = s[:br] + s[end+1:]
	}

	parts := strings.Split(tag, ".")
	p.Tag = parts[0]
	if p.Tag == "" {
		return nil, fmt.Errorf("edifact: path %q has no segment tag", s)
	}
	rest := parts[1:]

	if len(rest) == 0 {
		return p, nil
	}

	if strings.HasPrefix(rest[0], "c") {
		return parseLegacyPath(p, rest, s)
	}
	if strings.HasPrefix(rest[0], "d") {
		didx, err := strconv.Atoi(strings.TrimPrefix(rest[0], "d"))
		if err != nil {
			return nil, fmt.Errorf("edifact: invalid d<id> in path %q: %w", s, err)
		}
		p.ElementIdx = 0
		p.ComponentIdx = didx - 1
		return p, nil
	}

	idx, err := strconv.Atoi(rest[0])
	if err != nil {
		return nil, fmt.Errorf("edifact: invalid element index in path %q: %w", s, err)
	}
	p.ElementIdx = idx
	if len(rest) > 1 {
		cidx, err := strconv.Atoi(rest[1])
		if err != nil {
			return nil, fmt.Errorf("edifact: invalid component index in path %q: %w", s, err)
		}
		p.ComponentIdx = cidx
	}
	return p, nil
}

// parseLegacyPath handles the "tag.c<id>.d<id>" 1-based convention, where
// c gives the element position and d the component position within it.
func parseLegacyPath(p *Path, rest []string, orig string) (*Path, error) {
	if len(rest) == 0 || !strings.HasPrefix(rest[0], "c") {
		return nil, fmt.Errorf("edifact: malformed legacy path %q", orig)
	}
	cidx, err := strconv.Atoi(strings.TrimPrefix(rest[0], "c"))
	if err != nil {
		return nil, fmt.Errorf("edifact: invalid c<id> in path %q: %w", orig, err)
	}
	p.ElementIdx = cidx - 1

	if len(rest) > 1 {
		if !strings.HasPrefix(rest[1], "d") {
			return nil, fmt.Errorf("edifact: malformed legacy path %q", orig)
		}
		didx, err := strconv.Atoi(strings.TrimPrefix(rest[1], "d"))
		if err != nil {
			return nil, fmt.Errorf("edifact: invalid d<id> in path %q: %w", orig, err)
		}
		p.ComponentIdx = didx - 1
	}
	return p, nil
}

// Resolve returns the effective element and component index to use against
// a matched segment, substituting 0 for an unspecified element index (the
// qualifier-bearing element) and 0 for an unspecified component index.
func (p *Path) Resolve() (elementIdx, componentIdx int) {
	elementIdx, componentIdx = p.ElementIdx, p.ComponentIdx
	if elementIdx < 0 {
		elementIdx = 0
	}
	if componentIdx < 0 {
		componentIdx = 0
	}
	return elementIdx, componentIdx
}

// String renders the path back to its canonical bracket/dot form.
func (p *Path) String() string {
	var b strings.Builder
	b.WriteString(p.Tag)
	if p.HasQualifier {
		fmt.Fprintf(&b, "[%s]", p.Qualifier)
	}
	if p.ElementIdx >= 0 {
		fmt.Fprintf(&b, ".%d", p.ElementIdx)
		if p.ComponentIdx >= 0 {
			fmt.Fprintf(&b, ".%d", p.ComponentIdx)
		}
	}
	return b.String()
}
