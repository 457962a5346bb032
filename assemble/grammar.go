// Package assemble folds a flat EDIFACT segment stream into a tree of
// nested, repeated segment groups, following a MIG-derived grammar.
package assemble

// MemberDef names one segment tag that belongs directly to a group, along
// with its MIG counter — the number that totally orders segments within
// the group. Qualifier disambiguates a tag that recurs at more than one
// MIG position depending on its qualifier component (e.g. LOC+Z16 and
// LOC+Z17 occupy different counters within the same group); leave it
// empty for a tag with a single, qualifier-independent position.
type MemberDef struct {
	Tag       string
	Qualifier string
	Counter   int
}

// GroupDef describes one segment group: its entry segment (the tag that
// opens a new repetition), the segments that belong to it directly, and
// the names of the sub-groups nested inside it.
type GroupDef struct {
	Name      string
	EntryTag  string
	Members   []MemberDef
	SubGroups []string
}

// isMember reports whether tag is declared as a direct member of this
// group, under any qualifier.
func (g GroupDef) isMember(tag string) bool {
	for _, m := range g.Members {
		if m.Tag == tag {
			return true
		}
	}
	return false
}

// CounterFor returns the MIG counter that orders a segment with the given
// tag and qualifier (its first component, if it has one) within this
// group. A MemberDef whose Qualifier matches exactly wins over a
// qualifier-independent MemberDef declared for the same tag, so a
// repeated tag like LOC can carry a different counter per qualifier while
// a tag that never varies by qualifier still resolves via its one,
// qualifier-less entry.
func (g GroupDef) CounterFor(tag, qualifier string) (int, bool) {
	counter, ok := 0, false
	for _, m := range g.Members {
		if m.Tag != tag {
			continue
		}
		if m.Qualifier != "" && m.Qualifier == qualifier {
			return m.Counter, true
		}
		if m.Qualifier == "" {
			counter, ok = m.Counter, true
		}
	}
	return counter, ok
}

// Grammar is the full set of group definitions for one message type plus
// the tags permitted at the root level: envelope segments and whichever
// message-level segments (BGM, message DTMs, …) the MIG places outside
// any group.
type Grammar struct {
	// TopLevel lists the top-level group names in MIG-declared order.
	TopLevel []string
	// Groups maps a group name to its definition.
	Groups map[string]GroupDef
	// RootTags lists segment tags permitted directly at root level,
	// outside any group (e.g. "BGM", "DTM", "NAD").
	RootTags []string
}

// Group looks up a group definition by name.
func (g Grammar) Group(name string) (GroupDef, bool) {
	d, ok := g.Groups[name]
	return d, ok
}

// isRootTag reports whether tag is declared as a root-level segment.
func (g Grammar) isRootTag(tag string) bool {
	for _, t := range g.RootTags {
		if t == tag {
			return true
		}
	}
	return false
}

// openTopLevel finds which top-level group tag would open, if any.
func (g Grammar) openTopLevel(tag string) (string, bool) {
	for _, name := range g.TopLevel {
		def, ok := g.Groups[name]
		if ok && def.EntryTag == tag {
			return name, true
		}
	}
	return "", false
}

// openSubGroup finds which of parent's declared sub-groups tag would
// open, if any.
func (g Grammar) openSubGroup(parent GroupDef, tag string) (string, bool) {
	for _, name := range parent.SubGroups {
		def, ok := g.Groups[name]
		if ok && def.EntryTag == tag {
			return name, true
		}
	}
	return "", false
}

// EnvelopeTags are the UN/EDIFACT service segments, which are always root
// segments regardless of any group nesting in progress.
var EnvelopeTags = map[string]bool{
	"UNA": true,
	"UNB": true,
	"UNH": true,
	"UNT": true,
	"UNZ": true,
}
