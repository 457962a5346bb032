package assemble

import "github.com/edifix/edifix/edifact"

// Discriminator identifies which semantic sub-type a group instance
// represents, by checking one component of its entry segment against an
// expected value.
type Discriminator struct {
	Tag          string
	ElementIdx   int
	ComponentIdx int
	Expected     string
}

// Repetition is one occurrence of a segment group: its entry segment, the
// direct member segments that followed it (in the order they were
// encountered on the wire — a writer that needs MIG counter order
// resolves it itself via the Grammar that produced this tree), and any
// nested group instances.
type Repetition struct {
	Entry    edifact.Segment
	Segments []edifact.Segment
	Children []*GroupInstance
}

// MatchesDiscriminator reports whether this repetition's entry segment
// satisfies d.
func (r *Repetition) MatchesDiscriminator(d Discriminator) bool {
	if r.Entry.Tag != d.Tag {
		return false
	}
	v, ok := r.Entry.Get(d.ElementIdx, d.ComponentIdx)
	return ok && v == d.Expected
}

// Child returns the first child group instance with the given name, or
// nil if none exists.
func (r *Repetition) Child(name string) *GroupInstance {
	for _, c := range r.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// GroupInstance holds every repetition of one named group encountered at
// a given nesting level, in insertion order.
type GroupInstance struct {
	Name        string
	Repetitions []*Repetition
}

// Select returns the repetition at idx, the one matching d if d is
// non-nil, and reports false if neither can be satisfied.
func (g *GroupInstance) Select(idx int, d *Discriminator) (*Repetition, bool) {
	if d != nil {
		for _, rep := range g.Repetitions {
			if rep.MatchesDiscriminator(*d) {
				return rep, true
			}
		}
		return nil, false
	}
	if idx < 0 || idx >= len(g.Repetitions) {
		return nil, false
	}
	return g.Repetitions[idx], true
}

// Tree is the result of assembling a flat segment stream: root segments
// before and after the group region, plus the top-level groups and their
// repetitions.
type Tree struct {
	PreGroup       []edifact.Segment
	Groups         []*GroupInstance
	PostGroup      []edifact.Segment
	PostGroupStart int
}

// Group returns the top-level group instance with the given name, or nil.
func (t *Tree) Group(name string) *GroupInstance {
	for _, g := range t.Groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// AllSegments flattens the tree back into one ordered segment slice, in
// emission order: pre-group, then groups depth-first (entry then members
// then children), then post-group. Used by callers and tests that need a
// flat view without re-deriving emission order themselves.
func (t *Tree) AllSegments() []edifact.Segment {
	var out []edifact.Segment
	out = append(out, t.PreGroup...)
	for _, g := range t.Groups {
		out = append(out, flattenGroup(g)...)
	}
	out = append(out, t.PostGroup...)
	return out
}

func flattenGroup(g *GroupInstance) []edifact.Segment {
	var out []edifact.Segment
	for _, rep := range g.Repetitions {
		out = append(out, rep.Entry)
		out = append(out, rep.Segments...)
		for _, child := range rep.Children {
			out = append(out, flattenGroup(child)...)
		}
	}
	return out
}
