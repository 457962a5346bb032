package condition

import (
	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
)

// ExternalConditionProvider supplies the verdict for conditions that
// depend on data the message itself cannot answer — counterparty role,
// timeline facts — per spec §4.6 "an external_provider consulted for
// conditions that depend on data the message cannot answer."
type ExternalConditionProvider interface {
	Evaluate(conditionNumber int, ctx Context) Tri
}

// Context exposes what a primitive condition function needs to query
// about the message under evaluation, per spec §4.6.
type Context interface {
	// HasSegment reports whether the tree contains any segment with tag.
	HasSegment(tag string) bool
	// FindSegments returns every segment in the tree with tag, including
	// group entry segments, in tree order.
	FindSegments(tag string) []edifact.Segment
	// Tree returns the underlying assembled tree for queries the
	// Context interface doesn't name directly (e.g. "is there a DTM+Z92
	// in the same SG8 instance as this IDE?").
	Tree() *assemble.Tree
	// External returns the caller-supplied external condition provider,
	// or nil if none was attached.
	External() ExternalConditionProvider
}

// treeContext is the default Context implementation, backed directly by
// an assembled tree.
type treeContext struct {
	tree     *assemble.Tree
	external ExternalConditionProvider
}

// NewContext builds a Context over tree. external may be nil if no
// condition in play needs it.
func NewContext(tree *assemble.Tree, external ExternalConditionProvider) Context {
	return &treeContext{tree: tree, external: external}
}

func (c *treeContext) Tree() *assemble.Tree                      { return c.tree }
func (c *treeContext) External() ExternalConditionProvider       { return c.external }
func (c *treeContext) HasSegment(tag string) bool                { return len(c.FindSegments(tag)) > 0 }

func (c *treeContext) FindSegments(tag string) []edifact.Segment {
	if c.tree == nil {
		return nil
	}
	var out []edifact.Segment
	out = append(out, filterTag(c.tree.PreGroup, tag)...)
	for _, g := range c.tree.Groups {
		out = append(out, findInGroup(g, tag)...)
	}
	out = append(out, filterTag(c.tree.PostGroup, tag)...)
	return out
}

func filterTag(segs []edifact.Segment, tag string) []edifact.Segment {
	var out []edifact.Segment
	for _, s := range segs {
		if s.Tag == tag {
			out = append(out, s)
		}
	}
	return out
}

func findInGroup(g *assemble.GroupInstance, tag string) []edifact.Segment {
	var out []edifact.Segment
	for _, rep := range g.Repetitions {
		if rep.Entry.Tag == tag {
			out = append(out, rep.Entry)
		}
		out = append(out, filterTag(rep.Segments, tag)...)
		for _, child := range rep.Children {
			out = append(out, findInGroup(child, tag)...)
		}
	}
	return out
}
