package assemble

import "github.com/edifix/edifix/edifact"

// Assembler folds a flat segment list into a Tree according to a Grammar.
type Assembler interface {
	Assemble(segs []edifact.Segment, grammar Grammar) (*Tree, []Diagnostic, error)
}

type assembler struct{}

// New creates an Assembler. There is no configuration: the grammar is
// supplied per call since it varies by message type and format version.
func New() Assembler {
	return &assembler{}
}

// frame is one entry in the explicit open-group stack. It is never a
// pointer to a language-level recursive call frame: the grammar's
// cyclic/self-referencing group tables are walked with this stack instead
// of recursion, per the assembler's design (cyclic grammars are a
// name-indexed table, not a pointer graph).
type frame struct {
	name string
	def  GroupDef
	inst *GroupInstance
	rep  *Repetition
}

func (a *assembler) Assemble(segs []edifact.Segment, grammar Grammar) (*Tree, []Diagnostic, error) {
	tree := &Tree{}
	var stack []*frame
	var diags []Diagnostic
	started := false

	appendRoot := func(s edifact.Segment) {
		if started {
			tree.PostGroup = append(tree.PostGroup, s)
		} else {
			tree.PreGroup = append(tree.PreGroup, s)
		}
	}

	findOrCreate := func(list *[]*GroupInstance, name string) *GroupInstance {
		for _, g := range *list {
			if g.Name == name {
				return g
			}
		}
		g := &GroupInstance{Name: name}
		*list = append(*list, g)
		return g
	}

	openGroup := func(name string, def GroupDef, entry edifact.Segment) {
		rep := &Repetition{Entry: entry}
		var inst *GroupInstance
		if len(stack) == 0 {
			inst = findOrCreate(&tree.Groups, name)
		} else {
			top := stack[len(stack)-1]
			inst = findOrCreate(&top.rep.Children, name)
		}
		inst.Repetitions = append(inst.Repetitions, rep)
		stack = append(stack, &frame{name: name, def: def, inst: inst, rep: rep})
		started = true
	}

	for i, seg := range segs {
		tag := seg.Tag

		if EnvelopeTags[tag] {
			appendRoot(seg)
			continue
		}

		// 1. Does the tag open a group in the current context?
		if len(stack) == 0 {
			if name, ok := grammar.openTopLevel(tag); ok {
				openGroup(name, grammar.Groups[name], seg)
				continue
			}
		} else {
			top := stack[len(stack)-1]
			if name, ok := grammar.openSubGroup(top.def, tag); ok {
				openGroup(name, grammar.Groups[name], seg)
				continue
			}
			// 2. Is the tag a direct member of the current top group?
			if top.def.isMember(tag) {
				top.rep.Segments = append(top.rep.Segments, seg)
				continue
			}
		}

		// 3. Pop groups until one accepts the tag, either as a new
		// sub-group instance or as a direct member. stackWasOpen records
		// whether there was anything to pop in the first place, so step 4
		// below can tell a genuine group closure from an ordinary
		// pre-group (or post-group) root segment.
		stackWasOpen := len(stack) > 0
		placed := false
		for len(stack) > 0 {
			stack = stack[:len(stack)-1]

			if len(stack) == 0 {
				if name, ok := grammar.openTopLevel(tag); ok {
					openGroup(name, grammar.Groups[name], seg)
					placed = true
				}
				break
			}

			top := stack[len(stack)-1]
			if name, ok := grammar.openSubGroup(top.def, tag); ok {
				openGroup(name, grammar.Groups[name], seg)
				placed = true
				break
			}
			if top.def.isMember(tag) {
				top.rep.Segments = append(top.rep.Segments, seg)
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		// 4. Root tag, even after every group has closed?
		if grammar.isRootTag(tag) {
			appendRoot(seg)
			if stackWasOpen {
				diags = append(diags, Diagnostic{
					Kind:    DiagnosticTruncatedGroup,
					Tag:     tag,
					Index:   i,
					Message: "tag closed every open group and was placed at root",
				})
			}
			continue
		}

		return tree, diags, &AssemblerError{
			Kind:    UnexpectedSegment,
			Tag:     tag,
			Index:   i,
			Message: "segment does not belong to any open group, sub-group, or declared root tag",
		}
	}

	tree.PostGroupStart = len(tree.PreGroup)
	return tree, diags, nil
}
