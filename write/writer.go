package write

import (
	"bytes"
	"math"
	"sort"
	"strconv"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
	"github.com/edifix/edifix/internal/escape"
)

// indices of the control-reference component within the segments that
// carry one, per the UN/EDIFACT syntax annex layout (not this package's
// own struct field order).
const (
	unbControlRefElement = 4
	unhMessageRefElement = 0
)

// Writer renders an assembled tree to byte-exact EDIFACT.
type Writer interface {
	// Write emits tree using delims, escaping release characters,
	// recomputing the UNT/UNZ trailer counts, and — given grammar —
	// reordering each repetition's direct member segments and child
	// groups into MIG counter order, per spec §4.5 step 5.
	Write(tree *assemble.Tree, grammar assemble.Grammar, delims *edifact.Delimiters) ([]byte, error)
}

type writer struct {
	config writerConfig
}

// New creates a Writer with the given options.
func New(opts ...Option) Writer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &writer{config: cfg}
}

func (w *writer) Write(tree *assemble.Tree, grammar assemble.Grammar, delims *edifact.Delimiters) ([]byte, error) {
	if tree == nil {
		return nil, &Error{Message: "cannot write a nil tree"}
	}
	if delims == nil {
		delims = edifact.DefaultDelimiters()
	}

	body := make([]edifact.Segment, 0, len(tree.PreGroup))
	body = append(body, tree.PreGroup...)
	for _, g := range orderedChildren(assemble.GroupDef{SubGroups: grammar.TopLevel}, tree.Groups) {
		body = append(body, flattenGroup(g, grammar)...)
	}
	w.ensureControlReferences(body)

	unhIdx := indexOfTag(body, "UNH")
	if unhIdx < 0 {
		return nil, &Error{Message: "tree has no UNH segment; cannot compute message segment count"}
	}

	post := make([]edifact.Segment, len(tree.PostGroup))
	copy(post, tree.PostGroup)

	if untIdx := indexOfTag(post, "UNT"); untIdx >= 0 {
		count := (len(body) - unhIdx) + untIdx + 1
		post[untIdx] = patchFirstComponent(post[untIdx], count)
	}
	if unzIdx := indexOfTag(post, "UNZ"); unzIdx >= 0 {
		post[unzIdx] = patchFirstComponent(post[unzIdx], 1)
	}

	esc := escape.New(delims)
	var buf bytes.Buffer
	if !delims.IsDefault() {
		buf.WriteString(delims.String())
	}
	for _, seg := range body {
		w.renderSegment(&buf, seg, delims, esc)
	}
	for _, seg := range post {
		w.renderSegment(&buf, seg, delims, esc)
	}
	return buf.Bytes(), nil
}

// renderSegment writes one segment's wire form: tag, elements separated
// by the element delimiter, components within an element separated by
// the component delimiter, every component, element, release or
// terminator character occurring inside a value escaped by the release
// character (the decimal mark is left as is), terminated by the segment
// terminator. Segments captured verbatim (Raw != "") bypass all of this
// and are emitted byte-for-byte, per spec §4.5's "raw" fast path.
func (w *writer) renderSegment(buf *bytes.Buffer, seg edifact.Segment, delims *edifact.Delimiters, esc *escape.Escaper) {
	if seg.Raw != "" {
		buf.WriteString(seg.Raw)
		buf.WriteRune(delims.Terminator)
		return
	}

	elements := seg.Elements
	if n, ok := w.config.structure.ElementCount(seg.Tag); ok {
		elements = seg.Pad(n).Elements
	} else {
		elements = trimTrailingEmptyElements(elements)
	}

	buf.WriteString(seg.Tag)
	for _, elem := range elements {
		buf.WriteRune(delims.Element)
		for ci, comp := range elem {
			if ci > 0 {
				buf.WriteRune(delims.Component)
			}
			buf.WriteString(esc.Escape(comp))
		}
	}
	buf.WriteRune(delims.Terminator)
}

// ensureControlReferences fills the UNB interchange control reference
// and UNH message reference number from config.controlRef when the
// segment doesn't already carry one, per spec §4.5's note that the
// writer "generates the interchange control reference... when the
// caller does not supply one explicitly."
func (w *writer) ensureControlReferences(body []edifact.Segment) {
	for i, seg := range body {
		switch seg.Tag {
		case "UNB":
			if v, ok := seg.Get(unbControlRefElement, 0); !ok || v == "" {
				body[i] = setComponent(seg, unbControlRefElement, 0, w.config.controlRef())
			}
		case "UNH":
			if v, ok := seg.Get(unhMessageRefElement, 0); !ok || v == "" {
				body[i] = setComponent(seg, unhMessageRefElement, 0, w.config.controlRef())
			}
		}
	}
}

// flattenGroup renders every repetition of g in insertion order, but
// within each repetition orders the direct member segments by MIG
// counter and visits child groups in the group definition's declared
// sub-group order, per spec §4.5 step 5 ("inside a repetition, segments
// are emitted in MIG counter order, then child groups in MIG order").
func flattenGroup(g *assemble.GroupInstance, grammar assemble.Grammar) []edifact.Segment {
	def, _ := grammar.Group(g.Name)
	var out []edifact.Segment
	for _, rep := range g.Repetitions {
		out = append(out, rep.Entry)
		out = append(out, sortMembers(def, rep.Segments)...)
		for _, child := range orderedChildren(def, rep.Children) {
			out = append(out, flattenGroup(child, grammar)...)
		}
	}
	return out
}

// sortMembers returns rep's direct member segments sorted by the MIG
// counter CounterFor resolves for each segment's (tag, qualifier) pair.
// Segments tying on counter (or carrying no declared counter at all, a
// state the assembler should never have produced) keep their relative
// order.
func sortMembers(def assemble.GroupDef, segs []edifact.Segment) []edifact.Segment {
	out := append([]edifact.Segment(nil), segs...)
	sort.SliceStable(out, func(i, j int) bool {
		return memberCounter(def, out[i]) < memberCounter(def, out[j])
	})
	return out
}

func memberCounter(def assemble.GroupDef, seg edifact.Segment) int {
	qualifier, _ := seg.Qualifier()
	if counter, ok := def.CounterFor(seg.Tag, qualifier); ok {
		return counter
	}
	return math.MaxInt
}

// orderedChildren returns children reordered to match def.SubGroups'
// MIG-declared sequence; any child whose name isn't declared there (not
// expected from the assembler) is appended afterward in its original
// position.
func orderedChildren(def assemble.GroupDef, children []*assemble.GroupInstance) []*assemble.GroupInstance {
	out := make([]*assemble.GroupInstance, 0, len(children))
	placed := make(map[string]bool, len(children))
	for _, name := range def.SubGroups {
		for _, c := range children {
			if c.Name == name {
				out = append(out, c)
				placed[name] = true
				break
			}
		}
	}
	for _, c := range children {
		if !placed[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

func indexOfTag(segs []edifact.Segment, tag string) int {
	for i, s := range segs {
		if s.Tag == tag {
			return i
		}
	}
	return -1
}

// patchFirstComponent returns a copy of seg with its first element's
// first component replaced by count, growing the element if it was
// absent — used for the UNT/UNZ trailer counts the writer computes
// itself rather than trusts from the tokenized input.
func patchFirstComponent(seg edifact.Segment, count int) edifact.Segment {
	return setComponent(seg, 0, 0, strconv.Itoa(count))
}

// setComponent returns a copy of seg with elements[elementIdx][componentIdx]
// replaced by value, growing the element/component vectors as needed.
func setComponent(seg edifact.Segment, elementIdx, componentIdx int, value string) edifact.Segment {
	elements := make([][]string, len(seg.Elements))
	copy(elements, seg.Elements)
	for len(elements) <= elementIdx {
		elements = append(elements, nil)
	}
	comps := append([]string(nil), elements[elementIdx]...)
	for len(comps) <= componentIdx {
		comps = append(comps, "")
	}
	comps[componentIdx] = value
	elements[elementIdx] = comps
	seg.Elements = elements
	return seg
}

func trimTrailingEmptyElements(elements [][]string) [][]string {
	end := len(elements)
	for end > 0 && isEmptyElement(elements[end-1]) {
		end--
	}
	return elements[:end]
}

func isEmptyElement(elem []string) bool {
	for _, c := range elem {
		if c != "" {
			return false
		}
	}
	return true
}
