package mapping

import (
	"fmt"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
	"github.com/edifix/edifix/schema"
)

// writeCommand is one resolved instruction to place a value at a
// specific segment/element/component coordinate, per spec §4.4 step 1.
type writeCommand struct {
	segKey       string // e.g. "NAD" or "DTM[92]" — distinguishes qualified repeats of the same tag
	segTag       string
	qualifier    string
	hasQualifier bool
	elementIdx   int
	componentIdx int
	value        string
}

// MapReverse expands def's field rules against a BO4E document into one
// assembled group instance, per spec §4.4. The returned GroupInstance
// holds one Repetition (none when no rule produced a segment) and leaves
// Children empty — composing a
// full tree out of several reverse-mapped entities, in MIG counter
// order, is the caller's job (spec §4.4 "composing a full tree is the
// caller's job").
func (e *Engine) MapReverse(bo4e BO4E, def *Definition, structure *schema.SegmentStructure) (*assemble.GroupInstance, error) {
	var commands []writeCommand

	fieldCmds, err := expandFieldRules(bo4e, def.Fields)
	if err != nil {
		return nil, fmt.Errorf("mapping: reverse fields: %w", err)
	}
	commands = append(commands, fieldCmds...)

	if len(def.CompanionFields) > 0 {
		companionKey := def.Meta.CompanionType
		if companionKey == "" {
			companionKey = "_companion"
		}
		if companionObj, ok := getPath(bo4e, companionKey); ok {
			if companion, ok := companionObj.(BO4E); ok {
				companionCmds, err := expandFieldRules(companion, def.CompanionFields)
				if err != nil {
					return nil, fmt.Errorf("mapping: reverse companion_fields: %w", err)
				}
				commands = append(commands, companionCmds...)
			}
		}
	}

	commands = append(commands, implicitQualifierWrites(commands)...)

	segments := materializeSegments(commands, structure)
	if len(segments) == 0 {
		return &assemble.GroupInstance{Name: def.Meta.Entity}, nil
	}

	return &assemble.GroupInstance{
		Name: def.Meta.Entity,
		Repetitions: []*assemble.Repetition{{
			Entry:    segments[0],
			Segments: segments[1:],
		}},
	}, nil
}

// expandFieldRules turns a {path -> rule} map into write commands
// against source, skipping rules whose source value is absent and has
// no default (spec §4.4 step 1).
func expandFieldRules(source BO4E, fields map[string]FieldRule) ([]writeCommand, error) {
	var cmds []writeCommand
	for pathStr, rule := range fields {
		p, err := edifact.ParsePath(pathStr)
		if err != nil {
			return nil, fmt.Errorf("field path %q: %w", pathStr, err)
		}

		target := rule.Target
		if target == "" {
			target = pathStr
		}

		value, ok := stringValue(source, target)
		if !ok {
			if rule.Default == "" {
				continue
			}
			value = rule.Default
		}

		if rule.EnumMap != nil {
			value = reverseEnumMap(rule.EnumMap, value)
		}

		elIdx, compIdx := p.Resolve()
		cmds = append(cmds, writeCommand{
			segKey:       segKeyFor(p),
			segTag:       p.Tag,
			qualifier:    p.Qualifier,
			hasQualifier: p.HasQualifier,
			elementIdx:   elIdx,
			componentIdx: compIdx,
			value:        value,
		})
	}
	return cmds, nil
}

func stringValue(obj BO4E, target string) (string, bool) {
	v, ok := getPath(obj, target)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// reverseEnumMap looks up the EDIFACT key whose forward enum_map value
// equals bo4eValue, returning bo4eValue unchanged if none matches.
func reverseEnumMap(enumMap map[string]string, bo4eValue string) string {
	for edi, bo4e := range enumMap {
		if bo4e == bo4eValue {
			return edi
		}
	}
	return bo4eValue
}

func segKeyFor(p *edifact.Path) string {
	if p.HasQualifier {
		return p.Tag + "[" + p.Qualifier + "]"
	}
	return p.Tag
}

// implicitQualifierWrites injects an implicit (0,0)=qualifier write for
// every distinct qualified seg_key not already carrying an explicit
// write at (0,0), per spec §4.4 step 1 "for every qualifier not already
// represented, inject an implicit write".
func implicitQualifierWrites(commands []writeCommand) []writeCommand {
	type key struct {
		segKey, segTag, qualifier string
	}
	seenZero := make(map[string]bool)
	var qualified []key
	seenQualified := make(map[string]bool)

	for _, c := range commands {
		if c.elementIdx == 0 && c.componentIdx == 0 {
			seenZero[c.segKey] = true
		}
		if c.hasQualifier && !seenQualified[c.segKey] {
			seenQualified[c.segKey] = true
			qualified = append(qualified, key{c.segKey, c.segTag, c.qualifier})
		}
	}

	var implicit []writeCommand
	for _, k := range qualified {
		if seenZero[k.segKey] {
			continue
		}
		implicit = append(implicit, writeCommand{
			segKey: k.segKey, segTag: k.segTag, qualifier: k.qualifier, hasQualifier: true,
			elementIdx: 0, componentIdx: 0, value: k.qualifier,
		})
	}
	return implicit
}

// materializeSegments groups commands by seg_key in first-seen order,
// allocates each segment's element/component vectors, pads
// intermediate empty elements, and (if structure is non-nil) extends
// every segment to its MIG-declared element count, per spec §4.4
// steps 3-5.
func materializeSegments(commands []writeCommand, structure *schema.SegmentStructure) []edifact.Segment {
	var order []string
	grouped := make(map[string][]writeCommand)
	tags := make(map[string]string)

	for _, c := range commands {
		if _, ok := grouped[c.segKey]; !ok {
			order = append(order, c.segKey)
			tags[c.segKey] = c.segTag
		}
		grouped[c.segKey] = append(grouped[c.segKey], c)
	}

	segments := make([]edifact.Segment, 0, len(order))
	for _, segKey := range order {
		segments = append(segments, buildSegment(tags[segKey], grouped[segKey], structure))
	}
	return segments
}

func buildSegment(tag string, cmds []writeCommand, structure *schema.SegmentStructure) edifact.Segment {
	var elements [][]string
	lastIdx := -1

	for _, c := range cmds {
		for len(elements) <= c.elementIdx {
			elements = append(elements, nil)
		}
		for len(elements[c.elementIdx]) <= c.componentIdx {
			elements[c.elementIdx] = append(elements[c.elementIdx], "")
		}
		elements[c.elementIdx][c.componentIdx] = c.value
		if c.elementIdx > lastIdx {
			lastIdx = c.elementIdx
		}
	}

	for i := 0; i < lastIdx; i++ {
		if len(elements[i]) == 0 {
			elements[i] = []string{""}
		}
	}

	seg := edifact.Segment{Tag: tag, Elements: elements}
	if n, ok := structure.ElementCount(tag); ok {
		seg = seg.Pad(n)
	}
	return seg
}
