package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/edifix/edifix/assemble"
	"github.com/edifix/edifix/edifact"
	"github.com/edifix/edifix/schema"
)

// Engine maps between an assembled segment tree and BO4E JSON documents
// via a set of loaded mapping definitions. An Engine is immutable after
// construction and safe to share across goroutines mapping independent
// messages, so long as each caller holds its own *assemble.Tree.
type Engine struct{}

// NewEngine builds a mapping Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// MapAll runs every definition against tree and aggregates the results
// by entity name, per spec §4.3 "Multi-entity aggregation": definitions
// sharing an entity name deep-merge, existing value winning on
// conflict. resolver is accepted for parity with the schema-aware
// callers (CLI, validator) that also need PID-level lookups alongside
// mapping; MapAll itself only needs the tree's own group structure.
func (e *Engine) MapAll(tree *assemble.Tree, defs []*Definition, resolver *schema.Resolver) (BO4E, error) {
	result := BO4E{}
	for _, def := range defs {
		value, err := e.MapDefinition(tree, def)
		if err != nil {
			return nil, fmt.Errorf("mapping: entity %q: %w", def.Meta.Entity, err)
		}
		if value == nil {
			continue
		}
		entity := def.Meta.Entity
		existing, ok := result[entity]
		if !ok {
			result[entity] = value
			continue
		}
		result[entity] = mergeEntityValue(existing, value)
	}
	return result, nil
}

// MapDefinition maps one definition against tree, per spec §4.3 steps
// 1-4 plus the "Multi-entity aggregation" selection rules (single
// object vs array of objects). It returns nil if the definition's
// source group has no matching repetition — a tolerant no-op, not an
// error, matching the mapping engine's overall leniency.
func (e *Engine) MapDefinition(tree *assemble.Tree, def *Definition) (any, error) {
	group, isRoot, leafPin, err := resolveGroupInstance(tree, def.Meta.SourceGroup)
	if err != nil {
		return nil, err
	}

	if isRoot {
		segments := rootSegments(tree)
		return e.mapOne(def, segments)
	}

	disc, err := parseDiscriminator(def.Meta.Discriminator)
	if err != nil {
		return nil, err
	}
	if disc != nil {
		rep, ok := group.Select(0, disc)
		if !ok {
			return nil, nil
		}
		obj, err := e.mapOne(def, instanceSegments(rep))
		return obj, err
	}

	if leafPin >= 0 {
		rep, ok := group.Select(leafPin, nil)
		if !ok {
			return nil, nil
		}
		return e.mapOne(def, instanceSegments(rep))
	}

	switch len(group.Repetitions) {
	case 0:
		return nil, nil
	case 1:
		return e.mapOne(def, instanceSegments(group.Repetitions[0]))
	default:
		arr := make([]BO4E, 0, len(group.Repetitions))
		for _, rep := range group.Repetitions {
			obj, err := e.mapOne(def, instanceSegments(rep))
			if err != nil {
				return nil, err
			}
			arr = append(arr, obj)
		}
		return arr, nil
	}
}

// mapOne builds one BO4E object from def's fields and companion_fields
// applied against segments (spec §4.3 steps 3-4 plus metadata
// injection).
func (e *Engine) mapOne(def *Definition, segments []edifact.Segment) (BO4E, error) {
	obj := BO4E{}
	if err := applyFieldRules(obj, def.Fields, segments); err != nil {
		return nil, err
	}

	if len(def.CompanionFields) > 0 {
		companionKey := def.Meta.CompanionType
		if companionKey == "" {
			companionKey = "_companion"
		}
		companion := BO4E{}
		if err := applyFieldRules(companion, def.CompanionFields, segments); err != nil {
			return nil, err
		}
		if len(companion) > 0 {
			obj[companionKey] = companion
		}
	}

	injectMetadata(obj, def.Meta.BO4EType)
	return obj, nil
}

func applyFieldRules(obj BO4E, fields map[string]FieldRule, segments []edifact.Segment) error {
	for pathStr, rule := range fields {
		p, err := edifact.ParsePath(pathStr)
		if err != nil {
			return fmt.Errorf("field path %q: %w", pathStr, err)
		}
		seg, ok := findSegment(segments, p)
		if !ok {
			continue
		}
		elIdx, compIdx := p.Resolve()
		value, ok := seg.Get(elIdx, compIdx)
		if !ok || value == "" {
			continue
		}
		if rule.EnumMap != nil {
			if mapped, ok := rule.EnumMap[value]; ok {
				value = mapped
			}
		}
		target := rule.Target
		if target == "" {
			target = pathStr
		}
		setPath(obj, target, value)
	}
	return nil
}

func findSegment(segments []edifact.Segment, p *edifact.Path) (edifact.Segment, bool) {
	for _, seg := range segments {
		if seg.Tag != p.Tag {
			continue
		}
		if p.HasQualifier {
			q, ok := seg.Qualifier()
			if !ok || q != p.Qualifier {
				continue
			}
		}
		return seg, true
	}
	return edifact.Segment{}, false
}

func rootSegments(tree *assemble.Tree) []edifact.Segment {
	segs := make([]edifact.Segment, 0, len(tree.PreGroup)+len(tree.PostGroup))
	segs = append(segs, tree.PreGroup...)
	segs = append(segs, tree.PostGroup...)
	return segs
}

func instanceSegments(rep *assemble.Repetition) []edifact.Segment {
	segs := make([]edifact.Segment, 0, len(rep.Segments)+1)
	segs = append(segs, rep.Entry)
	segs = append(segs, rep.Segments...)
	return segs
}

// resolveGroupInstance walks tree from root along path's dotted group
// steps, per spec §4.3 step 1: intermediate steps select a repetition
// (explicit ":N" pin, else 0); the final step's group instance is
// returned unresolved so the caller can apply discriminator or
// multi-repetition logic. isRoot is true for an empty path.
func resolveGroupInstance(tree *assemble.Tree, path string) (group *assemble.GroupInstance, isRoot bool, leafPin int, err error) {
	steps, err := parseGroupPath(path)
	if err != nil {
		return nil, false, -1, err
	}
	if len(steps) == 0 {
		return nil, true, -1, nil
	}

	var rep *assemble.Repetition
	for i, step := range steps {
		var g *assemble.GroupInstance
		if i == 0 {
			g = tree.Group(step.Name)
		} else if rep != nil {
			g = rep.Child(step.Name)
		}
		if g == nil {
			return nil, false, -1, fmt.Errorf("mapping: group %q not found while resolving %q", step.Name, path)
		}
		if i == len(steps)-1 {
			return g, false, step.Rep, nil
		}

		idx := step.Rep
		if idx < 0 {
			idx = 0
		}
		selected, ok := g.Select(idx, nil)
		if !ok {
			return nil, false, -1, fmt.Errorf("mapping: no repetition %d for group %q in path %q", idx, step.Name, path)
		}
		rep = selected
	}
	return nil, false, -1, fmt.Errorf("mapping: empty resolved path %q", path)
}

// parseDiscriminator parses a "TAG.element_idx.component_idx=value"
// discriminator string, per spec §6 meta.discriminator.
func parseDiscriminator(s string) (*assemble.Discriminator, error) {
	if s == "" {
		return nil, nil
	}
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return nil, fmt.Errorf("mapping: malformed discriminator %q", s)
	}
	left, expected := s[:eq], s[eq+1:]
	parts := strings.Split(left, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("mapping: malformed discriminator %q", s)
	}
	elIdx, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("mapping: invalid element index in discriminator %q: %w", s, err)
	}
	compIdx, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, fmt.Errorf("mapping: invalid component index in discriminator %q: %w", s, err)
	}
	return &assemble.Discriminator{Tag: parts[0], ElementIdx: elIdx, ComponentIdx: compIdx, Expected: expected}, nil
}

// mergeEntityValue combines a newly mapped entity value into an
// existing one for the same entity name, existing winning on conflict.
func mergeEntityValue(existing, incoming any) any {
	if ev, ok := existing.(BO4E); ok {
		if iv, ok := incoming.(BO4E); ok {
			deepMerge(ev, iv)
		}
		return ev
	}
	return existing
}
