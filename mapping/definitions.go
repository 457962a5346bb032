// Package mapping implements the declarative TOML rule engine that maps
// an assembled EDIFACT segment tree to a BO4E JSON document and back.
package mapping

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Meta is the `[meta]` table of a mapping definition file.
type Meta struct {
	Entity        string `toml:"entity"`
	BO4EType      string `toml:"bo4e_type"`
	CompanionType string `toml:"companion_type"`
	SourceGroup   string `toml:"source_group"`
	SourcePath    string `toml:"source_path"`
	Discriminator string `toml:"discriminator"`
}

// FieldRule is the structured form of a `[fields]`/`[companion_fields]`
// entry. A bare string entry is equivalent to a FieldRule with only
// Target set.
type FieldRule struct {
	Target    string
	Default   string
	EnumMap   map[string]string
	When      string
	Transform string
}

// ComplexHandler is a `[[complex_handlers]]` entry. Reserved for future
// use; the engine records them but does not act on them.
type ComplexHandler struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Definition is one decoded mapping TOML file.
type Definition struct {
	Meta            Meta
	Fields          map[string]FieldRule
	CompanionFields map[string]FieldRule
	ComplexHandlers []ComplexHandler

	// Path is the file the definition was loaded from, kept for
	// diagnostics (e.g. "which file produced this write command").
	Path string
}

// rawDefinition mirrors the TOML shape with field/companion_field values
// left undecoded, since each one is either a bare string or a table.
type rawDefinition struct {
	Meta            Meta                     `toml:"meta"`
	Fields          map[string]toml.Primitive `toml:"fields"`
	CompanionFields map[string]toml.Primitive `toml:"companion_fields"`
	ComplexHandlers []ComplexHandler          `toml:"complex_handlers"`
}

// rawFieldRule is the structured-table shape of a field entry.
type rawFieldRule struct {
	Target    string            `toml:"target"`
	Default   string            `toml:"default"`
	EnumMap   map[string]string `toml:"enum_map"`
	When      string            `toml:"when"`
	Transform string            `toml:"transform"`
}

// DecodeDefinition parses one mapping TOML document. A `[fields]` value
// that is a bare string becomes a FieldRule with only Target set; a
// table decodes into the full structured rule.
func DecodeDefinition(data []byte) (*Definition, error) {
	var raw rawDefinition
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("mapping: decoding definition: %w", err)
	}

	fields, err := decodeFieldMap(md, raw.Fields)
	if err != nil {
		return nil, fmt.Errorf("mapping: decoding fields: %w", err)
	}
	companions, err := decodeFieldMap(md, raw.CompanionFields)
	if err != nil {
		return nil, fmt.Errorf("mapping: decoding companion_fields: %w", err)
	}

	return &Definition{
		Meta:            raw.Meta,
		Fields:          fields,
		CompanionFields: companions,
		ComplexHandlers: raw.ComplexHandlers,
	}, nil
}

func decodeFieldMap(md toml.MetaData, primitives map[string]toml.Primitive) (map[string]FieldRule, error) {
	out := make(map[string]FieldRule, len(primitives))
	for path, prim := range primitives {
		rule, err := decodeFieldRule(md, prim)
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
		out[path] = rule
	}
	return out, nil
}

// decodeFieldRule resolves the string-or-table union for one field
// entry. It first tries a bare string; failing that, a structured
// table via rawFieldRule.
func decodeFieldRule(md toml.MetaData, prim toml.Primitive) (FieldRule, error) {
	var target string
	if err := md.PrimitiveDecode(prim, &target); err == nil {
		return FieldRule{Target: target}, nil
	}

	var raw rawFieldRule
	if err := md.PrimitiveDecode(prim, &raw); err != nil {
		return FieldRule{}, fmt.Errorf("neither a string nor a structured rule: %w", err)
	}
	return FieldRule{
		Target:    raw.Target,
		Default:   raw.Default,
		EnumMap:   raw.EnumMap,
		When:      raw.When,
		Transform: raw.Transform,
	}, nil
}
