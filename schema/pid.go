// Package schema consumes the code-generated per-PID schema descriptors
// and exposes lookups from human field paths to segment coordinates, and
// from segment tags to their MIG-declared element counts.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Discriminator names the segment/element a field's source group is
// picked by, and the set of values that select it.
type Discriminator struct {
	Segment string   `json:"segment"`
	Values  []string `json:"values"`
	Element string   `json:"element,omitempty"`
}

// Field describes one PID field's location in the segment tree.
type Field struct {
	SourceGroup   string            `json:"source_group"`
	Segments      []string          `json:"segments"`
	Discriminator *Discriminator    `json:"discriminator,omitempty"`
	Children      map[string]*Field `json:"children,omitempty"`
}

// PIDSchema is the generator's JSON contract for one process identifier:
// its pid, description and named fields, each with a source group,
// segment tags, an optional discriminator and nested child fields — all
// produced out-of-band by the MIG/AHB code generator, which this package
// only consumes. Element counts and allowed qualifiers are not part of it.
type PIDSchema struct {
	PID          string            `json:"pid"`
	Beschreibung string            `json:"beschreibung"`
	Fields       map[string]*Field `json:"fields"`
}

// DecodePIDSchema decodes one PID schema document. The contract is
// explicitly JSON (not TOML, unlike the mapping definitions), so the
// standard library decoder is used directly.
func DecodePIDSchema(data []byte) (*PIDSchema, error) {
	var s PIDSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: decoding PID schema: %w", err)
	}
	if s.PID == "" {
		return nil, fmt.Errorf("schema: PID schema missing \"pid\"")
	}
	return &s, nil
}

// Field looks up a (possibly nested, dot-separated) field name.
func (s *PIDSchema) Field(name string) (*Field, bool) {
	return lookupField(s.Fields, name)
}

func lookupField(fields map[string]*Field, name string) (*Field, bool) {
	f, ok := fields[name]
	if ok {
		return f, true
	}
	// dotted lookup: "transaktion.marktlokation" walks Children.
	if head, rest, dotted := strings.Cut(name, "."); dotted {
		if parent, ok := fields[head]; ok {
			if child, ok := lookupField(parent.Children, rest); ok {
				return child, true
			}
		}
	}
	// bare nested name: search the Children of every field.
	for fieldName, f := range fields {
		_ = fieldName
		if f.Children != nil {
			if child, ok := lookupField(f.Children, name); ok {
				return child, true
			}
		}
	}
	return nil, false
}
