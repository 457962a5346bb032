package schema

import "sort"

// Resolver provides lookup from a human field path to the segment
// group/tag coordinates that carry it, built from a set of loaded
// PIDSchemas.
type Resolver struct {
	schemas map[string]*PIDSchema // keyed by PID
}

// NewResolver builds a Resolver over the given schemas, keyed by their
// own PID.
func NewResolver(schemas ...*PIDSchema) *Resolver {
	r := &Resolver{schemas: make(map[string]*PIDSchema, len(schemas))}
	for _, s := range schemas {
		r.schemas[s.PID] = s
	}
	return r
}

// Schema returns the PIDSchema for pid, if loaded.
func (r *Resolver) Schema(pid string) (*PIDSchema, bool) {
	s, ok := r.schemas[pid]
	return s, ok
}

// Resolve finds the Field describing fieldName under the given PID.
func (r *Resolver) Resolve(pid, fieldName string) (*Field, bool) {
	s, ok := r.schemas[pid]
	if !ok {
		return nil, false
	}
	return s.Field(fieldName)
}

// FieldDiff describes one field path whose schema changed between two
// PIDSchema versions.
type FieldDiff struct {
	Name     string
	Kind     string // "added", "removed", "changed"
	OldGroup string
	NewGroup string
}

// Diff compares two PIDSchema versions (e.g. across format versions) and
// reports fields whose source_group moved, were added, or were removed.
// It is read-only analysis; it does not rewrite anything itself — that is
// migrate.Migrate's job, built on top of this.
func Diff(oldSchema, newSchema *PIDSchema) []FieldDiff {
	var diffs []FieldDiff
	oldFlat := flattenFields(oldSchema.Fields, "")
	newFlat := flattenFields(newSchema.Fields, "")

	for name, oldField := range oldFlat {
		newField, ok := newFlat[name]
		if !ok {
			diffs = append(diffs, FieldDiff{Name: name, Kind: "removed", OldGroup: oldField.SourceGroup})
			continue
		}
		if oldField.SourceGroup != newField.SourceGroup {
			diffs = append(diffs, FieldDiff{
				Name: name, Kind: "changed",
				OldGroup: oldField.SourceGroup, NewGroup: newField.SourceGroup,
			})
		}
	}
	for name, newField := range newFlat {
		if _, ok := oldFlat[name]; !ok {
			diffs = append(diffs, FieldDiff{Name: name, Kind: "added", NewGroup: newField.SourceGroup})
		}
	}

	sort.Slice(diffs, func(i, j int) bool { return diffs[i].Name < diffs[j].Name })
	return diffs
}

func flattenFields(fields map[string]*Field, prefix string) map[string]*Field {
	out := make(map[string]*Field)
	for name, f := range fields {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		out[key] = f
		for k, v := range flattenFields(f.Children, key) {
			out[k] = v
		}
	}
	return out
}
