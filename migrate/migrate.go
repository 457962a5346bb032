package migrate

import (
	"fmt"

	"github.com/edifix/edifix/mapping"
	"github.com/edifix/edifix/schema"
)

// Change records one mapping.Definition whose source_group was rewritten
// to follow a field that moved between two schema versions.
type Change struct {
	Entity   string
	OldGroup string
	NewGroup string
}

// Report summarizes one migration pass.
type Report struct {
	// Rewritten lists every definition whose Meta.SourceGroup was
	// updated to match the new schema.
	Rewritten []Change
	// Removed lists field names present in the old schema but gone
	// from the new one, including "changed" fields with no matching
	// definition to rewrite (these need manual attention).
	Removed []string
	// Added lists field names new to the target schema, with no
	// existing definition at all.
	Added []string
}

// Migrate diffs oldSchema against newSchema and rewrites, in place,
// every definition in defs whose Meta.SourceGroup equals a field's old
// source_group to the field's new one. Definitions with no matching
// field are left untouched; schema fields with no matching definition
// are reported as Removed so the caller can flag them for manual
// review, per spec §1's description of cross-version migration as a
// recovered-but-narrowed slice of the external fixture/mapping
// migration tooling.
func Migrate(oldSchema, newSchema *schema.PIDSchema, defs []*mapping.Definition) Report {
	var report Report
	for _, d := range schema.Diff(oldSchema, newSchema) {
		switch d.Kind {
		case "removed":
			report.Removed = append(report.Removed, d.Name)
		case "added":
			report.Added = append(report.Added, d.Name)
		case "changed":
			if !rewriteGroup(defs, d, &report) {
				report.Removed = append(report.Removed, fmt.Sprintf("%s (no definition sources %q)", d.Name, d.OldGroup))
			}
		}
	}
	return report
}

func rewriteGroup(defs []*mapping.Definition, d schema.FieldDiff, report *Report) bool {
	found := false
	for _, def := range defs {
		if def.Meta.SourceGroup != d.OldGroup {
			continue
		}
		def.Meta.SourceGroup = d.NewGroup
		report.Rewritten = append(report.Rewritten, Change{
			Entity:   def.Meta.Entity,
			OldGroup: d.OldGroup,
			NewGroup: d.NewGroup,
		})
		found = true
	}
	return found
}
