package condition

// FieldRule is one AHB field obligation: the path it governs, a
// human-readable name, its raw status expression, and the codes it
// allows when the target is a qualifier (spec §4.6 "AHB workflow...
// each carrying path, name, status expression, allowed-code list").
//
// Path uses the dotted "SG<n>.TAG.<dataelement>" convention AHB
// publications use; stripSG (in validator.go) strips the SG<n>
// segments before deciding whether a path is "simple" (exactly 2
// segments: a tag and a data-element id) or "composite" (3+), per spec
// §4.6's cross-field code validation rule.
type FieldRule struct {
	Path         string
	Name         string
	Status       string
	AllowedCodes []string
}

// Workflow is the set of field rules governing one process identifier
// (PID) at one message type and AHB format version.
type Workflow struct {
	PID           string
	MessageType   string
	FormatVersion string
	Fields        []FieldRule
}
