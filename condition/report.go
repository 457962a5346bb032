package condition

import "github.com/edifix/edifix/edifact"

// Category classifies which layer of validation an Issue came from.
type Category int

const (
	CategoryAHB Category = iota
	CategoryCode
	CategoryStructure
	CategoryEnvelope
)

func (c Category) String() string {
	switch c {
	case CategoryAHB:
		return "Ahb"
	case CategoryCode:
		return "Code"
	case CategoryStructure:
		return "Structure"
	case CategoryEnvelope:
		return "Envelope"
	default:
		return "Unknown"
	}
}

// Issue is one finding in a Report: a missing mandatory field
// ("AHB001"), a disallowed qualifier code ("COD002"), an unresolvable
// condition ("CND001"), or a structural/envelope deviation
// ("STR###"/"ENV###"), per spec §3 "Validation report."
type Issue struct {
	Severity  edifact.Severity
	Category  Category
	Code      string
	Message   string
	FieldPath string
	Actual    string
	Expected  string
}

// Metadata describes which message a Report was produced for.
type Metadata struct {
	FormatVersion string
	MessageType   string
	PID           string
}

// Report is the ordered sequence of issues produced by validating one
// message against one AHB workflow.
type Report struct {
	Metadata Metadata
	Issues   []Issue
}

// HasErrors reports whether the report contains at least one
// Error-severity issue — the user-visible pass/fail signal (spec §7
// "a validation report with at least one Error is a failure").
func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == edifact.SeverityError {
			return true
		}
	}
	return false
}

// Filter returns every issue at or above the given severity.
func (r *Report) Filter(min edifact.Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity >= min {
			out = append(out, i)
		}
	}
	return out
}

// ByCategory groups the report's issues by category, for callers that
// present validation results broken down by layer.
func (r *Report) ByCategory() map[Category][]Issue {
	out := make(map[Category][]Issue)
	for _, i := range r.Issues {
		out[i.Category] = append(out[i.Category], i)
	}
	return out
}
