package assemble

import "fmt"

// DiagnosticKind classifies a non-fatal deviation recorded during
// assembly.
type DiagnosticKind int

const (
	DiagnosticUnknownTag DiagnosticKind = iota
	DiagnosticTruncatedGroup
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticUnknownTag:
		return "unknown_tag"
	case DiagnosticTruncatedGroup:
		return "truncated_group"
	default:
		return "unknown"
	}
}

// Diagnostic records one deviation the assembler tolerated rather than
// failing on.
type Diagnostic struct {
	Kind    DiagnosticKind
	Tag     string
	Index   int
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: segment %s (#%d): %s", d.Kind, d.Tag, d.Index, d.Message)
}

// ErrorKind classifies the one fatal failure mode of the assembler.
type ErrorKind int

const (
	UnexpectedSegment ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedSegment:
		return "unexpected_segment"
	default:
		return "unknown"
	}
}

// AssemblerError is the sole fatal error the assembler raises: a segment
// could not be placed anywhere in the tree, even after popping every open
// group.
type AssemblerError struct {
	Kind    ErrorKind
	Tag     string
	Index   int
	Message string
}

func (e *AssemblerError) Error() string {
	return fmt.Sprintf("assemble: %s: segment %s (#%d): %s", e.Kind, e.Tag, e.Index, e.Message)
}
