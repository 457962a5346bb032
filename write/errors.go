package write

import "fmt"

// Error reports a failure rendering a tree to bytes. The writer returns it
// for a nil tree and for a tree with no UNH segment (needed to compute the
// UNT count). It does not check segments against the element counts of an
// attached SegmentStructure, and it does not inspect raw fragments.
type Error struct {
	Segment string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("write: segment %s: %s", e.Segment, e.Message)
	}
	return fmt.Sprintf("write: %s", e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
