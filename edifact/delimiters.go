// Package edifact provides the core types for the German electricity-market
// EDIFACT dialect (UTILMD and neighbours): delimiters, segments, components,
// and the dotted field-path grammar used by the mapping rules.
package edifact

import (
	"errors"
	"fmt"
)

// Segment terminator and delimiter defaults, per the UN/EDIFACT syntax
// level used by German electricity-market messages.
const (
	DefaultComponentSeparator = ':'
	DefaultElementSeparator   = '+'
	DefaultReleaseCharacter   = '?'
	DefaultSegmentTerminator  = '\''
	DefaultDecimalMark        = '.'
)

// unaLength is the number of bytes the UNA header occupies: the literal
// "UNA" tag plus six service characters (the five delimiters and the
// reserved space before the terminator).
const unaLength = 9

// Errors returned while establishing delimiters from a UNA header.
var (
	ErrEmptyInput   = errors.New("empty input")
	ErrMalformedUNA = errors.New("malformed UNA header")
)

// Delimiters holds the five EDIFACT delimiter characters. These may be
// redefined per-interchange by an optional UNA header; absent one, the
// defaults below apply.
type Delimiters struct {
	Component  rune // component separator, default ':'
	Element    rune // data element separator, default '+'
	Release    rune // release (escape) character, default '?'
	Terminator rune // segment terminator, default '\''
	DecimalMark rune // decimal notation, default '.'
}

// DefaultDelimiters returns the standard German-market delimiter set.
func DefaultDelimiters() *Delimiters {
	return &Delimiters{
		Component:   DefaultComponentSeparator,
		Element:     DefaultElementSeparator,
		Release:     DefaultReleaseCharacter,
		Terminator:  DefaultSegmentTerminator,
		DecimalMark: DefaultDecimalMark,
	}
}

// Equal reports whether two Delimiters describe the same character set.
func (d *Delimiters) Equal(other *Delimiters) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Component == other.Component &&
		d.Element == other.Element &&
		d.Release == other.Release &&
		d.Terminator == other.Terminator &&
		d.DecimalMark == other.DecimalMark
}

// IsDefault reports whether d is exactly the default delimiter set, which
// the writer uses to decide whether a UNA header must be emitted.
func (d *Delimiters) IsDefault() bool {
	return d.Equal(DefaultDelimiters())
}

// String renders the UNA service segment for these delimiters, e.g. "UNA:+.? '".
// The sixth service character (between Release and Terminator) is the
// reserved data separator, which the UN/EDIFACT syntax annex fixes as a
// space; this package has no struct field for it since nothing ever sets
// it to anything else.
func (d *Delimiters) String() string {
	return fmt.Sprintf("UNA%c%c%c%c %c", d.Component, d.Element, d.DecimalMark, d.Release, d.Terminator)
}

// ParseUNA inspects the start of data for a "UNA" header and, if present,
// extracts custom delimiters from the following six bytes. It returns the
// resolved delimiters and the remainder of data with the UNA header (if any)
// consumed. If data does not begin with "UNA", the default delimiters are
// returned and data is untouched.
//
// The UNA layout is fixed: "UNA" followed by component separator, element
// separator, decimal mark, release character, reserved space (skipped),
// segment terminator — the
// field order the UN/EDIFACT syntax annex mandates (not the Delimiters
// struct's own field order).
func ParseUNA(data []byte) (*Delimiters, []byte, error) {
	if len(data) == 0 {
		return nil, nil, ErrEmptyInput
	}
	if len(data) < 3 || string(data[:3]) != "UNA" {
		return DefaultDelimiters(), data, nil
	}
	if len(data) < unaLength {
		return nil, nil, fmt.Errorf("%w: need %d bytes, got %d", ErrMalformedUNA, unaLength, len(data))
	}

	d := &Delimiters{
		Component:   rune(data[3]),
		Element:     rune(data[4]),
		DecimalMark: rune(data[5]),
		Release:     rune(data[6]),
		Terminator:  rune(data[8]),
	}

	return d, data[unaLength:], nil
}
