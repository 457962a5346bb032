// Package escape implements EDIFACT release-character escaping.
//
// Unlike HL7, which names five distinct escape sequences (\F\, \S\, \T\,
// \R\, \E\), EDIFACT uses a single release character that, when it
// precedes any other character, strips that character's syntactic meaning:
// the following byte is taken literally rather than as a delimiter. A
// character is escaped if and only if it is immediately preceded by an
// unescaped release character — a run of two release characters is itself
// an escaped release character, not an escape of whatever follows.
package escape

import (
	"strings"

	"github.com/edifix/edifix/edifact"
)

// Escaper applies and removes release-character escaping for one
// interchange's delimiter set.
type Escaper struct {
	delims *edifact.Delimiters
}

// New creates an Escaper for the given delimiters. If delims is nil, the
// default delimiter set is used.
func New(delims *edifact.Delimiters) *Escaper {
	if delims == nil {
		delims = edifact.DefaultDelimiters()
	}
	return &Escaper{delims: delims}
}

// needsEscape reports whether r is one of the characters that carries
// syntactic meaning at the component level: the component, element,
// release, and segment-terminator characters. The decimal mark is
// deliberately excluded: unlike the other delimiters it occurs
// unescaped inside ordinary numeric and version literals (a format
// version like "S2.1"), so escaping it would corrupt values a compliant
// interchange never escapes in practice.
func (e *Escaper) needsEscape(r rune) bool {
	d := e.delims
	return r == d.Component || r == d.Element || r == d.Release || r == d.Terminator
}

// Escape prefixes every reserved delimiter character in value with the
// release character, so the result can be embedded verbatim as one
// component of an EDIFACT segment.
func (e *Escaper) Escape(value string) string {
	if value == "" {
		return value
	}

	needsAny := false
	for _, r := range value {
		if e.needsEscape(r) {
			needsAny = true
			break
		}
	}
	if !needsAny {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value) + 4)
	for _, r := range value {
		if e.needsEscape(r) {
			sb.WriteRune(e.delims.Release)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Unescape removes release-character escaping from value, returning the
// literal component text. A release character not followed by anything
// (a trailing release at end of input) is passed through unchanged.
func (e *Escaper) Unescape(value string) string {
	if value == "" {
		return value
	}

	esc := e.delims.Release
	if !strings.ContainsRune(value, esc) {
		return value
	}

	var sb strings.Builder
	sb.Grow(len(value))

	runes := []rune(value)
	i := 0
	for i < len(runes) {
		if runes[i] == esc && i+1 < len(runes) {
			sb.WriteRune(runes[i+1])
			i += 2
			continue
		}
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String()
}

// IsEscapedAt reports whether the rune at index i in runes is escaped —
// preceded by a release character that is not itself escaped. Used by the
// tokenizer to decide whether a delimiter-looking byte actually delimits.
func IsEscapedAt(runes []rune, i int, release rune) bool {
	if i == 0 {
		return false
	}
	precedingReleases := 0
	for j := i - 1; j >= 0 && runes[j] == release; j-- {
		precedingReleases++
	}
	return precedingReleases%2 == 1
}
