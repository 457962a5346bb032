// Package tokenize splits raw EDIFACT interchange bytes into segments and,
// within each segment, into ordered elements and components.
package tokenize

import "github.com/edifix/edifix/edifact"

// Default tokenizer configuration values.
const (
	defaultMaxSegments     = 5000   // DoS protection: maximum segments per interchange
	defaultMaxElementBytes = 65536  // DoS protection: maximum element length in bytes
)

// config holds the tokenizer configuration.
type config struct {
	allowEmptySegments bool
	customDelimiters   *edifact.Delimiters
	maxSegments        int
	maxElementBytes    int
}

func defaultConfig() config {
	return config{
		allowEmptySegments: false,
		customDelimiters:   nil,
		maxSegments:        defaultMaxSegments,
		maxElementBytes:    defaultMaxElementBytes,
	}
}

// Option configures a Tokenizer.
type Option func(*config)

// WithAllowEmptySegments permits segments with no elements (bare "TAG'")
// instead of treating them as tokenizer errors.
func WithAllowEmptySegments(allow bool) Option {
	return func(c *config) { c.allowEmptySegments = allow }
}

// WithCustomDelimiters forces a delimiter set instead of resolving it from
// a UNA header (or the defaults when no UNA header is present).
func WithCustomDelimiters(d *edifact.Delimiters) Option {
	return func(c *config) { c.customDelimiters = d }
}

// WithMaxSegments bounds the number of segments an interchange may contain.
func WithMaxSegments(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxSegments = limit
		}
	}
}

// WithMaxElementBytes bounds the byte length of a single data element.
func WithMaxElementBytes(limit int) Option {
	return func(c *config) {
		if limit > 0 {
			c.maxElementBytes = limit
		}
	}
}
