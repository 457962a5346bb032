package write

import (
	"github.com/google/uuid"

	"github.com/edifix/edifix/schema"
)

// writerConfig holds the configuration options for rendering a tree.
type writerConfig struct {
	structure  *schema.SegmentStructure
	controlRef func() string
}

func defaultConfig() writerConfig {
	return writerConfig{
		controlRef: func() string { return uuid.NewString() },
	}
}

// Option is a functional option for configuring a Writer.
type Option func(*writerConfig)

// WithSegmentStructure attaches the MIG-declared element counts the
// writer pads every segment to, per spec §4.5 "with SegmentStructure
// attached, always render up to the MIG count." Without one, the writer
// omits trailing empty elements instead.
func WithSegmentStructure(s *schema.SegmentStructure) Option {
	return func(c *writerConfig) {
		c.structure = s
	}
}

// WithControlReference overrides how the writer fills an empty UNB
// interchange control reference or UNH message reference number. The
// default generates a fresh UUID string per call; tests typically supply
// a deterministic function instead.
func WithControlReference(fn func() string) Option {
	return func(c *writerConfig) {
		if fn != nil {
			c.controlRef = fn
		}
	}
}
