package tokenize

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/edifix/edifix/edifact"
	"github.com/edifix/edifix/internal/escape"
)

// Tokenizer-specific errors.
var (
	ErrTooManySegments = errors.New("interchange exceeds maximum segment count")
	ErrElementTooLong  = errors.New("element exceeds maximum length")
	ErrContextCanceled = errors.New("tokenizing canceled")
	ErrEmptySegment    = errors.New("empty segment not allowed")
)

// Tokenizer splits raw interchange bytes into a flat segment list, ready
// for grouping by the assemble package.
type Tokenizer interface {
	// Tokenize splits data into segments using this tokenizer's delimiters,
	// resolving them from a leading UNA header unless overridden by
	// WithCustomDelimiters.
	Tokenize(data []byte) ([]edifact.Segment, *edifact.Delimiters, error)

	// TokenizeContext is Tokenize with cancellation support for large
	// batches of interchanges.
	TokenizeContext(ctx context.Context, data []byte) ([]edifact.Segment, *edifact.Delimiters, error)
}

type tokenizer struct {
	config config
}

// New creates a Tokenizer configured with the given options.
func New(opts ...Option) Tokenizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &tokenizer{config: cfg}
}

func (t *tokenizer) Tokenize(data []byte) ([]edifact.Segment, *edifact.Delimiters, error) {
	return t.TokenizeContext(context.Background(), data)
}

func (t *tokenizer) TokenizeContext(ctx context.Context, data []byte) ([]edifact.Segment, *edifact.Delimiters, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
	default:
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, &edifact.TokenizeError{Message: "empty interchange", Position: -1}
	}

	delims, body, err := t.resolveDelimiters(data)
	if err != nil {
		return nil, nil, err
	}

	esc := escape.New(delims)
	segmentTexts := splitRespectingEscape([]rune(string(bytes.TrimSpace(body))), delims.Terminator, delims.Release)

	// The piece after the last unescaped terminator must be empty; any text
	// there is a final segment with no terminator.
	if last := segmentTexts[len(segmentTexts)-1]; len(bytesTrimSpaceRunes(last)) > 0 {
		return nil, nil, &edifact.TokenizeError{Message: "missing segment terminator at end of input", Position: len(data)}
	}
	segmentTexts = segmentTexts[:len(segmentTexts)-1]

	if len(segmentTexts) > t.config.maxSegments {
		return nil, nil, fmt.Errorf("%w: got %d, max %d", ErrTooManySegments, len(segmentTexts), t.config.maxSegments)
	}

	segments := make([]edifact.Segment, 0, len(segmentTexts))
	for i, text := range segmentTexts {
		if i%200 == 0 {
			select {
			case <-ctx.Done():
				return nil, nil, fmt.Errorf("%w: %v", ErrContextCanceled, ctx.Err())
			default:
			}
		}

		trimmed := bytesTrimSpaceRunes(text)
		if len(trimmed) == 0 {
			if t.config.allowEmptySegments {
				continue
			}
			return nil, nil, &edifact.TokenizeError{Message: fmt.Sprintf("%v (segment #%d)", ErrEmptySegment, i), Position: -1}
		}

		seg, err := t.parseSegment(trimmed, delims, esc, i)
		if err != nil {
			return nil, nil, err
		}
		segments = append(segments, seg)
	}

	return segments, delims, nil
}

// resolveDelimiters determines the delimiter set to use for data, honoring
// an explicit override, otherwise parsing a leading UNA header (defaulting
// if absent).
func (t *tokenizer) resolveDelimiters(data []byte) (*edifact.Delimiters, []byte, error) {
	if t.config.customDelimiters != nil {
		_, body, err := edifact.ParseUNA(data)
		if err != nil {
			return nil, nil, &edifact.TokenizeError{Message: "parsing UNA header", Cause: err, Position: 0}
		}
		return t.config.customDelimiters, body, nil
	}

	delims, body, err := edifact.ParseUNA(data)
	if err != nil {
		return nil, nil, &edifact.TokenizeError{Message: "parsing UNA header", Cause: err, Position: 0}
	}
	return delims, body, nil
}

// parseSegment splits one segment's rune text into its tag and ordered
// elements/components, unescaping component content along the way.
func (t *tokenizer) parseSegment(text []rune, delims *edifact.Delimiters, esc *escape.Escaper, idx int) (edifact.Segment, error) {
	tokens := splitRespectingEscape(text, delims.Element, delims.Release)
	if len(tokens) == 0 {
		return edifact.Segment{}, &edifact.SegmentError{Index: idx, Message: "segment has no tag"}
	}

	tag := string(tokens[0])
	if len(tag) > t.config.maxElementBytes {
		return edifact.Segment{}, fmt.Errorf("%w: segment %d tag", ErrElementTooLong, idx)
	}

	elements := make([][]string, 0, len(tokens)-1)
	for _, elTok := range tokens[1:] {
		if len(string(elTok)) > t.config.maxElementBytes {
			return edifact.Segment{}, &edifact.SegmentError{
				Tag: tag, Index: idx,
				Message: fmt.Sprintf("%v", ErrElementTooLong),
			}
		}
		compTokens := splitRespectingEscape(elTok, delims.Component, delims.Release)
		comps := make([]string, len(compTokens))
		for i, c := range compTokens {
			comps[i] = esc.Unescape(string(c))
		}
		if len(comps) == 0 {
			comps = []string{""}
		}
		elements = append(elements, comps)
	}

	return edifact.Segment{Tag: tag, Elements: elements}, nil
}

// splitRespectingEscape splits text on sep, treating an occurrence of sep
// as literal (not a delimiter) when it is escaped per
// escape.IsEscapedAt — i.e. preceded by an odd number of consecutive
// release characters.
func splitRespectingEscape(text []rune, sep, release rune) [][]rune {
	var out [][]rune
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == sep && !escape.IsEscapedAt(text, i, release) {
			out = append(out, text[start:i])
			start = i + 1
		}
	}
	out = append(out, text[start:])
	return out
}

func bytesTrimSpaceRunes(r []rune) []rune {
	return []rune(string(bytes.TrimSpace([]byte(string(r)))))
}
