package tokenize

import (
	"bufio"
	"bytes"
	"io"

	"github.com/edifix/edifix/edifact"
)

const (
	defaultBufferSize = 64 * 1024
)

// Scanner provides streaming extraction of individual interchanges
// ("UNB...UNZ") out of a byte stream carrying several back to back, the
// shape batch/pipe integrations hand the tokenizer.
type Scanner interface {
	// Scan advances to the next interchange. Returns true if one was found.
	Scan() bool

	// Segments returns the last scanned interchange, already tokenized.
	Segments() []edifact.Segment

	// Delimiters returns the delimiter set resolved for the last interchange.
	Delimiters() *edifact.Delimiters

	// Err returns any error encountered during scanning.
	Err() error
}

type scanner struct {
	reader     *bufio.Reader
	tokenizer  Tokenizer
	segments   []edifact.Segment
	delimiters *edifact.Delimiters
	err        error
	pending    []byte
}

// NewScanner creates a Scanner reading interchange-delimited data from r.
func NewScanner(r io.Reader, opts ...Option) Scanner {
	return &scanner{
		reader:    bufio.NewReaderSize(r, defaultBufferSize),
		tokenizer: New(opts...),
	}
}

func (s *scanner) Scan() bool {
	s.segments = nil
	s.delimiters = nil

	data, err := s.readInterchange()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false
	}

	segs, delims, err := s.tokenizer.Tokenize(data)
	if err != nil {
		s.err = err
		return false
	}

	s.segments = segs
	s.delimiters = delims
	return true
}

func (s *scanner) Segments() []edifact.Segment      { return s.segments }
func (s *scanner) Delimiters() *edifact.Delimiters  { return s.delimiters }
func (s *scanner) Err() error                       { return s.err }

// readInterchange reads bytes up to and including the terminator of the
// first "UNZ" segment found, i.e. one complete interchange. It tolerates a
// leading UNA header when locating the UNZ boundary by scanning for the
// literal byte sequence "UNZ" followed eventually by the segment
// terminator; precise delimiter resolution and escaping is left to
// Tokenize on the resulting buffer.
func (s *scanner) readInterchange() ([]byte, error) {
	var buf bytes.Buffer
	if len(s.pending) > 0 {
		buf.Write(s.pending)
		s.pending = nil
	}

	terminator := byte(edifact.DefaultSegmentTerminator)
	if s.delimiters != nil {
		terminator = byte(s.delimiters.Terminator)
	}

	for {
		if idx := findUNZEnd(buf.Bytes(), terminator); idx >= 0 {
			complete := buf.Bytes()[:idx]
			s.pending = append([]byte(nil), buf.Bytes()[idx:]...)
			return complete, nil
		}

		b, err := s.reader.ReadByte()
		if err != nil {
			if err == io.EOF && buf.Len() > 0 {
				return buf.Bytes(), nil
			}
			return nil, err
		}
		buf.WriteByte(b)
	}
}

// findUNZEnd returns the index just past the terminator of the first
// "UNZ" segment in data, or -1 if no complete UNZ segment is present yet.
func findUNZEnd(data []byte, terminator byte) int {
	pos := bytes.Index(data, []byte("UNZ"))
	if pos < 0 {
		return -1
	}
	rel := bytes.IndexByte(data[pos:], terminator)
	if rel < 0 {
		return -1
	}
	return pos + rel + 1
}
