package input

import (
	"io"
	"unicode/utf8"
)

// A Stream adapts an io.Reader into a Source.
//
// Bytes are buffered internally as they are read so that marks handed out
// earlier remain restorable. The buffer holds everything read from the
// reader, which makes sequential top-level parses over one stream work at
// the cost of retaining the consumed prefix.
type Stream struct {
	// Filename is reported in positions produced by Locate. It is
	// initialised from the reader if it has a Name() method.
	Filename string

	r   io.Reader
	buf []byte
	off int
	err error // sticky; io.EOF means the reader is drained
}

var _ Source = (*Stream)(nil)
var _ Locator = (*Stream)(nil)

// Reader returns a Stream reading from r.
func Reader(r io.Reader) *Stream {
	return &Stream{Filename: NameOfReader(r), r: r}
}

// fill reads from the underlying reader until the buffer holds at least n
// unconsumed bytes or the reader is drained.
func (s *Stream) fill(n int) {
	for s.err == nil && len(s.buf)-s.off < n {
		chunk := make([]byte, 4096)
		read, err := s.r.Read(chunk)
		s.buf = append(s.buf, chunk[:read]...)
		if err != nil {
			s.err = err
		}
	}
}

// peek decodes the next rune, reading more input if the tail is an
// incomplete UTF-8 sequence.
func (s *Stream) peek() (rune, int, bool) {
	s.fill(1)
	for !utf8.FullRune(s.buf[s.off:]) {
		if s.err != nil {
			if s.off >= len(s.buf) {
				return 0, 0, false
			}
			break // truncated sequence at EOF decodes as RuneError
		}
		s.fill(len(s.buf) - s.off + 1)
	}
	r, n := utf8.DecodeRune(s.buf[s.off:])
	return r, n, true
}

func (s *Stream) Peek() (rune, bool) {
	r, _, ok := s.peek()
	return r, ok
}

func (s *Stream) Next() (rune, bool) {
	r, n, ok := s.peek()
	if ok {
		s.off += n
	}
	return r, ok
}

func (s *Stream) Mark() Pos   { return Pos{Offset: s.off} }
func (s *Stream) Reset(p Pos) { s.off = p.Offset }

func (s *Stream) AtEnd() bool {
	s.fill(1)
	return s.off >= len(s.buf)
}

// Err returns the first non-EOF error encountered while reading.
func (s *Stream) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

// Locate translates a byte offset into a line/column position. Only offsets
// within the portion of the stream read so far can be located.
func (s *Stream) Locate(offset int) Position {
	return locate(s.Filename, string(s.buf), offset)
}
