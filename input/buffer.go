package input

import "unicode/utf8"

// A Buffer is an in-memory random access Source.
type Buffer struct {
	// Filename is reported in positions produced by Locate. May be empty.
	Filename string

	data string
	off  int
}

var _ Source = (*Buffer)(nil)
var _ Locator = (*Buffer)(nil)

// String returns a Buffer reading from s.
func String(s string) *Buffer {
	return &Buffer{data: s}
}

// Bytes returns a Buffer reading from b.
func Bytes(b []byte) *Buffer {
	return &Buffer{data: string(b)}
}

func (b *Buffer) Peek() (rune, bool) {
	if b.off >= len(b.data) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(b.data[b.off:])
	return r, true
}

func (b *Buffer) Next() (rune, bool) {
	if b.off >= len(b.data) {
		return 0, false
	}
	r, n := utf8.DecodeRuneInString(b.data[b.off:])
	b.off += n
	return r, true
}

func (b *Buffer) Mark() Pos   { return Pos{Offset: b.off} }
func (b *Buffer) Reset(p Pos) { b.off = p.Offset }
func (b *Buffer) AtEnd() bool { return b.off >= len(b.data) }

// Remaining returns the unconsumed tail of the buffer.
func (b *Buffer) Remaining() string { return b.data[b.off:] }

// Locate translates a byte offset into a line/column position.
func (b *Buffer) Locate(offset int) Position {
	return locate(b.Filename, b.data, offset)
}
