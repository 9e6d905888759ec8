package input

import "fmt"

// A Pos is a restorable mark into a Source.
//
// Offset is the byte offset from the start of the source. Marks are only
// meaningful for the Source that issued them.
type Pos struct {
	Offset int
}

// A Source is a stream of runes with backtracking support.
//
// Sources are not safe for concurrent use.
type Source interface {
	// Peek returns the next rune without consuming it. ok is false at end
	// of input.
	Peek() (r rune, ok bool)
	// Next consumes and returns the next rune. ok is false at end of input.
	Next() (r rune, ok bool)
	// Mark returns the current position.
	Mark() Pos
	// Reset rewinds the source to a previously obtained mark.
	Reset(Pos)
	// AtEnd reports whether the source is exhausted.
	AtEnd() bool
}

// Locator is an optional interface Sources can implement to translate an
// offset into a line/column position for error reporting.
type Locator interface {
	Locate(offset int) Position
}

// Position of a match or failure within a Source.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Line == 0 {
		return fmt.Sprintf("offset %d", p.Offset)
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Offset: %d, Line: %d, Column: %d}",
		p.Filename, p.Offset, p.Line, p.Column)
}

// FormatError formats a message with positional context.
func FormatError(pos Position, message string) string {
	return fmt.Sprintf("%s: %s", pos, message)
}

// NameOfReader attempts to retrieve the filename of a reader.
func NameOfReader(r interface{}) string {
	if nr, ok := r.(interface{ Name() string }); ok {
		return nr.Name()
	}
	return ""
}

// locate computes the line/column of a byte offset within data. Lines and
// columns are 1-based; columns count runes.
func locate(filename, data string, offset int) Position {
	if offset > len(data) {
		offset = len(data)
	}
	pos := Position{Filename: filename, Offset: offset, Line: 1, Column: 1}
	for _, r := range data[:offset] {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
