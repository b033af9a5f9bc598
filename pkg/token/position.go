package token

import "fmt"

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Cursor tracks line and column while a lexer walks its input byte by byte.
type Cursor struct {
	input string
	pos   Position
}

// NewCursor returns a cursor positioned at the first byte of input.
func NewCursor(input string) Cursor {
	return Cursor{input: input, pos: Position{Line: 1, Column: 1}}
}

// Pos returns the current position.
func (c *Cursor) Pos() Position {
	return c.pos
}

// AtEnd reports whether the whole input has been consumed.
func (c *Cursor) AtEnd() bool {
	return c.pos.Offset >= len(c.input)
}

// Peek returns the current byte, or 0 at end of input.
func (c *Cursor) Peek() byte {
	if c.AtEnd() {
		return 0
	}
	return c.input[c.pos.Offset]
}

// Advance moves past the current byte.
func (c *Cursor) Advance() {
	if c.AtEnd() {
		return
	}
	if c.input[c.pos.Offset] == '\n' {
		c.pos.Line++
		c.pos.Column = 1
	} else {
		c.pos.Column++
	}
	c.pos.Offset++
}

// Slice returns the input between from and the current offset.
func (c *Cursor) Slice(from Position) string {
	return c.input[from.Offset:c.pos.Offset]
}
