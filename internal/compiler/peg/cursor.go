package peg

import (
	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/optional"
)

// cursor is a read position over an immutable rune buffer. The buffer is
// never modified; advancing the position is the only mutation, and
// restoring a checkpoint is the only way to undo it.
type cursor struct {
	input []rune
	pos   int
}

// checkpoint is an opaque snapshot of a cursor position. A checkpoint is
// only meaningful to the cursor that produced it and must not outlive that
// cursor.
type checkpoint int

func newCursor(input []rune) *cursor {
	return &cursor{input: input}
}

// peek returns the rune at the current position without consuming it.
func (c *cursor) peek() optional.Optional[rune] {
	if c.pos >= len(c.input) {
		return optional.None[rune]()
	}
	return optional.Some(c.input[c.pos])
}

// next consumes and returns the rune at the current position.
func (c *cursor) next() optional.Optional[rune] {
	if c.pos >= len(c.input) {
		return optional.None[rune]()
	}
	r := c.input[c.pos]
	c.pos = c.pos + 1
	return optional.Some(r)
}

// peekString returns the next n runes without consuming them. It fails when
// fewer than n runes remain.
func (c *cursor) peekString(n int) optional.Optional[string] {
	if c.pos+n > len(c.input) {
		return optional.None[string]()
	}
	return optional.Some(string(c.input[c.pos : c.pos+n]))
}

// nextString consumes and returns the next n runes. When fewer than n runes
// remain it fails without consuming anything.
func (c *cursor) nextString(n int) optional.Optional[string] {
	s := c.peekString(n)
	if s.IsPresent() {
		c.pos = c.pos + n
	}
	return s
}

func (c *cursor) atEnd() bool {
	return c.pos >= len(c.input)
}

func (c *cursor) checkpoint() checkpoint {
	return checkpoint(c.pos)
}

// restore moves the position back to where the checkpoint was taken.
func (c *cursor) restore(cp checkpoint) {
	c.pos = int(cp)
}

// location converts a buffer offset into a 1-based line and column by
// scanning the buffer up to the offset. Line terminators are \r\n, \n, or
// \r. This runs only when building diagnostics, never on the parsing path.
func (c *cursor) location(offset int) grammar.Location {
	if offset > len(c.input) {
		offset = len(c.input)
	}
	line := int32(1)
	column := int32(1)
	for x := 0; x < offset; x = x + 1 {
		switch c.input[x] {
		case '\r':
			if x+1 < offset && c.input[x+1] == '\n' {
				x = x + 1
			}
			line = line + 1
			column = 1
		case '\n':
			line = line + 1
			column = 1
		default:
			column = column + 1
		}
	}
	return grammar.Location{
		Line:   line,
		Column: column,
		Offset: int64(offset),
	}
}
