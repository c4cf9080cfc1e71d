package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Parallel()

	c := newCursor([]rune("aä."))

	require.True(t, c.peek().IsPresent())
	require.Equal(t, 'a', c.peek().Value())
	require.Equal(t, 'a', c.next().Value())
	require.Equal(t, 'ä', c.next().Value())
	require.False(t, c.atEnd())
	require.Equal(t, '.', c.next().Value())
	require.True(t, c.atEnd())
	require.False(t, c.peek().IsPresent())
	require.False(t, c.next().IsPresent())
}

func TestCursorStrings(t *testing.T) {
	t.Parallel()

	c := newCursor([]rune("<-x"))

	require.Equal(t, "<-", c.peekString(2).Value())
	require.False(t, c.peekString(4).IsPresent())
	// a read past the end must not consume anything
	require.False(t, c.nextString(4).IsPresent())
	require.Equal(t, "<-", c.nextString(2).Value())
	require.Equal(t, "x", c.nextString(1).Value())
	require.True(t, c.atEnd())
}

func TestCursorCheckpoint(t *testing.T) {
	t.Parallel()

	c := newCursor([]rune("abc"))
	_ = c.next()
	cp := c.checkpoint()
	require.Equal(t, 'b', c.next().Value())
	require.Equal(t, 'c', c.next().Value())
	require.True(t, c.atEnd())
	c.restore(cp)
	require.False(t, c.atEnd())
	require.Equal(t, 'b', c.next().Value())
}

func TestCursorLocation(t *testing.T) {
	t.Parallel()

	c := newCursor([]rune("ab\ncd\r\nef"))

	testCases := []struct {
		offset int
		line   int32
		column int32
	}{
		{offset: 0, line: 1, column: 1},
		{offset: 1, line: 1, column: 2},
		{offset: 2, line: 1, column: 3},
		{offset: 3, line: 2, column: 1},
		{offset: 5, line: 2, column: 3},
		{offset: 7, line: 3, column: 1},
		{offset: 9, line: 3, column: 3},
	}
	for _, testCase := range testCases {
		loc := c.location(testCase.offset)
		require.Equal(t, testCase.line, loc.Line, "offset %d", testCase.offset)
		require.Equal(t, testCase.column, loc.Column, "offset %d", testCase.offset)
		require.Equal(t, int64(testCase.offset), loc.Offset)
	}
}
