package grammar

import (
	"fmt"
	"strings"
)

// CharSet is a set of characters matched by a character class. The set of
// implementations is closed: Range and Ranges.
type CharSet interface {
	fmt.Stringer
	// Contains reports whether c is a member of the set.
	Contains(c rune) bool
	charSet()
}

// Range is the inclusive character range [Start, End]. A single-character
// set is the degenerate range with Start == End.
type Range struct {
	Start rune
	End   rune
}

func (self Range) Contains(c rune) bool {
	return c >= self.Start && c <= self.End
}

func (self Range) String() string {
	if self.Start == self.End {
		// A lone "-" would read as the separator of whatever range
		// follows it, so it renders in its octal form.
		if self.Start == '-' {
			return `\055`
		}
		return escapeChar(self.Start, ']')
	}
	return escapeChar(self.Start, ']') + "-" + escapeChar(self.End, ']')
}

// Ranges is the union of its member sets. Membership checks evaluate left
// to right and stop at the first match, so order affects performance but
// never correctness.
type Ranges []CharSet

func (self Ranges) Contains(c rune) bool {
	for _, set := range self {
		if set.Contains(c) {
			return true
		}
	}
	return false
}

func (self Ranges) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, set := range self {
		b.WriteString(set.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (Range) charSet()  {}
func (Ranges) charSet() {}
