// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package peg

import (
	"strings"

	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/optional"
)

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func isOctal(r rune) bool {
	return r >= '0' && r <= '7'
}

// Spacing = { Space | Comment }
//
// Spacing can always match empty input, so it never fails.
func (p *parserPEGText) parseSpacing() {
	for {
		if p.parseSpace() {
			continue
		}
		if p.parseComment() {
			continue
		}
		return
	}
}

// Space = " " | "\t" | EndOfLine
func (p *parserPEGText) parseSpace() bool {
	r := p.cur.peek()
	if r.IsPresent() && (r.Value() == ' ' || r.Value() == '\t') {
		_ = p.cur.next()
		return true
	}
	return p.parseEndOfLine()
}

// EndOfLine = "\r\n" | "\n" | "\r"
func (p *parserPEGText) parseEndOfLine() bool {
	r := p.cur.peek()
	if !r.IsPresent() {
		return false
	}
	switch r.Value() {
	case '\n':
		_ = p.cur.next()
		return true
	case '\r':
		_ = p.cur.next()
		if n := p.cur.peek(); n.IsPresent() && n.Value() == '\n' {
			_ = p.cur.next()
		}
		return true
	}
	return false
}

// Comment = "#" { !EndOfLine AnyChar } EndOfLine
//
// A comment must be closed by a line terminator. A "#" that runs to the end
// of the input is not a comment and the text is left unconsumed.
func (p *parserPEGText) parseComment() bool {
	cp := p.cur.checkpoint()
	r := p.cur.peek()
	if !r.IsPresent() || r.Value() != '#' {
		return false
	}
	_ = p.cur.next()
	for {
		if p.parseEndOfLine() {
			return true
		}
		if c := p.cur.next(); !c.IsPresent() {
			p.fail("end of line")
			p.cur.restore(cp)
			return false
		}
	}
}

// Identifier = IdentStart { IdentCont } Spacing
//
// IdentStart is an ASCII letter or underscore and IdentCont adds ASCII
// digits. Non-ASCII letters are not identifier characters.
func (p *parserPEGText) parseIdentifier() optional.Optional[string] {
	r := p.cur.peek()
	if !r.IsPresent() || !isIdentStart(r.Value()) {
		p.fail("identifier")
		return optional.None[string]()
	}
	_ = p.cur.next()
	var name strings.Builder
	name.WriteRune(r.Value())
	for {
		r = p.cur.peek()
		if !r.IsPresent() || !isIdentCont(r.Value()) {
			break
		}
		_ = p.cur.next()
		name.WriteRune(r.Value())
	}
	p.parseSpacing()
	return optional.Some(name.String())
}

// Literal = "'" { !"'" Char } "'" Spacing | '"' { !'"' Char } '"' Spacing
//
// The text is returned with escape sequences already decoded. An empty
// literal is valid and matches the empty string.
func (p *parserPEGText) parseLiteral() optional.Optional[string] {
	cp := p.cur.checkpoint()
	q := p.cur.peek()
	if !q.IsPresent() || (q.Value() != '\'' && q.Value() != '"') {
		p.fail("string literal")
		return optional.None[string]()
	}
	_ = p.cur.next()
	quote := q.Value()
	var text strings.Builder
	for {
		r := p.cur.peek()
		if !r.IsPresent() {
			p.fail("closing " + string(quote))
			p.cur.restore(cp)
			return optional.None[string]()
		}
		if r.Value() == quote {
			_ = p.cur.next()
			p.parseSpacing()
			return optional.Some(text.String())
		}
		c := p.parseChar()
		if !c.IsPresent() {
			p.cur.restore(cp)
			return optional.None[string]()
		}
		text.WriteRune(c.Value())
	}
}

// Char = NamedEscape | OctalEscape3 | OctalEscape | PlainChar
//
// The alternatives are tried in order with full backtracking between
// attempts, so "\\0" decodes through the short octal form after the long
// form fails.
func (p *parserPEGText) parseChar() optional.Optional[rune] {
	if r := p.parseNamedEscape(); r.IsPresent() {
		return r
	}
	if r := p.parseOctalEscape3(); r.IsPresent() {
		return r
	}
	if r := p.parseOctalEscape(); r.IsPresent() {
		return r
	}
	// PlainChar = !"\\" AnyChar
	cp := p.cur.checkpoint()
	r := p.cur.next()
	if !r.IsPresent() || r.Value() == '\\' {
		p.fail("character")
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	return r
}

// NamedEscape = "\\" ( "n" | "r" | "t" | "'" | "\"" | "[" | "]" | "\\" )
func (p *parserPEGText) parseNamedEscape() optional.Optional[rune] {
	cp := p.cur.checkpoint()
	if r := p.cur.next(); !r.IsPresent() || r.Value() != '\\' {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	r := p.cur.next()
	if r.IsPresent() {
		switch r.Value() {
		case 'n':
			return optional.Some('\n')
		case 'r':
			return optional.Some('\r')
		case 't':
			return optional.Some('\t')
		case '\'', '"', '[', ']', '\\':
			return r
		}
	}
	p.cur.restore(cp)
	return optional.None[rune]()
}

// OctalEscape3 = "\\" [0-2] [0-7] [0-7]
func (p *parserPEGText) parseOctalEscape3() optional.Optional[rune] {
	cp := p.cur.checkpoint()
	if r := p.cur.next(); !r.IsPresent() || r.Value() != '\\' {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	d1 := p.cur.next()
	if !d1.IsPresent() || d1.Value() < '0' || d1.Value() > '2' {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	d2 := p.cur.next()
	if !d2.IsPresent() || !isOctal(d2.Value()) {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	d3 := p.cur.next()
	if !d3.IsPresent() || !isOctal(d3.Value()) {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	return optional.Some((d1.Value()-'0')*64 + (d2.Value()-'0')*8 + (d3.Value() - '0'))
}

// OctalEscape = "\\" [0-7] [0-7]?
func (p *parserPEGText) parseOctalEscape() optional.Optional[rune] {
	cp := p.cur.checkpoint()
	if r := p.cur.next(); !r.IsPresent() || r.Value() != '\\' {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	d1 := p.cur.next()
	if !d1.IsPresent() || !isOctal(d1.Value()) {
		p.cur.restore(cp)
		return optional.None[rune]()
	}
	value := d1.Value() - '0'
	if d2 := p.cur.peek(); d2.IsPresent() && isOctal(d2.Value()) {
		_ = p.cur.next()
		value = value*8 + (d2.Value() - '0')
	}
	return optional.Some(value)
}

// Range = Char "-" Char | Char
//
// The two-character form is tried first. A "-" not followed by a valid Char
// is left unconsumed and the range degenerates to its start character.
func (p *parserPEGText) parseRange() optional.Optional[grammar.Range] {
	start := p.parseChar()
	if !start.IsPresent() {
		return optional.None[grammar.Range]()
	}
	cp := p.cur.checkpoint()
	if d := p.cur.peek(); d.IsPresent() && d.Value() == '-' {
		_ = p.cur.next()
		if end := p.parseChar(); end.IsPresent() {
			return optional.Some(grammar.Range{
				Start: start.Value(),
				End:   end.Value(),
			})
		}
		p.cur.restore(cp)
	}
	return optional.Some(grammar.Range{
		Start: start.Value(),
		End:   start.Value(),
	})
}

// Class = "[" { !"]" Range } "]" Spacing
//
// An empty class is valid and matches no character at all.
func (p *parserPEGText) parseClass() optional.Optional[grammar.CharacterClass] {
	cp := p.cur.checkpoint()
	if r := p.cur.peek(); !r.IsPresent() || r.Value() != '[' {
		p.fail("character class")
		return optional.None[grammar.CharacterClass]()
	}
	_ = p.cur.next()
	sets := grammar.Ranges{}
	for {
		r := p.cur.peek()
		if !r.IsPresent() {
			p.fail("']'")
			p.cur.restore(cp)
			return optional.None[grammar.CharacterClass]()
		}
		if r.Value() == ']' {
			_ = p.cur.next()
			p.parseSpacing()
			return optional.Some(grammar.CharacterClass{Set: sets})
		}
		rng := p.parseRange()
		if !rng.IsPresent() {
			p.cur.restore(cp)
			return optional.None[grammar.CharacterClass]()
		}
		sets = append(sets, rng.Value())
	}
}
