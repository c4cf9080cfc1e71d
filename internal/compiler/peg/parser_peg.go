package peg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.microglot.org/pegc/internal/exc"
	"gopkg.microglot.org/pegc/internal/grammar"
	"gopkg.microglot.org/pegc/internal/iter"
)

// ParserPEG parses PEG grammar definitions into grammar.Grammar values. It
// recognizes structure only. Whether the named non-terminals resolve to
// definitions is a question for later passes, not the parser.
type ParserPEG struct {
	reporter exc.Reporter
}

func NewParserPEG(reporter exc.Reporter) *ParserPEG {
	return &ParserPEG{reporter: reporter}
}

// Parse runs a complete parse of the given file. Either the entire input is
// a well-formed grammar or the parse fails with no partial result.
func (self *ParserPEG) Parse(ctx context.Context, f grammar.File) (*grammar.Grammar, error) {
	parse, err := self.PrepareParse(ctx, f)
	if err != nil {
		return nil, err
	}
	return parse.parse()
}

func (self *ParserPEG) PrepareParse(ctx context.Context, f grammar.File) (*parserPEGText, error) {
	b, err := f.Body(ctx)
	if err != nil {
		return nil, self.reportReadFailure(f.Path(ctx), err)
	}

	// The entire body is decoded up front so that backtracking is a plain
	// slice index rewind. Grammar files are small enough that streaming
	// buys nothing here.
	points, err := iter.Drain(ctx, iter.NewUnicodeFileBodyCtx(ctx, b))
	if err != nil {
		return nil, self.reportReadFailure(f.Path(ctx), err)
	}
	input := make([]rune, 0, len(points))
	for _, point := range points {
		input = append(input, rune(point))
	}

	return &parserPEGText{
		reporter: self.reporter,
		uri:      f.Path(ctx),
		cur:      newCursor(input),
	}, nil
}

// reportReadFailure records a failure to open or decode the file body. The
// failure has no position within the file, only the file itself.
func (self *ParserPEG) reportReadFailure(uri string, err error) exc.Exception {
	e := exc.WrapUnknown(exc.Location{URI: uri}, err)
	_ = self.reporter.Report(e)
	return e
}

type parserPEGText struct {
	reporter exc.Reporter
	uri      string
	cur      *cursor
	// failOffset/failExpected track the rightmost position where any
	// attempt failed and everything that was expected there, so that a
	// failed parse can report where it really got stuck instead of
	// wherever the last backtrack landed.
	failOffset   int
	failExpected []string
}

// fail records an expectation that was not met at the current position.
// Failures behind the rightmost recorded one are of no interest and are
// dropped.
func (p *parserPEGText) fail(expected string) {
	if p.cur.pos < p.failOffset {
		return
	}
	if p.cur.pos > p.failOffset {
		p.failOffset = p.cur.pos
		p.failExpected = p.failExpected[:0]
	}
	p.failExpected = append(p.failExpected, expected)
}

func (p *parserPEGText) report(code string, message string, loc grammar.Location) exc.Exception {
	e := exc.New(exc.Location{
		URI:      p.uri,
		Location: loc,
	}, code, message)
	_ = p.reporter.Report(e)
	return e
}

// reportFailure builds the diagnostic for the rightmost recorded failure.
func (p *parserPEGText) reportFailure(code string) exc.Exception {
	found := "end of input"
	if p.failOffset < len(p.cur.input) {
		found = strconv.Quote(string(p.cur.input[p.failOffset]))
	} else if code == exc.CodeUnexpectedToken {
		code = exc.CodeUnexpectedEOF
	}
	seen := make(map[string]bool, len(p.failExpected))
	expected := make([]string, 0, len(p.failExpected))
	for _, e := range p.failExpected {
		if !seen[e] {
			seen[e] = true
			expected = append(expected, e)
		}
	}
	message := fmt.Sprintf("unexpected %s (expecting %s)", found, strings.Join(expected, ", "))
	return p.report(code, message, p.cur.location(p.failOffset))
}

// Grammar = Spacing Definition { Definition } EndOfFile
func (p *parserPEGText) parse() (*grammar.Grammar, error) {
	p.parseSpacing()

	var rules []grammar.Rule
	for {
		rule, ok := p.parseDefinition()
		if !ok {
			break
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		if p.cur.atEnd() {
			return nil, p.report(
				exc.CodeEmptyGrammar,
				"a grammar must contain at least one definition",
				p.cur.location(p.cur.pos),
			)
		}
		return nil, p.reportFailure(exc.CodeUnexpectedToken)
	}
	if !p.cur.atEnd() {
		return nil, p.reportFailure(exc.CodeTrailingInput)
	}

	return &grammar.Grammar{
		URI:   p.uri,
		Rules: rules,
	}, nil
}

// Definition = Identifier LeftArrow Expression
func (p *parserPEGText) parseDefinition() (grammar.Rule, bool) {
	cp := p.cur.checkpoint()
	name := p.parseIdentifier()
	if !name.IsPresent() {
		return grammar.Rule{}, false
	}
	if !p.parseLeftArrow() {
		p.cur.restore(cp)
		return grammar.Rule{}, false
	}
	return grammar.Rule{
		Name:       name.Value(),
		Expression: p.parseExpression(),
	}, true
}

// LeftArrow = "<-" Spacing
func (p *parserPEGText) parseLeftArrow() bool {
	s := p.cur.peekString(2)
	if !s.IsPresent() || s.Value() != "<-" {
		p.fail("'<-'")
		return false
	}
	_ = p.cur.nextString(2)
	p.parseSpacing()
	return true
}

// peekLeftArrow looks for "<-" without consuming it. Primary needs this to
// tell a reference to another rule apart from the start of the next
// definition.
func (p *parserPEGText) peekLeftArrow() bool {
	s := p.cur.peekString(2)
	return s.IsPresent() && s.Value() == "<-"
}

// Expression = Sequence { "/" Spacing Sequence }
//
// The result is always a PrioritizedChoice, even over a single alternative.
// Sequence can match empty input, so Expression never fails.
func (p *parserPEGText) parseExpression() grammar.Expression {
	alternatives := []grammar.Expression{p.parseSequence()}
	for {
		r := p.cur.peek()
		if !r.IsPresent() || r.Value() != '/' {
			break
		}
		_ = p.cur.next()
		p.parseSpacing()
		alternatives = append(alternatives, p.parseSequence())
	}
	return grammar.PrioritizedChoice{Alternatives: alternatives}
}

// Sequence = { Prefix }
func (p *parserPEGText) parseSequence() grammar.Expression {
	var items []grammar.Expression
	for {
		item, ok := p.parsePrefix()
		if !ok {
			return grammar.Sequence{Items: items}
		}
		items = append(items, item)
	}
}

// Prefix = [ "&" Spacing | "!" Spacing ] Suffix
func (p *parserPEGText) parsePrefix() (grammar.Expression, bool) {
	cp := p.cur.checkpoint()
	r := p.cur.peek()
	if r.IsPresent() && (r.Value() == '&' || r.Value() == '!') {
		_ = p.cur.next()
		p.parseSpacing()
		suffix, ok := p.parseSuffix()
		if !ok {
			p.cur.restore(cp)
			return nil, false
		}
		if r.Value() == '&' {
			return grammar.AndPredicate{Inner: suffix}, true
		}
		return grammar.NotPredicate{Inner: suffix}, true
	}
	return p.parseSuffix()
}

// Suffix = Primary [ "?" Spacing | "*" Spacing | "+" Spacing ]
//
// A suffix binds tighter than a prefix, so "!x*" reads as !(x*).
func (p *parserPEGText) parseSuffix() (grammar.Expression, bool) {
	primary, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	if r := p.cur.peek(); r.IsPresent() {
		switch r.Value() {
		case '?':
			_ = p.cur.next()
			p.parseSpacing()
			return grammar.Option{Inner: primary}, true
		case '*':
			_ = p.cur.next()
			p.parseSpacing()
			return grammar.ZeroOrMore{Inner: primary}, true
		case '+':
			_ = p.cur.next()
			p.parseSpacing()
			return grammar.OneOrMore{Inner: primary}, true
		}
	}
	return primary, true
}

// Primary = Identifier !LeftArrow
//
//	| "(" Spacing Expression ")" Spacing
//	| Literal
//	| Class
//	| "." Spacing
//
// Parenthesized groups are not wrapped in a node of their own. The
// structure of the inner expression already carries the grouping.
func (p *parserPEGText) parsePrimary() (grammar.Expression, bool) {
	cp := p.cur.checkpoint()

	if name := p.parseIdentifier(); name.IsPresent() {
		if !p.peekLeftArrow() {
			return grammar.NonTerminal{Name: name.Value()}, true
		}
		p.cur.restore(cp)
	}

	if r := p.cur.peek(); r.IsPresent() && r.Value() == '(' {
		_ = p.cur.next()
		p.parseSpacing()
		inner := p.parseExpression()
		if r := p.cur.peek(); r.IsPresent() && r.Value() == ')' {
			_ = p.cur.next()
			p.parseSpacing()
			return inner, true
		}
		p.fail("')'")
		p.cur.restore(cp)
	} else {
		p.fail("'('")
	}

	if text := p.parseLiteral(); text.IsPresent() {
		return grammar.Terminal{Text: text.Value()}, true
	}

	if class := p.parseClass(); class.IsPresent() {
		return class.Value(), true
	}

	if r := p.cur.peek(); r.IsPresent() && r.Value() == '.' {
		_ = p.cur.next()
		p.parseSpacing()
		return grammar.AnyTerminal{}, true
	}
	p.fail("'.'")

	return nil, false
}
