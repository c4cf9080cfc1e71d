package grammar

import (
	"fmt"
	"strings"
)

// Grammar is the parsed form of one PEG source file.
type Grammar struct {
	URI   string
	Rules []Rule
}

// Rule returns the first rule with the given name, if any. This is a
// structural lookup only. References inside expressions are never resolved
// against the rule set.
func (self *Grammar) Rule(name string) (Rule, bool) {
	for _, r := range self.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// String renders the grammar in source form, one definition per line.
// Parsing the rendered text again produces a structurally identical
// grammar.
func (self *Grammar) String() string {
	var b strings.Builder
	for _, r := range self.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Rule is a single named definition. The order of rules in Grammar.Rules is
// the order of definitions in the source, which by convention determines
// the start rule.
type Rule struct {
	Name       string
	Expression Expression
}

func (self Rule) String() string {
	return self.Name + " <- " + self.Expression.String()
}

// Rendering precedence, loosest first. A child expression is parenthesized
// when it binds looser than the position it appears in, and only then, so
// that rendering and re-parsing preserves structure.
const (
	precChoice = iota
	precSequence
	precPrefix
	precSuffix
	precPrimary
)

func precedenceOf(e Expression) int {
	switch e.(type) {
	case PrioritizedChoice:
		return precChoice
	case Sequence:
		return precSequence
	case AndPredicate, NotPredicate:
		return precPrefix
	case ZeroOrMore, OneOrMore, Option:
		return precSuffix
	}
	return precPrimary
}

func render(e Expression, min int) string {
	if precedenceOf(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Expression is one node of a parsing expression. The set of
// implementations is closed: Terminal, NonTerminal, Sequence,
// PrioritizedChoice, ZeroOrMore, OneOrMore, Option, AndPredicate,
// NotPredicate, AnyTerminal, and CharacterClass. Nodes are immutable once
// constructed and hold no references back to their parent or to any parser
// state.
type Expression interface {
	fmt.Stringer
	expression()
}

// Terminal matches a literal string.
type Terminal struct {
	Text string
}

func (self Terminal) String() string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, c := range self.Text {
		b.WriteString(escapeChar(c, '\''))
	}
	b.WriteByte('\'')
	return b.String()
}

// NonTerminal references another rule by name. The name is a plain string,
// never a resolved link.
type NonTerminal struct {
	Name string
}

func (self NonTerminal) String() string {
	return self.Name
}

// Sequence matches each item in order. An empty Sequence is the empty
// match, which always succeeds. Item order is load-bearing.
type Sequence struct {
	Items []Expression
}

func (self Sequence) String() string {
	parts := make([]string, 0, len(self.Items))
	for _, item := range self.Items {
		parts = append(parts, render(item, precPrefix))
	}
	return strings.Join(parts, " ")
}

// PrioritizedChoice matches the first alternative that succeeds, in order.
// It always holds at least one alternative.
type PrioritizedChoice struct {
	Alternatives []Expression
}

func (self PrioritizedChoice) String() string {
	parts := make([]string, 0, len(self.Alternatives))
	for _, alt := range self.Alternatives {
		parts = append(parts, render(alt, precSequence))
	}
	return strings.Join(parts, " / ")
}

type ZeroOrMore struct {
	Inner Expression
}

func (self ZeroOrMore) String() string {
	return render(self.Inner, precPrimary) + "*"
}

type OneOrMore struct {
	Inner Expression
}

func (self OneOrMore) String() string {
	return render(self.Inner, precPrimary) + "+"
}

type Option struct {
	Inner Expression
}

func (self Option) String() string {
	return render(self.Inner, precPrimary) + "?"
}

// AndPredicate succeeds when the inner expression would match, without
// consuming input.
type AndPredicate struct {
	Inner Expression
}

func (self AndPredicate) String() string {
	return "&" + render(self.Inner, precSuffix)
}

// NotPredicate succeeds when the inner expression would not match, without
// consuming input.
type NotPredicate struct {
	Inner Expression
}

func (self NotPredicate) String() string {
	return "!" + render(self.Inner, precSuffix)
}

// AnyTerminal matches exactly one arbitrary character.
type AnyTerminal struct{}

func (self AnyTerminal) String() string {
	return "."
}

// CharacterClass matches one character against a set.
type CharacterClass struct {
	Set CharSet
}

func (self CharacterClass) String() string {
	return self.Set.String()
}

// escapeChar renders a single character the way the PEG syntax writes it,
// escaping the given quote character, backslash, and the named control
// characters. Anything else non-printable is written as a 3-digit octal
// escape. Used for debug rendering only.
func escapeChar(c rune, quote rune) string {
	switch c {
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case '\\':
		return `\\`
	case quote:
		return `\` + string(quote)
	}
	if c < 0x20 || c == 0x7F {
		return fmt.Sprintf(`\%03o`, c)
	}
	return string(c)
}

func (Terminal) expression()          {}
func (NonTerminal) expression()       {}
func (Sequence) expression()          {}
func (PrioritizedChoice) expression() {}
func (ZeroOrMore) expression()        {}
func (OneOrMore) expression()         {}
func (Option) expression()            {}
func (AndPredicate) expression()      {}
func (NotPredicate) expression()      {}
func (AnyTerminal) expression()       {}
func (CharacterClass) expression()    {}
