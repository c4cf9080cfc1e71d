package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpressionString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		expr Expression
		want string
	}{
		{name: "terminal", expr: Terminal{Text: "x"}, want: "'x'"},
		{name: "terminal with escapes", expr: Terminal{Text: "a\nb'c"}, want: `'a\nb\'c'`},
		{name: "terminal with control char", expr: Terminal{Text: "\x1f"}, want: `'\037'`},
		{name: "non-terminal", expr: NonTerminal{Name: "Rule1"}, want: "Rule1"},
		{name: "any", expr: AnyTerminal{}, want: "."},
		{name: "empty sequence", expr: Sequence{}, want: ""},
		{
			name: "sequence",
			expr: Sequence{Items: []Expression{
				NonTerminal{Name: "a"},
				NonTerminal{Name: "b"},
			}},
			want: "a b",
		},
		{
			name: "choice",
			expr: PrioritizedChoice{Alternatives: []Expression{
				Sequence{Items: []Expression{NonTerminal{Name: "a"}}},
				Sequence{Items: []Expression{NonTerminal{Name: "b"}}},
			}},
			want: "a / b",
		},
		{
			name: "choice nested in a sequence is grouped",
			expr: Sequence{Items: []Expression{
				PrioritizedChoice{Alternatives: []Expression{
					Sequence{Items: []Expression{NonTerminal{Name: "a"}}},
					Sequence{Items: []Expression{NonTerminal{Name: "b"}}},
				}},
				NonTerminal{Name: "c"},
			}},
			want: "(a / b) c",
		},
		{
			name: "suffix binds tighter than prefix",
			expr: NotPredicate{Inner: ZeroOrMore{Inner: Terminal{Text: "x"}}},
			want: "!'x'*",
		},
		{
			name: "prefix under a suffix is grouped",
			expr: ZeroOrMore{Inner: NotPredicate{Inner: Terminal{Text: "x"}}},
			want: "(!'x')*",
		},
		{name: "option", expr: Option{Inner: NonTerminal{Name: "B"}}, want: "B?"},
		{
			name: "one or more over a class",
			expr: OneOrMore{Inner: CharacterClass{Set: Ranges{Range{Start: 'a', End: 'z'}}}},
			want: "[a-z]+",
		},
		{
			name: "and predicate over a group",
			expr: AndPredicate{Inner: PrioritizedChoice{Alternatives: []Expression{
				Sequence{Items: []Expression{NonTerminal{Name: "a"}}},
				Sequence{Items: []Expression{NonTerminal{Name: "b"}}},
			}}},
			want: "&(a / b)",
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, testCase.want, testCase.expr.String())
		})
	}
}

func TestRuleString(t *testing.T) {
	t.Parallel()

	rule := Rule{
		Name: "A",
		Expression: PrioritizedChoice{Alternatives: []Expression{
			Sequence{Items: []Expression{Terminal{Text: "x"}}},
			Sequence{Items: []Expression{NonTerminal{Name: "B"}}},
		}},
	}
	require.Equal(t, "A <- 'x' / B", rule.String())
}

func TestGrammarString(t *testing.T) {
	t.Parallel()

	g := &Grammar{
		URI: "/test.peg",
		Rules: []Rule{
			{
				Name: "A",
				Expression: PrioritizedChoice{Alternatives: []Expression{
					Sequence{Items: []Expression{Terminal{Text: "x"}}},
				}},
			},
			{
				Name: "B",
				Expression: PrioritizedChoice{Alternatives: []Expression{
					Sequence{Items: []Expression{NonTerminal{Name: "A"}}},
				}},
			},
		},
	}
	require.Equal(t, "A <- 'x'\nB <- A\n", g.String())
}

func TestGrammarRuleLookup(t *testing.T) {
	t.Parallel()

	g := &Grammar{
		Rules: []Rule{
			{Name: "A", Expression: Terminal{Text: "first"}},
			{Name: "B", Expression: Terminal{Text: "b"}},
			{Name: "A", Expression: Terminal{Text: "second"}},
		},
	}

	rule, ok := g.Rule("B")
	require.True(t, ok)
	require.Equal(t, "B", rule.Name)

	// duplicates are legal structure and lookup returns the first one
	rule, ok = g.Rule("A")
	require.True(t, ok)
	require.Equal(t, Terminal{Text: "first"}, rule.Expression)

	_, ok = g.Rule("Missing")
	require.False(t, ok)
}
