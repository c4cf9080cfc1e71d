package peg

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/pegc/internal/exc"
	"gopkg.microglot.org/pegc/internal/fs"
	"gopkg.microglot.org/pegc/internal/grammar"
)

func choiceOf(alternatives ...grammar.Expression) grammar.Expression {
	return grammar.PrioritizedChoice{Alternatives: alternatives}
}

func seqOf(items ...grammar.Expression) grammar.Expression {
	return grammar.Sequence{Items: items}
}

func testGrammar(rules ...grammar.Rule) *grammar.Grammar {
	return &grammar.Grammar{URI: "/test.peg", Rules: rules}
}

func TestParser(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected *grammar.Grammar
	}{
		{
			name:  "single terminal rule",
			input: "A <- 'x'",
			expected: testGrammar(grammar.Rule{
				Name:       "A",
				Expression: choiceOf(seqOf(grammar.Terminal{Text: "x"})),
			}),
		},
		{
			name:  "sequence binds tighter than choice",
			input: "A <- a b / c",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(
					seqOf(grammar.NonTerminal{Name: "a"}, grammar.NonTerminal{Name: "b"}),
					seqOf(grammar.NonTerminal{Name: "c"}),
				),
			}),
		},
		{
			name:  "suffix binds tighter than prefix",
			input: "A <- !'x'*",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(seqOf(grammar.NotPredicate{
					Inner: grammar.ZeroOrMore{Inner: grammar.Terminal{Text: "x"}},
				})),
			}),
		},
		{
			name:  "reference vs next definition",
			input: "A <- B\nB <- 'x'",
			expected: testGrammar(
				grammar.Rule{
					Name:       "A",
					Expression: choiceOf(seqOf(grammar.NonTerminal{Name: "B"})),
				},
				grammar.Rule{
					Name:       "B",
					Expression: choiceOf(seqOf(grammar.Terminal{Text: "x"})),
				},
			),
		},
		{
			name:  "parenthesized group",
			input: "A <- (B / C) D",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(seqOf(
					choiceOf(
						seqOf(grammar.NonTerminal{Name: "B"}),
						seqOf(grammar.NonTerminal{Name: "C"}),
					),
					grammar.NonTerminal{Name: "D"},
				)),
			}),
		},
		{
			name:  "escape decoding",
			input: `A <- '\101' / '\12'`,
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(
					seqOf(grammar.Terminal{Text: "A"}),
					seqOf(grammar.Terminal{Text: "\n"}),
				),
			}),
		},
		{
			name:  "character class",
			input: "A <- [a-z0-9_]",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(seqOf(grammar.CharacterClass{Set: grammar.Ranges{
					grammar.Range{Start: 'a', End: 'z'},
					grammar.Range{Start: '0', End: '9'},
					grammar.Range{Start: '_', End: '_'},
				}})),
			}),
		},
		{
			name:  "empty character class",
			input: "A <- []",
			expected: testGrammar(grammar.Rule{
				Name:       "A",
				Expression: choiceOf(seqOf(grammar.CharacterClass{Set: grammar.Ranges{}})),
			}),
		},
		{
			name:  "predicates and any",
			input: "A <- &B !C .",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(seqOf(
					grammar.AndPredicate{Inner: grammar.NonTerminal{Name: "B"}},
					grammar.NotPredicate{Inner: grammar.NonTerminal{Name: "C"}},
					grammar.AnyTerminal{},
				)),
			}),
		},
		{
			name:  "suffix operators",
			input: "A <- B? C* D+",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(seqOf(
					grammar.Option{Inner: grammar.NonTerminal{Name: "B"}},
					grammar.ZeroOrMore{Inner: grammar.NonTerminal{Name: "C"}},
					grammar.OneOrMore{Inner: grammar.NonTerminal{Name: "D"}},
				)),
			}),
		},
		{
			name:  "empty alternative",
			input: "A <- 'x' /",
			expected: testGrammar(grammar.Rule{
				Name: "A",
				Expression: choiceOf(
					seqOf(grammar.Terminal{Text: "x"}),
					seqOf(),
				),
			}),
		},
		{
			name:  "empty expression",
			input: "A <- ",
			expected: testGrammar(grammar.Rule{
				Name:       "A",
				Expression: choiceOf(seqOf()),
			}),
		},
		{
			name:  "comments and blank lines",
			input: "# header\n\nA <- 'x' # tail\nB <- A\n",
			expected: testGrammar(
				grammar.Rule{
					Name:       "A",
					Expression: choiceOf(seqOf(grammar.Terminal{Text: "x"})),
				},
				grammar.Rule{
					Name:       "B",
					Expression: choiceOf(seqOf(grammar.NonTerminal{Name: "A"})),
				},
			),
		},
		{
			name:  "crlf input",
			input: "A <- 'x'\r\nB <- A\r\n",
			expected: testGrammar(
				grammar.Rule{
					Name:       "A",
					Expression: choiceOf(seqOf(grammar.Terminal{Text: "x"})),
				},
				grammar.Rule{
					Name:       "B",
					Expression: choiceOf(seqOf(grammar.NonTerminal{Name: "A"})),
				},
			),
		},
		{
			name:  "multibyte terminal",
			input: "A <- '漢字'",
			expected: testGrammar(grammar.Rule{
				Name:       "A",
				Expression: choiceOf(seqOf(grammar.Terminal{Text: "漢字"})),
			}),
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		name := testCase.name
		if name == "" {
			name = testCase.input
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			input := fs.NewFileString("/test.peg", testCase.input, grammar.FileKindPEG)
			rep := exc.NewReporter(nil)
			parser := NewParserPEG(rep)
			g, err := parser.Parse(ctx, input)
			require.Nil(t, err)
			require.Equal(t, testCase.expected, g)
		})
	}
}

func TestParserFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		code  string
	}{
		{name: "empty input", input: "", code: exc.CodeEmptyGrammar},
		{name: "only spacing", input: "  \n\t# c\n", code: exc.CodeEmptyGrammar},
		{name: "missing arrow", input: "A 'x'", code: exc.CodeUnexpectedToken},
		{name: "input ends before arrow", input: "A ", code: exc.CodeUnexpectedEOF},
		{name: "lone comment without terminator", input: "# x", code: exc.CodeUnexpectedEOF},
		{
			name:  "trailing garbage",
			input: "A <- 'x' extra-garbage-not-a-rule-because-no-arrow",
			code:  exc.CodeTrailingInput,
		},
		{name: "comment at end of input", input: "A <- 'x'\n# no newline", code: exc.CodeTrailingInput},
		{name: "unterminated literal", input: "A <- 'x", code: exc.CodeTrailingInput},
		{name: "unclosed group", input: "A <- ('x'", code: exc.CodeTrailingInput},
		{name: "unclosed class", input: "A <- [a-z", code: exc.CodeTrailingInput},
		{name: "second definition malformed", input: "A <- 'x'\nB 'y'", code: exc.CodeTrailingInput},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			input := fs.NewFileString("/test.peg", testCase.input, grammar.FileKindPEG)
			rep := exc.NewReporter(nil)
			parser := NewParserPEG(rep)
			g, err := parser.Parse(ctx, input)
			require.Nil(t, g)
			require.Error(t, err)
			e, ok := err.(exc.Exception)
			require.True(t, ok)
			require.Equal(t, testCase.code, e.Code())
			require.NotEmpty(t, rep.Reported())
		})
	}
}

func TestParserFailureLocations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rep := exc.NewReporter(nil)
	parser := NewParserPEG(rep)

	// the failure is reported where the parse got stuck, not where the
	// last backtrack landed
	g, err := parser.Parse(ctx, fs.NewFileString("/test.peg", "A ", grammar.FileKindPEG))
	require.Nil(t, g)
	require.Error(t, err)
	e, ok := err.(exc.Exception)
	require.True(t, ok)
	require.Contains(t, e.Message(), "'<-'")
	require.Equal(t, "/test.peg", e.Location().URI)
	require.Equal(t, int32(1), e.Location().Line)
	require.Equal(t, int32(3), e.Location().Column)

	g, err = parser.Parse(ctx, fs.NewFileString("/test.peg", "A <- 'x'\n# no newline", grammar.FileKindPEG))
	require.Nil(t, g)
	require.Error(t, err)
	e, ok = err.(exc.Exception)
	require.True(t, ok)
	require.Contains(t, e.Message(), "end of line")
}

func TestParserUnreadableBody(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rep := exc.NewReporter(nil)
	parser := NewParserPEG(rep)

	input := fs.NewFileFN("/test.peg", func() (io.ReadCloser, error) {
		return nil, errors.New("device error")
	}, grammar.FileKindPEG)
	g, err := parser.Parse(ctx, input)
	require.Nil(t, g)
	require.Error(t, err)
	require.Len(t, rep.Reported(), 1)
	require.Equal(t, exc.CodeUnknownFatal, rep.Reported()[0].Code())
	require.Equal(t, "/test.peg", rep.Reported()[0].Location().URI)
}

// pegSelfGrammar is the PEG syntax written in itself.
const pegSelfGrammar = `Grammar <- Spacing Definition+ EndOfFile
Definition <- Identifier LEFTARROW Expression
Expression <- Sequence (SLASH Sequence)*
Sequence <- Prefix*
Prefix <- (AND / NOT)? Suffix
Suffix <- Primary (QUESTION / STAR / PLUS)?
Primary <- Identifier !LEFTARROW / OPEN Expression CLOSE / Literal / Class / DOT
Identifier <- IdentStart IdentCont* Spacing
IdentStart <- [a-zA-Z_]
IdentCont <- IdentStart / [0-9]
Literal <- ['] (!['] Char)* ['] Spacing / ["] (!["] Char)* ["] Spacing
Class <- '[' (!']' Range)* ']' Spacing
Range <- Char '-' Char / Char
Char <- '\\' [nrt'"\[\]\\] / '\\' [0-2][0-7][0-7] / '\\' [0-7][0-7]? / !'\\' .
LEFTARROW <- '<-' Spacing
SLASH <- '/' Spacing
AND <- '&' Spacing
NOT <- '!' Spacing
QUESTION <- '?' Spacing
STAR <- '*' Spacing
PLUS <- '+' Spacing
OPEN <- '(' Spacing
CLOSE <- ')' Spacing
DOT <- '.' Spacing
Spacing <- (Space / Comment)*
Comment <- '#' (!EndOfLine .)* EndOfLine
Space <- ' ' / '\t' / EndOfLine
EndOfLine <- '\r\n' / '\n' / '\r'
EndOfFile <- !.
`

func TestParserSelfGrammar(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	input := fs.NewFileString("/peg.peg", pegSelfGrammar, grammar.FileKindPEG)
	rep := exc.NewReporter(nil)
	parser := NewParserPEG(rep)
	g, err := parser.Parse(ctx, input)
	require.Nil(t, err)
	require.Len(t, g.Rules, 29)

	char, ok := g.Rule("Char")
	require.True(t, ok)
	choice, ok := char.Expression.(grammar.PrioritizedChoice)
	require.True(t, ok)
	require.Len(t, choice.Alternatives, 4)

	require.Equal(t, "Grammar", g.Rules[0].Name)
	require.Equal(t, "EndOfFile <- !.", g.Rules[28].String())
}

func TestParserRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
	}{
		{name: "terminal", input: "A <- 'x'"},
		{name: "choice of sequences", input: "A <- a b / c"},
		{name: "prefix and suffix", input: "A <- !'x'*"},
		{name: "group", input: "A <- (B / C) D"},
		{name: "predicates and any", input: "A <- &B !C ."},
		{name: "suffix operators", input: "A <- B? C* D+"},
		{name: "classes and escapes", input: `A <- [a-z0-9_] / '\n' / []`},
		{name: "empty alternative", input: "A <- 'x' /"},
		{name: "suffixed group and dash", input: "A <- ('a' / 'b')* '-'"},
		{name: "self grammar", input: pegSelfGrammar},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			rep := exc.NewReporter(nil)
			parser := NewParserPEG(rep)
			first, err := parser.Parse(ctx, fs.NewFileString("/test.peg", testCase.input, grammar.FileKindPEG))
			require.Nil(t, err)
			second, err := parser.Parse(ctx, fs.NewFileString("/test.peg", first.String(), grammar.FileKindPEG))
			require.Nil(t, err)
			require.Equal(t, first, second)
		})
	}
}

var benchParserResult *grammar.Grammar

func BenchmarkParser(b *testing.B) {
	ctx := context.Background()
	input := fs.NewFileString("/peg.peg", pegSelfGrammar, grammar.FileKindPEG)
	parser := NewParserPEG(exc.NewReporter(nil))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g, err := parser.Parse(ctx, input)
		if err != nil {
			b.Fatal(err)
		}
		benchParserResult = g
	}
}
