// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package grammar

import (
	"fmt"
	"io"
	"strings"
)

// Pretty writes an indented tree rendering of the grammar, one block per
// rule. The format is a human debug aid and is not stable output.
func Pretty(w io.Writer, g *Grammar) {
	if g.URI != "" {
		fmt.Fprintf(w, "%s\n", g.URI)
	}
	for _, rule := range g.Rules {
		PrettyRule(w, rule)
	}
}

// PrettyRule writes an indented tree rendering of a single rule.
func PrettyRule(w io.Writer, rule Rule) {
	fmt.Fprintf(w, "%s\n", rule.Name)
	prettyExpr(w, rule.Expression, 1)
}

func prettyExpr(w io.Writer, expr Expression, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := expr.(type) {
	case Terminal:
		fmt.Fprintf(w, "%sterminal %s\n", indent, e.String())
	case NonTerminal:
		fmt.Fprintf(w, "%snon-terminal %s\n", indent, e.Name)
	case Sequence:
		fmt.Fprintf(w, "%ssequence\n", indent)
		for _, item := range e.Items {
			prettyExpr(w, item, depth+1)
		}
	case PrioritizedChoice:
		fmt.Fprintf(w, "%schoice\n", indent)
		for _, alt := range e.Alternatives {
			prettyExpr(w, alt, depth+1)
		}
	case ZeroOrMore:
		fmt.Fprintf(w, "%szero-or-more\n", indent)
		prettyExpr(w, e.Inner, depth+1)
	case OneOrMore:
		fmt.Fprintf(w, "%sone-or-more\n", indent)
		prettyExpr(w, e.Inner, depth+1)
	case Option:
		fmt.Fprintf(w, "%soption\n", indent)
		prettyExpr(w, e.Inner, depth+1)
	case AndPredicate:
		fmt.Fprintf(w, "%sand-predicate\n", indent)
		prettyExpr(w, e.Inner, depth+1)
	case NotPredicate:
		fmt.Fprintf(w, "%snot-predicate\n", indent)
		prettyExpr(w, e.Inner, depth+1)
	case AnyTerminal:
		fmt.Fprintf(w, "%sany\n", indent)
	case CharacterClass:
		fmt.Fprintf(w, "%sclass %s\n", indent, e.Set.String())
	default:
		fmt.Fprintf(w, "%s%s\n", indent, expr.String())
	}
}
