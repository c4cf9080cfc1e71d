package grammar

// Walk visits expr and every expression nested inside it, depth first,
// parents before children. Sequence items and choice alternatives are
// visited in source order.
func Walk(expr Expression, f func(Expression)) {
	f(expr)
	switch e := expr.(type) {
	case Sequence:
		for _, item := range e.Items {
			Walk(item, f)
		}
	case PrioritizedChoice:
		for _, alt := range e.Alternatives {
			Walk(alt, f)
		}
	case ZeroOrMore:
		Walk(e.Inner, f)
	case OneOrMore:
		Walk(e.Inner, f)
	case Option:
		Walk(e.Inner, f)
	case AndPredicate:
		Walk(e.Inner, f)
	case NotPredicate:
		Walk(e.Inner, f)
	}
}

// WalkRule visits every expression in the rule's definition.
func WalkRule(rule Rule, f func(Expression)) {
	Walk(rule.Expression, f)
}

// WalkGrammar visits every expression of every rule, in rule order.
func WalkGrammar(g *Grammar, f func(Expression)) {
	for _, rule := range g.Rules {
		Walk(rule.Expression, f)
	}
}
