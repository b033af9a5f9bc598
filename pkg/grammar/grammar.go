// Package grammar describes fixed recursive-descent grammars as data so they
// can be checked once, in tests, instead of on every parser construction.
//
// A Grammar is a list of rules. Each rule has one or more alternatives and
// each alternative is a sequence of elements: a terminal token kind, a
// reference to another rule, or an optional / repeated group.
//
//	AdditionExpression := MultiplicationExpression ( (+|-) MultiplicationExpression )*
//
// is written as
//
//	grammar.NewRule("AdditionExpression",
//	    grammar.Seq(grammar.Ref("MultiplicationExpression"),
//	        grammar.Many(grammar.Tier(token.TierAddition), grammar.Ref("MultiplicationExpression"))))
//
// Validate reports undefined or unreachable rules, left recursion, and
// alternatives that one token of lookahead cannot tell apart.
package grammar

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

type elementKind int

const (
	elemToken elementKind = iota
	elemRule
	elemMany
	elemOptional
	elemChoice
)

// Element is one symbol of an alternative.
type Element struct {
	kind  elementKind
	token token.Kind
	rule  string
	group []Element
}

// Tok is a terminal element.
func Tok(k token.Kind) Element {
	return Element{kind: elemToken, token: k}
}

// OneOf is a choice of exactly one terminal.
func OneOf(kinds ...token.Kind) Element {
	alts := make([]Element, len(kinds))
	for i, k := range kinds {
		alts[i] = Tok(k)
	}
	return Element{kind: elemChoice, group: alts}
}

// Tier is a choice of every operator in the tier, matching how the parsers
// test the coarse tier instead of each operator.
func Tier(t token.Tier) Element {
	var kinds []token.Kind
	for k := token.EOF; k <= token.GT; k++ {
		if k.Tier() == t {
			kinds = append(kinds, k)
		}
	}
	return OneOf(kinds...)
}

// Ref is a reference to another rule.
func Ref(rule string) Element {
	return Element{kind: elemRule, rule: rule}
}

// Many is a group repeated zero or more times.
func Many(elems ...Element) Element {
	return Element{kind: elemMany, group: elems}
}

// Optional is a group present zero or one time.
func Optional(elems ...Element) Element {
	return Element{kind: elemOptional, group: elems}
}

// Seq builds one alternative.
func Seq(elems ...Element) []Element {
	return elems
}

func (e Element) String() string {
	switch e.kind {
	case elemToken:
		return e.token.String()
	case elemRule:
		return e.rule
	case elemMany:
		return "(" + seqString(e.group) + ")*"
	case elemChoice:
		names := make([]string, len(e.group))
		for i, g := range e.group {
			names[i] = g.String()
		}
		return "(" + strings.Join(names, "|") + ")"
	default:
		return "(" + seqString(e.group) + ")?"
	}
}

func seqString(seq []Element) string {
	parts := make([]string, len(seq))
	for i, e := range seq {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// Rule is a named production with its alternatives.
type Rule struct {
	Name         string
	Alternatives [][]Element
}

// NewRule builds a rule from its alternatives.
func NewRule(name string, alternatives ...[]Element) Rule {
	return Rule{Name: name, Alternatives: alternatives}
}

func (r Rule) String() string {
	alts := make([]string, len(r.Alternatives))
	for i, a := range r.Alternatives {
		alts[i] = seqString(a)
	}
	return r.Name + " := " + strings.Join(alts, " | ")
}

// Grammar is a set of rules with a start rule.
type Grammar struct {
	Start string
	Rules []Rule

	index    map[string]int
	nullable map[string]bool
	first    map[string]map[token.Kind]bool
}

// New builds a grammar and precomputes its nullable and FIRST sets.
func New(start string, rules ...Rule) *Grammar {
	g := &Grammar{
		Start: start,
		Rules: rules,
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		if _, dup := g.index[r.Name]; !dup {
			g.index[r.Name] = i
		}
	}
	g.computeSets()
	return g
}

// Rule returns the rule with the given name.
func (g *Grammar) Rule(name string) (Rule, bool) {
	i, ok := g.index[name]
	if !ok {
		return Rule{}, false
	}
	return g.Rules[i], true
}

// String renders the grammar one rule per line.
func (g *Grammar) String() string {
	var b strings.Builder
	for _, r := range g.Rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Nullable reports whether the rule can match without consuming a token.
func (g *Grammar) Nullable(rule string) bool {
	return g.nullable[rule]
}

// First returns the sorted set of token kinds that can start the rule.
func (g *Grammar) First(rule string) []token.Kind {
	return sortedKinds(g.first[rule])
}

func sortedKinds(set map[token.Kind]bool) []token.Kind {
	kinds := make([]token.Kind, 0, len(set))
	for k := range set {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// computeSets runs the nullable and FIRST fixed points together.
func (g *Grammar) computeSets() {
	g.nullable = make(map[string]bool, len(g.Rules))
	g.first = make(map[string]map[token.Kind]bool, len(g.Rules))
	for _, r := range g.Rules {
		g.first[r.Name] = make(map[token.Kind]bool)
	}

	for changed := true; changed; {
		changed = false
		for _, r := range g.Rules {
			for _, alt := range r.Alternatives {
				set, nullable := g.firstOfSeq(alt)
				if nullable && !g.nullable[r.Name] {
					g.nullable[r.Name] = true
					changed = true
				}
				for k := range set {
					if !g.first[r.Name][k] {
						g.first[r.Name][k] = true
						changed = true
					}
				}
			}
		}
	}
}

// firstOfSeq returns the FIRST set of a sequence and whether it is nullable.
func (g *Grammar) firstOfSeq(seq []Element) (map[token.Kind]bool, bool) {
	set := make(map[token.Kind]bool)
	for _, e := range seq {
		switch e.kind {
		case elemToken:
			set[e.token] = true
			return set, false
		case elemRule:
			for k := range g.first[e.rule] {
				set[k] = true
			}
			if !g.nullable[e.rule] {
				return set, false
			}
		case elemChoice:
			for _, alt := range e.group {
				set[alt.token] = true
			}
			return set, false
		case elemMany, elemOptional:
			inner, _ := g.firstOfSeq(e.group)
			for k := range inner {
				set[k] = true
			}
		}
	}
	return set, true
}

// Validate checks the grammar and joins every problem found.
func (g *Grammar) Validate() error {
	var errs []error

	seen := make(map[string]bool)
	for _, r := range g.Rules {
		if seen[r.Name] {
			errs = append(errs, fmt.Errorf("rule %s is defined more than once", r.Name))
		}
		seen[r.Name] = true
		if len(r.Alternatives) == 0 {
			errs = append(errs, fmt.Errorf("rule %s has no alternatives", r.Name))
		}
	}

	if _, ok := g.index[g.Start]; !ok {
		errs = append(errs, fmt.Errorf("start rule %s is not defined", g.Start))
		return errors.Join(errs...)
	}

	errs = append(errs, g.checkReferences()...)
	if len(errs) > 0 {
		// Reachability and recursion checks assume every reference resolves.
		return errors.Join(errs...)
	}

	errs = append(errs, g.checkReachable()...)
	errs = append(errs, g.checkLeftRecursion()...)
	errs = append(errs, g.checkLookahead()...)
	return errors.Join(errs...)
}

func (g *Grammar) checkReferences() []error {
	var errs []error
	for _, r := range g.Rules {
		g.walkRefs(r, func(ref string) {
			if _, ok := g.index[ref]; !ok {
				errs = append(errs, fmt.Errorf("rule %s references undefined rule %s", r.Name, ref))
			}
		})
	}
	return errs
}

func (g *Grammar) walkRefs(r Rule, fn func(string)) {
	var walk func(seq []Element)
	walk = func(seq []Element) {
		for _, e := range seq {
			switch e.kind {
			case elemRule:
				fn(e.rule)
			case elemMany, elemOptional:
				walk(e.group)
			}
		}
	}
	for _, alt := range r.Alternatives {
		walk(alt)
	}
}

func (g *Grammar) checkReachable() []error {
	reached := map[string]bool{g.Start: true}
	queue := []string{g.Start}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		r, _ := g.Rule(name)
		g.walkRefs(r, func(ref string) {
			if !reached[ref] {
				reached[ref] = true
				queue = append(queue, ref)
			}
		})
	}

	var errs []error
	for _, r := range g.Rules {
		if !reached[r.Name] {
			errs = append(errs, fmt.Errorf("rule %s is unreachable from %s", r.Name, g.Start))
		}
	}
	return errs
}

// leftmost collects the rules that can be entered before any token is
// consumed at the start of seq.
func (g *Grammar) leftmost(seq []Element, fn func(string)) {
	for _, e := range seq {
		switch e.kind {
		case elemToken, elemChoice:
			return
		case elemRule:
			fn(e.rule)
			if !g.nullable[e.rule] {
				return
			}
		case elemMany, elemOptional:
			g.leftmost(e.group, fn)
		}
	}
}

func (g *Grammar) checkLeftRecursion() []error {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(g.Rules))
	var errs []error
	var path []string

	var visit func(name string)
	visit = func(name string) {
		color[name] = grey
		path = append(path, name)
		r, _ := g.Rule(name)
		for _, alt := range r.Alternatives {
			g.leftmost(alt, func(next string) {
				switch color[next] {
				case grey:
					start := slices.Index(path, next)
					cycle := append(slices.Clone(path[start:]), next)
					errs = append(errs, fmt.Errorf("left recursion: %s", strings.Join(cycle, " -> ")))
				case white:
					visit(next)
				}
			})
		}
		path = path[:len(path)-1]
		color[name] = black
	}

	for _, r := range g.Rules {
		if color[r.Name] == white {
			visit(r.Name)
		}
	}
	return errs
}

// checkLookahead verifies a single token decides between alternatives and
// between entering or skipping a group.
func (g *Grammar) checkLookahead() []error {
	var errs []error
	for _, r := range g.Rules {
		if len(r.Alternatives) > 1 {
			owner := make(map[token.Kind]int)
			for i, alt := range r.Alternatives {
				set, nullable := g.firstOfSeq(alt)
				if nullable {
					errs = append(errs, fmt.Errorf("rule %s: alternative %d can match nothing", r.Name, i+1))
				}
				for _, k := range sortedKinds(set) {
					if j, taken := owner[k]; taken {
						errs = append(errs, fmt.Errorf("rule %s: alternatives %d and %d both start with %s", r.Name, j+1, i+1, k))
						continue
					}
					owner[k] = i
				}
			}
		}

		var checkGroups func(seq []Element)
		checkGroups = func(seq []Element) {
			for _, e := range seq {
				if e.kind == elemMany || e.kind == elemOptional {
					if _, nullable := g.firstOfSeq(e.group); nullable {
						errs = append(errs, fmt.Errorf("rule %s: group %s can match nothing", r.Name, e))
					}
					checkGroups(e.group)
				}
			}
		}
		for _, alt := range r.Alternatives {
			checkGroups(alt)
		}
	}
	return errs
}
