package peg

import (
	"fmt"
	"strconv"
	"strings"
)

// A Rule is one node of a parsing expression. Rules are immutable pure data;
// build them with the constructors in this package and register them with a
// Builder, or run Call-free rules directly with ParseRule.
type Rule interface {
	fmt.Stringer
	// children returns the direct sub-rules, for traversal.
	children() []Rule
}

type epsilon struct{}

func (epsilon) children() []Rule { return nil }
func (epsilon) String() string   { return "ε" }

// Epsilon matches nothing and always succeeds with the empty sequence.
func Epsilon() Rule { return epsilon{} }

type char struct{ r rune }

func (char) children() []Rule { return nil }
func (c char) String() string { return strconv.Quote(string(c.r)) }

// Char matches exactly the rune r.
func Char(r rune) Rule { return char{r} }

type anyChar struct{}

func (anyChar) children() []Rule { return nil }
func (anyChar) String() string   { return "." }

// Any matches any single rune. It fails only at end of input.
func Any() Rule { return anyChar{} }

type charRange struct{ lo, hi rune }

func (charRange) children() []Rule { return nil }
func (c charRange) String() string { return fmt.Sprintf("[%c-%c]", c.lo, c.hi) }

// Range matches a single rune in the inclusive range [lo, hi].
func Range(lo, hi rune) Rule { return charRange{lo, hi} }

type literal struct{ s string }

func (literal) children() []Rule { return nil }
func (l literal) String() string { return strconv.Quote(l.s) }

// Literal matches the string s exactly.
func Literal(s string) Rule { return literal{s} }

type seq struct{ rules []Rule }

func (s seq) children() []Rule { return s.rules }
func (s seq) String() string   { return "(" + joinRules(s.rules, " ") + ")" }

// Seq matches each rule in order, failing (and consuming nothing) if any
// element fails. Its value is the combination of the element values.
func Seq(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return seq{rules}
}

type choice struct{ rules []Rule }

func (c choice) children() []Rule { return c.rules }
func (c choice) String() string   { return "(" + joinRules(c.rules, " / ") + ")" }

// Choice tries each alternative in order and commits to the first that
// matches. The cursor is restored between attempts.
func Choice(rules ...Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return choice{rules}
}

type star struct{ rule Rule }

func (s star) children() []Rule { return []Rule{s.rule} }
func (s star) String() string   { return s.rule.String() + "*" }

// Star matches rule zero or more times, greedily. It always succeeds.
// Multiple arguments are wrapped in an implicit Seq.
func Star(rules ...Rule) Rule { return star{Seq(rules...)} }

type plus struct{ rule Rule }

func (p plus) children() []Rule { return []Rule{p.rule} }
func (p plus) String() string   { return p.rule.String() + "+" }

// Plus matches rule one or more times, greedily.
// Multiple arguments are wrapped in an implicit Seq.
func Plus(rules ...Rule) Rule { return plus{Seq(rules...)} }

type opt struct{ rule Rule }

func (o opt) children() []Rule { return []Rule{o.rule} }
func (o opt) String() string   { return o.rule.String() + "?" }

// Opt matches rule zero or one time and always succeeds, yielding the empty
// sequence when the rule is absent.
// Multiple arguments are wrapped in an implicit Seq.
func Opt(rules ...Rule) Rule { return opt{Seq(rules...)} }

type optFlag struct{ rule Rule }

func (o optFlag) children() []Rule { return []Rule{o.rule} }
func (o optFlag) String() string   { return o.rule.String() + "?!" }

// OptFlag is Opt with a distinguishable absence: when the rule does not
// match, the value is the False sentinel rather than the empty sequence, so
// "present but empty" and "absent" remain observable.
// Multiple arguments are wrapped in an implicit Seq.
func OptFlag(rules ...Rule) Rule { return optFlag{Seq(rules...)} }

type call struct{ name string }

func (call) children() []Rule { return nil }
func (c call) String() string { return c.name }

// Call references the named rule in the enclosing grammar. References are
// resolved at match time, so forward and mutually recursive definitions
// work.
func Call(name string) Rule { return call{name} }

type named struct {
	name string
	rule Rule
}

func (n named) children() []Rule { return []Rule{n.rule} }
func (n named) String() string   { return n.name + ":" + n.rule.String() }

// Named matches rule and, on success, binds its value to name in the
// current capture scope. The value itself passes through unchanged.
// Multiple rule arguments are wrapped in an implicit Seq.
func Named(name string, rules ...Rule) Rule { return named{name, Seq(rules...)} }

type not struct{ rule Rule }

func (n not) children() []Rule { return []Rule{n.rule} }
func (n not) String() string   { return "!" + n.rule.String() }

// Not is negative lookahead: it succeeds only if rule fails at the current
// position, and never consumes input.
// Multiple arguments are wrapped in an implicit Seq.
func Not(rules ...Rule) Rule { return not{Seq(rules...)} }

type peekRule struct{ rule Rule }

func (p peekRule) children() []Rule { return []Rule{p.rule} }
func (p peekRule) String() string   { return "&" + p.rule.String() }

// Peek is positive lookahead: it succeeds only if rule matches at the
// current position, but consumes nothing either way.
// Multiple arguments are wrapped in an implicit Seq.
func Peek(rules ...Rule) Rule { return peekRule{Seq(rules...)} }

type drop struct{ rule Rule }

func (d drop) children() []Rule { return []Rule{d.rule} }
func (d drop) String() string   { return "~" + d.rule.String() }

// Drop matches rule but discards its value, contributing nothing to the
// enclosing combination. Consumption and failure behave exactly as for the
// rule alone.
// Multiple arguments are wrapped in an implicit Seq.
func Drop(rules ...Rule) Rule { return drop{Seq(rules...)} }

func joinRules(rules []Rule, sep string) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, sep)
}

// visit walks r and its sub-rules depth first.
func visit(r Rule, f func(Rule)) {
	f(r)
	for _, c := range r.children() {
		visit(c, f)
	}
}

// callNames collects the names of all Call nodes reachable within r.
func callNames(r Rule) []string {
	var names []string
	visit(r, func(r Rule) {
		if c, ok := r.(call); ok {
			names = append(names, c.name)
		}
	})
	return names
}
