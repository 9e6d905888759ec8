// Package peg compiles parsing expression grammars into executable matchers
// and runs them against text, producing a semantic value or a positioned
// error.
//
// Grammars are built as plain data from the rule constructors in this
// package and registered by name on a Builder:
//
//	b := peg.NewBuilder()
//	b.Define("nonSpace", peg.Seq(peg.Not(peg.Char(' ')), peg.Any()))
//	b.DefineBake("word", peg.Seq(
//		peg.Plus(peg.Call("nonSpace")),
//		peg.Drop(peg.Opt(peg.Char(' '))),
//	))
//	g, err := b.Build()
//
// Build validates that every Call target is defined and lowers each rule
// into a matcher closure; the resulting Grammar is immutable and may be
// shared across concurrent parses. Rule references are resolved through the
// grammar at match time, so rules may refer to rules defined later, or to
// themselves and each other.
//
//	v, err := g.ParseString("word", "the quick brown fox")
//	// v == "the"
//
// Matching follows PEG semantics: ordered choice commits to the first
// alternative that matches, repetition is greedy and never gives matches
// back, and lookahead (Not, Peek) consumes nothing. When a parse fails, the
// returned error reports the furthest position any attempt reached, which is
// usually the most informative place to point at.
//
// A rule definition may carry an action, a Go function receiving the named
// captures accumulated during the match. The action's return value becomes
// the rule's result:
//
//	b.DefineAction("number", peg.Named("n", peg.Plus(peg.Range('0', '9'))),
//		func(c peg.Captures) (any, error) {
//			return strconv.Atoi(c.Text("n"))
//		})
//
// Without an action, a rule's value is assembled by the default combination
// rule: all-text sub-results concatenate into a string, anything structured
// collects into a []any.
package peg
