package peg

import (
	"errors"
	"io"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type definition struct {
	name   string
	rule   Rule
	action Action
}

// A Builder accumulates named rule definitions for a Grammar. Definition
// order does not matter: rules may reference rules defined later. Build
// validates and compiles the whole set.
type Builder struct {
	defs map[string]*definition
	opts []Option
	errs []error
}

// NewBuilder returns an empty Builder. Options apply to the built Grammar.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{defs: map[string]*definition{}, opts: opts}
}

// Define registers a rule under name. Multiple rules are wrapped in an
// implicit Seq. Without an action, the rule's value is its combinator
// result.
func (b *Builder) Define(name string, rules ...Rule) {
	b.define(name, Seq(rules...), nil)
}

// DefineAction registers a rule whose value is computed by action from the
// captures bound during the match.
func (b *Builder) DefineAction(name string, rule Rule, action Action) {
	b.define(name, rule, action)
}

// DefineDrop registers a rule that consumes input but contributes no value,
// for delimiters and whitespace.
func (b *Builder) DefineDrop(name string, rules ...Rule) {
	b.define(name, Drop(Seq(rules...)), nil)
}

// DefineBake registers a rule whose value is exactly its body's result,
// forced through as-is: matched text surfaces as a single string and is not
// merged into surrounding text by the enclosing rule's combination.
func (b *Builder) DefineBake(name string, rules ...Rule) {
	b.define(name, Named(name, Seq(rules...)), func(c Captures) (any, error) {
		v, _ := c.Get(name)
		return v, nil
	})
}

// DefineTag registers a rule whose value is the pair [name, body value],
// for building labeled AST nodes.
func (b *Builder) DefineTag(name string, rules ...Rule) {
	b.define(name, Named(name, Seq(rules...)), func(c Captures) (any, error) {
		v, _ := c.Get(name)
		return []any{name, v}, nil
	})
}

func (b *Builder) define(name string, rule Rule, action Action) {
	if _, ok := b.defs[name]; ok {
		b.errs = append(b.errs, &RedefinedRuleError{Name: name})
		return
	}
	b.defs[name] = &definition{name: name, rule: rule, action: action}
}

// Build validates the rule set and compiles every rule into a matcher. Every
// Call must reference a defined name; unresolved references fail the build
// before any parsing can occur. The returned Grammar is immutable and safe
// to share between concurrent parses.
func (b *Builder) Build() (*Grammar, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	unresolved := map[string]bool{}
	for _, d := range b.defs {
		for _, name := range callNames(d.rule) {
			if _, ok := b.defs[name]; !ok {
				unresolved[name] = true
			}
		}
	}
	if len(unresolved) > 0 {
		names := maps.Keys(unresolved)
		slices.Sort(names)
		return nil, &UnresolvedRuleError{Names: names}
	}
	g := &Grammar{
		defs:     b.defs,
		matchers: make(map[string]matcher, len(b.defs)),
	}
	for _, opt := range b.opts {
		opt(g)
	}
	for name, d := range b.defs {
		g.matchers[name] = g.compileDef(d)
	}
	return g, nil
}

// Must takes the result of Build and panics if it errored.
//
//	g := peg.Must(b.Build())
func Must(g *Grammar, err error) *Grammar {
	if err != nil {
		panic(err)
	}
	return g
}

// A Grammar is a compiled, immutable set of named rules. A single Grammar
// may be used by any number of concurrent parses; each parse gets its own
// state.
type Grammar struct {
	defs     map[string]*definition
	matchers map[string]matcher

	trace    io.Writer
	logger   hclog.Logger
	maxDepth int
}

// Rule returns the rule registered under name.
func (g *Grammar) Rule(name string) (Rule, bool) {
	d, ok := g.defs[name]
	if !ok {
		return nil, false
	}
	return d.rule, true
}

// Rules returns the sorted names of all defined rules.
func (g *Grammar) Rules() []string {
	names := maps.Keys(g.defs)
	slices.Sort(names)
	return names
}
