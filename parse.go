package peg

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/pegmatic/peg/input"
)

// Parse runs the named rule once against src, starting at its current
// position. On success the semantic value is returned and src is left
// positioned just past the consumed text, so sequential parses over one
// source work. On failure src is restored to its starting position and the
// error reports the furthest position reached.
func (g *Grammar) Parse(name string, src input.Source) (any, error) {
	m, ok := g.matchers[name]
	if !ok {
		return nil, &UnresolvedRuleError{Names: []string{name}}
	}
	return run(g, m, src)
}

// ParseString runs the named rule against s.
func (g *Grammar) ParseString(name, s string) (any, error) {
	return g.Parse(name, input.String(s))
}

// ParseBytes runs the named rule against b.
func (g *Grammar) ParseBytes(name string, b []byte) (any, error) {
	return g.Parse(name, input.Bytes(b))
}

// ParseRule runs an ad-hoc rule against src. Call references within the rule
// resolve through the grammar.
func (g *Grammar) ParseRule(rule Rule, src input.Source) (any, error) {
	if err := g.resolvable(rule); err != nil {
		return nil, err
	}
	return run(g, g.compile(rule), src)
}

// ParseRule runs a self-contained rule against src without a grammar. The
// rule must not contain Call references.
func ParseRule(rule Rule, src input.Source, opts ...Option) (any, error) {
	g := &Grammar{matchers: map[string]matcher{}}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.resolvable(rule); err != nil {
		return nil, err
	}
	return run(g, g.compile(rule), src)
}

func (g *Grammar) resolvable(rule Rule) error {
	unresolved := map[string]bool{}
	for _, name := range callNames(rule) {
		if _, ok := g.matchers[name]; !ok {
			unresolved[name] = true
		}
	}
	if len(unresolved) > 0 {
		names := maps.Keys(unresolved)
		slices.Sort(names)
		return &UnresolvedRuleError{Names: names}
	}
	return nil
}

func run(g *Grammar, m matcher, src input.Source) (any, error) {
	s := newState(g, src)
	start := s.offset()
	v, err := m(s)
	if err == nil {
		return export(v), nil
	}
	if err != errNoMatch {
		return nil, err
	}
	// A stream source that hit a read error reports it in preference to the
	// match failure it caused.
	if f, ok := src.(interface{ Err() error }); ok {
		if rerr := f.Err(); rerr != nil {
			return nil, rerr
		}
	}
	off := s.failOffset
	if off < start {
		off = start
	}
	return nil, &ParseError{
		Pos:      s.position(off),
		Expected: slices.Clone(s.expected),
	}
}
