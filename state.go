package peg

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/exp/slices"

	"github.com/pegmatic/peg/input"
)

// Failure descriptions accumulated at the furthest offset are capped so a
// grammar with many alternatives cannot bloat the error.
const maxExpected = 4

// state is the register set of a single parse invocation: the input cursor,
// the furthest-failure tracker and the capture scope stack. A state is never
// shared between parses or goroutines.
type state struct {
	src input.Source
	g   *Grammar

	// Furthest offset at which any match attempt failed, with descriptions
	// of what was expected there. Monotonic: failures recovered by Choice,
	// Opt or Not still advance it.
	failOffset int
	expected   []string

	scopes []scope
	depth  int

	trace  io.Writer
	logger hclog.Logger
	indent int
}

type binding struct {
	name  string
	value any
}

type scope struct {
	bindings []binding
}

func newState(g *Grammar, src input.Source) *state {
	s := &state{
		src:        src,
		g:          g,
		failOffset: -1,
		scopes:     make([]scope, 1, 8),
	}
	if g != nil {
		s.trace = g.trace
		s.logger = g.logger
	}
	return s
}

// A mark snapshots the cursor and the current scope's binding count so a
// combinator can abandon an attempt without leaking consumption or captures.
type mark struct {
	pos   input.Pos
	binds int
}

func (s *state) mark() mark {
	return mark{pos: s.src.Mark(), binds: len(s.top().bindings)}
}

func (s *state) restore(m mark) {
	s.src.Reset(m.pos)
	top := s.top()
	if len(top.bindings) > m.binds {
		top.bindings = top.bindings[:m.binds]
	}
}

func (s *state) offset() int { return s.src.Mark().Offset }

// fail records a match failure at the current offset for error reporting.
func (s *state) fail(expected string) {
	off := s.offset()
	if off > s.failOffset {
		s.failOffset = off
		s.expected = append(s.expected[:0], expected)
		return
	}
	if off == s.failOffset && len(s.expected) < maxExpected && !slices.Contains(s.expected, expected) {
		s.expected = append(s.expected, expected)
	}
}

// position translates a byte offset through the source's Locator when it has
// one.
func (s *state) position(offset int) input.Position {
	if loc, ok := s.src.(input.Locator); ok {
		return loc.Locate(offset)
	}
	return input.Position{Offset: offset}
}

func (s *state) top() *scope { return &s.scopes[len(s.scopes)-1] }

func (s *state) bind(name string, value any) {
	top := s.top()
	top.bindings = append(top.bindings, binding{name, value})
}

// lookup finds the most recent binding for name, innermost scope first.
func (s *state) lookup(name string) (any, bool) {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		bs := s.scopes[i].bindings
		for j := len(bs) - 1; j >= 0; j-- {
			if bs[j].name == name {
				return bs[j].value, true
			}
		}
	}
	return nil, false
}

// enter begins a named rule invocation: depth accounting and a fresh capture
// scope.
func (s *state) enter(name string) error {
	if s.g != nil && s.g.maxDepth > 0 && s.depth >= s.g.maxDepth {
		return &RecursionError{Rule: name, Pos: s.position(s.offset()), Depth: s.depth}
	}
	s.depth++
	s.scopes = append(s.scopes, scope{})
	if s.trace != nil {
		fmt.Fprintf(s.trace, "%*s%s @ %d\n", s.indent*2, "", name, s.offset())
		s.indent++
	}
	if s.logger != nil {
		s.logger.Trace("enter rule", "rule", name, "offset", s.offset())
	}
	return nil
}

func (s *state) leave(name string, matched bool) {
	s.scopes = s.scopes[:len(s.scopes)-1]
	s.depth--
	if s.trace != nil {
		s.indent--
		outcome := "match"
		if !matched {
			outcome = "fail"
		}
		fmt.Fprintf(s.trace, "%*s%s -> %s @ %d\n", s.indent*2, "", name, outcome, s.offset())
	}
	if s.logger != nil {
		s.logger.Trace("leave rule", "rule", name, "matched", matched, "offset", s.offset())
	}
}
