package peg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pegmatic/peg/input"
)

// Error is implemented by all errors produced by this package.
//
// The error will contain positional information if available.
type Error interface {
	error
	// Unadorned message.
	Message() string
	// Position the error occurred at.
	Position() input.Position
}

// errNoMatch is the internal control signal that drives backtracking: a rule
// could not match at the current position. It is recovered at every
// combinator boundary that tolerates failure and never escapes a parse call;
// the entry point converts it into a *ParseError.
var errNoMatch = errors.New("no match")

// ParseError is returned when the outermost rule of a parse fails. It points
// at the furthest position any match attempt reached across the entire
// parse, including attempts inside abandoned Choice branches, as that is
// usually the most informative place to report.
type ParseError struct {
	Pos      input.Position
	Expected []string
}

func (p *ParseError) Message() string {
	if len(p.Expected) == 0 {
		return "no match"
	}
	return "expected " + strings.Join(p.Expected, " or ")
}

func (p *ParseError) Position() input.Position { return p.Pos }

func (p *ParseError) Error() string { return input.FormatError(p.Pos, p.Message()) }

// UnresolvedRuleError is returned by Build when a Call references a name
// with no definition, and by Parse when the requested rule does not exist.
type UnresolvedRuleError struct {
	Names []string
}

func (u *UnresolvedRuleError) Message() string {
	return fmt.Sprintf("unresolved rule reference %s", strings.Join(u.Names, ", "))
}

func (u *UnresolvedRuleError) Position() input.Position { return input.Position{} }

func (u *UnresolvedRuleError) Error() string { return u.Message() }

// RedefinedRuleError is returned by Build when the same name is defined
// twice.
type RedefinedRuleError struct {
	Name string
}

func (r *RedefinedRuleError) Message() string {
	return fmt.Sprintf("rule %q defined twice", r.Name)
}

func (r *RedefinedRuleError) Position() input.Position { return input.Position{} }

func (r *RedefinedRuleError) Error() string { return r.Message() }

// ActionError wraps an error returned, or panic raised, by a user action.
// It aborts the parse immediately, bypassing backtracking: no enclosing
// Choice, Opt or Not will recover it.
type ActionError struct {
	Rule string
	Pos  input.Position
	Err  error
}

func (a *ActionError) Message() string {
	return fmt.Sprintf("action for rule %q: %s", a.Rule, a.Err)
}

func (a *ActionError) Position() input.Position { return a.Pos }

func (a *ActionError) Error() string { return input.FormatError(a.Pos, a.Message()) }

func (a *ActionError) Unwrap() error { return a.Err }

// RecursionError is returned when a parse exceeds the depth configured with
// MaxDepth, which usually indicates an unguarded (e.g. left-) recursive
// grammar.
type RecursionError struct {
	Rule  string
	Pos   input.Position
	Depth int
}

func (r *RecursionError) Message() string {
	return fmt.Sprintf("rule %q exceeded maximum recursion depth %d", r.Rule, r.Depth)
}

func (r *RecursionError) Position() input.Position { return r.Pos }

func (r *RecursionError) Error() string { return input.FormatError(r.Pos, r.Message()) }

// panicValue carries a non-error action panic through an ActionError.
type panicValue struct {
	v any
}

func (p *panicValue) Error() string { return fmt.Sprintf("panic: %v", p.v) }
