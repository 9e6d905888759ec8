package peg

import "strconv"

// A matcher runs one rule against the parse state. On success it returns the
// rule's value with the cursor advanced past the consumed input. On failure
// it returns errNoMatch with the cursor restored to where it was on entry.
// Any other error is fatal and aborts the parse without further
// backtracking.
type matcher func(s *state) (any, error)

// compileDef lowers a rule definition into its matcher: the compiled body
// wrapped with capture scoping and the definition's action, if any.
func (g *Grammar) compileDef(d *definition) matcher {
	body := g.compile(d.rule)
	return func(s *state) (any, error) {
		entry := s.src.Mark()
		if err := s.enter(d.name); err != nil {
			return nil, err
		}
		v, err := body(s)
		if err == nil && d.action != nil {
			v, err = s.runAction(d, entry.Offset)
		}
		s.leave(d.name, err == nil)
		if err != nil {
			// Restore on every exit path, fatal action errors included.
			s.src.Reset(entry)
			return nil, err
		}
		return v, nil
	}
}

// runAction invokes a user action with the current capture environment. An
// error return or panic becomes an ActionError, which aborts the parse
// immediately: it is never converted into an ordinary match failure.
func (s *state) runAction(d *definition, offset int) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			cause, ok := r.(error)
			if !ok {
				cause = &panicValue{r}
			}
			err = &ActionError{Rule: d.name, Pos: s.position(offset), Err: cause}
		}
	}()
	v, err = d.action(Captures{s})
	if err != nil {
		err = &ActionError{Rule: d.name, Pos: s.position(offset), Err: err}
	}
	return v, err
}

// compile lowers a rule AST into a matcher closed over the grammar. Call
// references are resolved through the grammar's matcher table at match time,
// which is what makes forward and mutual recursion work.
func (g *Grammar) compile(r Rule) matcher { // nolint: gocyclo
	switch r := r.(type) {
	case epsilon:
		return func(s *state) (any, error) {
			return Empty, nil
		}

	case char:
		want := r.r
		expected := strconv.Quote(string(want))
		return func(s *state) (any, error) {
			got, ok := s.src.Peek()
			if !ok || got != want {
				s.fail(expected)
				return nil, errNoMatch
			}
			s.src.Next()
			return text(want), nil
		}

	case anyChar:
		return func(s *state) (any, error) {
			got, ok := s.src.Next()
			if !ok {
				s.fail("any character")
				return nil, errNoMatch
			}
			return text(got), nil
		}

	case charRange:
		lo, hi := r.lo, r.hi
		expected := r.String()
		return func(s *state) (any, error) {
			got, ok := s.src.Peek()
			if !ok || got < lo || got > hi {
				s.fail(expected)
				return nil, errNoMatch
			}
			s.src.Next()
			return text(got), nil
		}

	case literal:
		lit := r.s
		expected := strconv.Quote(lit)
		return func(s *state) (any, error) {
			entry := s.src.Mark()
			for _, want := range lit {
				got, ok := s.src.Next()
				if !ok || got != want {
					s.src.Reset(entry)
					s.fail(expected)
					return nil, errNoMatch
				}
			}
			return text(lit), nil
		}

	case seq:
		ms := g.compileAll(r.rules)
		return func(s *state) (any, error) {
			entry := s.mark()
			values := make([]any, 0, len(ms))
			for _, m := range ms {
				v, err := m(s)
				if err != nil {
					s.restore(entry)
					return nil, err
				}
				values = append(values, v)
			}
			return combine(values), nil
		}

	case choice:
		ms := g.compileAll(r.rules)
		return func(s *state) (any, error) {
			entry := s.mark()
			for _, m := range ms {
				v, err := m(s)
				if err == nil {
					return v, nil
				}
				s.restore(entry)
				if err != errNoMatch {
					return nil, err
				}
			}
			return nil, errNoMatch
		}

	case star:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			values, err := repeat(s, m, nil)
			if err != nil {
				return nil, err
			}
			return combine(values), nil
		}

	case plus:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			v, err := m(s)
			if err != nil {
				return nil, err
			}
			values, err := repeat(s, m, []any{v})
			if err != nil {
				return nil, err
			}
			return combine(values), nil
		}

	case opt:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			entry := s.mark()
			v, err := m(s)
			if err == errNoMatch {
				s.restore(entry)
				return Empty, nil
			}
			if err != nil {
				s.restore(entry)
				return nil, err
			}
			return v, nil
		}

	case optFlag:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			entry := s.mark()
			v, err := m(s)
			if err == errNoMatch {
				s.restore(entry)
				return False, nil
			}
			if err != nil {
				s.restore(entry)
				return nil, err
			}
			return v, nil
		}

	case call:
		name := r.name
		return func(s *state) (any, error) {
			return g.matchers[name](s)
		}

	case named:
		m := g.compile(r.rule)
		name := r.name
		return func(s *state) (any, error) {
			v, err := m(s)
			if err != nil {
				return nil, err
			}
			s.bind(name, export(v))
			return v, nil
		}

	case not:
		m := g.compile(r.rule)
		expected := r.String()
		return func(s *state) (any, error) {
			entry := s.mark()
			_, err := m(s)
			s.restore(entry)
			if err == errNoMatch {
				return Empty, nil
			}
			if err != nil {
				return nil, err
			}
			s.fail(expected)
			return nil, errNoMatch
		}

	case peekRule:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			entry := s.mark()
			_, err := m(s)
			s.restore(entry)
			if err != nil {
				return nil, err
			}
			return Empty, nil
		}

	case drop:
		m := g.compile(r.rule)
		return func(s *state) (any, error) {
			if _, err := m(s); err != nil {
				return nil, err
			}
			return droppedValue, nil
		}
	}
	panic("unsupported rule type " + r.String())
}

func (g *Grammar) compileAll(rules []Rule) []matcher {
	ms := make([]matcher, len(rules))
	for i, r := range rules {
		ms[i] = g.compile(r)
	}
	return ms
}

// repeat greedily matches m until an attempt fails, appending each value to
// values. The failing attempt consumes nothing. A successful attempt that
// consumes nothing ends the repetition, since it would otherwise repeat
// forever.
func repeat(s *state, m matcher, values []any) ([]any, error) {
	for {
		attempt := s.mark()
		v, err := m(s)
		if err == errNoMatch {
			s.restore(attempt)
			return values, nil
		}
		if err != nil {
			s.restore(attempt)
			return nil, err
		}
		values = append(values, v)
		if s.src.Mark() == attempt.pos {
			return values, nil
		}
	}
}
