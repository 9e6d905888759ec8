package peg

// An Action computes a rule's semantic value. It runs after the rule's body
// has matched, receives the captures bound by Named nodes during that match,
// and its return value replaces the rule's default combinator result.
//
// A non-nil error aborts the whole parse as an ActionError; it is not a
// match failure and no backtracking happens.
type Action func(Captures) (any, error)

// Captures is the capture environment visible to an action: the named
// bindings accumulated by the rule's own match, plus those of enclosing rule
// invocations, with inner bindings shadowing outer ones of the same name.
//
// A Captures value is only valid for the duration of the action call.
type Captures struct {
	s *state
}

// Get returns the value bound to name, or false if it is unbound.
func (c Captures) Get(name string) (any, bool) {
	return c.s.lookup(name)
}

// Text returns the text bound to name. It returns "" when the binding is
// missing, Empty, or not text.
func (c Captures) Text(name string) string {
	v, ok := c.s.lookup(name)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// List returns the sequence bound to name. A missing binding, Empty or the
// False sentinel yield an empty (non-nil) list; a single value becomes a one
// element list.
func (c Captures) List(name string) []any {
	v, ok := c.s.lookup(name)
	if !ok {
		return []any{}
	}
	switch v := v.(type) {
	case empty:
		return []any{}
	case bool:
		if !v {
			return []any{}
		}
		return []any{v}
	case []any:
		return v
	default:
		return []any{v}
	}
}
