package peg

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// An Option modifies the behaviour of a built Grammar.
type Option func(g *Grammar)

// Trace writes an indented log of rule entries and exits to w during every
// parse.
func Trace(w io.Writer) Option {
	return func(g *Grammar) {
		g.trace = w
	}
}

// WithLogger emits rule entry/exit events through l at Trace level.
func WithLogger(l hclog.Logger) Option {
	return func(g *Grammar) {
		g.logger = l
	}
}

// MaxDepth bounds rule invocation depth. Exceeding it aborts the parse with
// a RecursionError instead of exhausting the goroutine stack on runaway
// recursive grammars. Zero means no bound.
func MaxDepth(n int) Option {
	return func(g *Grammar) {
		g.maxDepth = n
	}
}
