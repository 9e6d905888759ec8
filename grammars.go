package peg

import "strconv"

// Grammars used by cmd/peg and the package tests. They double as worked
// examples of the builder API.

// WordsGrammar splits space separated words. Rule "word" matches one word
// and swallows a trailing space; rule "words" yields the sequence of all
// words.
func WordsGrammar(opts ...Option) *Grammar {
	b := NewBuilder(opts...)
	b.Define("nonSpace", Seq(Not(Char(' ')), Any()))
	b.DefineBake("word", Seq(Plus(Call("nonSpace")), Drop(Opt(Char(' ')))))
	b.Define("words", Plus(Call("word")))
	return Must(b.Build())
}

// CalcGrammar evaluates integer arithmetic with + and *, * binding tighter.
// Precedence is encoded right-recursively; rule "sum" is the entry point and
// yields an int.
func CalcGrammar(opts ...Option) *Grammar {
	b := NewBuilder(opts...)
	b.DefineAction("number", Named("n", Plus(Range('0', '9'))),
		func(c Captures) (any, error) {
			return strconv.Atoi(c.Text("n"))
		})
	b.DefineAction("group",
		Seq(Drop(Char('(')), Named("e", Call("sum")), Drop(Char(')'))),
		func(c Captures) (any, error) {
			v, _ := c.Get("e")
			return v, nil
		})
	b.Define("primary", Choice(Call("number"), Call("group")))
	b.DefineAction("product",
		Seq(Named("a", Call("primary")), OptFlag(Drop(Char('*')), Named("b", Call("product")))),
		arith(func(a, b int) int { return a * b }))
	b.DefineAction("sum",
		Seq(Named("a", Call("product")), OptFlag(Drop(Char('+')), Named("b", Call("sum")))),
		arith(func(a, b int) int { return a + b }))
	return Must(b.Build())
}

// arith builds an action combining captures "a" and "b" with op, or passing
// "a" through when "b" is absent.
func arith(op func(a, b int) int) Action {
	return func(c Captures) (any, error) {
		a, _ := c.Get("a")
		b, ok := c.Get("b")
		if !ok {
			return a, nil
		}
		return op(a.(int), b.(int)), nil
	}
}

// SexpGrammar parses symbols and parenthesised lists into nested []any
// values. Rule "sexp" is the entry point.
func SexpGrammar(opts ...Option) *Grammar {
	delimiter := Choice(Char('('), Char(')'), Char(' '), Char('\n'), Char('\t'))
	b := NewBuilder(opts...)
	b.DefineDrop("ws", Star(Choice(Char(' '), Char('\n'), Char('\t'))))
	b.DefineBake("symbol", Plus(Not(delimiter), Any()))
	b.DefineAction("sexp",
		Seq(Drop(Call("ws")), Named("v", Choice(Call("list"), Call("symbol")))),
		func(c Captures) (any, error) {
			v, _ := c.Get("v")
			return v, nil
		})
	b.DefineAction("list",
		Seq(Drop(Char('(')), Named("items", Star(Call("sexp"))), Drop(Call("ws")), Drop(Char(')'))),
		func(c Captures) (any, error) {
			return c.List("items"), nil
		})
	return Must(b.Build())
}
