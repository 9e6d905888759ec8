package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	"github.com/hashicorp/go-hclog"

	"github.com/pegmatic/peg"
	"github.com/pegmatic/peg/input"
)

var cli struct {
	Trace bool `help:"Trace rule entry/exit while parsing."`
	Debug bool `help:"Log rule events through hclog."`

	Words wordsCmd `cmd:"" help:"Split input into words."`
	Calc  calcCmd  `cmd:"" help:"Evaluate an arithmetic expression with + and *."`
	Sexp  sexpCmd  `cmd:"" help:"Parse an s-expression into nested lists."`
}

func options() []peg.Option {
	var opts []peg.Option
	if cli.Trace {
		opts = append(opts, peg.Trace(os.Stderr))
	}
	if cli.Debug {
		opts = append(opts, peg.WithLogger(hclog.New(&hclog.LoggerOptions{
			Name:  "peg",
			Level: hclog.Trace,
		})))
	}
	return opts
}

// source reads from the argument if given, else stdin.
func source(arg string) input.Source {
	if arg != "" {
		return input.String(arg)
	}
	return input.Reader(os.Stdin)
}

func parse(g *peg.Grammar, rule, arg string) error {
	v, err := g.Parse(rule, source(arg))
	if err != nil {
		return err
	}
	repr.Println(v)
	return nil
}

type wordsCmd struct {
	Text string `arg:"" optional:"" help:"Text to split (default: stdin)."`
}

func (c *wordsCmd) Run() error {
	return parse(peg.WordsGrammar(options()...), "words", c.Text)
}

type calcCmd struct {
	Expr string `arg:"" optional:"" help:"Expression to evaluate (default: stdin)."`
}

func (c *calcCmd) Run() error {
	return parse(peg.CalcGrammar(options()...), "sum", c.Expr)
}

type sexpCmd struct {
	Expr string `arg:"" optional:"" help:"Expression to parse (default: stdin)."`
}

func (c *sexpCmd) Run() error {
	return parse(peg.SexpGrammar(options()...), "sexp", c.Expr)
}

func main() {
	kctx := kong.Parse(&cli, kong.Description(`A demo driver for the peg parsing engine.`))
	err := kctx.Run()
	kctx.FatalIfErrorf(err)
}
