package peg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegmatic/peg/input"
)

const pangram = "the quick brown fox jumps over the lazy dog"

func TestWordSplitting(t *testing.T) {
	g := WordsGrammar()

	v, err := g.ParseString("word", pangram)
	require.NoError(t, err)
	assert.Equal(t, "the", v)

	v, err = g.ParseRule(Plus(Call("word")), input.String(pangram))
	require.NoError(t, err)
	assert.Equal(t, []any{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}, v)

	v, err = g.ParseString("words", pangram)
	require.NoError(t, err)
	assert.Equal(t, []any{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}, v)
}

func TestArithmeticPrecedence(t *testing.T) {
	g := CalcGrammar()
	for expr, expected := range map[string]int{
		"2+3*4":     14,
		"2*3+4":     10,
		"7*2+3*4":   26,
		"42":        42,
		"(2+3)*4":   20,
		"2*(3+4)*2": 28,
	} {
		v, err := g.ParseString("sum", expr)
		require.NoError(t, err, "%s", expr)
		assert.Equal(t, expected, v, "%s", expr)
	}
}

func TestBalancedStructure(t *testing.T) {
	g := SexpGrammar()

	v, err := g.ParseString("sexp", "(foob (ar baz)quux)")
	require.NoError(t, err)
	assert.Equal(t, []any{"foob", []any{"ar", "baz"}, "quux"}, v)

	v, err = g.ParseString("sexp", "((())(()(())))")
	require.NoError(t, err)
	assert.Equal(t, []any{
		[]any{[]any{}},
		[]any{[]any{}, []any{[]any{}}},
	}, v)
}

func TestParseIsDeterministic(t *testing.T) {
	g := CalcGrammar()
	for i := 0; i < 10; i++ {
		src := input.String("7*2+3*4 trailing")
		v, err := g.Parse("sum", src)
		require.NoError(t, err)
		assert.Equal(t, 26, v)
		assert.Equal(t, 7, src.Mark().Offset)
	}
}

func TestSuccessLeavesSourceAdvanced(t *testing.T) {
	g := WordsGrammar()
	src := input.String(pangram)

	for _, expected := range []string{"the", "quick", "brown"} {
		v, err := g.Parse("word", src)
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
	assert.Equal(t, "fox jumps over the lazy dog", src.Remaining())
}

func TestSequentialParsesOverOneStream(t *testing.T) {
	g := WordsGrammar()
	src := input.Reader(strings.NewReader("the quick brown"))

	for _, expected := range []string{"the", "quick", "brown"} {
		v, err := g.Parse("word", src)
		require.NoError(t, err)
		assert.Equal(t, expected, v)
	}
	assert.True(t, src.AtEnd())
}

func TestFailureReportsFurthestPosition(t *testing.T) {
	// The literal fails three runes in, inside the first Choice branch; the
	// second branch fails at the start. The error must point at the
	// furthest attempt even though its branch was abandoned.
	rule := Choice(Literal("abcd"), Literal("x"))
	src := input.String("abcz")
	_, err := ParseRule(rule, src)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Pos.Offset, `"abcd" fails with the cursor restored to its start`)

	// Failures inside a sequence pinpoint the failing element.
	_, err = ParseRule(Seq(Literal("ab"), Char('c')), input.String("abz"))
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Offset)
	assert.Equal(t, 1, perr.Pos.Line)
	assert.Equal(t, 3, perr.Pos.Column)
	assert.Equal(t, []string{`"c"`}, perr.Expected)
}

func TestFailureAcrossLines(t *testing.T) {
	g := SexpGrammar()
	_, err := g.ParseString("sexp", "(a\n(b\n)")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Pos.Line)
	assert.Equal(t, 2, perr.Pos.Column)
}

func TestEndOfInputFoldsIntoFurthestFailure(t *testing.T) {
	_, err := ParseRule(Seq(Char('a'), Char('b')), input.String("a"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Pos.Offset)
	assert.Equal(t, []string{`"b"`}, perr.Expected)
}

func TestTraceWritesRuleEvents(t *testing.T) {
	var buf bytes.Buffer
	g := WordsGrammar(Trace(&buf))
	_, err := g.ParseString("words", "ab cd")
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "word")
	assert.Contains(t, out, "nonSpace")
	assert.Contains(t, out, "match")
}

func TestWithLoggerEmitsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace})
	g := WordsGrammar(WithLogger(logger))
	_, err := g.ParseString("word", "ab")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "enter rule")
	assert.Contains(t, buf.String(), "leave rule")
}

func TestParseBytes(t *testing.T) {
	g := CalcGrammar()
	v, err := g.ParseBytes("sum", []byte("2+2"))
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestUnicodeInput(t *testing.T) {
	v, src, err := parseRule(t, Plus(Range('α', 'ω')), "αβγ!")
	require.NoError(t, err)
	assert.Equal(t, "αβγ", v)
	assert.Equal(t, len("αβγ"), src.Mark().Offset)
}
