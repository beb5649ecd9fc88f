package lexer

import (
	"fmt"
	"testing"

	"github.com/fnord-lang/fnord/internal/token"
	"github.com/fnord-lang/fnord/op"
	"github.com/stretchr/testify/require"
)

func codes(tokens []token.Token) []op.Code {
	out := make([]op.Code, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Code)
	}
	return out
}

func TestSymbolTokens(t *testing.T) {
	input := "><+-.,[]"
	tests := []struct {
		expectedCode    op.Code
		expectedLiteral string
	}{
		{op.ShiftRight, ">"},
		{op.ShiftLeft, "<"},
		{op.Increment, "+"},
		{op.Decrement, "-"},
		{op.Print, "."},
		{op.Input, ","},
		{op.LoopStart, "["},
		{op.LoopEnd, "]"},
	}
	l := New(input, op.Symbol)
	for i, tt := range tests {
		tok, ok := l.Next()
		require.True(t, ok, "tests[%d]", i)
		require.Equal(t, tt.expectedCode, tok.Code, "tests[%d]", i)
		require.Equal(t, tt.expectedLiteral, tok.Literal, "tests[%d]", i)
		require.Equal(t, i, tok.Position.Char)
	}
	_, ok := l.Next()
	require.False(t, ok)
}

func TestSymbolSkipsEverythingElse(t *testing.T) {
	l := New("hello + world; é [ comment ] 5 fnord", op.Symbol)
	require.Equal(t, []op.Code{op.Increment, op.LoopStart, op.LoopEnd}, codes(l.Tokens()))
}

func TestKeywordTokens(t *testing.T) {
	input := "fnordkallistipinealchaos235haileris"
	tests := []struct {
		expectedCode    op.Code
		expectedLiteral string
		expectedChar    int
	}{
		{op.ShiftLeft, "fnord", 0},
		{op.ShiftRight, "kallisti", 5},
		{op.Print, "pineal", 13},
		{op.Input, "chaos", 19},
		{op.LoopStart, "23", 24},
		{op.Increment, "5", 26},
		{op.Decrement, "hail", 27},
		{op.LoopEnd, "eris", 31},
	}
	l := New(input, op.Keyword)
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			tok, ok := l.Next()
			require.True(t, ok)
			require.Equal(t, tt.expectedCode, tok.Code)
			require.Equal(t, tt.expectedLiteral, tok.Literal)
			require.Equal(t, tt.expectedChar, tok.Position.Char)
		})
	}
	_, ok := l.Next()
	require.False(t, ok)
}

func TestKeywordMatching(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []op.Code
	}{
		{"scenario", "kallisti5pineal", []op.Code{op.ShiftRight, op.Increment, op.Print}},
		{"separated", "5 5 hail", []op.Code{op.Increment, op.Increment, op.Decrement}},
		{"partial keyword skipped", "fnor5", []op.Code{op.Increment}},
		{"case sensitive", "FNORD Hail ERIS 5", []op.Code{op.Increment}},
		{"embedded in word", "sheriston", []op.Code{op.LoopEnd}},
		{"embedded prefix", "hailstorm", []op.Code{op.Decrement}},
		{"digits", "2523", []op.Code{op.Increment, op.LoopStart}},
		{"lone two", "2", nil},
		{"symbols ignored", "+-<>[].,", nil},
		{"truncated at end", "kallist", nil},
		{"multibyte text", "ñ5ü23érís", []op.Code{op.Increment, op.LoopStart}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := codes(New(tt.input, op.Keyword).Tokens())
			if len(tt.expected) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestLineNumbers(t *testing.T) {
	l := New("+\n ->\n\n  hail", op.Symbol)
	tests := []struct {
		expectedCode   op.Code
		expectedLine   int
		expectedColumn int
		expectedChar   int
	}{
		{op.Increment, 0, 0, 0},
		{op.Decrement, 1, 1, 3},
		{op.ShiftRight, 1, 2, 4},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			tok, ok := l.Next()
			require.True(t, ok)
			require.Equal(t, tt.expectedCode, tok.Code)
			require.Equal(t, tt.expectedLine, tok.Position.Line)
			require.Equal(t, tt.expectedColumn, tok.Position.Column)
			require.Equal(t, tt.expectedChar, tok.Position.Char)
		})
	}
	_, ok := l.Next()
	require.False(t, ok)

	kl := New("5\n  hail", op.Keyword)
	toks := kl.Tokens()
	require.Len(t, toks, 2)
	require.Equal(t, 2, toks[1].Position.LineNumber())
	require.Equal(t, 3, toks[1].Position.ColumnNumber())
}

func TestEmptyInput(t *testing.T) {
	for _, d := range []op.Dialect{op.Symbol, op.Keyword} {
		l := New("", d)
		tok, ok := l.Next()
		require.False(t, ok)
		require.Equal(t, op.Invalid, tok.Code)
		require.Empty(t, l.Tokens())
	}
}

func TestMultipleEOFReads(t *testing.T) {
	l := New("+", op.Symbol)
	tok, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, op.Increment, tok.Code)
	for i := 0; i < 5; i++ {
		_, ok = l.Next()
		require.False(t, ok, "EOF read %d", i)
	}
}

func TestGetLineText(t *testing.T) {
	l := New("first +\n second -\r\nthird", op.Symbol)
	toks := l.Tokens()
	require.Len(t, toks, 2)
	require.Equal(t, "first +", l.GetLineText(toks[0].Position))
	require.Equal(t, " second -", l.GetLineText(toks[1].Position))
	require.Equal(t, "", LineText("abc", token.Position{LineStart: 10}))
}

func TestFilenameOption(t *testing.T) {
	l := New("+", op.Symbol, WithFile("test.bf"))
	require.Equal(t, "test.bf", l.Filename())
	require.Equal(t, op.Symbol, l.Dialect())
	tok, ok := l.Next()
	require.True(t, ok)
	require.Equal(t, "test.bf", tok.Position.File)
	require.Equal(t, "test.bf", l.Position().File)
}
