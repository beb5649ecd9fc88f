// Package lexer converts fnord source text into a stream of operation tokens.
//
// Both dialects are scanned as a byte stream. Input that does not spell an
// operation is skipped silently; the lexer never fails.
package lexer

import (
	"strings"

	"github.com/fnord-lang/fnord/internal/token"
	"github.com/fnord-lang/fnord/op"
)

// Lexer scans one source string in a single dialect.
type Lexer struct {
	input     string
	dialect   op.Dialect
	pos       int // byte offset of the cursor
	line      int
	lineStart int
	file      string
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFile sets the filename recorded in token positions.
func WithFile(file string) Option {
	return func(l *Lexer) {
		l.file = file
	}
}

// New returns a Lexer positioned at the start of input.
func New(input string, dialect op.Dialect, opts ...Option) *Lexer {
	l := &Lexer{input: input, dialect: dialect}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Filename returns the filename recorded in token positions.
func (l *Lexer) Filename() string {
	return l.file
}

// Dialect returns the dialect being scanned.
func (l *Lexer) Dialect() op.Dialect {
	return l.dialect
}

// Position returns the current cursor position.
func (l *Lexer) Position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.pos - l.lineStart,
		File:      l.file,
	}
}

// Next returns the next operation token. The second return value is false
// once the input is exhausted; further calls keep returning false.
func (l *Lexer) Next() (token.Token, bool) {
	for l.pos < len(l.input) {
		start := l.Position()
		switch l.dialect {
		case op.Keyword:
			if code, n, ok := op.MatchKeyword(l.input[l.pos:]); ok {
				lit := l.input[l.pos : l.pos+n]
				l.advance(n)
				return token.Token{Code: code, Literal: lit, Position: start}, true
			}
		default:
			if code, ok := op.FromSymbol(l.input[l.pos]); ok {
				lit := l.input[l.pos : l.pos+1]
				l.advance(1)
				return token.Token{Code: code, Literal: lit, Position: start}, true
			}
		}
		l.advance(1)
	}
	return token.Token{Position: l.Position()}, false
}

// Tokens scans the remaining input and returns every operation token.
func (l *Lexer) Tokens() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := l.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// GetLineText returns the full source line containing the given position,
// without the trailing newline.
func (l *Lexer) GetLineText(pos token.Position) string {
	return LineText(l.input, pos)
}

// LineText returns the line of input that starts at pos.LineStart.
func LineText(input string, pos token.Position) string {
	if pos.LineStart < 0 || pos.LineStart > len(input) {
		return ""
	}
	line := input[pos.LineStart:]
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSuffix(line, "\r")
}

// advance moves the cursor n bytes, tracking line starts.
func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.input); i++ {
		if l.input[l.pos] == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
		l.pos++
	}
}
