// Package compiler turns lexed tokens into an executable bytecode.Program.
//
// Compilation is a single bracket-matching pass. It records, for every loop
// operation, the index of its partner bracket, so the virtual machine can
// jump in constant time without a runtime loop stack. Unbalanced brackets
// are reported as structural errors before anything runs.
package compiler

import (
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/errz"
	"github.com/fnord-lang/fnord/internal/lexer"
	"github.com/fnord-lang/fnord/internal/token"
	"github.com/fnord-lang/fnord/op"
)

// Config holds compiler configuration options.
type Config struct {
	// Filename is the source filename, used for error messages.
	Filename string

	// Source is the original source code, used for error snippets.
	Source string

	// Dialect is recorded on the resulting program.
	Dialect op.Dialect
}

// Compiler matches loop brackets and builds a Program.
type Compiler struct {
	filename string
	source   string
	dialect  op.Dialect

	instructions []op.Code
	jumps        []int
	depths       []int
	locations    []bytecode.SourceLocation
	open         []token.Token // unmatched LoopStart tokens, innermost last
	openIndex    []int
	failure      *multierror.Error
}

// Compile compiles the given tokens and returns an immutable Program.
// Pass nil for cfg to use default settings.
func Compile(tokens []token.Token, cfg *Config) (*bytecode.Program, error) {
	return New(cfg).Compile(tokens)
}

// New creates and returns a new Compiler. Pass nil for cfg to use defaults.
func New(cfg *Config) *Compiler {
	c := &Compiler{}
	if cfg != nil {
		c.filename = cfg.Filename
		c.source = cfg.Source
		c.dialect = cfg.Dialect
	}
	return c
}

// Compile builds a Program from tokens. Every unmatched LoopEnd and every
// unclosed LoopStart is reported, in source order. A single problem is
// returned as an *errz.StructuredError; several are aggregated in a
// *multierror.Error whose first element is the earliest.
func (c *Compiler) Compile(tokens []token.Token) (*bytecode.Program, error) {
	c.reset(len(tokens))
	for i, tok := range tokens {
		c.emit(i, tok)
	}
	for _, tok := range c.open {
		c.fail(tok, "unclosed loop start %q", tok.Literal)
	}
	if err := c.failure.ErrorOrNil(); err != nil {
		if len(c.failure.Errors) == 1 {
			return nil, c.failure.Errors[0]
		}
		return nil, err
	}
	return bytecode.NewProgram(bytecode.ProgramParams{
		Instructions: c.instructions,
		Jumps:        c.jumps,
		Depths:       c.depths,
		Locations:    c.locations,
		Source:       c.source,
		Filename:     c.filename,
		Dialect:      c.dialect,
	}), nil
}

func (c *Compiler) reset(n int) {
	c.instructions = make([]op.Code, n)
	c.jumps = make([]int, n)
	c.depths = make([]int, n)
	c.locations = make([]bytecode.SourceLocation, n)
	c.open = nil
	c.openIndex = nil
	c.failure = nil
}

func (c *Compiler) emit(i int, tok token.Token) {
	c.instructions[i] = tok.Code
	c.jumps[i] = bytecode.NoJump
	c.locations[i] = bytecode.SourceLocation{
		Offset: tok.Position.Char,
		Line:   tok.Position.LineNumber(),
		Column: tok.Position.ColumnNumber(),
	}
	switch tok.Code {
	case op.LoopStart:
		c.open = append(c.open, tok)
		c.openIndex = append(c.openIndex, i)
		c.depths[i] = len(c.open)
	case op.LoopEnd:
		if len(c.open) == 0 {
			c.fail(tok, "unmatched loop end %q", tok.Literal)
			return
		}
		c.depths[i] = len(c.open)
		last := len(c.open) - 1
		start := c.openIndex[last]
		c.open = c.open[:last]
		c.openIndex = c.openIndex[:last]
		c.jumps[start] = i
		c.jumps[i] = start
	default:
		c.depths[i] = len(c.open)
	}
}

func (c *Compiler) fail(tok token.Token, format string, args ...any) {
	loc := errz.SourceLocation{
		Filename: c.filename,
		Offset:   tok.Position.Char,
		Line:     tok.Position.LineNumber(),
		Column:   tok.Position.ColumnNumber(),
		Source:   lexer.LineText(c.source, tok.Position),
	}
	err := errz.NewStructuredErrorf(errz.ErrStructural, loc, format, args...)
	if c.failure == nil {
		c.failure = &multierror.Error{ErrorFormat: formatErrors}
	}
	c.failure = multierror.Append(c.failure, err)
}

func formatErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}
