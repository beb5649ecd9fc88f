package bytecode

import (
	"strings"

	"github.com/fnord-lang/fnord/op"
)

// NoJump marks operations that have no jump target.
const NoJump = -1

// Program is a tokenized, bracket-checked operation sequence.
// It is immutable after creation and safe for concurrent use.
type Program struct {
	instructions []op.Code
	jumps        []int // matching bracket index for loop ops, NoJump otherwise
	depths       []int // loop nesting depth at each instruction
	locations    []SourceLocation
	source       string
	filename     string
	dialect      op.Dialect
}

// ProgramParams contains parameters for creating a new Program.
type ProgramParams struct {
	Instructions []op.Code
	Jumps        []int
	Depths       []int
	Locations    []SourceLocation
	Source       string
	Filename     string
	Dialect      op.Dialect
}

// NewProgram creates a new immutable Program from the given parameters.
// Input slices are copied. Jumps and Depths, when shorter than
// Instructions, are padded with NoJump and zero.
func NewProgram(params ProgramParams) *Program {
	n := len(params.Instructions)
	p := &Program{
		instructions: copySlice(params.Instructions),
		jumps:        make([]int, n),
		depths:       make([]int, n),
		locations:    copySlice(params.Locations),
		source:       params.Source,
		filename:     params.Filename,
		dialect:      params.Dialect,
	}
	for i := 0; i < n; i++ {
		p.jumps[i] = NoJump
		if i < len(params.Jumps) {
			p.jumps[i] = params.Jumps[i]
		}
		if i < len(params.Depths) {
			p.depths[i] = params.Depths[i]
		}
	}
	return p
}

// InstructionCount returns the number of operations in the program.
func (p *Program) InstructionCount() int {
	return len(p.instructions)
}

// InstructionAt returns the operation at the given index.
func (p *Program) InstructionAt(index int) op.Code {
	return p.instructions[index]
}

// Instructions returns a copy of the operation sequence.
func (p *Program) Instructions() []op.Code {
	return copySlice(p.instructions)
}

// JumpAt returns the index of the bracket matching the loop operation at
// index, or NoJump for other operations.
func (p *Program) JumpAt(index int) int {
	return p.jumps[index]
}

// DepthAt returns the number of loops enclosing the operation at index.
// A LoopStart or LoopEnd is counted as inside its own loop.
func (p *Program) DepthAt(index int) int {
	return p.depths[index]
}

// LocationAt returns the source location of the operation at index.
func (p *Program) LocationAt(index int) SourceLocation {
	if index < 0 || index >= len(p.locations) {
		return SourceLocation{}
	}
	return p.locations[index]
}

// Source returns the source text the program was tokenized from.
func (p *Program) Source() string {
	return p.source
}

// Filename returns the filename associated with the program, if any.
func (p *Program) Filename() string {
	return p.filename
}

// Dialect returns the dialect the program was written in.
func (p *Program) Dialect() op.Dialect {
	return p.dialect
}

// GetSourceLine returns the 1-indexed line of the program's source.
func (p *Program) GetSourceLine(lineNum int) string {
	if lineNum < 1 {
		return ""
	}
	lines := strings.Split(p.source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[lineNum-1], "\r")
}

// String returns the program in the symbol dialect.
func (p *Program) String() string {
	var b strings.Builder
	b.Grow(len(p.instructions))
	for _, code := range p.instructions {
		b.WriteByte(op.GetInfo(code).Symbol)
	}
	return b.String()
}

// Stats returns statistics about the program.
func (p *Program) Stats() Stats {
	stats := Stats{
		InstructionCount: len(p.instructions),
		SourceBytes:      len(p.source),
		OpCounts:         map[op.Code]int{},
	}
	for i, code := range p.instructions {
		stats.OpCounts[code]++
		if code == op.LoopStart {
			stats.LoopCount++
		}
		if p.depths[i] > stats.MaxDepth {
			stats.MaxDepth = p.depths[i]
		}
	}
	return stats
}
