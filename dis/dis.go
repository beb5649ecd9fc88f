// Package dis lists the operations of a compiled program.
package dis

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/internal/table"
	"github.com/fnord-lang/fnord/op"
)

// Instruction is one operation of a program with its static context.
type Instruction struct {
	Offset   int                     `json:"offset"`
	Opcode   op.Code                 `json:"-"`
	Name     string                  `json:"opcode"`
	Literal  string                  `json:"literal"`
	Jump     int                     `json:"jump"`
	Depth    int                     `json:"depth"`
	Location bytecode.SourceLocation `json:"location"`
}

// Disassemble returns the instructions of program in order. Jump is
// bytecode.NoJump for operations that are not loop brackets.
func Disassemble(program *bytecode.Program) ([]Instruction, error) {
	if program == nil {
		return nil, errors.New("nil program")
	}
	count := program.InstructionCount()
	instructions := make([]Instruction, 0, count)
	for i := 0; i < count; i++ {
		code := program.InstructionAt(i)
		info := op.GetInfo(code)
		literal := string(info.Symbol)
		if program.Dialect() == op.Keyword {
			literal = info.Keyword
		}
		instructions = append(instructions, Instruction{
			Offset:   i,
			Opcode:   code,
			Name:     info.Name,
			Literal:  literal,
			Jump:     program.JumpAt(i),
			Depth:    program.DepthAt(i),
			Location: program.LocationAt(i),
		})
	}
	return instructions, nil
}

var loopColor = color.New(color.FgYellow)

// Print writes instructions to writer as a table. Loop brackets are
// highlighted unless color output is disabled.
func Print(instructions []Instruction, writer io.Writer) {
	t := table.NewTable(writer).
		WithHeader([]string{"OFFSET", "OPCODE", "JUMP", "DEPTH", "POSITION"}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignRight,
			table.AlignLeft,
		})
	for _, instr := range instructions {
		name := instr.Name
		if instr.Opcode == op.LoopStart || instr.Opcode == op.LoopEnd {
			name = loopColor.Sprint(name)
		}
		var jump string
		if instr.Jump != bytecode.NoJump {
			jump = strconv.Itoa(instr.Jump)
		}
		var position string
		if !instr.Location.IsZero() {
			position = instr.Location.String()
		}
		t.Append([]string{
			strconv.Itoa(instr.Offset),
			name,
			jump,
			strconv.Itoa(instr.Depth),
			position,
		})
	}
	t.Render()
}

// PrintStats writes a one-line summary of program statistics.
func PrintStats(stats bytecode.Stats, writer io.Writer) {
	fmt.Fprintf(writer, "operations: %d, loops: %d, max depth: %d, source bytes: %d\n",
		stats.InstructionCount, stats.LoopCount, stats.MaxDepth, stats.SourceBytes)
}
