package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/compiler"
	"github.com/fnord-lang/fnord/internal/lexer"
	"github.com/fnord-lang/fnord/op"
)

func compile(t *testing.T, src string, dialect op.Dialect) *bytecode.Program {
	t.Helper()
	program, err := compiler.Compile(lexer.New(src, dialect).Tokens(),
		&compiler.Config{Source: src, Dialect: dialect})
	require.NoError(t, err)
	return program
}

func TestDisassembly(t *testing.T) {
	// Disable colors for consistent test output
	color.NoColor = true
	defer func() { color.NoColor = false }()

	instructions, err := Disassemble(compile(t, "+[-]", op.Symbol))
	require.NoError(t, err)
	require.Len(t, instructions, 4)

	var buf bytes.Buffer
	Print(instructions, &buf)

	expected := strings.TrimSpace(`
+--------+------------+------+-------+----------+
| OFFSET |   OPCODE   | JUMP | DEPTH | POSITION |
+--------+------------+------+-------+----------+
|      0 | INCREMENT  |      |     0 | 1:1      |
|      1 | LOOP_START |    3 |     1 | 1:2      |
|      2 | DECREMENT  |      |     1 | 1:3      |
|      3 | LOOP_END   |    1 |     1 | 1:4      |
+--------+------------+------+-------+----------+
`)
	require.Equal(t, expected+"\n", buf.String())
}

func TestDisassembleKeyword(t *testing.T) {
	instructions, err := Disassemble(compile(t, "5\n23 hail eris", op.Keyword))
	require.NoError(t, err)
	require.Len(t, instructions, 4)

	require.Equal(t, "5", instructions[0].Literal)
	require.Equal(t, op.LoopStart, instructions[1].Opcode)
	require.Equal(t, "LOOP_START", instructions[1].Name)
	require.Equal(t, "23", instructions[1].Literal)
	require.Equal(t, 3, instructions[1].Jump)
	require.Equal(t, bytecode.SourceLocation{Offset: 2, Line: 2, Column: 1}, instructions[1].Location)
	require.Equal(t, bytecode.NoJump, instructions[2].Jump)
	require.Equal(t, 1, instructions[3].Depth)
}

func TestDisassembleEmpty(t *testing.T) {
	instructions, err := Disassemble(compile(t, "", op.Symbol))
	require.NoError(t, err)
	require.Empty(t, instructions)

	_, err = Disassemble(nil)
	require.Error(t, err)
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	PrintStats(compile(t, "+[[-]]", op.Symbol).Stats(), &buf)
	require.Equal(t, "operations: 6, loops: 2, max depth: 2, source bytes: 6\n", buf.String())
}
