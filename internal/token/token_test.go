package token

import (
	"testing"

	"github.com/fnord-lang/fnord/op"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	tok := Token{
		Code:    op.ShiftRight,
		Literal: "kallisti",
		Position: Position{
			Line:   2,
			Column: 0,
		},
	}
	// Switches to 1-indexed
	require.Equal(t, 3, tok.Position.LineNumber())
	require.Equal(t, 1, tok.Position.ColumnNumber())
	require.Equal(t, "3:1", tok.Position.String())
}

func TestPositionWithFile(t *testing.T) {
	pos := Position{Char: 10, LineStart: 8, Line: 1, Column: 2, File: "hello.bf"}
	require.Equal(t, "hello.bf:2:3", pos.String())
}
