package fnord

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fnord-lang/fnord/errz"
	"github.com/fnord-lang/fnord/op"
	"github.com/fnord-lang/fnord/vm"
)

func TestSessionRun(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	s.SetSource(HelloWorld)
	require.NoError(t, s.Run(ctx))
	require.Equal(t, "Hello, World!", s.Output())
	require.Equal(t, vm.Halted, s.Phase())
	require.Equal(t, 6, s.Pointer())
}

func TestSessionIDs(t *testing.T) {
	a := NewSession()
	b := NewSession()
	require.NotEqual(t, a.ID(), b.ID())
	require.Equal(t, 4, int(a.ID().Version()))
}

func TestSessionInput(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	require.NoError(t, s.Load(",.,.", op.Symbol))
	require.NoError(t, s.Run(ctx))
	require.Equal(t, vm.AwaitingInput, s.Phase())

	require.NoError(t, s.Input(ctx, 'o'))
	require.Equal(t, vm.AwaitingInput, s.Phase())
	require.NoError(t, s.Input(ctx, 'k'))
	require.Equal(t, vm.Halted, s.Phase())
	require.Equal(t, "ok", s.Output())

	require.ErrorIs(t, s.Input(ctx, 'x'), vm.ErrNotAwaitingInput)
}

func TestSessionRunWhileAwaiting(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	require.NoError(t, s.Load(",+", op.Symbol))
	require.NoError(t, s.Run(ctx))
	require.ErrorIs(t, s.Run(ctx), vm.ErrAwaitingInput)
}

func TestSessionKeepsTapeAcrossRuns(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	s.SetSource("+>")
	require.NoError(t, s.Run(ctx))
	require.Equal(t, 1, s.Pointer())

	// A halted program is tokenized again and runs over the same tape
	require.NoError(t, s.Run(ctx))
	require.Equal(t, 2, s.Pointer())
	require.Equal(t, []uint8{1, 1, 0}, s.Cells(0, 3))
}

func TestSessionLoadStructuralError(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	require.NoError(t, s.Load("+", op.Symbol))
	require.NoError(t, s.Run(ctx))

	err := s.Load("+]", op.Symbol)
	require.True(t, errz.IsStructural(err))
	require.Equal(t, "+]", s.Source())
	require.Equal(t, "+", s.Program().String())

	err = s.Run(ctx)
	require.True(t, errz.IsStructural(err))
	require.Equal(t, uint8(1), s.Cells(0, 1)[0])
}

func TestSessionSetDialect(t *testing.T) {
	ctx := context.Background()
	s := NewSession(WithDialect(op.Keyword))
	require.Equal(t, op.Keyword, s.Dialect())
	s.SetSource("5pineal+.")
	require.NoError(t, s.Run(ctx))
	require.Equal(t, "\x01", s.Output())

	s.Reset()
	s.SetDialect(op.Symbol)
	require.NoError(t, s.Run(ctx))
	require.Equal(t, op.Symbol, s.Program().Dialect())
	require.Equal(t, "\x01", s.Output())
}

func TestSessionReset(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	s.SetSource("+++>+.")
	require.NoError(t, s.Run(ctx))
	require.Equal(t, "\x01", s.Output())

	s.Reset()
	require.Equal(t, 0, s.Pointer())
	require.Equal(t, "", s.Output())
	require.Equal(t, make([]uint8, VisibleCells), s.Cells(0, VisibleCells))
	require.Equal(t, vm.Running, s.Phase())

	require.NoError(t, s.Run(ctx))
	require.Equal(t, []uint8{3, 1}, s.Cells(0, 2))
}

func TestSessionCellsWindow(t *testing.T) {
	s := NewSession()
	s.SetCell(vm.TapeSize-1, 9)
	s.SetCell(-1, 8)
	window := s.Cells(vm.TapeSize, VisibleCells)
	require.Len(t, window, VisibleCells)
	require.Equal(t, uint8(8), window[VisibleCells-1])

	require.Equal(t, s.Cells(0, VisibleCells), s.Cells(-100, VisibleCells))
}

func TestSessionSetCellFeedsProgram(t *testing.T) {
	ctx := context.Background()
	s := NewSession()
	s.SetCell(0, 'G')
	s.SetSource(".")
	require.NoError(t, s.Run(ctx))
	require.Equal(t, "G", s.Output())
}

func TestSessionWithTape(t *testing.T) {
	tape := vm.NewTape()
	tape.Set(41)
	s := NewSession(WithTape(tape))
	s.SetSource("+.")
	require.NoError(t, s.Run(context.Background()))
	require.Equal(t, "*", s.Output())
	require.Equal(t, uint8(41), tape.Get())
}

func TestSessionStepLimit(t *testing.T) {
	ctx := context.Background()
	s := NewSession(WithStepLimit(10))
	s.SetSource("+[]")
	require.ErrorIs(t, s.Run(ctx), vm.ErrStepLimit)
	require.Equal(t, vm.Running, s.Phase())
	require.ErrorIs(t, s.Run(ctx), vm.ErrStepLimit)
	require.Equal(t, int64(20), s.State().Steps)
}

func TestSessionLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	s := NewSession(WithLogger(logger))
	require.NoError(t, s.Load(",.", op.Symbol))
	require.NoError(t, s.Run(context.Background()))

	out := buf.String()
	require.Contains(t, out, `"session":"`+s.ID().String()+`"`)
	require.Contains(t, out, `"message":"program loaded"`)
	require.Contains(t, out, `"operations":2`)
	require.Contains(t, out, `"message":"awaiting input"`)
}

func TestSessionEmptySource(t *testing.T) {
	s := NewSession()
	require.Equal(t, vm.Halted, s.Phase())
	require.NoError(t, s.Run(context.Background()))
	require.Equal(t, "", s.Output())
	require.Equal(t, 0, s.Program().InstructionCount())
}
