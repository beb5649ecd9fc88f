package fnord

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/op"
	"github.com/fnord-lang/fnord/vm"
)

// VisibleCells is the number of cells an interactive tape view shows.
const VisibleCells = 19

// Session provides stateful execution for interactive shells. Unlike Run
// and Eval, which start from fresh state on each call, a Session keeps the
// source text, the dialect and the tape between runs. The tape survives
// re-tokenization and is only cleared by Reset.
//
// A Session is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	source   string
	dialect  op.Dialect
	filename string
	machine  *vm.Machine
	stale    bool // source or dialect changed since the last Load
	opts     *options
	logger   zerolog.Logger
}

// NewSession creates a Session with an empty tape and no source.
func NewSession(opts ...Option) *Session {
	o := collectOptions(opts...)
	id := uuid.Must(uuid.NewV4())
	s := &Session{
		id:       id,
		dialect:  o.dialect,
		filename: o.filename,
		stale:    true,
		opts:     o,
		logger:   o.logger.With().Str("session", id.String()).Logger(),
	}
	s.machine = vm.New(nil, o.vmOpts()...)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Source returns the current source text.
func (s *Session) Source() string {
	return s.source
}

// SetSource replaces the source text. It is tokenized by the next Run.
func (s *Session) SetSource(source string) {
	s.source = source
	s.stale = true
}

// Dialect returns the dialect the source is read in.
func (s *Session) Dialect() op.Dialect {
	return s.dialect
}

// SetDialect switches the dialect the source is read in. It takes effect on
// the next Run.
func (s *Session) SetDialect(dialect op.Dialect) {
	if dialect != s.dialect {
		s.dialect = dialect
		s.stale = true
	}
}

// Load sets the source and dialect and tokenizes them. Structural errors are
// returned before anything runs and leave the previous program loaded. The
// tape is kept.
func (s *Session) Load(source string, dialect op.Dialect) error {
	s.source = source
	s.dialect = dialect
	program, err := Tokenize(source, dialect, WithFilename(s.filename))
	if err != nil {
		s.stale = true
		s.logger.Warn().Err(err).Str("dialect", dialect.String()).Msg("tokenize failed")
		return err
	}
	s.machine.Load(program)
	s.stale = false
	s.logger.Debug().
		Str("dialect", dialect.String()).
		Int("operations", program.InstructionCount()).
		Msg("program loaded")
	return nil
}

// Run executes the loaded program until it halts or requests input. The
// source is tokenized first when it changed since the last Load or when the
// previous run halted, so a halted program starts over on the same tape.
func (s *Session) Run(ctx context.Context) error {
	if s.stale || s.machine.Phase() == vm.Halted {
		if err := s.Load(s.source, s.dialect); err != nil {
			return err
		}
	}
	return s.finish(s.machine.Run(ctx))
}

// Input supplies ch to a program suspended on an Input operation and
// resumes it.
func (s *Session) Input(ctx context.Context, ch rune) error {
	return s.finish(s.machine.ProvideInput(ctx, ch))
}

func (s *Session) finish(err error) error {
	switch {
	case err != nil && errors.Is(err, vm.ErrStepLimit):
		s.logger.Warn().Int64("steps", s.machine.Steps()).Msg("step limit reached")
	case err != nil:
		s.logger.Error().Err(err).Int("pc", s.machine.PC()).Msg("run failed")
	case s.machine.Phase() == vm.AwaitingInput:
		s.logger.Debug().Int("pc", s.machine.PC()).Msg("awaiting input")
	default:
		s.logger.Debug().
			Int64("steps", s.machine.Steps()).
			Int("output_len", len(s.machine.Output())).
			Msg("program halted")
	}
	return err
}

// Reset zeroes the tape, the pointer and the output, and rewinds the loaded
// program.
func (s *Session) Reset() {
	s.machine.Reset(true)
	s.logger.Debug().Msg("session reset")
}

// Program returns the loaded program. It is empty until the first Load.
func (s *Session) Program() *bytecode.Program {
	return s.machine.Program()
}

// Phase returns the run phase of the loaded program.
func (s *Session) Phase() vm.Phase {
	return s.machine.Phase()
}

// Output returns the text printed by the current run.
func (s *Session) Output() string {
	return s.machine.Output()
}

// Pointer returns the tape pointer.
func (s *Session) Pointer() int {
	return s.machine.Pointer()
}

// State returns a snapshot of the execution state.
func (s *Session) State() vm.State {
	return s.machine.State()
}

// Cells returns n cells starting at offset. The window is clamped to the
// tape, so an offset past TapeSize-n shows the last n cells.
func (s *Session) Cells(offset, n int) []uint8 {
	return s.machine.Cells(offset, n)
}

// SetCell stores v in the cell at index.
func (s *Session) SetCell(index int, v uint8) {
	s.machine.SetCell(index, v)
}
