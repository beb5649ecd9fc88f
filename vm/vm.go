// Package vm provides a Machine that executes tokenized fnord programs.
package vm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/errz"
	"github.com/fnord-lang/fnord/op"
)

const (
	// DefaultContextCheckInterval is the number of steps between
	// deterministic checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

var (
	ErrAwaitingInput    = errors.New("machine is awaiting input")
	ErrNotAwaitingInput = errors.New("machine is not awaiting input")
	ErrHalted           = errors.New("machine is halted")
	ErrStepLimit        = errors.New("step limit reached")
	ErrObserverHalt     = errors.New("execution halted by observer")
)

// Phase is the run state of a Machine.
type Phase uint8

const (
	// Running means the next Run or Step executes operations.
	Running Phase = iota
	// AwaitingInput means the program executed an Input operation and is
	// suspended until ProvideInput is called.
	AwaitingInput
	// Halted means the program ran past its last operation.
	Halted
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case AwaitingInput:
		return "awaiting_input"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Machine executes one Program against a Tape. A Machine is not safe for
// concurrent use.
type Machine struct {
	program *bytecode.Program
	tape    *Tape
	pc      int // program counter
	phase   Phase
	output  strings.Builder
	steps   int64

	// contextCheckInterval is the number of steps between checks of
	// ctx.Done(). A value of 0 disables checking.
	contextCheckInterval int

	// stepLimit bounds the steps executed by a single Run. 0 is unlimited.
	stepLimit int

	// observer receives a callback before every step. If nil, no callbacks
	// are made.
	observer Observer
}

// State is a snapshot of a Machine's execution state.
type State struct {
	PC        int    `json:"pc"`
	Pointer   int    `json:"pointer"`
	Cell      uint8  `json:"cell"`
	Phase     Phase  `json:"phase"`
	LoopDepth int    `json:"loop_depth"`
	Steps     int64  `json:"steps"`
	Output    string `json:"output"`
}

// New creates a Machine ready to run program from its first operation. A
// nil or empty program yields a machine that is already Halted.
func New(program *bytecode.Program, options ...Option) *Machine {
	if program == nil {
		program = bytecode.NewProgram(bytecode.ProgramParams{})
	}
	m := &Machine{
		program:              program,
		tape:                 NewTape(),
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		opt(m)
	}
	m.rewind()
	return m
}

// Program returns the program loaded into the machine.
func (m *Machine) Program() *bytecode.Program {
	return m.program
}

// Phase returns the current run phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// PC returns the index of the next operation to execute.
func (m *Machine) PC() int {
	return m.pc
}

// Pointer returns the tape pointer.
func (m *Machine) Pointer() int {
	return m.tape.Pointer()
}

// Cell returns the value of the tape cell at index.
func (m *Machine) Cell(index int) uint8 {
	return m.tape.Cell(index)
}

// Tape returns a copy of the machine's tape.
func (m *Machine) Tape() *Tape {
	return m.tape.Clone()
}

// Cells returns a copy of n cells starting at offset, clamped to the tape.
func (m *Machine) Cells(offset, n int) []uint8 {
	return m.tape.Window(offset, n)
}

// SetCell stores v in the tape cell at index.
func (m *Machine) SetCell(index int, v uint8) {
	m.tape.SetCell(index, v)
}

// Output returns everything printed since the last reset.
func (m *Machine) Output() string {
	return m.output.String()
}

// Steps returns the number of steps executed since the last reset.
func (m *Machine) Steps() int64 {
	return m.steps
}

// LoopDepth returns the number of loops the next operation executes in. A
// LoopStart that has not been entered yet is not counted.
func (m *Machine) LoopDepth() int {
	if m.phase == Halted || m.program.InstructionCount() == 0 {
		return 0
	}
	depth := m.program.DepthAt(m.pc)
	if m.program.InstructionAt(m.pc) == op.LoopStart {
		depth--
	}
	return depth
}

// State returns a snapshot of the execution state.
func (m *Machine) State() State {
	return State{
		PC:        m.pc,
		Pointer:   m.tape.Pointer(),
		Cell:      m.tape.Get(),
		Phase:     m.phase,
		LoopDepth: m.LoopDepth(),
		Steps:     m.steps,
		Output:    m.output.String(),
	}
}

// Run executes steps until the program requests input or halts. Running a
// halted machine is a no-op. Cancellation of ctx is checked between steps;
// a cancelled or step-limited run leaves the machine Running and consistent,
// so Run may be called again to continue.
func (m *Machine) Run(ctx context.Context) error {
	switch m.phase {
	case Halted:
		return nil
	case AwaitingInput:
		return ErrAwaitingInput
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var checkCount, executed int
	checkInterval := m.contextCheckInterval
	doneChan := ctx.Done()
	for m.phase == Running {
		// Deterministic check of ctx.Done() every N steps.
		if checkInterval > 0 && doneChan != nil {
			checkCount++
			if checkCount >= checkInterval {
				checkCount = 0
				select {
				case <-doneChan:
					return ctx.Err()
				default:
				}
			}
		}
		if m.stepLimit > 0 && executed >= m.stepLimit {
			return ErrStepLimit
		}
		if err := m.step(); err != nil {
			return err
		}
		executed++
	}
	return nil
}

// Step executes exactly one operation.
func (m *Machine) Step() error {
	switch m.phase {
	case Halted:
		return ErrHalted
	case AwaitingInput:
		return ErrAwaitingInput
	}
	return m.step()
}

// ProvideInput stores the low 8 bits of ch in the current cell and resumes
// the suspended program after its Input operation.
func (m *Machine) ProvideInput(ctx context.Context, ch rune) error {
	if m.phase != AwaitingInput {
		return ErrNotAwaitingInput
	}
	m.tape.Set(uint8(ch))
	m.phase = Running
	return m.Run(ctx)
}

// Reset rewinds the program counter, clears the output and, if clearTape is
// set, zeroes the tape and pointer. The program is kept.
func (m *Machine) Reset(clearTape bool) {
	if clearTape {
		m.tape.Reset()
	}
	m.rewind()
}

// Load replaces the program and rewinds. The tape is kept.
func (m *Machine) Load(program *bytecode.Program) {
	if program == nil {
		program = bytecode.NewProgram(bytecode.ProgramParams{})
	}
	m.program = program
	m.rewind()
}

func (m *Machine) rewind() {
	m.pc = 0
	m.steps = 0
	m.output.Reset()
	if m.program.InstructionCount() == 0 {
		m.phase = Halted
	} else {
		m.phase = Running
	}
}

// step executes the operation at pc. The machine must be Running.
func (m *Machine) step() error {
	code := m.program.InstructionAt(m.pc)
	if m.observer != nil {
		event := StepEvent{
			PC:        m.pc,
			Opcode:    code,
			Pointer:   m.tape.Pointer(),
			Cell:      m.tape.Get(),
			Location:  m.program.LocationAt(m.pc),
			LoopDepth: m.LoopDepth(),
			Step:      m.steps,
		}
		if !m.observer.OnStep(event) {
			return ErrObserverHalt
		}
	}
	m.steps++

	switch code {
	case op.ShiftRight:
		m.tape.ShiftRight()
	case op.ShiftLeft:
		m.tape.ShiftLeft()
	case op.Increment:
		m.tape.Increment()
	case op.Decrement:
		m.tape.Decrement()
	case op.Print:
		m.output.WriteRune(rune(m.tape.Get()))
	case op.Input:
		m.phase = AwaitingInput
		m.advance()
		return nil
	case op.LoopStart:
		if m.tape.Get() == 0 {
			m.pc = m.program.JumpAt(m.pc)
		}
	case op.LoopEnd:
		if m.tape.Get() != 0 {
			m.pc = m.program.JumpAt(m.pc)
		}
	default:
		loc := m.program.LocationAt(m.pc)
		return errz.NewStructuredErrorf(errz.ErrRuntime, errz.SourceLocation{
			Filename: m.program.Filename(),
			Offset:   loc.Offset,
			Line:     loc.Line,
			Column:   loc.Column,
		}, "invalid operation %d at %d", code, m.pc)
	}
	m.advance()
	return nil
}

// advance moves to the next operation, halting past the end.
func (m *Machine) advance() {
	m.pc++
	if m.pc == m.program.InstructionCount() {
		m.pc = 0
		m.phase = Halted
	}
}
