package vm

import (
	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/op"
)

// Observer is an interface for observing machine steps. Implementations can
// be used for tracing, profiling or debugging without modifying the machine.
type Observer interface {
	// OnStep is called before each operation executes.
	// Returns false to halt execution immediately.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single step.
type StepEvent struct {
	// PC is the index of the operation about to execute.
	PC int

	// Opcode is the operation about to execute.
	Opcode op.Code

	// Pointer is the tape pointer before the step.
	Pointer int

	// Cell is the value of the current cell before the step.
	Cell uint8

	// Location is the source location of the operation.
	Location bytecode.SourceLocation

	// LoopDepth is the number of loops the operation executes in.
	LoopDepth int

	// Step is the number of steps executed before this one.
	Step int64
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(StepEvent) bool

// OnStep calls f.
func (f ObserverFunc) OnStep(event StepEvent) bool {
	return f(event)
}

// NoOpObserver is an Observer implementation that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

var (
	_ Observer = NoOpObserver{}
	_ Observer = ObserverFunc(nil)
)
