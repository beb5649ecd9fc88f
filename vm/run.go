package vm

import (
	"context"

	"github.com/fnord-lang/fnord/bytecode"
)

// Run executes program in a new Machine until it halts or suspends for
// input, and returns the machine for inspection or resumption.
func Run(ctx context.Context, program *bytecode.Program, options ...Option) (*Machine, error) {
	machine := New(program, options...)
	if err := machine.Run(ctx); err != nil {
		return machine, err
	}
	return machine, nil
}

// RunWithInput executes program, answering each input request with the
// next rune of input. When input is exhausted the machine is returned
// suspended in the AwaitingInput phase.
func RunWithInput(ctx context.Context, program *bytecode.Program, input string, options ...Option) (*Machine, error) {
	machine, err := Run(ctx, program, options...)
	if err != nil {
		return machine, err
	}
	for _, ch := range input {
		if machine.Phase() != AwaitingInput {
			break
		}
		if err := machine.ProvideInput(ctx, ch); err != nil {
			return machine, err
		}
	}
	return machine, nil
}
