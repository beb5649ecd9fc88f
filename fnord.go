// Package fnord runs Brainfuck programs and their BrainFNORD keyword
// spelling.
//
// Source text is tokenized into an immutable [bytecode.Program], which a
// [vm.Machine] executes over a 30000 cell tape. A program that reads input
// suspends until the caller supplies a character. [Session] keeps the state
// an interactive shell needs between runs.
package fnord

import (
	"context"

	"github.com/fnord-lang/fnord/bytecode"
	"github.com/fnord-lang/fnord/compiler"
	"github.com/fnord-lang/fnord/internal/lexer"
	"github.com/fnord-lang/fnord/op"
	"github.com/fnord-lang/fnord/vm"
)

// Version is the current fnord version.
const Version = "1.0.0"

// HelloWorld is a symbol dialect program that prints "Hello, World!".
const HelloWorld = "-[------->+<]>-.-[->+++++<]>++.+++++++..+++.[->+++++<]>+.------------.---[->+++<]>.-[--->+<]>---.+++.------.--------.-[--->+<]>."

// Result is the outcome of running a program.
type Result struct {
	Output  string   `json:"output"`
	Phase   vm.Phase `json:"phase"`
	Pointer int      `json:"pointer"`
	Steps   int64    `json:"steps"`
	Cells   []uint8  `json:"cells"`
	Tape    *vm.Tape `json:"-"`
}

func newResult(m *vm.Machine) *Result {
	tape := m.Tape()
	return &Result{
		Output:  m.Output(),
		Phase:   m.Phase(),
		Pointer: m.Pointer(),
		Steps:   m.Steps(),
		Cells:   tape.Window(0, tape.Used()),
		Tape:    tape,
	}
}

// Tokenize converts source written in dialect into a Program. Text that does
// not spell an operation is ignored. Unbalanced loop brackets are reported
// as *errz.StructuredError values of kind errz.ErrStructural.
func Tokenize(source string, dialect op.Dialect, opts ...Option) (*bytecode.Program, error) {
	o := collectOptions(opts...)
	var lexOpts []lexer.Option
	if o.filename != "" {
		lexOpts = append(lexOpts, lexer.WithFile(o.filename))
	}
	tokens := lexer.New(source, dialect, lexOpts...).Tokens()
	return compiler.Compile(tokens, &compiler.Config{
		Filename: o.filename,
		Source:   source,
		Dialect:  dialect,
	})
}

// Run executes program on a fresh machine. Each call creates new runtime
// state, so the same Program may be run concurrently. On a runtime error
// the partial Result is returned alongside it.
func Run(ctx context.Context, program *bytecode.Program, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	var (
		m   *vm.Machine
		err error
	)
	if o.hasInput {
		m, err = vm.RunWithInput(ctx, program, o.input, o.vmOpts()...)
	} else {
		m, err = vm.Run(ctx, program, o.vmOpts()...)
	}
	return newResult(m), err
}

// Eval tokenizes and runs source. It is equivalent to Tokenize followed by
// Run, using the dialect set with WithDialect.
func Eval(ctx context.Context, source string, opts ...Option) (*Result, error) {
	o := collectOptions(opts...)
	program, err := Tokenize(source, o.dialect, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, program, opts...)
}
