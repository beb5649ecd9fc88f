package fnord

import (
	"github.com/rs/zerolog"

	"github.com/fnord-lang/fnord/op"
	"github.com/fnord-lang/fnord/vm"
)

// Option configures a fnord tokenization, run or session.
type Option func(*options)

type options struct {
	dialect       op.Dialect
	filename      string
	tape          *vm.Tape
	observer      vm.Observer
	stepLimit     int
	checkInterval int
	input         string
	hasInput      bool
	logger        zerolog.Logger
}

func collectOptions(opts ...Option) *options {
	o := &options{
		checkInterval: vm.DefaultContextCheckInterval,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) vmOpts() []vm.Option {
	opts := []vm.Option{vm.WithContextCheckInterval(o.checkInterval)}
	if o.tape != nil {
		opts = append(opts, vm.WithTape(o.tape))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	if o.stepLimit > 0 {
		opts = append(opts, vm.WithStepLimit(o.stepLimit))
	}
	return opts
}

// WithDialect sets the dialect used by Eval and by a new Session. The
// default is the symbol dialect.
func WithDialect(dialect op.Dialect) Option {
	return func(o *options) {
		o.dialect = dialect
	}
}

// WithFilename sets the filename for the source being tokenized.
// This is used in error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithTape starts execution from a copy of tape.
func WithTape(tape *vm.Tape) Option {
	return func(o *options) {
		o.tape = tape
	}
}

// WithObserver sets an observer for machine steps.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithStepLimit bounds the number of steps a single run may execute.
func WithStepLimit(limit int) Option {
	return func(o *options) {
		o.stepLimit = limit
	}
}

// WithContextCheckInterval sets how many steps run between checks for
// context cancellation.
func WithContextCheckInterval(interval int) Option {
	return func(o *options) {
		o.checkInterval = interval
	}
}

// WithInput supplies the characters consumed, one per Input operation, by
// Run and Eval. Without it a program that reads input stops suspended.
func WithInput(input string) Option {
	return func(o *options) {
		o.input = input
		o.hasInput = true
	}
}

// WithLogger sets the logger used by a Session.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
