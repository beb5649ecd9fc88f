package vm

// Option is a configuration function for a Machine.
type Option func(*Machine)

// WithTape starts the machine from a copy of tape, including its pointer.
// The machine never aliases the caller's tape.
func WithTape(tape *Tape) Option {
	return func(m *Machine) {
		if tape != nil {
			m.tape = tape.Clone()
		}
	}
}

// WithContextCheckInterval sets how often Run checks ctx.Done(). The
// interval is a number of steps. A value of 0 disables checking. The
// default is DefaultContextCheckInterval.
func WithContextCheckInterval(interval int) Option {
	return func(m *Machine) {
		m.contextCheckInterval = interval
	}
}

// WithStepLimit bounds the number of steps a single Run call may execute.
// Run returns ErrStepLimit when the bound is reached. A value of 0 means no
// limit.
func WithStepLimit(limit int) Option {
	return func(m *Machine) {
		m.stepLimit = limit
	}
}

// WithObserver sets an observer for machine steps.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast. Returning false halts execution with
// ErrObserverHalt.
func WithObserver(observer Observer) Option {
	return func(m *Machine) {
		m.observer = observer
	}
}
