package main

import (
	"github.com/rs/zerolog"

	"github.com/fnord-lang/fnord/vm"
)

// traceObserver logs each machine step.
type traceObserver struct {
	logger zerolog.Logger
}

func newTraceObserver(logger zerolog.Logger) *traceObserver {
	return &traceObserver{logger: logger}
}

func (o *traceObserver) OnStep(e vm.StepEvent) bool {
	o.logger.Debug().
		Int64("step", e.Step).
		Int("pc", e.PC).
		Str("op", e.Opcode.String()).
		Int("ptr", e.Pointer).
		Uint8("cell", e.Cell).
		Int("depth", e.LoopDepth).
		Str("pos", e.Location.String()).
		Msg("step")
	return true
}
