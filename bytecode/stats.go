package bytecode

import "github.com/fnord-lang/fnord/op"

// Stats contains statistics about a tokenized program.
// This is useful for auditing programs before execution.
type Stats struct {
	// InstructionCount is the total number of operations.
	InstructionCount int `json:"instruction_count"`

	// LoopCount is the number of loops (LoopStart/LoopEnd pairs).
	LoopCount int `json:"loop_count"`

	// MaxDepth is the deepest loop nesting level.
	MaxDepth int `json:"max_depth"`

	// OpCounts is the number of occurrences of each operation.
	OpCounts map[op.Code]int `json:"op_counts"`

	// SourceBytes is the size of the original source code in bytes.
	SourceBytes int `json:"source_bytes"`
}
