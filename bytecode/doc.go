// Package bytecode provides the immutable representation of a tokenized
// fnord program.
//
// A [Program] is the output of the compiler: the operation sequence, the
// matching-bracket jump table, the loop depth and source location of every
// operation. It is created once per tokenize and may be shared by any number
// of machines.
//
// # Immutability Guarantees
//
//   - All fields are unexported
//   - The constructor copies input slices to prevent caller mutation
//   - Index-based accessors return values, and Instructions returns a copy
//
// # Usage
//
//	tokens := lexer.New(src, op.Symbol).Tokens()
//	program, err := compiler.Compile(tokens, &compiler.Config{Source: src})
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Instructions: %d\n", program.InstructionCount())
//	machine := vm.New(program)
package bytecode
