package ir

import "fmt"

type (
	// KindError reports an operand whose register kind does not match
	// what its slot requires. It aborts body emission before any
	// backend call for the instruction.
	KindError struct {
		Insn Instruction
		Slot string
		Got  Kind
		Want Kind
	}

	// UnsupportedError reports an instruction with no working body
	// lowering. It is a capability gap, not a data error, and is
	// fatal to the pass that hits it.
	UnsupportedError struct {
		Insn Instruction
	}

	// UndefinedError reports a temp read before anything wrote it.
	// Raised by Check only; emission does not track data flow.
	UndefinedError struct {
		Insn Instruction
		Reg  Reg
	}
)

func (e KindError) Error() string {
	return fmt.Sprintf("%v: %s operand has kind %v, want %v", e.Insn, e.Slot, e.Got, e.Want)
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("%v: operation is not supported", e.Insn)
}

func (e UndefinedError) Error() string {
	return fmt.Sprintf("%v: %v is read but never written", e.Insn, e.Reg)
}
