package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrStackUnderflow = errors.New("return with empty call stack")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrHalted         = errors.New("cpu halted")
)

// DecodeError is returned when an opcode does not map to any instruction.
type DecodeError struct {
	Opcode Instruction
	PC     uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v %s at 0x%03X", ErrUnknownOpcode, e.Opcode, e.PC)
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// ExecError wraps a failure that happened while fetching or executing an instruction.
type ExecError struct {
	Opcode Instruction
	PC     uint16
	Err    error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing %s at 0x%03X: %v", e.Opcode, e.PC, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
