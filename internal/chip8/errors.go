package chip8

import (
	"errors"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

var (
	// ErrInvalidOpcode is returned for instruction words that match no instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrStackUnderflow is returned when returning from a subroutine with an empty stack.
	ErrStackUnderflow = chip8cpu.ErrStackUnderflow
	// ErrStackOverflow is returned when calling a subroutine with a full stack.
	ErrStackOverflow = chip8cpu.ErrStackOverflow
	// ErrOutOfBounds is returned when a game does not fit into program memory.
	ErrOutOfBounds = errors.New("out of bounds")
)
