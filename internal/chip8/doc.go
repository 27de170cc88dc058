// Package chip8 implements a CHIP-8 virtual machine interpreter.
//
// # Machine Overview
//
// CHIP-8 is an interpreted language from the 1970s. The virtual machine has:
//   - 4KB of memory (0x000-0xFFF), every access is masked to 12 bits
//   - 16 general-purpose 8-bit registers V0-VF, VF doubles as flag register
//   - a 12-bit index register I and a 12-bit program counter
//   - a call stack of at most 16 return addresses
//   - a 64x32 monochrome framebuffer
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, holds the built-in font at FontAddress
//	0x200-0xFFF: Program space, filled by LoadGame
//
// # Execution
//
// A driver owns the execution loop:
//
//	vm := chip8.New(logger, chip8.Dependencies{})
//	if err := vm.LoadGame(rom); err != nil {
//		return fmt.Errorf("loading game: %w", err)
//	}
//	for {
//		opcode := vm.FetchOpcode()
//		if err := vm.Dispatch(opcode); err != nil {
//			// decide whether to continue based on the error
//		}
//	}
//
// Every instruction either fully applies or leaves the state untouched.
// Errors wrap one of ErrInvalidOpcode, ErrStackUnderflow, ErrStackOverflow
// or ErrOutOfBounds and never halt the machine on their own.
//
// # Collaborators
//
// Keyboard input, the delay and sound timers and the random source used by
// CXNN are injected through Dependencies. The machine never decrements the
// timers itself, the driver calls TimerRegisters.Tick at its own cadence.
package chip8
