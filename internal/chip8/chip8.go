package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// AddressMask limits addresses to the 12 bit address space.
	AddressMask = 0x0FFF

	// ProgramStart is the address where games are loaded and execution starts.
	ProgramStart = 0x200

	// MaxROMSize is the largest game that fits into program memory.
	MaxROMSize = MemorySize - ProgramStart
)

// RegisterCount is the number of general purpose registers.
const RegisterCount = 16

// flagRegister is VF, used for carry, borrow and collision flags.
const flagRegister = 0xF

// Dependencies contains the collaborators of the machine.
// Nil fields are replaced by default implementations.
type Dependencies struct {
	Keypad Keypad
	Timers Timers
	Random RandomSource
}

// Chip8 is a CHIP-8 virtual machine. It is not safe for concurrent use.
type Chip8 struct {
	logger *log.Logger

	memory  [MemorySize]byte
	v       [RegisterCount]byte
	i       uint16
	pc      uint16
	stack   Stack
	display Framebuffer

	keypad Keypad
	timers Timers
	random RandomSource
}

// State is a snapshot of the CPU registers.
type State struct {
	PC    uint16
	I     uint16
	V     [RegisterCount]byte
	Stack []uint16
}

// New returns a machine with the font installed and the registers reset.
func New(logger *log.Logger, deps Dependencies) *Chip8 {
	c := &Chip8{
		logger: logger,
		keypad: deps.Keypad,
		timers: deps.Timers,
		random: deps.Random,
	}
	if c.keypad == nil {
		c.keypad = &KeyState{}
	}
	if c.timers == nil {
		c.timers = &TimerRegisters{}
	}
	if c.random == nil {
		c.random = defaultRandomSource()
	}

	copy(c.memory[FontAddress:], fontSet[:])
	c.Reset()
	return c
}

// Reset initializes the registers, the program counter and the stack.
// Memory and framebuffer keep their content.
func (c *Chip8) Reset() {
	c.i = 0
	c.pc = ProgramStart
	c.v = [RegisterCount]byte{}
	c.stack.Reset()
}

// LoadGame copies the game into memory starting at ProgramStart.
// Nothing is written if the game does not fit.
func (c *Chip8) LoadGame(rom []byte) error {
	if ProgramStart+len(rom) > MemorySize {
		return fmt.Errorf("%w: game size %d exceeds maximum of %d bytes", ErrOutOfBounds, len(rom), MaxROMSize)
	}
	for i, b := range rom {
		c.WriteMemory(uint16(ProgramStart+i), b)
	}
	return nil
}

// ReadMemory returns the byte at the given address, wrapped to 12 bits.
func (c *Chip8) ReadMemory(address uint16) byte {
	return c.memory[address&AddressMask]
}

// WriteMemory stores a byte at the given address, wrapped to 12 bits.
func (c *Chip8) WriteMemory(address uint16, value byte) {
	c.memory[address&AddressMask] = value
}

// FetchOpcode reads the big endian instruction word at the program counter
// and advances the program counter by 2.
func (c *Chip8) FetchOpcode() uint16 {
	high := c.ReadMemory(c.pc)
	low := c.ReadMemory(c.pc + 1)
	c.pc = (c.pc + 2) & AddressMask
	return uint16(high)<<8 | uint16(low)
}

// Step fetches and dispatches one instruction.
func (c *Chip8) Step() (uint16, error) {
	opcode := c.FetchOpcode()
	return opcode, c.Dispatch(opcode)
}

// PC returns the program counter.
func (c *Chip8) PC() uint16 {
	return c.pc
}

// I returns the index register.
func (c *Chip8) I() uint16 {
	return c.i
}

// V returns the general purpose register Vx.
func (c *Chip8) V(x byte) byte {
	return c.v[x&0x0F]
}

// Registers returns a copy of the general purpose registers.
func (c *Chip8) Registers() [RegisterCount]byte {
	return c.v
}

// StackDepth returns the number of active subroutine calls.
func (c *Chip8) StackDepth() int {
	return c.stack.Depth()
}

// Framebuffer returns the display for rendering.
func (c *Chip8) Framebuffer() *Framebuffer {
	return &c.display
}

// State returns a snapshot of the registers and the stack.
func (c *Chip8) State() State {
	return State{
		PC:    c.pc,
		I:     c.i,
		V:     c.v,
		Stack: c.stack.Entries(),
	}
}
