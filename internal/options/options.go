// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `flag:"i" usage:"input ROM file"`
	System string `flag:"s" usage:"target system: chip8 (default: auto-detect)"`
}

// Execution contains options that control the run loop.
type Execution struct {
	Cycles          int      `flag:"cycles" usage:"number of instructions to execute, 0 runs until the program idles" default:"1000"`
	CyclesPerTick   int      `flag:"tick" usage:"instructions per 60 Hz timer tick" default:"10"`
	Seed            uint64   `flag:"seed" usage:"random seed, 0 uses the current time"`
	Breakpoints     []uint16 `flag:"break" usage:"comma separated hex addresses to stop at"`
	Keys            []byte   `flag:"keys" usage:"comma separated hex keys held down during the run"`
	ContinueOnFault bool     `flag:"continue" usage:"keep running after stack faults"`
}

// Listing contains options for the disassembly listing mode.
type Listing struct {
	Disassemble   bool `flag:"disasm" usage:"write a disassembly listing of the ROM instead of running it"`
	NoHexComments bool `flag:"nohexcomments" usage:"do not output opcode bytes as hex values in comments"`
	NoOffsets     bool `flag:"nooffsets" usage:"do not output offsets in comments"`
}

// Flags contains logging behavior options.
type Flags struct {
	Debug bool `flag:"debug" usage:"enable debug logging"`
	Trace bool `flag:"trace" usage:"log every executed instruction"`
	Quiet bool `flag:"q" usage:"quiet mode"`
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Execution
	Listing
	Flags
}
