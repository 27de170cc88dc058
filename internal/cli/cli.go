// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage and the flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptions checks the value ranges of the execution options
func validateOptions(opts options.Program) error {
	if opts.Cycles < 0 {
		return fmt.Errorf("invalid cycle count %d, must not be negative", opts.Cycles)
	}
	if opts.CyclesPerTick < 1 {
		return fmt.Errorf("invalid tick rate %d, must be at least 1", opts.CyclesPerTick)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Cycles, "cycles", 1000, "number of instructions to execute, 0 runs until the program idles")
	flags.IntVar(&opts.CyclesPerTick, "tick", 10, "instructions to execute per 60 Hz timer tick")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number instruction, 0 uses the current time")
	flags.Func("break", "comma separated hex addresses to stop execution at, for example 2a4,300", func(s string) error {
		addresses, err := parseHexList(s, chip8.AddressMask)
		if err != nil {
			return fmt.Errorf("parsing breakpoints: %w", err)
		}
		opts.Breakpoints = append(opts.Breakpoints, addresses...)
		return nil
	})
	flags.Func("keys", "comma separated hex keys that are held down during the run, for example 5,a", func(s string) error {
		keys, err := parseHexList(s, chip8.KeyCount-1)
		if err != nil {
			return fmt.Errorf("parsing keys: %w", err)
		}
		for _, key := range keys {
			opts.Keys = append(opts.Keys, byte(key))
		}
		return nil
	})
	flags.BoolVar(&opts.ContinueOnFault, "continue", false, "keep running after stack overflow or underflow faults")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "write a disassembly listing of the ROM instead of running it")
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// parseHexList parses comma separated hex values that are not larger than limit.
func parseHexList(s string, limit uint16) ([]uint16, error) {
	var values []uint16
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(field)), "0x")
		field = strings.TrimPrefix(field, "$")
		if field == "" {
			continue
		}

		value, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing hex value '%s': %w", field, err)
		}
		if value > uint64(limit) {
			return nil, fmt.Errorf("value $%X exceeds maximum $%X", value, limit)
		}
		values = append(values, uint16(value))
	}
	return values, nil
}
