// Package pipeline orchestrates the interpreter workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/render"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Output is the destination of the rendered display.
type Output struct {
	Writer io.Writer
	Style  render.Style
}

// Pipeline orchestrates loading, running and rendering a ROM.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new interpreter pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline for the input file of the options.
// In listing mode the ROM is disassembled instead of run.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, out Output) (runner.Result, error) {
	if _, err := p.detector.Detect(opts); err != nil {
		return runner.Result{}, fmt.Errorf("detecting system: %w", err)
	}

	rom, err := p.loader.Load(opts.Input)
	if err != nil {
		return runner.Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disassemble {
		return runner.Result{}, p.WriteListing(rom, opts, out.Writer)
	}
	return p.ExecuteWithROM(ctx, rom, opts, out)
}

// WriteListing writes the disassembly listing of the ROM.
func (p *Pipeline) WriteListing(rom []byte, opts options.Program, w io.Writer) error {
	if len(rom) > chip8.MaxROMSize {
		return fmt.Errorf("%w: game size %d exceeds maximum of %d bytes", chip8.ErrOutOfBounds, len(rom), chip8.MaxROMSize)
	}

	lw := writer.New(w, writer.Options{
		HexComments:    !opts.NoHexComments,
		OffsetComments: !opts.NoOffsets,
	})
	if err := lw.WriteListing(rom, chip8.ProgramStart); err != nil {
		return fmt.Errorf("writing listing: %w", err)
	}
	return nil
}

// ExecuteWithROM runs the pipeline with a ROM that is already in memory.
// The display is also rendered when the run stopped with an error.
func (p *Pipeline) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program, out Output) (runner.Result, error) {
	vm, timers := p.createMachine(opts)
	if err := vm.LoadGame(rom); err != nil {
		return runner.Result{}, fmt.Errorf("loading game: %w", err)
	}

	app.PrintInfo(p.logger, opts, len(rom))

	r := runner.New(p.logger, vm, timers, runner.Config{
		MaxCycles:       opts.Cycles,
		CyclesPerTick:   opts.CyclesPerTick,
		Breakpoints:     opts.Breakpoints,
		ContinueOnFault: opts.ContinueOnFault,
		Trace:           opts.Trace,
	})
	result, runErr := r.Run(ctx)

	app.PrintResult(p.logger, opts, result)
	state := vm.State()
	p.logger.Debug("Machine state",
		log.Hex("pc", state.PC),
		log.Hex("i", state.I),
		log.Int("stack_depth", len(state.Stack)),
		log.Hex("vf", state.V[0xF]),
	)

	if out.Writer != nil {
		if err := render.Text(out.Writer, vm.Framebuffer(), out.Style); err != nil {
			return result, fmt.Errorf("rendering display: %w", err)
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("running ROM: %w", runErr)
	}
	return result, nil
}

// createMachine creates the interpreter and its peripherals for the options.
func (p *Pipeline) createMachine(opts options.Program) (*chip8.Chip8, *chip8.TimerRegisters) {
	keys := &chip8.KeyState{}
	for _, key := range opts.Keys {
		keys.Press(key)
	}
	timers := &chip8.TimerRegisters{}

	deps := chip8.Dependencies{
		Keypad: keys,
		Timers: timers,
	}
	if opts.Seed != 0 {
		deps.Random = chip8.NewRandomSource(opts.Seed)
	}

	return chip8.New(p.logger, deps), timers
}
