// Package runner drives the fetch and execute loop of a CHIP-8 machine.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// StopReason describes why a run ended.
type StopReason int

// Reasons for the run loop to end.
const (
	StopBudget StopReason = iota
	StopBreakpoint
	StopIdle
	StopFault
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopBudget:
		return "cycle budget exhausted"
	case StopBreakpoint:
		return "breakpoint"
	case StopIdle:
		return "program idle"
	case StopFault:
		return "fault"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("unknown (%d)", int(r))
	}
}

// Machine is the part of the interpreter the runner needs.
type Machine interface {
	PC() uint16
	Step() (uint16, error)
}

// Ticker decrements timers at a fixed cadence.
type Ticker interface {
	Tick()
}

// Config controls the run loop.
type Config struct {
	MaxCycles       int // 0 runs until the program idles
	CyclesPerTick   int
	Breakpoints     []uint16
	ContinueOnFault bool
	Trace           bool
}

// Result summarizes a finished run.
type Result struct {
	Reason         StopReason
	Cycles         int
	PC             uint16
	InvalidOpcodes int
	Faults         int
}

// Runner executes instructions of a machine until a stop condition occurs.
type Runner struct {
	logger      *log.Logger
	vm          Machine
	timers      Ticker
	cfg         Config
	breakpoints set.Set[uint16]
}

// New returns a new runner. The timers are ticked every CyclesPerTick
// executed instructions.
func New(logger *log.Logger, vm Machine, timers Ticker, cfg Config) *Runner {
	if cfg.CyclesPerTick < 1 {
		cfg.CyclesPerTick = 1
	}
	breakpoints := set.New[uint16]()
	for _, address := range cfg.Breakpoints {
		breakpoints.Add(address & chip8.AddressMask)
	}
	return &Runner{
		logger:      logger,
		vm:          vm,
		timers:      timers,
		cfg:         cfg,
		breakpoints: breakpoints,
	}
}

// Run executes instructions until the cycle budget is exhausted, a
// breakpoint is reached, the program idles, a fault occurs or the context
// is canceled. Instruction errors other than faults are logged and skipped.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var result Result

	for {
		result.PC = r.vm.PC()

		if err := ctx.Err(); err != nil {
			result.Reason = StopCanceled
			return result, fmt.Errorf("running program: %w", err)
		}
		if r.cfg.MaxCycles > 0 && result.Cycles >= r.cfg.MaxCycles {
			result.Reason = StopBudget
			return result, nil
		}
		if r.breakpoints.Contains(result.PC) {
			r.logger.Info("Breakpoint reached", log.Hex("address", result.PC))
			result.Reason = StopBreakpoint
			return result, nil
		}

		pc := result.PC
		opcode, err := r.vm.Step()
		result.Cycles++

		if r.cfg.Trace {
			r.logger.Debug("Executed instruction",
				log.Hex("address", pc),
				log.Hex("opcode", opcode),
				log.String("instruction", chip8.Disassemble(opcode)))
		}

		if err != nil {
			if stop := r.handleError(&result, pc, err); stop {
				return result, fmt.Errorf("executing instruction at $%03X: %w", pc, err)
			}
		}

		if result.Cycles%r.cfg.CyclesPerTick == 0 {
			r.timers.Tick()
		}

		if isIdle(opcode, pc, r.vm.PC()) {
			r.logger.Debug("Program is idle", log.Hex("address", pc))
			result.PC = pc
			result.Reason = StopIdle
			return result, nil
		}
	}
}

// handleError counts an instruction error and returns whether the run
// has to stop.
func (r *Runner) handleError(result *Result, pc uint16, err error) bool {
	if errors.Is(err, chip8.ErrInvalidOpcode) {
		result.InvalidOpcodes++
		r.logger.Warn("Skipping invalid instruction",
			log.Hex("address", pc),
			log.Err(err))
		return false
	}

	result.Faults++
	if r.cfg.ContinueOnFault {
		r.logger.Warn("Continuing after instruction fault", log.Hex("address", pc), log.Err(err))
		return false
	}
	result.Reason = StopFault
	result.PC = r.vm.PC()
	return true
}

// isIdle returns whether the instruction keeps the machine at the same
// address forever: a jump to itself or a key wait without a pressed key.
func isIdle(opcode, pc, nextPC uint16) bool {
	if nextPC != pc {
		return false
	}
	ins := chip8.Decode(opcode)
	switch ins.Family {
	case 0x1, 0xB:
		return true
	case 0xF:
		return ins.NN == 0x0A
	default:
		return false
	}
}
