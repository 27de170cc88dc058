// Package app provides the main application helpers for the interpreter.
package app

import (
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}

// PrintInfo prints the information about the ROM that is about to run.
func PrintInfo(logger *log.Logger, opts options.Program, romSize int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", romSize),
		log.Int("cycles", opts.Cycles),
	)
	if opts.Cycles == 0 {
		logger.Warn("No cycle budget set, the run only ends when the program idles")
	}
}

// PrintResult prints the summary of a finished run.
func PrintResult(logger *log.Logger, opts options.Program, result runner.Result) {
	if opts.Quiet {
		return
	}

	logger.Info("Run finished",
		log.Stringer("reason", result.Reason),
		log.Int("cycles", result.Cycles),
		log.Hex("pc", result.PC),
	)
	if result.InvalidOpcodes > 0 || result.Faults > 0 {
		logger.Warn("Instructions failed",
			log.Int("invalid", result.InvalidOpcodes),
			log.Int("faults", result.Faults),
		)
	}
}
