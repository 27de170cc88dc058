// Package detector handles ROM system detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

var errUnsupportedSystem = errors.New("unsupported system")

// Detector determines the system a ROM was written for.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system from options or from the file extension
// and returns an error for any system other than CHIP-8.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	system, _ := arch.SystemFromString(opts.System)
	if system == "" {
		system = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))
	}

	if system != arch.CHIP8System {
		return system, fmt.Errorf("%w '%s', only CHIP-8 ROMs can be run", errUnsupportedSystem, system)
	}
	return system, nil
}

// detectFromFile determines the system type based on file extension.
// Raw CHIP-8 ROMs have no header, so anything not known as a different
// system is treated as CHIP-8.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
