package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/render"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// drawDigitROM draws the font digit 0 at the top left corner and idles.
var drawDigitROM = []byte{
	0x60, 0x00, // ld V0, $00
	0xF0, 0x29, // ld F, V0
	0xD0, 0x05, // drw V0, V0, 5
	0x12, 0x06, // jp $206
}

func TestNew(t *testing.T) {
	p := New(log.NewTestLogger(t))

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

func TestExecuteWithROM(t *testing.T) {
	p := New(log.NewTestLogger(t))
	opts := options.Program{
		Execution: options.Execution{Cycles: 100, CyclesPerTick: 10},
	}

	var buf bytes.Buffer
	result, err := p.ExecuteWithROM(context.Background(), drawDigitROM, opts, Output{Writer: &buf, Style: render.ASCII})
	assert.NoError(t, err)
	assert.Equal(t, runner.StopIdle, result.Reason)
	assert.Equal(t, 4, result.Cycles)

	lines := strings.Split(buf.String(), "\n")
	assert.True(t, len(lines) > chip8.ScreenHeight+1)
	// font digit 0 starts with $F0
	assert.True(t, strings.HasPrefix(lines[1], "|####."))
	assert.True(t, strings.HasPrefix(lines[2], "|#..#."))
}

func TestExecuteWithROM_TooLarge(t *testing.T) {
	p := New(log.NewTestLogger(t))

	rom := make([]byte, chip8.MaxROMSize+1)
	_, err := p.ExecuteWithROM(context.Background(), rom, options.Program{}, Output{})
	assert.True(t, errors.Is(err, chip8.ErrOutOfBounds))
}

func TestExecuteWithROM_Fault(t *testing.T) {
	p := New(log.NewTestLogger(t))
	rom := []byte{0x00, 0xEE} // ret with empty stack

	var buf bytes.Buffer
	result, err := p.ExecuteWithROM(context.Background(), rom, options.Program{}, Output{Writer: &buf, Style: render.ASCII})
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Equal(t, runner.StopFault, result.Reason)
	assert.True(t, buf.Len() > 0)
}

func TestExecuteWithROM_KeysAndSeed(t *testing.T) {
	rom := []byte{
		0xE5, 0x9E, // skp V5
		0x12, 0x00, // jp $200
		0xC1, 0xFF, // rnd V1, $FF
		0x12, 0x06, // jp $206
	}
	opts := options.Program{
		Execution: options.Execution{Cycles: 50, Seed: 42},
	}

	// V5 is 0, holding key 0 makes the skip happen
	opts.Keys = []byte{0x0}
	p := New(log.NewTestLogger(t))
	result, err := p.ExecuteWithROM(context.Background(), rom, opts, Output{})
	assert.NoError(t, err)
	assert.Equal(t, runner.StopIdle, result.Reason)
	assert.Equal(t, uint16(0x206), result.PC)

	opts.Keys = nil
	result, err = p.ExecuteWithROM(context.Background(), rom, opts, Output{})
	assert.NoError(t, err)
	assert.Equal(t, runner.StopBudget, result.Reason)
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digit.ch8")
	assert.NoError(t, os.WriteFile(path, drawDigitROM, 0o600))

	p := New(log.NewTestLogger(t))
	opts := options.Program{
		Parameters: options.Parameters{Input: path},
		Execution:  options.Execution{Cycles: 100, CyclesPerTick: 10},
	}

	result, err := p.Execute(context.Background(), opts, Output{})
	assert.NoError(t, err)
	assert.Equal(t, runner.StopIdle, result.Reason)
}

func TestExecute_Errors(t *testing.T) {
	p := New(log.NewTestLogger(t))

	t.Run("unsupported system", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "game.ch8", System: "nes"},
		}
		_, err := p.Execute(context.Background(), opts, Output{})
		assert.ErrorContains(t, err, "detecting system")
	})

	t.Run("missing file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: filepath.Join(t.TempDir(), "missing.ch8")},
		}
		_, err := p.Execute(context.Background(), opts, Output{})
		assert.ErrorContains(t, err, "loading ROM")
	})
}

func TestExecute_Listing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "digit.ch8")
	assert.NoError(t, os.WriteFile(path, drawDigitROM, 0o600))

	p := New(log.NewTestLogger(t))
	opts := options.Program{
		Parameters: options.Parameters{Input: path},
		Listing:    options.Listing{Disassemble: true, NoHexComments: true, NoOffsets: true},
	}

	var buf bytes.Buffer
	result, err := p.Execute(context.Background(), opts, Output{Writer: &buf})
	assert.NoError(t, err)
	assert.Equal(t, 0, result.Cycles)
	assert.True(t, strings.Contains(buf.String(), "  ld F, V0\n"))
	assert.True(t, strings.Contains(buf.String(), "_label_0206:\n  jp $206\n"))
}
