// Package writer implements the disassembly listing output of a ROM.
package writer

import (
	"fmt"
	"hash/crc32"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/set"
)

const labelNaming = "_label_%04x"

// Options of the writer.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// Writer writes a ROM as an assembly listing.
type Writer struct {
	options Options
	writer  io.Writer
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// WriteListing writes the ROM as one instruction per word, assuming it is
// loaded at the code base address. Word aligned jump and call targets inside
// the ROM get a label. A trailing odd byte is written as data.
func (w Writer) WriteListing(rom []byte, codeBaseAddress uint16) error {
	if err := w.WriteCommentHeader(rom, codeBaseAddress); err != nil {
		return err
	}

	labels := collectLabels(rom, codeBaseAddress)

	words := len(rom) / 2
	for i := range words {
		address := codeBaseAddress + uint16(i*2)
		if err := w.writeLabel(i, address, labels); err != nil {
			return err
		}

		opcode := uint16(rom[i*2])<<8 | uint16(rom[i*2+1])
		if err := w.writeCodeLine(chip8.Disassemble(opcode), address, rom[i*2:i*2+2]); err != nil {
			return err
		}
	}

	if len(rom)%2 == 0 {
		return nil
	}
	address := codeBaseAddress + uint16(words*2)
	if err := w.writeLabel(words, address, labels); err != nil {
		return err
	}
	trailing := rom[words*2:]
	line := fmt.Sprintf(".byte $%02x", trailing[0])
	if err := w.writeCodeLine(line, address, trailing); err != nil {
		return fmt.Errorf("writing trailing data: %w", err)
	}
	return nil
}

// WriteCommentHeader writes the CRC32 checksum, size and code base address as comments to the output.
func (w Writer) WriteCommentHeader(rom []byte, codeBaseAddress uint16) error {
	if _, err := fmt.Fprintf(w.writer, "; ROM CRC32 checksum: %08x\n", crc32.ChecksumIEEE(rom)); err != nil {
		return fmt.Errorf("writing rom checksum: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; ROM size: %d bytes\n", len(rom)); err != nil {
		return fmt.Errorf("writing rom size: %w", err)
	}
	if _, err := fmt.Fprintf(w.writer, "; Code base address: $%04x\n\n", codeBaseAddress); err != nil {
		return fmt.Errorf("writing code base address: %w", err)
	}
	return nil
}

func (w Writer) writeLabel(index int, address uint16, labels set.Set[uint16]) error {
	if !labels.Contains(address) {
		return nil
	}

	if index > 0 {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w.writer, labelNaming+":\n", address); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

func (w Writer) writeCodeLine(code string, address uint16, data []byte) error {
	comment := w.comment(address, data)
	if comment == "" {
		if _, err := fmt.Fprintf(w.writer, "  %s\n", code); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
		return nil
	}

	if _, err := fmt.Fprintf(w.writer, "  %-30s ; %s\n", code, comment); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

func (w Writer) comment(address uint16, data []byte) string {
	var parts []string
	if w.options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", address))
	}
	if w.options.HexComments {
		for _, b := range data {
			parts = append(parts, fmt.Sprintf("%02X", b))
		}
	}
	return strings.Join(parts, " ")
}

// collectLabels returns the jump and call targets that point into the ROM
// at an instruction boundary of the listing. Targets between two listed
// words can not carry a label.
func collectLabels(rom []byte, codeBaseAddress uint16) set.Set[uint16] {
	labels := set.New[uint16]()
	end := int(codeBaseAddress) + len(rom)

	for i := 0; i+1 < len(rom); i += 2 {
		ins := chip8.Decode(uint16(rom[i])<<8 | uint16(rom[i+1]))
		if ins.Family != 0x1 && ins.Family != 0x2 {
			continue
		}
		if (ins.NNN-codeBaseAddress)&1 != 0 {
			continue
		}
		if int(ins.NNN) >= int(codeBaseAddress) && int(ins.NNN) < end {
			labels.Add(ins.NNN)
		}
	}
	return labels
}
