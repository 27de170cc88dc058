package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Disassemble returns the assembler representation of an instruction word,
// for example "jp $234" or "drw V2, V3, $5". Words that do not decode to an
// instruction are returned as a data word.
func Disassemble(opcode uint16) string {
	ins := lookupInstruction(opcode)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", opcode)
	}
	if params := formatParams(ins.Name, Decode(opcode)); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// lookupInstruction finds the instruction of the word in the opcode table
// of its family.
func lookupInstruction(opcode uint16) *chip8cpu.Instruction {
	family := int(opcode >> 12)
	for _, op := range chip8cpu.Opcodes[family] {
		if op.Info.Mask&opcode == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// formatParams formats the parameters of an instruction.
func formatParams(name string, ins Instruction) string {
	switch name {
	case chip8cpu.ClsName, chip8cpu.RetName:
		return ""
	case chip8cpu.JpName:
		return formatJump(ins)
	case chip8cpu.CallName:
		return fmt.Sprintf("$%03X", ins.NNN)
	case chip8cpu.SeName, chip8cpu.SneName:
		return formatCompare(ins)
	case chip8cpu.LdName:
		return formatLoad(ins)
	case chip8cpu.AddName:
		return formatAdd(ins)
	case chip8cpu.OrName, chip8cpu.AndName, chip8cpu.XorName, chip8cpu.SubName, chip8cpu.SubnName:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case chip8cpu.ShrName, chip8cpu.ShlName, chip8cpu.SkpName, chip8cpu.SknpName:
		return fmt.Sprintf("V%X", ins.X)
	case chip8cpu.RndName:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case chip8cpu.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	}
	return ""
}

// formatJump formats jp addr and jp V0, addr.
func formatJump(ins Instruction) string {
	switch ins.Family {
	case 0x1:
		return fmt.Sprintf("$%03X", ins.NNN)
	case 0xB:
		return fmt.Sprintf("V0, $%03X", ins.NNN)
	}
	return ""
}

// formatCompare formats se and sne with an immediate or a register.
func formatCompare(ins Instruction) string {
	switch ins.Family {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case 0x5, 0x9:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	}
	return ""
}

// formatLoad formats all ld variants.
func formatLoad(ins Instruction) string {
	switch ins.Family {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", ins.NNN)
	case 0xF:
		return formatLoadMisc(ins)
	}
	return ""
}

func formatLoadMisc(ins Instruction) string {
	switch ins.NN {
	case 0x07:
		return fmt.Sprintf("V%X, DT", ins.X)
	case 0x0A:
		return fmt.Sprintf("V%X, K", ins.X)
	case 0x15:
		return fmt.Sprintf("DT, V%X", ins.X)
	case 0x18:
		return fmt.Sprintf("ST, V%X", ins.X)
	case 0x29:
		return fmt.Sprintf("F, V%X", ins.X)
	case 0x33:
		return fmt.Sprintf("B, V%X", ins.X)
	case 0x55:
		return fmt.Sprintf("[I], V%X", ins.X)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}

// formatAdd formats add Vx, byte, add Vx, Vy and add I, Vx.
func formatAdd(ins Instruction) string {
	switch ins.Family {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
	case 0xF:
		return fmt.Sprintf("I, V%X", ins.X)
	}
	return ""
}
