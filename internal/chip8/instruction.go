package chip8

// Instruction holds the fields of a decoded instruction word.
// Which fields are meaningful depends on the instruction family.
type Instruction struct {
	Opcode uint16
	Family byte   // bits 12-15
	X      byte   // bits 8-11, register index
	Y      byte   // bits 4-7, register index
	N      byte   // bits 0-3, 4 bit immediate
	NN     byte   // bits 0-7, 8 bit immediate
	NNN    uint16 // bits 0-11, address
}

// Decode splits an instruction word into its fields.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Opcode: opcode,
		Family: byte(opcode >> 12),
		X:      byte(opcode>>8) & 0x0F,
		Y:      byte(opcode>>4) & 0x0F,
		N:      byte(opcode) & 0x0F,
		NN:     byte(opcode),
		NNN:    opcode & AddressMask,
	}
}
