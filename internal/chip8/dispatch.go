package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Dispatch decodes and executes an instruction word. On error the machine
// state is left unchanged.
func (c *Chip8) Dispatch(opcode uint16) error {
	ins := Decode(opcode)

	switch ins.Family {
	case 0x0:
		return c.execSystem(ins)
	case 0x1:
		c.pc = ins.NNN
	case 0x2:
		return c.call(ins)
	case 0x3:
		c.skipIf(c.v[ins.X] == ins.NN)
	case 0x4:
		c.skipIf(c.v[ins.X] != ins.NN)
	case 0x5:
		if ins.N != 0 {
			return invalidOpcode(ins)
		}
		c.skipIf(c.v[ins.X] == c.v[ins.Y])
	case 0x6:
		c.v[ins.X] = ins.NN
	case 0x7:
		c.v[ins.X] += ins.NN
	case 0x8:
		return c.execArithmetic(ins)
	case 0x9:
		if ins.N != 0 {
			return invalidOpcode(ins)
		}
		c.skipIf(c.v[ins.X] != c.v[ins.Y])
	case 0xA:
		c.i = ins.NNN
	case 0xB:
		c.pc = (ins.NNN + uint16(c.v[0])) & AddressMask
	case 0xC:
		c.v[ins.X] = c.random() & ins.NN
	case 0xD:
		c.draw(ins)
	case 0xE:
		return c.execKeySkip(ins)
	case 0xF:
		return c.execMisc(ins)
	}
	return nil
}

func invalidOpcode(ins Instruction) error {
	return fmt.Errorf("%w: $%04X", ErrInvalidOpcode, ins.Opcode)
}

// execSystem handles the 0NNN family.
func (c *Chip8) execSystem(ins Instruction) error {
	switch ins.Opcode {
	case 0x00E0:
		c.display.Clear()
		return nil

	case 0x00EE:
		address, err := c.stack.Pop()
		if err != nil {
			return fmt.Errorf("returning from subroutine: %w", err)
		}
		c.pc = address & AddressMask
		return nil

	default:
		c.logger.Debug("Ignoring machine code routine call",
			log.Hex("address", ins.NNN))
		return nil
	}
}

func (c *Chip8) call(ins Instruction) error {
	if err := c.stack.Push(c.pc); err != nil {
		return fmt.Errorf("calling subroutine $%03X: %w", ins.NNN, err)
	}
	c.pc = ins.NNN
	return nil
}

func (c *Chip8) skipIf(condition bool) {
	if condition {
		c.pc = (c.pc + 2) & AddressMask
	}
}

// execArithmetic handles the 8XYN family.
func (c *Chip8) execArithmetic(ins Instruction) error {
	vx, vy := c.v[ins.X], c.v[ins.Y]

	switch ins.N {
	case 0x0:
		c.v[ins.X] = vy
	case 0x1:
		c.v[ins.X] = vx | vy
	case 0x2:
		c.v[ins.X] = vx & vy
	case 0x3:
		c.v[ins.X] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		c.setWithFlag(ins.X, byte(sum), sum > 0xFF)
	case 0x5:
		c.setWithFlag(ins.X, vx-vy, vx >= vy)
	case 0x6:
		c.setWithFlag(ins.X, vx>>1, vx&0x01 != 0)
	case 0x7:
		c.setWithFlag(ins.X, vy-vx, vy >= vx)
	case 0xE:
		c.setWithFlag(ins.X, vx<<1, vx&0x80 != 0)
	default:
		return invalidOpcode(ins)
	}
	return nil
}

// setWithFlag writes the result before the flag, so VF holds the flag
// when it is also the destination register.
func (c *Chip8) setWithFlag(x, value byte, flag bool) {
	c.v[x] = value
	c.setFlag(flag)
}

func (c *Chip8) setFlag(flag bool) {
	if flag {
		c.v[flagRegister] = 1
	} else {
		c.v[flagRegister] = 0
	}
}

func (c *Chip8) draw(ins Instruction) {
	sprite := make([]byte, ins.N)
	for row := range sprite {
		sprite[row] = c.ReadMemory(c.i + uint16(row))
	}

	x := int(c.v[ins.X] % ScreenWidth)
	y := int(c.v[ins.Y] % ScreenHeight)
	c.setFlag(c.display.DrawSprite(x, y, sprite))
}

// execKeySkip handles the EXNN family.
func (c *Chip8) execKeySkip(ins Instruction) error {
	key := c.v[ins.X] & 0x0F

	switch ins.NN {
	case 0x9E:
		c.skipIf(c.keypad.IsPressed(key))
	case 0xA1:
		c.skipIf(!c.keypad.IsPressed(key))
	default:
		return invalidOpcode(ins)
	}
	return nil
}

// execMisc handles the FXNN family.
func (c *Chip8) execMisc(ins Instruction) error {
	vx := c.v[ins.X]

	switch ins.NN {
	case 0x07:
		c.v[ins.X] = c.timers.DelayTimer()

	case 0x0A:
		key, ok := c.keypad.PressedKey()
		if !ok {
			// execute the instruction again on the next cycle
			c.pc = (c.pc - 2) & AddressMask
			return nil
		}
		c.v[ins.X] = key

	case 0x15:
		c.timers.SetDelayTimer(vx)

	case 0x18:
		c.timers.SetSoundTimer(vx)

	case 0x1E:
		c.i = (c.i + uint16(vx)) & AddressMask

	case 0x29:
		c.i = fontSpriteAddress(vx)

	case 0x33:
		c.WriteMemory(c.i, vx/100)
		c.WriteMemory(c.i+1, vx/10%10)
		c.WriteMemory(c.i+2, vx%10)

	case 0x55:
		for reg := range ins.X + 1 {
			c.WriteMemory(c.i+uint16(reg), c.v[reg])
		}

	case 0x65:
		for reg := range ins.X + 1 {
			c.v[reg] = c.ReadMemory(c.i + uint16(reg))
		}

	default:
		return invalidOpcode(ins)
	}
	return nil
}
