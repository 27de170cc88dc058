package chip8

import "math/bits"

// Display dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// spriteWidth is the fixed width of a sprite row in pixels.
const spriteWidth = 8

// Framebuffer is the 64x32 monochrome display. Each row is stored as a
// 64 bit value, bit n holds the pixel in column n.
type Framebuffer struct {
	rows [ScreenHeight]uint64
}

// Clear switches all pixels off.
func (f *Framebuffer) Clear() {
	f.rows = [ScreenHeight]uint64{}
}

// Pixel returns whether the pixel at the given position is on.
// Coordinates wrap around the screen edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	x, y = wrap(x, ScreenWidth), wrap(y, ScreenHeight)
	return f.rows[y]&(uint64(1)<<x) != 0
}

// Row returns the packed pixels of the given row.
func (f *Framebuffer) Row(y int) uint64 {
	return f.rows[wrap(y, ScreenHeight)]
}

// Lit returns the number of pixels that are on.
func (f *Framebuffer) Lit() int {
	count := 0
	for _, row := range f.rows {
		count += bits.OnesCount64(row)
	}
	return count
}

// DrawSprite XORs the sprite rows onto the framebuffer with its top left
// corner at x, y. Pixels wrap around both screen edges. It returns true if
// any pixel was switched from on to off.
func (f *Framebuffer) DrawSprite(x, y int, sprite []byte) bool {
	collision := false
	for line, data := range sprite {
		row := wrap(y+line, ScreenHeight)
		for bit := range spriteWidth {
			if data&(0x80>>bit) == 0 {
				continue
			}
			mask := uint64(1) << wrap(x+bit, ScreenWidth)
			if f.rows[row]&mask != 0 {
				collision = true
			}
			f.rows[row] ^= mask
		}
	}
	return collision
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
