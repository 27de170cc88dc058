package chip8

import (
	"math/rand/v2"
	"time"
)

// KeyCount is the number of keys on the hexadecimal keypad.
const KeyCount = 16

// Keypad provides the state of the hexadecimal keypad.
type Keypad interface {
	// IsPressed returns whether the key 0x0-0xF is held down.
	IsPressed(key byte) bool
	// PressedKey returns the lowest key that is held down.
	PressedKey() (byte, bool)
}

// Timers provides access to the delay and sound timer registers.
type Timers interface {
	DelayTimer() byte
	SetDelayTimer(value byte)
	SetSoundTimer(value byte)
}

// RandomSource returns a random byte for every call.
type RandomSource func() byte

// Compile-time checks for the default collaborators.
var (
	_ Keypad = (*KeyState)(nil)
	_ Timers = (*TimerRegisters)(nil)
)

// KeyState is a keypad whose keys are set by the driver.
type KeyState struct {
	keys [KeyCount]bool
}

// Press marks the key as held down.
func (k *KeyState) Press(key byte) {
	k.keys[key&0x0F] = true
}

// Release marks the key as released.
func (k *KeyState) Release(key byte) {
	k.keys[key&0x0F] = false
}

// IsPressed returns whether the key is held down.
func (k *KeyState) IsPressed(key byte) bool {
	return k.keys[key&0x0F]
}

// PressedKey returns the lowest key that is held down.
func (k *KeyState) PressedKey() (byte, bool) {
	for key, pressed := range k.keys {
		if pressed {
			return byte(key), true
		}
	}
	return 0, false
}

// TimerRegisters holds the delay and sound timers. The driver is
// responsible for calling Tick at 60 Hz.
type TimerRegisters struct {
	delay byte
	sound byte
}

// DelayTimer returns the current delay timer value.
func (t *TimerRegisters) DelayTimer() byte {
	return t.delay
}

// SetDelayTimer sets the delay timer.
func (t *TimerRegisters) SetDelayTimer(value byte) {
	t.delay = value
}

// SoundTimer returns the current sound timer value.
func (t *TimerRegisters) SoundTimer() byte {
	return t.sound
}

// SetSoundTimer sets the sound timer.
func (t *TimerRegisters) SetSoundTimer(value byte) {
	t.sound = value
}

// Beeping returns whether the buzzer should sound.
func (t *TimerRegisters) Beeping() bool {
	return t.sound > 0
}

// Tick decrements both timers towards zero.
func (t *TimerRegisters) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// NewRandomSource returns a pseudo random byte source for the given seed.
func NewRandomSource(seed uint64) RandomSource {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() byte {
		return byte(rng.Uint32())
	}
}

func defaultRandomSource() RandomSource {
	return NewRandomSource(uint64(time.Now().UnixNano()))
}
