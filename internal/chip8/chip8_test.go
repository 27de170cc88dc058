package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// testMachine bundles a machine with its collaborators.
type testMachine struct {
	*Chip8
	keys   *KeyState
	timers *TimerRegisters
}

func newTestMachine(t *testing.T) *testMachine {
	t.Helper()

	keys := &KeyState{}
	timers := &TimerRegisters{}
	vm := New(log.NewTestLogger(t), Dependencies{
		Keypad: keys,
		Timers: timers,
		Random: func() byte { return 0xAB },
	})
	return &testMachine{Chip8: vm, keys: keys, timers: timers}
}

func TestNew(t *testing.T) {
	vm := New(log.NewTestLogger(t), Dependencies{})

	assert.NotNil(t, vm.keypad)
	assert.NotNil(t, vm.timers)
	assert.NotNil(t, vm.random)
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, 0, vm.StackDepth())

	for i, b := range fontSet {
		assert.Equal(t, b, vm.ReadMemory(uint16(FontAddress+i)))
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	vm := newTestMachine(t)

	for address := range MemorySize {
		value := byte(address*7 + 3)
		vm.WriteMemory(uint16(address), value)
		assert.Equal(t, value, vm.ReadMemory(uint16(address)))
	}
}

func TestMemory_AddressWraparound(t *testing.T) {
	vm := newTestMachine(t)

	vm.WriteMemory(0x000, 0x42)
	assert.Equal(t, vm.ReadMemory(0x000), vm.ReadMemory(0x1000))

	vm.WriteMemory(0x1FFF, 0x24)
	assert.Equal(t, byte(0x24), vm.ReadMemory(0xFFF))
}

func TestReset(t *testing.T) {
	vm := newTestMachine(t)

	assert.NoError(t, vm.LoadGame([]byte{0x12, 0x34}))
	vm.v[3] = 9
	vm.i = 0x345
	vm.pc = 0x456
	assert.NoError(t, vm.stack.Push(0x202))
	vm.display.DrawSprite(0, 0, []byte{0xFF})

	vm.Reset()

	assert.Equal(t, uint16(0), vm.I())
	assert.Equal(t, uint16(ProgramStart), vm.PC())
	assert.Equal(t, [RegisterCount]byte{}, vm.Registers())
	assert.Equal(t, 0, vm.StackDepth())
	assert.Equal(t, byte(0x12), vm.ReadMemory(0x200))
	assert.Equal(t, byte(0x34), vm.ReadMemory(0x201))
	assert.Equal(t, 8, vm.Framebuffer().Lit())
}

func TestLoadGame(t *testing.T) {
	vm := newTestMachine(t)
	vm.Reset()

	assert.NoError(t, vm.LoadGame([]byte{1, 2, 3}))
	assert.Equal(t, byte(1), vm.ReadMemory(0x200))
	assert.Equal(t, byte(2), vm.ReadMemory(0x201))
	assert.Equal(t, byte(3), vm.ReadMemory(0x202))
}

func TestLoadGame_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"maximum size", MaxROMSize, false},
		{"one byte too large", MaxROMSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := newTestMachine(t)
			rom := make([]byte, tt.size)
			for i := range rom {
				rom[i] = 0xEE
			}

			err := vm.LoadGame(rom)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, ErrOutOfBounds))
			// no partial load
			assert.Equal(t, byte(0), vm.ReadMemory(ProgramStart))
			assert.Equal(t, byte(0), vm.ReadMemory(MemorySize-1))
		})
	}
}

func TestFetchOpcode(t *testing.T) {
	vm := newTestMachine(t)
	vm.WriteMemory(0x200, 0xAB)
	vm.WriteMemory(0x201, 0xCD)

	opcode := vm.FetchOpcode()
	assert.Equal(t, uint16(0xABCD), opcode)
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestFetchOpcode_WrapsAtEndOfMemory(t *testing.T) {
	vm := newTestMachine(t)
	vm.pc = 0xFFF
	vm.WriteMemory(0xFFF, 0x12)
	vm.WriteMemory(0x000, 0x34)

	assert.Equal(t, uint16(0x1234), vm.FetchOpcode())
	assert.Equal(t, uint16(0x001), vm.PC())
}

func TestStep(t *testing.T) {
	vm := newTestMachine(t)
	assert.NoError(t, vm.LoadGame([]byte{0x6A, 0x42}))

	opcode, err := vm.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x6A42), opcode)
	assert.Equal(t, byte(0x42), vm.V(0xA))
	assert.Equal(t, uint16(0x202), vm.PC())
}

func TestState(t *testing.T) {
	vm := newTestMachine(t)
	vm.v[1] = 5
	vm.i = 0x300
	assert.NoError(t, vm.stack.Push(0x204))

	state := vm.State()
	assert.Equal(t, uint16(ProgramStart), state.PC)
	assert.Equal(t, uint16(0x300), state.I)
	assert.Equal(t, byte(5), state.V[1])
	assert.Len(t, state.Stack, 1)
	assert.Equal(t, uint16(0x204), state.Stack[0])

	// snapshot is detached from the machine
	state.V[1] = 6
	assert.Equal(t, byte(5), vm.V(1))
}
