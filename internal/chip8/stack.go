package chip8

// StackSize is the maximum number of nested subroutine calls.
const StackSize = 16

// Stack is the fixed capacity call stack holding return addresses.
type Stack struct {
	entries [StackSize]uint16
	depth   int
}

// Push stores a return address on top of the stack.
func (s *Stack) Push(address uint16) error {
	if s.depth == StackSize {
		return ErrStackOverflow
	}
	s.entries[s.depth] = address
	s.depth++
	return nil
}

// Pop removes and returns the return address on top of the stack.
func (s *Stack) Pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	address := s.entries[s.depth]
	s.entries[s.depth] = 0
	return address, nil
}

// Depth returns the number of stored return addresses.
func (s *Stack) Depth() int {
	return s.depth
}

// Entries returns a copy of the stored return addresses, bottom first.
func (s *Stack) Entries() []uint16 {
	entries := make([]uint16, s.depth)
	copy(entries, s.entries[:s.depth])
	return entries
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.entries = [StackSize]uint16{}
	s.depth = 0
}
