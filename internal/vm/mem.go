package vm

// mem.go contains the machine's unified memory controller: heap, registers and call stack.

import (
	"errors"
	"fmt"
)

// Memory represents the three disjoint regions of machine state: a fixed 32768-word heap, an
// 8-word register file, and an unbounded call stack. Memory stores any 16-bit value it is given and
// does not check words against MaxValue; an invalid word is rejected only when Resolve or
// ResolveRef interprets it as an operand.
type Memory struct {
	heap [HeapSize]Word
	reg  [NumRegisters]Word
	stk  []Word
}

// NewMemory returns a zero-initialized memory controller: zeroed heap, zeroed registers, empty
// stack.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the word stored at a heap address.
func (m *Memory) Read(addr Number) Word {
	return m.heap[addr]
}

// Write stores a word at a heap address.
func (m *Memory) Write(addr Number, w Word) {
	m.heap[addr] = w
}

// Register returns the current value of a register by index.
func (m *Memory) Register(i int) Word {
	return m.reg[i]
}

// SetRegister overwrites a register by index.
func (m *Memory) SetRegister(i int, w Word) {
	m.reg[i] = w
}

// ErrInvalidWord is returned when a Word does not denote a literal, heap address, or register.
var ErrInvalidWord = errors.New("vm: invalid word")

// Resolve interprets w as an operand value: a literal number or heap address is returned
// unchanged; a register selector is dereferenced to the register's current value. Any other value
// is an error.
func (m *Memory) Resolve(w Word) (Word, error) {
	switch {
	case w < RegisterBase:
		return w, nil
	case w.IsRegister():
		return m.reg[w.Register()], nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidWord, w)
	}
}

// ResolveRef returns a pointer to the register w selects, so that a CPU operation can write its
// result directly into the register file. Only register selectors are valid destinations; heap
// cells are written through WMEM, never through ResolveRef.
func (m *Memory) ResolveRef(w Word) (*Word, error) {
	if !w.IsRegister() {
		return nil, fmt.Errorf("%w: destination %s is not a register", ErrInvalidWord, w)
	}

	return &m.reg[w.Register()], nil
}

// ErrStackEmpty is returned by Pop when the call stack holds no values.
var ErrStackEmpty = errors.New("vm: stack empty")

// Push appends a word to the top of the call stack.
func (m *Memory) Push(w Word) {
	m.stk = append(m.stk, w)
}

// Pop removes and returns the word at the top of the call stack. It is an error to pop an empty
// stack.
func (m *Memory) Pop() (Word, error) {
	if len(m.stk) == 0 {
		return 0, ErrStackEmpty
	}

	top := m.stk[len(m.stk)-1]
	m.stk = m.stk[:len(m.stk)-1]

	return top, nil
}

// StackDepth returns the number of words currently on the call stack.
func (m *Memory) StackDepth() int {
	return len(m.stk)
}

// Load copies a little-endian bytecode image into the heap, truncating if the image is longer
// than the heap and zero-padding if it is shorter.
func (m *Memory) Load(image []byte) {
	for i := range m.heap {
		m.heap[i] = 0
	}

	n := len(image) / 2
	if n > HeapSize {
		n = HeapSize
	}

	for i := 0; i < n; i++ {
		m.heap[i] = DecodeWord(image[2*i], image[2*i+1])
	}

	if len(image)%2 == 1 && n < HeapSize {
		m.heap[n] = DecodeWord(image[2*n], 0)
	}
}

// Dump returns the heap encoded as a little-endian byte string. When trim is true, trailing
// zero-valued words are omitted.
func (m *Memory) Dump(trim bool) []byte {
	last := HeapSize
	if trim {
		for last > 0 && m.heap[last-1] == 0 {
			last--
		}
	}

	out := make([]byte, 0, last*2)
	for i := 0; i < last; i++ {
		enc := m.heap[i].Encode()
		out = append(out, enc[0], enc[1])
	}

	return out
}

// View returns a copy of the register file, intended for diagnostics.
func (m *Memory) View() [NumRegisters]Word {
	return m.reg
}
