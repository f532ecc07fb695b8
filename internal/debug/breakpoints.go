package debug

import "synacorvm/internal/vm"

// Breakpoints tracks two independent stop conditions: a set of heap addresses ("!abreak") and a
// set of opcodes ("!ibreak"). Hit reports whether execution has reached either kind for snap.
type Breakpoints struct {
	addrs map[vm.Number]bool
	verbs map[vm.Opcode]bool
}

// NewBreakpoints creates an empty breakpoint set.
func NewBreakpoints() *Breakpoints {
	return &Breakpoints{addrs: make(map[vm.Number]bool), verbs: make(map[vm.Opcode]bool)}
}

// AddAddr arms a breakpoint at a heap address.
func (b *Breakpoints) AddAddr(addr vm.Number) { b.addrs[addr] = true }

// AddOpcode arms a breakpoint on every occurrence of an opcode.
func (b *Breakpoints) AddOpcode(op vm.Opcode) { b.verbs[op] = true }

// Hit reports whether snap matches an armed address or opcode breakpoint.
func (b *Breakpoints) Hit(snap vm.Snapshot) bool {
	return b.addrs[snap.IP] || b.verbs[snap.Opcode]
}
