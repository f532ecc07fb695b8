package debug

import (
	"testing"

	"synacorvm/internal/vm"
)

func TestBreakpointsAddrMatch(tt *testing.T) {
	tt.Parallel()

	b := NewBreakpoints()
	b.AddAddr(10)

	if b.Hit(vm.Snapshot{IP: 10, Opcode: vm.NOOP}) != true {
		tt.Error("want hit on armed address")
	}

	if b.Hit(vm.Snapshot{IP: 11, Opcode: vm.NOOP}) != false {
		tt.Error("want no hit on unarmed address")
	}
}

func TestBreakpointsOpcodeMatch(tt *testing.T) {
	tt.Parallel()

	b := NewBreakpoints()
	b.AddOpcode(vm.OUT)

	if b.Hit(vm.Snapshot{IP: 0, Opcode: vm.OUT}) != true {
		tt.Error("want hit on armed opcode")
	}

	if b.Hit(vm.Snapshot{IP: 0, Opcode: vm.HALT}) != false {
		tt.Error("want no hit on unarmed opcode")
	}
}

func TestBreakpointsEmptyNeverHits(tt *testing.T) {
	tt.Parallel()

	b := NewBreakpoints()

	if b.Hit(vm.Snapshot{IP: 0, Opcode: vm.HALT}) != false {
		tt.Error("want no hit with no breakpoints armed")
	}
}

func TestBreakpointsAddrAndOpcodeAreIndependent(tt *testing.T) {
	tt.Parallel()

	b := NewBreakpoints()
	b.AddAddr(5)

	if b.Hit(vm.Snapshot{IP: 0, Opcode: vm.OUT}) != false {
		tt.Error("an address breakpoint must not match on opcode alone")
	}
}
