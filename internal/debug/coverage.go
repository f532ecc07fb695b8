package debug

import (
	"fmt"
	"sort"
	"strings"

	"synacorvm/internal/vm"
)

// Coverage is an Observer that counts how many times each heap address is fetched as an opcode.
// It is enabled and disabled independently of whether it is installed, so the debugger's "!cov"
// toggle can flip tracking on and off without reinstalling the hook.
type Coverage struct {
	Enabled bool

	hits map[vm.Number]int
}

// NewCoverage creates a disabled coverage tracker.
func NewCoverage() *Coverage {
	return &Coverage{hits: make(map[vm.Number]int)}
}

func (c *Coverage) PreExecute(snap vm.Snapshot) {
	if !c.Enabled {
		return
	}

	c.hits[snap.IP]++
}

func (c *Coverage) PostExecute(vm.Snapshot, bool) {}

// HitCount is one address's execution count, in address order.
type HitCount struct {
	Addr vm.Number
	N    int
}

// Hits returns every recorded address in ascending order, along with its hit count.
func (c *Coverage) Hits() []HitCount {
	out := make([]HitCount, 0, len(c.hits))

	for addr, n := range c.hits {
		out = append(out, HitCount{Addr: addr, N: n})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })

	return out
}

// Report renders the accumulated hit counts as a multi-line string, one address per line.
func (c *Coverage) Report() string {
	hits := c.Hits()
	if len(hits) == 0 {
		return "coverage: no instructions executed\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "coverage: %d distinct addresses\n", len(hits))

	for _, h := range hits {
		fmt.Fprintf(&b, "  %04x: %d\n", uint16(h.Addr), h.N)
	}

	return b.String()
}
