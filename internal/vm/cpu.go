package vm

// cpu.go declares the CPU state and its instrumentation surface.

import (
	"bufio"
	"io"

	"synacorvm/internal/log"
)

// CPU is a Synacor machine: an instruction pointer over a unified Memory, with an input/output
// pair bound at construction time.
type CPU struct {
	IP  Number
	Mem *Memory

	stdout io.Writer
	stdin  *bufio.Reader
	line   []byte // unread bytes of the most recently buffered input line

	pre  Observer
	post Observer

	log *log.Logger
}

// Snapshot is a read-only view of execution state, passed to hooks. Hooks must not mutate the
// machine through a Snapshot; Mem is shared for inspection only.
type Snapshot struct {
	IP     Number
	Opcode Opcode
	Mem    *Memory
}

// Observer is the instrumentation capability hooks implement. The debugger composes several
// observers -- coverage, tracing, breakpoints -- into one.
type Observer interface {
	// PreExecute is called before an instruction's opcode is fetched.
	PreExecute(snap Snapshot)

	// PostExecute is called after an instruction has run. running is false when the instruction
	// just executed was the last one: the machine is halting.
	PostExecute(snap Snapshot, running bool)
}

// NopObserver implements Observer by doing nothing.
type NopObserver struct{}

func (NopObserver) PreExecute(Snapshot)        {}
func (NopObserver) PostExecute(Snapshot, bool) {}

// OptionFn configures a CPU at construction time.
type OptionFn func(*CPU)

// New creates a machine with a zeroed Memory, ready to load a bytecode image.
func New(opts ...OptionFn) *CPU {
	cpu := &CPU{
		IP:     0,
		Mem:    NewMemory(),
		stdout: io.Discard,
		stdin:  bufio.NewReader(emptyReader{}),
		pre:    NopObserver{},
		post:   NopObserver{},
		log:    log.DefaultLogger(),
	}

	for _, fn := range opts {
		fn(cpu)
	}

	return cpu
}

// WithStdout directs OUT instructions to w.
func WithStdout(w io.Writer) OptionFn {
	return func(cpu *CPU) { cpu.stdout = w }
}

// WithStdin directs IN instructions to read lines from r.
func WithStdin(r io.Reader) OptionFn {
	return func(cpu *CPU) { cpu.stdin = bufio.NewReader(r) }
}

// WithLogger overrides the machine's logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(cpu *CPU) { cpu.log = logger }
}

// WithPreHook installs an observer invoked before each instruction.
func WithPreHook(obs Observer) OptionFn {
	return func(cpu *CPU) { cpu.pre = obs }
}

// WithPostHook installs an observer invoked after each instruction.
func WithPostHook(obs Observer) OptionFn {
	return func(cpu *CPU) { cpu.post = obs }
}

// WithHooks installs the same observer as both the pre- and post-execute hook, the common case
// for a debugger that composes coverage, tracing and breakpoints into one object.
func WithHooks(obs Observer) OptionFn {
	return func(cpu *CPU) {
		cpu.pre = obs
		cpu.post = obs
	}
}

// Feed injects a line of text into the guest's input queue as though it had been typed at the
// console, newline included. It is used by the debugger to pre-fill IN.
func (cpu *CPU) Feed(line []byte) {
	cpu.line = append(cpu.line, line...)
}

// Load installs a bytecode image into the heap and resets the instruction pointer.
func (cpu *CPU) Load(image []byte) {
	cpu.Mem.Load(image)
	cpu.IP = 0
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, io.EOF }
