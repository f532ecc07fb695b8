package vm

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// image packs a sequence of raw 16-bit words into a little-endian bytecode image, the same layout
// Memory.Load expects.
func image(words ...int) []byte {
	out := make([]byte, 0, len(words)*2)

	for _, w := range words {
		enc := Word(uint16(w)).Encode()
		out = append(out, enc[0], enc[1])
	}

	return out
}

func reg(i int) int { return int(RegisterBase) + i }

func TestStepArithmetic(tt *testing.T) {
	tt.Parallel()

	tcs := []struct {
		name string
		prog []int
		reg  int
		want Word
	}{
		{name: "ADD wraps", prog: []int{int(ADD), reg(0), 32767, 10}, reg: 0, want: 9},
		{name: "MULT wraps", prog: []int{int(MULT), reg(0), 200, 200}, reg: 0, want: Word((200 * 200) % modulus)},
		{name: "MOD", prog: []int{int(MOD), reg(0), 17, 5}, reg: 0, want: 2},
		{name: "AND", prog: []int{int(AND), reg(0), 0b1100, 0b1010}, reg: 0, want: 0b1000},
		{name: "OR", prog: []int{int(OR), reg(0), 0b1100, 0b1010}, reg: 0, want: 0b1110},
		{name: "NOT", prog: []int{int(NOT), reg(0), 0}, reg: 0, want: 0x7fff},
		{name: "EQ true", prog: []int{int(EQ), reg(0), 4, 4}, reg: 0, want: 1},
		{name: "EQ false", prog: []int{int(EQ), reg(0), 4, 5}, reg: 0, want: 0},
		{name: "GT true", prog: []int{int(GT), reg(0), 9, 4}, reg: 0, want: 1},
		{name: "GT false", prog: []int{int(GT), reg(0), 4, 9}, reg: 0, want: 0},
	}

	for _, tc := range tcs {
		tc := tc
		tt.Run(tc.name, func(tt *testing.T) {
			cpu := New()
			cpu.Load(image(tc.prog...))

			if err := cpu.Step(); err != nil {
				tt.Fatalf("Step: %v", err)
			}

			if got := cpu.Mem.Register(tc.reg); got != tc.want {
				tt.Errorf("R%d: want %s, got %s", tc.reg, tc.want, got)
			}
		})
	}
}

func TestStepSetAndRegisterOperand(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Mem.SetRegister(1, 99)
	cpu.Load(image(int(SET), reg(0), reg(1)))

	if err := cpu.Step(); err != nil {
		tt.Fatalf("Step: %v", err)
	}

	if got := cpu.Mem.Register(0); got != 99 {
		tt.Errorf("R0: want 99, got %s", got)
	}
}

func TestStepStack(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(PUSH), 42, int(POP), reg(0)))

	if err := cpu.Step(); err != nil {
		tt.Fatalf("PUSH: %v", err)
	}

	if cpu.Mem.StackDepth() != 1 {
		tt.Fatalf("stack depth: want 1, got %d", cpu.Mem.StackDepth())
	}

	if err := cpu.Step(); err != nil {
		tt.Fatalf("POP: %v", err)
	}

	if got := cpu.Mem.Register(0); got != 42 {
		tt.Errorf("R0: want 42, got %s", got)
	}
}

func TestStepPopEmptyIsFatal(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(POP), reg(0)))

	err := cpu.Step()
	if !errors.Is(err, ErrStackEmpty) {
		tt.Fatalf("want ErrStackEmpty, got %v", err)
	}

	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		tt.Fatalf("want *RuntimeError, got %T", err)
	}

	if rerr.Op != POP {
		tt.Errorf("RuntimeError.Op: want %s, got %s", POP, rerr.Op)
	}
}

func TestStepJumps(tt *testing.T) {
	tt.Parallel()

	tt.Run("JMP", func(tt *testing.T) {
		cpu := New()
		cpu.Load(image(int(JMP), 5))

		if err := cpu.Step(); err != nil {
			tt.Fatalf("Step: %v", err)
		}

		if cpu.IP != 5 {
			tt.Errorf("IP: want 5, got %s", cpu.IP)
		}
	})

	tt.Run("JT taken", func(tt *testing.T) {
		cpu := New()
		cpu.Load(image(int(JT), 1, 9))

		if err := cpu.Step(); err != nil {
			tt.Fatalf("Step: %v", err)
		}

		if cpu.IP != 9 {
			tt.Errorf("IP: want 9, got %s", cpu.IP)
		}
	})

	tt.Run("JT not taken", func(tt *testing.T) {
		cpu := New()
		cpu.Load(image(int(JT), 0, 9))

		if err := cpu.Step(); err != nil {
			tt.Fatalf("Step: %v", err)
		}

		if cpu.IP != 3 {
			tt.Errorf("IP: want 3, got %s", cpu.IP)
		}
	})

	tt.Run("JF not taken", func(tt *testing.T) {
		cpu := New()
		cpu.Load(image(int(JF), 1, 9))

		if err := cpu.Step(); err != nil {
			tt.Fatalf("Step: %v", err)
		}

		if cpu.IP != 3 {
			tt.Errorf("IP: want 3, got %s", cpu.IP)
		}
	})

	tt.Run("bad target", func(tt *testing.T) {
		cpu := New()
		cpu.Mem.SetRegister(0, Word(RegisterBase))
		cpu.Load(image(int(JMP), reg(0)))

		err := cpu.Step()
		if !errors.Is(err, ErrBadJump) {
			tt.Fatalf("want ErrBadJump, got %v", err)
		}
	})
}

func TestStepCallRet(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(CALL), 10, 0, 0, 0, 0, 0, 0, 0, 0, int(RET)))

	if err := cpu.Step(); err != nil {
		tt.Fatalf("CALL: %v", err)
	}

	if cpu.IP != 10 {
		tt.Fatalf("IP after CALL: want 10, got %s", cpu.IP)
	}

	if cpu.Mem.StackDepth() != 1 {
		tt.Fatalf("stack depth after CALL: want 1, got %d", cpu.Mem.StackDepth())
	}

	if err := cpu.Step(); err != nil {
		tt.Fatalf("RET: %v", err)
	}

	if cpu.IP != 2 {
		tt.Errorf("IP after RET: want 2, got %s", cpu.IP)
	}
}

func TestStepRetEmptyStackHalts(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(RET)))

	if err := cpu.Step(); !errors.Is(err, ErrHalt) {
		tt.Fatalf("want ErrHalt, got %v", err)
	}
}

func TestStepMemory(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(WMEM), 20, 0x3eef, int(RMEM), reg(0), 20))

	if err := cpu.Step(); err != nil {
		tt.Fatalf("WMEM: %v", err)
	}

	if got := cpu.Mem.Read(20); got != 0x3eef {
		tt.Fatalf("heap[20]: want 0x3eef, got %s", got)
	}

	if err := cpu.Step(); err != nil {
		tt.Fatalf("RMEM: %v", err)
	}

	if got := cpu.Mem.Register(0); got != 0x3eef {
		tt.Errorf("R0: want 0x3eef, got %s", got)
	}
}

func TestStepOutOfRange(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(OUT), 300))

	if err := cpu.Step(); !errors.Is(err, ErrOutOfRange) {
		tt.Fatalf("want ErrOutOfRange, got %v", err)
	}
}

func TestStepDivByZero(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(MOD), reg(0), 9, 0))

	if err := cpu.Step(); !errors.Is(err, ErrDivByZero) {
		tt.Fatalf("want ErrDivByZero, got %v", err)
	}
}

func TestStepBadOpcode(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(99))

	if err := cpu.Step(); !errors.Is(err, ErrBadOpcode) {
		tt.Fatalf("want ErrBadOpcode, got %v", err)
	}
}

func TestStepOutWritesStdout(tt *testing.T) {
	tt.Parallel()

	var buf bytes.Buffer

	cpu := New(WithStdout(&buf))
	cpu.Load(image(int(OUT), 'h', int(OUT), 'i'))

	for i := 0; i < 2; i++ {
		if err := cpu.Step(); err != nil {
			tt.Fatalf("Step: %v", err)
		}
	}

	if buf.String() != "hi" {
		tt.Errorf("stdout: want %q, got %q", "hi", buf.String())
	}
}

func TestStepInReadsStdin(tt *testing.T) {
	tt.Parallel()

	cpu := New(WithStdin(strings.NewReader("a\n")))
	cpu.Load(image(int(IN), reg(0), int(IN), reg(1)))

	if err := cpu.Step(); err != nil {
		tt.Fatalf("Step: %v", err)
	}

	if got := cpu.Mem.Register(0); got != Word('a') {
		tt.Errorf("R0: want %s, got %s", Word('a'), got)
	}

	if err := cpu.Step(); err != nil {
		tt.Fatalf("Step: %v", err)
	}

	if got := cpu.Mem.Register(1); got != Word('\n') {
		tt.Errorf("R1: want newline, got %s", got)
	}
}

func TestStepInEOF(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(IN), reg(0)))

	if err := cpu.Step(); !errors.Is(err, ErrInputEOF) {
		tt.Fatalf("want ErrInputEOF, got %v", err)
	}
}

type countingObserver struct {
	pre, post int
}

func (o *countingObserver) PreExecute(Snapshot)        { o.pre++ }
func (o *countingObserver) PostExecute(Snapshot, bool) { o.post++ }

func TestRunInvokesHooksAndHalts(tt *testing.T) {
	tt.Parallel()

	obs := &countingObserver{}
	cpu := New(WithHooks(obs))
	cpu.Load(image(int(NOOP), int(NOOP), int(HALT)))

	if err := cpu.Run(context.Background()); err != nil {
		tt.Fatalf("Run: %v", err)
	}

	if obs.pre != 3 {
		tt.Errorf("pre-hook calls: want 3, got %d", obs.pre)
	}

	if obs.post != 3 {
		tt.Errorf("post-hook calls: want 3, got %d", obs.post)
	}
}

func TestRunCancelledContext(tt *testing.T) {
	tt.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cpu := New()
	cpu.Load(image(int(NOOP)))

	if err := cpu.Run(ctx); !errors.Is(err, context.Canceled) {
		tt.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRunPropagatesFatalError(tt *testing.T) {
	tt.Parallel()

	cpu := New()
	cpu.Load(image(int(POP), reg(0)))

	err := cpu.Run(context.Background())
	if !errors.Is(err, ErrStackEmpty) {
		tt.Fatalf("want ErrStackEmpty, got %v", err)
	}
}
