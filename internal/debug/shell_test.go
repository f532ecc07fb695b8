package debug

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"synacorvm/internal/asm"
	"synacorvm/internal/log"
	"synacorvm/internal/vm"
)

func countPrompts(s string) int {
	return strings.Count(s, "(debug) ")
}

func runUnderShell(tt *testing.T, src, script string) (stdout, debugOut string) {
	tt.Helper()

	img, _, err := asm.Assemble("t", []byte(src))
	if err != nil {
		tt.Fatalf("assemble: %v", err)
	}

	var out, dbg bytes.Buffer

	shell := New(nil, strings.NewReader(script), &dbg, log.DefaultLogger())

	cpu := vm.New(vm.WithStdout(&out), vm.WithHooks(shell))
	shell.Attach(cpu)
	cpu.Load(img)

	if err := cpu.Run(context.Background()); err != nil {
		tt.Fatalf("run: %v", err)
	}

	return out.String(), dbg.String()
}

func TestShellSingleStepsByDefault(tt *testing.T) {
	tt.Parallel()

	_, dbg := runUnderShell(tt, "noop\nnoop\nhalt\n", "!step\n!step\n!step\n")

	if n := countPrompts(dbg); n != 3 {
		tt.Errorf("want 3 prompts, got %d:\n%s", n, dbg)
	}
}

func TestShellSkipSuppressesPrompts(tt *testing.T) {
	tt.Parallel()

	_, dbg := runUnderShell(tt, "noop\nnoop\nnoop\nhalt\n", "!skip 2\n!cont\n")

	if n := countPrompts(dbg); n != 2 {
		tt.Errorf("want 2 prompts, got %d:\n%s", n, dbg)
	}
}

func TestShellSetRegisterAffectsRun(tt *testing.T) {
	tt.Parallel()

	out, _ := runUnderShell(tt, "out r0\nhalt\n", "!setr r0 65\n!cont\n")

	if out != "A" {
		tt.Errorf("stdout: want %q, got %q", "A", out)
	}
}

func TestShellAddressBreakpoint(tt *testing.T) {
	tt.Parallel()

	_, dbg := runUnderShell(tt, "noop\nnoop\nnoop\nhalt\n", "!abreak 2\n!cont\n!cont\n")

	// Three prompts: arming the breakpoint doesn't return control, so the first halt at IP=0
	// prompts twice (once for !abreak, once for the !cont that starts the free run); the third
	// prompt comes from hitting the armed breakpoint at IP=2.
	if n := countPrompts(dbg); n != 3 {
		tt.Errorf("want 3 prompts, got %d:\n%s", n, dbg)
	}
}

func TestShellOpcodeBreakpoint(tt *testing.T) {
	tt.Parallel()

	_, dbg := runUnderShell(tt, "noop\nout 65\nhalt\n", "!ibreak out\n!cont\n!cont\n")

	if n := countPrompts(dbg); n != 3 {
		tt.Errorf("want 3 prompts, got %d:\n%s", n, dbg)
	}
}

func TestShellPeekAndHelpDoNotReturnControl(tt *testing.T) {
	tt.Parallel()

	_, dbg := runUnderShell(tt, "halt\n", "!peek\n!help\n!cont\n")

	if !strings.Contains(dbg, "halt") {
		tt.Errorf("want !peek output to mention the decoded instruction, got:\n%s", dbg)
	}

	if !strings.Contains(dbg, "Commands:") {
		tt.Errorf("want !help output, got:\n%s", dbg)
	}
}

func TestShellNonCommandLineFeedsGuestInput(tt *testing.T) {
	tt.Parallel()

	out, _ := runUnderShell(tt, "in r0\nout r0\nhalt\n", "A\n!cont\n")

	if out != "A" {
		tt.Errorf("stdout: want %q, got %q", "A", out)
	}
}

func TestShellLiteralBangEscapesCommandPrefix(tt *testing.T) {
	tt.Parallel()

	out, _ := runUnderShell(tt, "in r0\nout r0\nhalt\n", "!!\n!cont\n")

	if out != "!" {
		tt.Errorf("stdout: want %q, got %q", "!", out)
	}
}

func TestShellExitOverwritesCurrentInstruction(tt *testing.T) {
	tt.Parallel()

	img, _, err := asm.Assemble("t", []byte("jmp start\nstart:\nnoop\n"))
	if err != nil {
		tt.Fatalf("assemble: %v", err)
	}

	var dbg bytes.Buffer

	shell := New(nil, strings.NewReader("!exit\n"), &dbg, log.DefaultLogger())

	cpu := vm.New(vm.WithHooks(shell))
	shell.Attach(cpu)
	cpu.Load(img)

	if err := cpu.Run(context.Background()); err != nil {
		tt.Fatalf("run: %v", err)
	}

	if got := cpu.Mem.Read(0); got != vm.Word(vm.HALT) {
		tt.Errorf("want the jmp instruction's opcode word overwritten with HALT, got %s", got)
	}
}
