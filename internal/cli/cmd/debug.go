package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"synacorvm/internal/cli"
	"synacorvm/internal/debug"
	"synacorvm/internal/image"
	"synacorvm/internal/log"
	"synacorvm/internal/vm"
)

// Debug is the command that loads and executes a bytecode image with the interactive debugger
// shell attached, reading commands from the process's own stdin.
//
//	synacorvm debug program.bin
func Debug() cli.Command {
	return new(debugCmd)
}

type debugCmd struct{}

func (debugCmd) Description() string {
	return "run a bytecode image under the interactive debugger"
}

func (debugCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `debug program.bin

Load a bytecode image and run it with the debugger shell attached. The
shell prompts before every instruction unless told to skip ahead or run
freely; see "!help" at the prompt.`)

	return err
}

func (debugCmd) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("debug", flag.ExitOnError)
}

func (debugCmd) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("debug: expected exactly one image file, got %d", len(args))
	}

	img, err := image.Load(args[0])
	if err != nil {
		return fmt.Errorf("debug: %w", err)
	}

	// Both the debugger's "!"-commands and the guest's IN traffic read from the same console: lines
	// not prefixed "!" are queued straight into the guest's input via Feed, and a running guest
	// falls back to reading the console directly only once the shell has stopped prompting (see
	// debug.Shell.repl). The two never read concurrently.
	stdin, restore := consoleStdin(logger)
	defer restore()

	shell := debug.New(nil, stdin, stdout, logger)

	cpu := vm.New(
		vm.WithLogger(logger),
		vm.WithStdin(stdin),
		vm.WithStdout(stdout),
		vm.WithHooks(shell),
	)
	shell.Attach(cpu)
	cpu.Load(img)

	if err := cpu.Run(ctx); err != nil {
		return fmt.Errorf("debug: %w", err)
	}

	fmt.Fprint(stdout, shell.Coverage().Report())

	return nil
}
