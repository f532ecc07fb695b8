package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"synacorvm/internal/cli"
	"synacorvm/internal/image"
	"synacorvm/internal/log"
	"synacorvm/internal/vm"
)

// Run is the command that loads and executes a bytecode image to completion, with the process's
// own stdin and stdout wired through to the guest machine.
//
//	synacorvm run program.bin
func Run() cli.Command {
	return new(runCmd)
}

type runCmd struct {
	debug bool
}

func (runCmd) Description() string {
	return "run a bytecode image"
}

func (runCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run program.bin

Load a bytecode image and execute it to completion.`)

	return err
}

func (r *runCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.BoolVar(&r.debug, "debug", false, "enable debug logging")

	return fs
}

func (r *runCmd) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if r.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) != 1 {
		return fmt.Errorf("run: expected exactly one image file, got %d", len(args))
	}

	img, err := image.Load(args[0])
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	stdin, restore := consoleStdin(logger)
	defer restore()

	cpu := vm.New(
		vm.WithLogger(logger),
		vm.WithStdin(stdin),
		vm.WithStdout(stdout),
	)
	cpu.Load(img)

	if err := cpu.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	return nil
}
