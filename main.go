// synacorvm is the command-line interface to a Synacor challenge virtual machine and assembler.
package main

import (
	"context"
	"os"

	"synacorvm/internal/cli"
	"synacorvm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Assemble(),
	cmd.Run(),
	cmd.Debug(),
	cmd.Tokenize(),
	cmd.Parse(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
