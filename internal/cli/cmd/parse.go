package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"synacorvm/internal/asm"
	"synacorvm/internal/cli"
	"synacorvm/internal/log"
)

// Parse is the command that prints the parse tree of an assembly source file as an indented
// listing.
//
//	synacorvm parse file.asm
func Parse() cli.Command {
	return new(parseCmd)
}

type parseCmd struct{}

func (parseCmd) Description() string {
	return "print the parse tree of an assembly source file"
}

func (parseCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `parse file.asm

Print the parse tree as an indented listing, one node per line.`)

	return err
}

func (parseCmd) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("parse", flag.ExitOnError)
}

func (parseCmd) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("parse: expected exactly one source file, got %d", len(args))
	}

	in := args[0]

	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	root, err := asm.Parse(in, src)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	printNode(stdout, root, 0)

	return nil
}

func printNode(out io.Writer, n *asm.Node, depth int) {
	indent := strings.Repeat("  ", depth)

	if n.Symbol.Terminal() {
		fmt.Fprintf(out, "%s%s %q\n", indent, n.Symbol, tokenPayload(n.Token))
	} else {
		fmt.Fprintf(out, "%s%s\n", indent, n.Symbol)
	}

	for _, c := range n.Children {
		printNode(out, c, depth+1)
	}
}
