package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"synacorvm/internal/asm"
	"synacorvm/internal/cli"
	"synacorvm/internal/log"
)

// Tokenize is the command that prints the token stream of an assembly source file, one token per
// line.
//
//	synacorvm tokenize file.asm
func Tokenize() cli.Command {
	return new(tokenizeCmd)
}

type tokenizeCmd struct{}

func (tokenizeCmd) Description() string {
	return "print the token stream of an assembly source file"
}

func (tokenizeCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `tokenize file.asm

Print each token as "symbol(payload) @ file:row:col".`)

	return err
}

func (tokenizeCmd) FlagSet() *cli.FlagSet {
	return flag.NewFlagSet("tokenize", flag.ExitOnError)
}

func (tokenizeCmd) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("tokenize: expected exactly one source file, got %d", len(args))
	}

	in := args[0]

	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("tokenize: %w", err)
	}

	toks, ok := asm.Tokenize(in, src)

	for _, t := range toks {
		fmt.Fprintf(stdout, "%s(%s) @ %s\n", t.Symbol, tokenPayload(t), t.Pos)
	}

	if !ok {
		return fmt.Errorf("tokenize: lexical error in %s", in)
	}

	return nil
}

// tokenPayload renders a token's payload for display, using the same accessor the parser and
// generator would use for that symbol.
func tokenPayload(t asm.Token) string {
	switch t.Symbol {
	case asm.NUMBER, asm.CHARACTER:
		return fmt.Sprintf("%d", uint16(t.Number()))
	case asm.REGISTER:
		return fmt.Sprintf("r%d", t.Register())
	case asm.STRING:
		return t.Str()
	case asm.TAG_DECL, asm.TAG_REF, asm.VERB:
		return t.Text
	case asm.ERROR:
		return t.Text
	default:
		return ""
	}
}
