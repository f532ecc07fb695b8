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
	"synacorvm/internal/image"
	"synacorvm/internal/log"
)

// Assemble is the command that translates assembly source into a bytecode image.
//
//	synacorvm assemble -o a.bin file.asm
func Assemble() cli.Command {
	return new(assembleCmd)
}

type assembleCmd struct {
	debug  bool
	output string
}

func (assembleCmd) Description() string {
	return "assemble source code into a bytecode image"
}

func (assembleCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `assemble [-o out.bin] file.asm [out.bin]

Tokenize, parse and generate a bytecode image from assembly source. The
output path is the second argument if given, else the -o value. The
default output path replaces a ".asm" suffix with ".bin", or appends
".bin" to any other name; an output path of "-" writes the image to
stdout.`)

	return err
}

func (a *assembleCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")
	fs.StringVar(&a.output, "o", "", "output `filename`")

	return fs
}

func (a *assembleCmd) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) != 1 && len(args) != 2 {
		return fmt.Errorf("assemble: expected a source file and an optional output file, got %d arguments", len(args))
	}

	in := args[0]

	src, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	img, warnings, err := asm.Assemble(in, src)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	for _, w := range warnings {
		logger.Warn(w)
	}

	out := a.output
	if len(args) == 2 {
		out = args[1]
	}

	if out == "" {
		out = defaultOutputPath(in)
	}

	if out == "-" {
		return image.Write(stdout, img)
	}

	logger.Debug("writing image", "file", out, "bytes", len(img))

	return image.Save(out, img)
}

func defaultOutputPath(src string) string {
	ext := strings.TrimSuffix(src, ".asm")
	if ext == src {
		return src + ".bin"
	}

	return ext + ".bin"
}
