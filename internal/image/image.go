// Package image reads and writes bytecode images and renders them as text.
//
// An image is a flat sequence of little-endian 16-bit words with no header, magic number, or
// checksum: byte 2i is the low byte of word i. It loads straight into a vm.Memory's heap starting
// at address 0.
package image

import (
	"fmt"
	"io"
	"os"
	"strings"

	"synacorvm/internal/vm"
)

// Load reads a bytecode image from path.
func Load(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Save writes a bytecode image to path.
func Save(path string, img []byte) error {
	return os.WriteFile(path, img, 0o644)
}

// Write copies img to w, for the "-" (stdout) output convention.
func Write(w io.Writer, img []byte) error {
	_, err := w.Write(img)
	return err
}

// Instruction is one decoded instruction: an opcode and its raw operand words (register selectors
// are not dereferenced), in encoding order. Data is true when the word at Addr does not name a valid opcode; Op is meaningless in
// that case and Args holds the single raw word.
type Instruction struct {
	Addr vm.Number
	Op   vm.Opcode
	Args []vm.Word
	Data bool
}

// String renders an instruction as "addr: verb operand...", with operands shown as register names
// or bare numbers. A non-instruction word renders as "addr: data value".
func (in Instruction) String() string {
	var b strings.Builder

	if in.Data {
		fmt.Fprintf(&b, "%04x: data  %s", uint16(in.Addr), formatOperand(in.Args[0]))
		return b.String()
	}

	fmt.Fprintf(&b, "%04x: %-5s", uint16(in.Addr), in.Op)

	for _, a := range in.Args {
		fmt.Fprintf(&b, " %s", formatOperand(a))
	}

	return b.String()
}

func formatOperand(w vm.Word) string {
	if w.IsRegister() {
		return fmt.Sprintf("r%d", w.Register())
	}

	return fmt.Sprintf("%d", uint16(w))
}

// Disassemble decodes img into a sequence of instructions, advancing by 1+Argc(op) words for every
// recognized opcode. A word that does not name a valid opcode is rendered as a single-word DATA
// pseudo-instruction and decoding resumes at the next word, so disassembly never aborts partway
// through an image that embeds literal data between instructions.
func Disassemble(img []byte) []Instruction {
	mem := vm.NewMemory()
	mem.Load(img)

	n := vm.Number(len(img) / 2)

	var out []Instruction

	for addr := vm.Number(0); addr < n; {
		w := mem.Read(addr)
		op := vm.Opcode(w)

		if !op.Valid() {
			out = append(out, Instruction{Addr: addr, Args: []vm.Word{w}, Data: true})
			addr++

			continue
		}

		argc := op.Argc()
		args := make([]vm.Word, 0, argc)

		end := addr.Inc()
		for i := 0; i < argc && end < n; i++ {
			args = append(args, mem.Read(end))
			end = end.Inc()
		}

		out = append(out, Instruction{Addr: addr, Op: op, Args: args})
		addr = end
	}

	return out
}

// Text renders a full disassembly listing, one instruction per line.
func Text(img []byte) string {
	var b strings.Builder

	for _, in := range Disassemble(img) {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}

	return b.String()
}
