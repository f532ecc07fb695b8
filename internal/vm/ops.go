package vm

// ops.go enumerates the machine's opcodes and their operand signatures.

import "fmt"

// Opcode identifies a single CPU operation.
//
//go:generate stringer -type=Opcode -trimprefix= -output=ops_string.go
type Opcode uint16

// The complete instruction set. Numeric values match the opcode encoding used in bytecode images.
const (
	HALT Opcode = iota
	SET
	PUSH
	POP
	EQ
	GT
	JMP
	JT
	JF
	ADD
	MULT
	MOD
	AND
	OR
	NOT
	RMEM
	WMEM
	CALL
	RET
	OUT
	IN
	NOOP

	NumOpcodes
)

var opcodeNames = [NumOpcodes]string{
	HALT: "halt", SET: "set", PUSH: "push", POP: "pop", EQ: "eq", GT: "gt",
	JMP: "jmp", JT: "jt", JF: "jf", ADD: "add", MULT: "mult", MOD: "mod",
	AND: "and", OR: "or", NOT: "not", RMEM: "rmem", WMEM: "wmem", CALL: "call",
	RET: "ret", OUT: "out", IN: "in", NOOP: "noop",
}

func (op Opcode) String() string {
	if op >= NumOpcodes {
		return fmt.Sprintf("opcode(%d)", uint16(op))
	}

	return opcodeNames[op]
}

// Valid reports whether op names a real instruction.
func (op Opcode) Valid() bool {
	return op < NumOpcodes
}

// OpcodeFromName returns the opcode named by a verb keyword, and false if no such verb exists.
func OpcodeFromName(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}

	return 0, false
}

// Argc returns the number of operand words an opcode consumes.
func (op Opcode) Argc() int {
	return len(opArgs[op])
}

// argKind describes whether an operand slot is read (any word) or must resolve to a writable
// register.
type argKind uint8

const (
	argW argKind = iota // any word: literal, heap address, or register (read-only)
	argR                // must be a register (write destination)
)

// OperandKind classifies one operand slot of an instruction, for callers outside the package (the
// assembler) that need to know an opcode's signature without sharing the CPU's internal argKind.
type OperandKind int

const (
	OperandValue    OperandKind = iota // any word: literal, heap address, or register (read-only)
	OperandRegister                    // must be a register (write destination)
)

// Operands returns op's operand signature, in encoding order.
func (op Opcode) Operands() []OperandKind {
	sig := opArgs[op]
	out := make([]OperandKind, len(sig))

	for i, k := range sig {
		if k == argR {
			out[i] = OperandRegister
		} else {
			out[i] = OperandValue
		}
	}

	return out
}

// opArgs gives the operand signature for every opcode, in encoding order.
var opArgs = [NumOpcodes][]argKind{
	HALT: {},
	SET:  {argR, argW},
	PUSH: {argW},
	POP:  {argR},
	EQ:   {argR, argW, argW},
	GT:   {argR, argW, argW},
	JMP:  {argW},
	JT:   {argW, argW},
	JF:   {argW, argW},
	ADD:  {argR, argW, argW},
	MULT: {argR, argW, argW},
	MOD:  {argR, argW, argW},
	AND:  {argR, argW, argW},
	OR:   {argR, argW, argW},
	NOT:  {argR, argW},
	RMEM: {argR, argW},
	WMEM: {argW, argW},
	CALL: {argW},
	RET:  {},
	OUT:  {argW},
	IN:   {argR},
	NOOP: {},
}
