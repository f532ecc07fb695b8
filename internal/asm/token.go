package asm

// token.go defines the tokenizer's output alphabet.

import (
	"fmt"

	"synacorvm/internal/vm"
)

// Symbol names a token or grammar symbol. The closed set below covers the terminals produced by
// the lexer, the non-terminals built by the parser, and a few transient states the lexer uses
// internally and never hands to the parser.
//
//go:generate stringer -type=Symbol -output=token_string.go
type Symbol int

const (
	// NONE is the lexer's resting state: no token is being accumulated.
	NONE Symbol = iota

	// Terminals.
	NUMBER
	CHARACTER
	STRING
	REGISTER
	TAG_DECL
	TAG_REF
	VERB
	EOL
	END

	// Non-terminals, built by the parser.
	Start
	P
	T
	I
	D
	W
	R

	// Transient lexer states, never emitted to the parser.
	UNKNOWN_IDENTIFIER
	ERROR
)

var symbolNames = map[Symbol]string{
	NONE: "NONE", NUMBER: "NUMBER", CHARACTER: "CHARACTER", STRING: "STRING",
	REGISTER: "REGISTER", TAG_DECL: "TAG_DECL", TAG_REF: "TAG_REF", VERB: "VERB",
	EOL: "EOL", END: "END", Start: "Start", P: "P", T: "T", I: "I", D: "D", W: "W", R: "R",
	UNKNOWN_IDENTIFIER: "UNKNOWN_IDENTIFIER", ERROR: "ERROR",
}

func (s Symbol) String() string {
	if name, ok := symbolNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Symbol(%d)", int(s))
}

// Terminal reports whether s is a terminal symbol the lexer can produce.
func (s Symbol) Terminal() bool {
	switch s {
	case NUMBER, CHARACTER, STRING, REGISTER, TAG_DECL, TAG_REF, VERB, EOL, END:
		return true
	default:
		return false
	}
}

// Position locates a token's first character in source text.
type Position struct {
	File string
	Row  int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Row, p.Col)
}

// Token is a lexical unit: a symbol, an opaque payload interpreted by the semantic accessors
// below, and the source position of its first character.
type Token struct {
	Symbol  Symbol
	Payload []byte
	Pos     Position

	// Text carries the original identifier or error text for diagnostics; it is not used by the
	// parser or generator.
	Text string
}

// Number interprets the payload as a little-endian 16-bit number. Valid for NUMBER, CHARACTER and
// REGISTER tokens.
func (t Token) Number() vm.Word {
	if len(t.Payload) < 2 {
		return 0
	}

	return vm.DecodeWord(t.Payload[0], t.Payload[1])
}

// Register returns the register index a REGISTER token names.
func (t Token) Register() int {
	return t.Number().Register()
}

// Verb returns the opcode a VERB token names.
func (t Token) Verb() vm.Opcode {
	return vm.Opcode(t.Number())
}

// Str returns the decoded text of a STRING token, or the name of a TAG_DECL/TAG_REF token.
func (t Token) Str() string {
	return string(t.Payload)
}
