/*
Package asm implements an assembler for the Synacor architecture.

The assembler turns assembly source into a loadable bytecode image in three stages: a tokenizer
(Lexer) produces a token stream, a table-driven LL(1) parser (Parser) builds a parse tree over a
fixed grammar, and a code generator (Generator) flattens the tree into little-endian 16-bit words,
resolving forward tag references in a second pass.

	start:
	        set r0 10
	loop:
	        out r0
	        add r0 r0 32767
	        jt r0 loop
	        halt

See Grammar for the assembly language syntax and LLGrammar for the parser's production table.

Typically one assembles source with the top-level Assemble function, or with the "synacorvm
assemble" command-line tool. See internal/cli/cmd for the command-line interface.
*/
package asm

// Grammar declares the syntax of Synacor assembly source, informally.
var Grammar = (`
program    = { statement } ;
statement  = tag-decl EOL
           | instruction EOL
           | data EOL
           | EOL ;
tag-decl   = ident ':' ;
instruction = verb { operand } ;
verb       = "halt" | "set" | "push" | "pop" | "eq" | "gt" | "jmp" | "jt" | "jf"
           | "add" | "mult" | "mod" | "and" | "or" | "not" | "rmem" | "wmem"
           | "call" | "ret" | "out" | "in" | "noop" ;
operand    = number | character | register | tag-ref ;
data       = literal { literal } ;
literal    = number | character | string | register | tag-ref ;
register   = 'r' octal-digit ;
tag-ref    = ident ;
number     = [ '0' ( 'b' binary+ | 'x' hex+ | octal+ ) ] | decimal+ ;
character  = "'" ( char | escape ) "'" ;
string     = '"' { char | escape } '"' ;
escape     = '\' ( '0' | 'n' | 't' | 'v' | 'b' | 'r' | 'f' | 'a' | '\' | "'" | '"' ) ;
`)

// LLGrammar declares the non-terminal productions the parser's table is built from. I's right-hand
// side is not fixed here: it is expanded per verb from vm.Opcode.Operands.
var LLGrammar = (`
Start -> P END
P     -> END | D EOL P | T EOL P | I EOL P | EOL P
T     -> TAG_DECL
I     -> VERB <operands>
D     -> (NUMBER | CHARACTER | STRING | REGISTER | TAG_REF) D | epsilon
W     -> NUMBER | CHARACTER | REGISTER | TAG_REF | END
R     -> REGISTER
`)
