package asm

// lex.go implements the byte-at-a-time tokenizer described in Grammar.

import (
	"fmt"

	"synacorvm/internal/vm"
)

var verbs = func() map[string]vm.Opcode {
	m := make(map[string]vm.Opcode, int(vm.NumOpcodes))

	for op := vm.Opcode(0); op < vm.NumOpcodes; op++ {
		m[op.String()] = op
	}

	return m
}()

var escapes = map[byte]byte{
	'0': 0, 'n': '\n', 't': '\t', 'v': '\v', 'b': '\b',
	'r': '\r', 'f': '\f', 'a': '\a', '\\': '\\', '\'': '\'', '"': '"',
}

// Lexer scans assembly source text one byte at a time, producing a stream of Tokens.
type Lexer struct {
	file string
	src  []byte
	pos  int
	row  int
	col  int
}

// NewLexer creates a lexer over src, attributing positions to file.
func NewLexer(file string, src []byte) *Lexer {
	return &Lexer{file: file, src: src, row: 1, col: 1}
}

// Tokenize scans the entire source, returning every token produced (including an END sentinel)
// and whether any lexical error occurred. Errors do not stop the scan: an ERROR token is emitted
// and the lexer resynchronizes at the next newline, matching a real editor's "keep going" feel.
func (l *Lexer) Tokenize() ([]Token, bool) {
	var toks []Token

	ok := true

	for {
		l.skipHorizontalSpace()

		if l.atEOF() {
			toks = append(toks, Token{Symbol: END, Pos: l.here()})
			break
		}

		if l.peek() == '\n' {
			toks = append(toks, l.lexEOL())
			continue
		}

		tok, err := l.lexOne()
		if err != nil {
			ok = false
			toks = append(toks, Token{Symbol: ERROR, Pos: tok.Pos, Text: err.Error()})
			l.recover()

			continue
		}

		toks = append(toks, tok)
	}

	return toks, ok
}

func (l *Lexer) lexOne() (Token, error) {
	pos := l.here()
	c := l.peek()

	switch {
	case c == '\'':
		return l.lexCharacter(pos)
	case c == '"':
		return l.lexString(pos)
	case isDigit(c):
		return l.lexNumber(pos)
	case isIdentStart(c):
		return l.lexIdent(pos)
	default:
		l.advance()
		return Token{Pos: pos}, fmt.Errorf("%s: unexpected character %q", pos, c)
	}
}

// lexEOL consumes a run of consecutive newlines (and interleaved horizontal space) as a single
// EOL token, so blank lines do not produce an empty statement per blank line.
func (l *Lexer) lexEOL() Token {
	pos := l.here()

	for !l.atEOF() {
		c := l.peek()
		if c == '\n' || c == ' ' || c == '\t' || c == '\r' {
			l.advance()
			continue
		}

		break
	}

	return Token{Symbol: EOL, Pos: pos}
}

func (l *Lexer) lexNumber(pos Position) (Token, error) {
	base := 10

	if l.peek() == '0' {
		l.advance()

		switch {
		case !l.atEOF() && l.peek() == 'b':
			base = 2
			l.advance()
		case !l.atEOF() && l.peek() == 'x':
			base = 16
			l.advance()
		case !l.atEOF() && isDigit(l.peek()):
			base = 8
		default:
			return Token{Symbol: NUMBER, Payload: encodeWord(0), Pos: pos}, nil
		}
	}

	var value uint32

	digits := 0

	for !l.atEOF() {
		c := l.peek()
		if c == '_' {
			l.advance()
			continue
		}

		d, ok := digitValue(c)
		if !ok {
			break
		}

		if d >= base {
			l.advance()
			return Token{Pos: pos}, fmt.Errorf("%s: digit %q out of range for base %d", pos, c, base)
		}

		value = value*uint32(base) + uint32(d)
		digits++

		l.advance()
	}

	if digits == 0 {
		return Token{Pos: pos}, fmt.Errorf("%s: malformed numeric literal", pos)
	}

	return Token{Symbol: NUMBER, Payload: encodeWord(uint16(value)), Pos: pos}, nil
}

func (l *Lexer) lexCharacter(pos Position) (Token, error) {
	l.advance() // opening quote

	if l.atEOF() || l.peek() == '\n' {
		return Token{Pos: pos}, fmt.Errorf("%s: unterminated character literal", pos)
	}

	b, err := l.lexRune(pos)
	if err != nil {
		return Token{Pos: pos}, err
	}

	if l.atEOF() || l.peek() != '\'' {
		return Token{Pos: pos}, fmt.Errorf("%s: unterminated or multi-character literal", pos)
	}

	l.advance() // closing quote

	return Token{Symbol: CHARACTER, Payload: encodeWord(uint16(b)), Pos: pos}, nil
}

func (l *Lexer) lexString(pos Position) (Token, error) {
	l.advance() // opening quote

	var buf []byte

	for {
		if l.atEOF() || l.peek() == '\n' {
			return Token{Pos: pos}, fmt.Errorf("%s: unterminated string literal", pos)
		}

		if l.peek() == '"' {
			l.advance()
			break
		}

		b, err := l.lexRune(pos)
		if err != nil {
			return Token{Pos: pos}, err
		}

		buf = append(buf, b)
	}

	return Token{Symbol: STRING, Payload: buf, Pos: pos}, nil
}

// lexRune reads one source character for a character or string literal, resolving an escape if
// present.
func (l *Lexer) lexRune(pos Position) (byte, error) {
	c := l.peek()

	if c != '\\' {
		l.advance()
		return c, nil
	}

	l.advance()

	if l.atEOF() {
		return 0, fmt.Errorf("%s: unterminated escape sequence", pos)
	}

	e := l.peek()

	v, ok := escapes[e]
	if !ok {
		return 0, fmt.Errorf("%s: unknown escape sequence \\%c", pos, e)
	}

	l.advance()

	return v, nil
}

func (l *Lexer) lexIdent(pos Position) (Token, error) {
	start := l.pos

	for !l.atEOF() && isIdentChar(l.peek()) {
		l.advance()
	}

	if !l.atEOF() {
		c := l.peek()
		if !isHorizontalSpace(c) && c != '\n' {
			l.advance()
			return Token{Pos: pos}, fmt.Errorf("%s: stray character %q in identifier", pos, c)
		}
	}

	text := string(l.src[start:l.pos])

	if op, ok := verbs[text]; ok {
		return Token{Symbol: VERB, Payload: encodeWord(uint16(op)), Pos: pos, Text: text}, nil
	}

	if idx, ok := registerIndex(text); ok {
		return Token{
			Symbol:  REGISTER,
			Payload: encodeWord(uint16(vm.RegisterBase) + uint16(idx)),
			Pos:     pos, Text: text,
		}, nil
	}

	if len(text) > 1 && text[len(text)-1] == ':' {
		return Token{Symbol: TAG_DECL, Payload: []byte(text[:len(text)-1]), Pos: pos, Text: text}, nil
	}

	return Token{Symbol: TAG_REF, Payload: []byte(text), Pos: pos, Text: text}, nil
}

// recover discards input through the next newline, so scanning resumes cleanly after an error.
func (l *Lexer) recover() {
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}

	if !l.atEOF() {
		l.advance()
	}
}

func (l *Lexer) skipHorizontalSpace() {
	for !l.atEOF() && isHorizontalSpace(l.peek()) {
		l.advance()
	}
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.src) }
func (l *Lexer) peek() byte  { return l.src[l.pos] }

func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.row++
		l.col = 1
	} else {
		l.col++
	}

	l.pos++
}

func (l *Lexer) here() Position {
	return Position{File: l.file, Row: l.row, Col: l.col}
}

func encodeWord(v uint16) []byte {
	enc := vm.Word(v).Encode()
	return enc[:]
}

func registerIndex(text string) (int, bool) {
	if len(text) != 2 || text[0] != 'r' {
		return 0, false
	}

	if text[1] < '0' || text[1] > '7' {
		return 0, false
	}

	return int(text[1] - '0'), true
}

func isHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' }
func isDigit(c byte) bool           { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return isAlpha(c) || c == '_' || c == '-' || c == '.' || c == ':'
}

func isIdentChar(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '-' || c == '_' || c == ':' || c == '.'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func digitValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}
