package asm

// asm.go exposes the assembler's top-level entry points: Tokenize, Parse, Assemble.

// Tokenize scans source text, returning its token stream. The boolean result is false if any
// lexical error was encountered. ERROR tokens stay in the stream, so a caller that displays tokens
// (e.g. the "tokenize" CLI command) can print them inline and still use the flag for its result.
func Tokenize(file string, src []byte) ([]Token, bool) {
	return NewLexer(file, src).Tokenize()
}

// Parse tokenizes and parses source text, returning the parse tree. Any lexical error is fatal to
// the parse; the first one encountered is returned as a *LexError.
func Parse(file string, src []byte) (*Node, error) {
	toks, ok := Tokenize(file, src)
	if !ok {
		return nil, firstLexError(toks)
	}

	return NewParser(toks).Parse()
}

// Assemble compiles source text into a bytecode image ready to load into a vm.Memory. Warnings
// (e.g. an unused tag) are returned alongside a nil error; any other failure is fatal and the
// image is nil.
func Assemble(file string, src []byte) (image []byte, warnings []string, err error) {
	root, err := Parse(file, src)
	if err != nil {
		return nil, nil, err
	}

	gen := NewGenerator()

	image, err = gen.Generate(root)
	if err != nil {
		return nil, nil, err
	}

	return image, gen.Warnings(), nil
}

func firstLexError(toks []Token) error {
	for _, t := range toks {
		if t.Symbol == ERROR {
			return &LexError{Pos: t.Pos, Msg: t.Text}
		}
	}

	return nil
}
