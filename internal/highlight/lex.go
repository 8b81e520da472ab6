package highlight

import (
	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PHPLexer is a [Lexer] that recognizes PHP.
// Input doesn't need to start with an opening tag.
var PHPLexer Lexer = &chromaLexer{l: chroma.Coalesce(phpLexer())}

// Lexer analyzes source code and generates a stream of tokens.
type Lexer interface {
	Lex(src []byte) ([]chroma.Token, error)
}

func phpLexer() chroma.Lexer {
	if l := lexers.Get("php"); l != nil {
		return l
	}
	return lexers.Fallback
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

func (cl *chromaLexer) Lex(src []byte) ([]chroma.Token, error) {
	return chroma.Tokenise(cl.l, nil, string(src))
}
