// Package cycle reads permutations written in cycle notation, e.g.
// "(AELTPHQXRU) (BKNW) (S)".
package cycle

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every lexer and parser error.
var ErrSyntax = errors.New("cycle syntax error")

// TokenType classifies lexer tokens.
type TokenType int

const (
	TokEOF TokenType = iota
	TokLParen
	TokRParen
	TokSymbol
)

func (t TokenType) String() string {
	switch t {
	case TokEOF:
		return "end of input"
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokSymbol:
		return "symbol"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a single lexer token. Pos is a rune offset into the input.
type Token struct {
	Type TokenType
	Sym  rune
	Pos  int
}

// Lex tokenizes cycle notation. Whitespace and Unicode format characters
// are skipped; every other rune except the parentheses is a symbol.
func Lex(input string) ([]Token, error) {
	var tokens []Token
	pos := 0
	for i, ch := range input {
		switch {
		case unicode.IsSpace(ch), unicode.Is(unicode.Cf, ch):
			// Insignificant.
		case ch == utf8.RuneError && !validAt(input, i):
			return nil, fmt.Errorf("%w: invalid encoding at position %d", ErrSyntax, pos)
		case ch == '(':
			tokens = append(tokens, Token{TokLParen, ch, pos})
		case ch == ')':
			tokens = append(tokens, Token{TokRParen, ch, pos})
		default:
			tokens = append(tokens, Token{TokSymbol, ch, pos})
		}
		pos++
	}
	tokens = append(tokens, Token{TokEOF, 0, pos})
	return tokens, nil
}

// validAt reports whether the rune starting at byte i is properly encoded.
// A literal U+FFFD is valid.
func validAt(s string, i int) bool {
	_, size := utf8.DecodeRuneInString(s[i:])
	return size > 1
}
