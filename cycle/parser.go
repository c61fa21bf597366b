package cycle

import "fmt"

// Parser turns a token stream into cycles.
type Parser struct {
	tokens []Token
	pos    int
}

// Parse reads cycle notation into its cycles, in source order. A symbol
// written outside parentheses becomes a cycle of length one. Parse checks
// syntax only; membership in an alphabet and disjointness are the caller's
// concern.
func Parse(input string) ([][]rune, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseCycles()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.peek()
	p.pos++
	return t
}

func (p *Parser) parseCycles() ([][]rune, error) {
	var cycles [][]rune
	for {
		tok := p.advance()
		switch tok.Type {
		case TokEOF:
			return cycles, nil
		case TokSymbol:
			cycles = append(cycles, []rune{tok.Sym})
		case TokLParen:
			c, err := p.parseCycle(tok)
			if err != nil {
				return nil, err
			}
			cycles = append(cycles, c)
		case TokRParen:
			return nil, fmt.Errorf("%w: unmatched ')' at position %d", ErrSyntax, tok.Pos)
		}
	}
}

// parseCycle reads the body of a cycle whose '(' has been consumed.
func (p *Parser) parseCycle(open Token) ([]rune, error) {
	c := []rune{}
	for {
		tok := p.advance()
		switch tok.Type {
		case TokSymbol:
			c = append(c, tok.Sym)
		case TokRParen:
			return c, nil
		case TokLParen:
			return nil, fmt.Errorf("%w: nested '(' at position %d", ErrSyntax, tok.Pos)
		case TokEOF:
			return nil, fmt.Errorf("%w: '(' at position %d is never closed", ErrSyntax, open.Pos)
		}
	}
}
