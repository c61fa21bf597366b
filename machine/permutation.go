package machine

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/cycle"
)

// Permutation is a permutation of the indices of an alphabet, described by
// disjoint cycles over its symbols. Symbols in no cycle map to themselves.
type Permutation struct {
	alphabet *Alphabet
	cycles   [][]rune

	// Lookup tables derived from cycles.
	forward []int
	inverse []int
}

// NewPermutation parses text in cycle notation, e.g. "(AELT) (BK) (S)",
// against alpha. Syntax errors, symbols outside alpha and symbols that
// appear more than once are reported as ErrMalformedPermutation.
func NewPermutation(text string, alpha *Alphabet) (*Permutation, error) {
	cycles, err := cycle.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPermutation, err)
	}

	n := alpha.Size()
	p := &Permutation{
		alphabet: alpha,
		cycles:   cycles,
		forward:  make([]int, n),
		inverse:  make([]int, n),
	}
	for i := 0; i < n; i++ {
		p.forward[i] = i
		p.inverse[i] = i
	}

	seen := make(map[rune]bool)
	for _, c := range cycles {
		for j, r := range c {
			if !alpha.Contains(r) {
				return nil, fmt.Errorf("%w: %q is not in the alphabet", ErrMalformedPermutation, r)
			}
			if seen[r] {
				return nil, fmt.Errorf("%w: %q appears more than once", ErrMalformedPermutation, r)
			}
			seen[r] = true

			from := alpha.index[r]
			to := alpha.index[c[(j+1)%len(c)]]
			p.forward[from] = to
			p.inverse[to] = from
		}
	}
	return p, nil
}

// Alphabet returns the alphabet the permutation acts on.
func (p *Permutation) Alphabet() *Alphabet {
	return p.alphabet
}

// Size returns the size of the alphabet.
func (p *Permutation) Size() int {
	return p.alphabet.Size()
}

// Wrap reduces p into 0..Size()-1. The result is never negative.
func (p *Permutation) Wrap(i int) int {
	return p.alphabet.wrap(i)
}

// Permute returns the index of the symbol that follows i's symbol in its
// cycle. i is wrapped first.
func (p *Permutation) Permute(i int) int {
	return p.forward[p.Wrap(i)]
}

// Invert returns the index of the symbol that precedes i's symbol in its
// cycle. i is wrapped first.
func (p *Permutation) Invert(i int) int {
	return p.inverse[p.Wrap(i)]
}

// PermuteSymbol is Permute on symbols.
func (p *Permutation) PermuteSymbol(r rune) (rune, error) {
	i, err := p.alphabet.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alphabet.symbols[p.forward[i]], nil
}

// InvertSymbol is Invert on symbols.
func (p *Permutation) InvertSymbol(r rune) (rune, error) {
	i, err := p.alphabet.Index(r)
	if err != nil {
		return 0, err
	}
	return p.alphabet.symbols[p.inverse[i]], nil
}

// Derangement reports whether no symbol maps to itself. A cycle of length
// one is a fixed point.
func (p *Permutation) Derangement() bool {
	for i, j := range p.forward {
		if i == j {
			return false
		}
	}
	return true
}

// Cycles returns the cycles as written, including cycles of length one.
func (p *Permutation) Cycles() [][]rune {
	out := make([][]rune, len(p.cycles))
	for i, c := range p.cycles {
		out[i] = append([]rune(nil), c...)
	}
	return out
}

// String renders the permutation in cycle notation.
func (p *Permutation) String() string {
	var b strings.Builder
	for i, c := range p.cycles {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(string(c))
		b.WriteByte(')')
	}
	return b.String()
}
