// Package machine implements the cipher engine of a rotor machine: the
// alphabet, permutations in cycle notation, the three kinds of rotor, and
// the machine that steps them and passes symbols through them.
//
// The engine is not safe for concurrent use. Rotors hold mutable settings,
// so two machines running at the same time must be built from separate
// catalogs.
package machine

import (
	"fmt"
	"unicode/utf8"
)

// Alphabet is an ordered set of distinct symbols, each identified by its
// index in 0..Size()-1. It is immutable.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet whose symbols are the runes of symbols, in
// order.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("%w: alphabet is not valid UTF-8", ErrInvalidConfiguration)
	}
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("%w: symbol %q appears twice in alphabet", ErrInvalidConfiguration, r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	if len(a.symbols) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrInvalidConfiguration)
	}
	return a, nil
}

// NewRange builds the alphabet of consecutive runes first..last inclusive.
func NewRange(first, last rune) (*Alphabet, error) {
	if first > last {
		return nil, fmt.Errorf("%w: empty range %q-%q", ErrInvalidConfiguration, first, last)
	}
	rs := make([]rune, 0, last-first+1)
	for r := first; r <= last; r++ {
		rs = append(rs, r)
	}
	return NewAlphabet(string(rs))
}

// ParseAlphabet reads the alphabet notation of configuration files: either
// a range such as "A-Z" or the literal list of symbols.
func ParseAlphabet(s string) (*Alphabet, error) {
	rs := []rune(s)
	if len(rs) == 3 && rs[1] == '-' && rs[0] < rs[2] {
		return NewRange(rs[0], rs[2])
	}
	return NewAlphabet(s)
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Contains reports whether r is a symbol of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Index returns the index of symbol r.
func (a *Alphabet) Index(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q is not in the alphabet", ErrInvalidSymbol, r)
	}
	return i, nil
}

// Symbol returns the symbol at index i.
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(a.symbols))
	}
	return a.symbols[i], nil
}

// wrap reduces p into 0..Size()-1 using floored modulo.
func (a *Alphabet) wrap(p int) int {
	r := p % len(a.symbols)
	if r < 0 {
		r += len(a.symbols)
	}
	return r
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}
