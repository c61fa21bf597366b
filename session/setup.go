// Package session runs messages through a machine. Input is a sequence of
// lines: setup lines, starting with '*', choose the rotors, their settings
// and the plugboard; every other line is a message to convert.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/rotorsim/machine"
)

// ErrBadSetup is wrapped by errors about the shape of a setup line.
var ErrBadSetup = errors.New("bad setup line")

// Setup is a parsed setup line:
//
//	* B Beta III IV I AXLE [RING] (HQ) (EX) (IP) (TR) (BY)
type Setup struct {
	Rotors    []string
	Setting   string
	Ring      string // empty means all rings at the first symbol
	Plugboard string // cycle notation, empty for none
}

// ParseSetup parses a setup line for a machine with numRotors slots.
func ParseSetup(line string, numRotors int) (Setup, error) {
	toks := strings.Fields(line)
	if len(toks) == 0 || !strings.HasPrefix(toks[0], "*") {
		return Setup{}, fmt.Errorf("%w: %q does not start with '*'", ErrBadSetup, line)
	}
	// The first rotor name may be written against the star.
	if rest := strings.TrimPrefix(toks[0], "*"); rest != "" {
		toks[0] = rest
	} else {
		toks = toks[1:]
	}

	if len(toks) < numRotors+1 {
		return Setup{}, fmt.Errorf("%w: need %d rotor names and a setting, got %q", ErrBadSetup, numRotors, line)
	}
	s := Setup{
		Rotors:  toks[:numRotors],
		Setting: toks[numRotors],
	}
	toks = toks[numRotors+1:]

	if len(toks) > 0 && !strings.HasPrefix(toks[0], "(") {
		s.Ring = toks[0]
		toks = toks[1:]
	}

	depth := 0
	for _, tok := range toks {
		if depth == 0 && !strings.HasPrefix(tok, "(") {
			return Setup{}, fmt.Errorf("%w: unexpected %q in plugboard", ErrBadSetup, tok)
		}
		depth += strings.Count(tok, "(") - strings.Count(tok, ")")
	}
	s.Plugboard = strings.Join(toks, " ")
	return s, nil
}

// Apply configures m from s. Everything that can be checked without
// touching the machine is checked first.
func Apply(m *machine.Machine, s Setup) error {
	alpha := m.Alphabet()

	var plugboard *machine.Permutation
	if s.Plugboard != "" {
		p, err := machine.NewPermutation(s.Plugboard, alpha)
		if err != nil {
			return fmt.Errorf("plugboard: %w", err)
		}
		plugboard = p
	}

	ring := s.Ring
	if ring == "" {
		first, _ := alpha.Symbol(0)
		ring = strings.Repeat(string(first), m.NumRotors()-1)
	}
	for _, field := range []string{s.Setting, ring} {
		if n := len([]rune(field)); n != m.NumRotors()-1 {
			return fmt.Errorf("%w: %q must have %d symbols", machine.ErrInvalidConfiguration, field, m.NumRotors()-1)
		}
		for _, r := range field {
			if _, err := alpha.Index(r); err != nil {
				return fmt.Errorf("setting %q: %w", field, err)
			}
		}
	}

	if err := m.InsertRotors(s.Rotors); err != nil {
		return err
	}
	if err := m.SetRotors(s.Setting); err != nil {
		return err
	}
	if err := m.SetRings(ring); err != nil {
		return err
	}
	return m.SetPlugboard(plugboard)
}
