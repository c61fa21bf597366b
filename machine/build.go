package machine

import (
	"fmt"

	"github.com/blackwell-systems/rotorsim/registry"
)

// Build compiles a registry into a machine with an empty set of slots. The
// machine gets its own catalog, so machines built by separate calls share
// no state.
func Build(reg *registry.Registry) (*Machine, error) {
	alpha, err := ParseAlphabet(reg.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("registry %q: %w", reg.Name, err)
	}

	catalog := NewCatalog(alpha)
	for _, rd := range reg.Rotors {
		r, err := buildRotor(rd, alpha)
		if err != nil {
			return nil, fmt.Errorf("rotor %q: %w", rd.Name, err)
		}
		if err := catalog.Add(r); err != nil {
			return nil, err
		}
	}

	m, err := New(alpha, reg.Slots, reg.Pawls, catalog)
	if err != nil {
		return nil, fmt.Errorf("registry %q: %w", reg.Name, err)
	}
	return m, nil
}

func buildRotor(rd registry.RotorDef, alpha *Alphabet) (Rotor, error) {
	perm, err := NewPermutation(rd.Cycles, alpha)
	if err != nil {
		return nil, err
	}
	switch rd.Kind {
	case registry.KindMoving:
		return NewMovingRotor(rd.Name, perm, rd.Notches)
	case registry.KindFixed:
		return NewFixedRotor(rd.Name, perm), nil
	case registry.KindReflector:
		return NewReflector(rd.Name, perm)
	}
	return nil, fmt.Errorf("%w: unknown rotor kind %v", ErrInvalidConfiguration, rd.Kind)
}
