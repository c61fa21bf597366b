// Package registry describes a rotor machine declaratively: its alphabet,
// how many rotor slots and pawls it has, and the catalog of rotors that can
// be mounted in it.
package registry

import "fmt"

// RotorKind distinguishes the three kinds of rotor.
type RotorKind int

const (
	KindMoving RotorKind = iota
	KindFixed
	KindReflector
)

func (k RotorKind) String() string {
	switch k {
	case KindMoving:
		return "moving"
	case KindFixed:
		return "fixed"
	case KindReflector:
		return "reflector"
	}
	return fmt.Sprintf("RotorKind(%d)", int(k))
}

// ParseRotorKind accepts the long names used in YAML files and the one
// letter codes of the classic format (M, N, R).
func ParseRotorKind(s string) (RotorKind, error) {
	switch s {
	case "moving", "M":
		return KindMoving, nil
	case "fixed", "N":
		return KindFixed, nil
	case "reflector", "R":
		return KindReflector, nil
	}
	return 0, fmt.Errorf("unknown rotor type %q", s)
}

// RotorDef is one catalog entry. Cycles is kept as written; it is parsed
// against the alphabet when the machine is built.
type RotorDef struct {
	Name    string
	Kind    RotorKind
	Notches string // moving rotors only
	Cycles  string
}

// Registry is the complete description of a machine.
type Registry struct {
	Name     string
	Alphabet string // literal symbols, or a range such as "A-Z"
	Slots    int
	Pawls    int
	Rotors   []RotorDef
}

// Count returns how many catalog entries have the given kind.
func (r *Registry) Count(kind RotorKind) int {
	n := 0
	for _, rd := range r.Rotors {
		if rd.Kind == kind {
			n++
		}
	}
	return n
}

// Validate performs the structural checks shared by every file format.
// Checks that need the alphabet (cycle text, notch symbols) happen when the
// machine is built.
func (r *Registry) Validate() error {
	if r.Alphabet == "" {
		return fmt.Errorf("registry %q has no alphabet", r.Name)
	}
	if r.Slots < 2 {
		return fmt.Errorf("registry %q needs at least 2 slots, has %d", r.Name, r.Slots)
	}
	if r.Pawls < 0 || r.Pawls >= r.Slots {
		return fmt.Errorf("registry %q: pawls must be in [0, %d), got %d", r.Name, r.Slots, r.Pawls)
	}
	seen := make(map[string]bool, len(r.Rotors))
	for _, rd := range r.Rotors {
		if rd.Name == "" {
			return fmt.Errorf("registry %q has a rotor without a name", r.Name)
		}
		if seen[rd.Name] {
			return fmt.Errorf("rotor %q is defined twice", rd.Name)
		}
		seen[rd.Name] = true
		if rd.Kind == KindMoving && rd.Notches == "" {
			return fmt.Errorf("moving rotor %q has no notches", rd.Name)
		}
		if rd.Kind != KindMoving && rd.Notches != "" {
			return fmt.Errorf("%s rotor %q cannot have notches", rd.Kind, rd.Name)
		}
	}
	if r.Count(KindReflector) == 0 {
		return fmt.Errorf("registry %q defines no reflector", r.Name)
	}
	return nil
}
