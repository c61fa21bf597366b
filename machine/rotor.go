package machine

import "fmt"

// Rotor is a wired wheel mounted in a machine slot. Its permutation is
// fixed; what changes is its setting, the rotational offset from the zero
// position, and its ring offset.
//
// The three implementations are FixedRotor, MovingRotor and Reflector.
// Only a MovingRotor rotates or has notches, and only a Reflector reflects.
type Rotor interface {
	Name() string
	Alphabet() *Alphabet
	Permutation() *Permutation
	Size() int

	// Setting is the current offset in 0..Size()-1.
	Setting() int
	// Set places the rotor at posn, wrapped into range.
	Set(posn int)
	// SetSymbol places the rotor at the index of symbol r.
	SetSymbol(r rune) error

	// Ring is the ring offset (Ringstellung), 0 unless set.
	Ring() int
	SetRing(posn int)

	// ConvertForward passes p through the rotor from the entry side.
	ConvertForward(p int) int
	// ConvertBackward passes e through the rotor on the return path.
	ConvertBackward(e int) int

	Rotates() bool
	Reflecting() bool
	// AtNotch reports whether the rotor is positioned to let the rotor on
	// its left be driven on the next stroke.
	AtNotch() bool
	// Advance moves the rotor one position if it can move at all.
	Advance()
}

var (
	_ Rotor = (*FixedRotor)(nil)
	_ Rotor = (*MovingRotor)(nil)
	_ Rotor = (*Reflector)(nil)
)

// rotor holds what every kind of rotor has in common.
type rotor struct {
	name    string
	perm    *Permutation
	setting int
	ring    int
}

func (r *rotor) Name() string              { return r.name }
func (r *rotor) Alphabet() *Alphabet       { return r.perm.Alphabet() }
func (r *rotor) Permutation() *Permutation { return r.perm }
func (r *rotor) Size() int                 { return r.perm.Size() }
func (r *rotor) Setting() int              { return r.setting }
func (r *rotor) Ring() int                 { return r.ring }

func (r *rotor) Set(posn int) {
	r.setting = r.perm.Wrap(posn)
}

func (r *rotor) SetSymbol(s rune) error {
	i, err := r.Alphabet().Index(s)
	if err != nil {
		return fmt.Errorf("rotor %s: %w", r.name, err)
	}
	r.setting = i
	return nil
}

func (r *rotor) SetRing(posn int) {
	r.ring = r.perm.Wrap(posn)
}

func (r *rotor) ConvertForward(p int) int {
	k := r.setting - r.ring
	return r.perm.Wrap(r.perm.Permute(p+k) - k)
}

func (r *rotor) ConvertBackward(e int) int {
	k := r.setting - r.ring
	return r.perm.Wrap(r.perm.Invert(e+k) - k)
}

func (r *rotor) String() string {
	return "Rotor " + r.name
}

// FixedRotor has no ratchet. Once placed it never moves.
type FixedRotor struct {
	rotor
}

// NewFixedRotor returns a non-moving rotor named name with permutation perm.
func NewFixedRotor(name string, perm *Permutation) *FixedRotor {
	return &FixedRotor{rotor{name: name, perm: perm}}
}

func (r *FixedRotor) Rotates() bool    { return false }
func (r *FixedRotor) Reflecting() bool { return false }
func (r *FixedRotor) AtNotch() bool    { return false }
func (r *FixedRotor) Advance()         {}

// MovingRotor is driven by a pawl and carries one or more notches.
type MovingRotor struct {
	rotor
	notches []int
}

// NewMovingRotor returns a rotor named name with permutation perm and
// notches at the symbols of notches.
func NewMovingRotor(name string, perm *Permutation, notches string) (*MovingRotor, error) {
	if notches == "" {
		return nil, fmt.Errorf("%w: moving rotor %s has no notches", ErrInvalidConfiguration, name)
	}
	r := &MovingRotor{rotor: rotor{name: name, perm: perm}}
	for _, s := range notches {
		i, err := perm.Alphabet().Index(s)
		if err != nil {
			return nil, fmt.Errorf("rotor %s notch: %w", name, err)
		}
		r.notches = append(r.notches, i)
	}
	return r, nil
}

func (r *MovingRotor) Rotates() bool    { return true }
func (r *MovingRotor) Reflecting() bool { return false }

func (r *MovingRotor) AtNotch() bool {
	for _, n := range r.notches {
		if r.setting == n {
			return true
		}
	}
	return false
}

func (r *MovingRotor) Advance() {
	r.setting = r.perm.Wrap(r.setting + 1)
}

// Notches returns the notch symbols.
func (r *MovingRotor) Notches() string {
	alpha := r.Alphabet()
	rs := make([]rune, len(r.notches))
	for i, n := range r.notches {
		rs[i] = alpha.symbols[n]
	}
	return string(rs)
}

// Reflector sits in slot 0 and turns the signal back through the stack.
type Reflector struct {
	rotor
}

// NewReflector returns a reflector named name. perm must be a derangement.
func NewReflector(name string, perm *Permutation) (*Reflector, error) {
	if !perm.Derangement() {
		return nil, fmt.Errorf("%w: reflector %s maps a symbol to itself", ErrInvalidConfiguration, name)
	}
	return &Reflector{rotor{name: name, perm: perm}}, nil
}

func (r *Reflector) Rotates() bool    { return false }
func (r *Reflector) Reflecting() bool { return true }
func (r *Reflector) AtNotch() bool    { return false }
func (r *Reflector) Advance()         {}
