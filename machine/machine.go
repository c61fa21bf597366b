package machine

import (
	"fmt"
	"strings"
	"unicode"
)

// Machine is a rotor machine: an ordered stack of rotor slots with a
// reflector in slot 0, pawls driving the rightmost slots, and an optional
// plugboard.
type Machine struct {
	alphabet  *Alphabet
	numRotors int
	numPawls  int
	catalog   *Catalog

	slots     []Rotor
	plugboard *Permutation
}

// New returns a machine with numRotors slots and numPawls pawls whose
// rotors come from catalog. No rotors are mounted yet.
func New(alpha *Alphabet, numRotors, numPawls int, catalog *Catalog) (*Machine, error) {
	if numRotors < 2 {
		return nil, fmt.Errorf("%w: need at least 2 rotor slots, got %d", ErrInvalidConfiguration, numRotors)
	}
	if numPawls < 0 || numPawls >= numRotors {
		return nil, fmt.Errorf("%w: pawls must be in [0, %d), got %d", ErrInvalidConfiguration, numRotors, numPawls)
	}
	if catalog == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidConfiguration)
	}
	if catalog.Alphabet() != alpha {
		return nil, fmt.Errorf("%w: catalog uses a different alphabet", ErrInvalidConfiguration)
	}
	return &Machine{
		alphabet:  alpha,
		numRotors: numRotors,
		numPawls:  numPawls,
		catalog:   catalog,
	}, nil
}

// NumRotors returns the number of rotor slots.
func (m *Machine) NumRotors() int { return m.numRotors }

// NumPawls returns the number of pawls.
func (m *Machine) NumPawls() int { return m.numPawls }

// Alphabet returns the machine's alphabet.
func (m *Machine) Alphabet() *Alphabet { return m.alphabet }

// Catalog returns the rotors available to the machine.
func (m *Machine) Catalog() *Catalog { return m.catalog }

// Plugboard returns the plugboard, or nil if none is set.
func (m *Machine) Plugboard() *Permutation { return m.plugboard }

// Ready reports whether rotors have been inserted.
func (m *Machine) Ready() bool { return m.slots != nil }

// Slots returns the mounted rotors, reflector first.
func (m *Machine) Slots() []Rotor {
	return append([]Rotor(nil), m.slots...)
}

// InsertRotors mounts the catalog rotors called names, names[0] being the
// reflector. Nothing changes unless every name is valid. Ring settings of
// the mounted rotors go back to the first symbol; rotor positions are left
// as they are and are expected to be set with SetRotors.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return fmt.Errorf("%w: expected %d rotors, got %d", ErrInvalidConfiguration, m.numRotors, len(names))
	}
	slots := make([]Rotor, len(names))
	used := make(map[string]int, len(names))
	for i, name := range names {
		r, ok := m.catalog.Get(name)
		if !ok {
			return fmt.Errorf("%w: unknown rotor %s", ErrInvalidConfiguration, name)
		}
		key := catalogKey(name)
		if j, dup := used[key]; dup {
			return fmt.Errorf("%w: rotor %s used in slots %d and %d", ErrInvalidConfiguration, name, j, i)
		}
		used[key] = i
		if i == 0 && !r.Reflecting() {
			return fmt.Errorf("%w: slot 0 needs a reflector, %s is not one", ErrInvalidConfiguration, name)
		}
		if i > 0 && r.Reflecting() {
			return fmt.Errorf("%w: reflector %s can only go in slot 0", ErrInvalidConfiguration, name)
		}
		slots[i] = r
	}
	for _, r := range slots[1:] {
		r.SetRing(0)
	}
	m.slots = slots
	return nil
}

// SetRotors places the non-reflector rotors at the symbols of setting,
// leftmost first. setting must have NumRotors()-1 symbols.
func (m *Machine) SetRotors(setting string) error {
	posns, err := m.positions("setting", setting)
	if err != nil {
		return err
	}
	for i, p := range posns {
		m.slots[i+1].Set(p)
	}
	return nil
}

// SetRings sets the ring offsets of the non-reflector rotors the same way
// SetRotors sets their positions.
func (m *Machine) SetRings(ring string) error {
	posns, err := m.positions("ring setting", ring)
	if err != nil {
		return err
	}
	for i, p := range posns {
		m.slots[i+1].SetRing(p)
	}
	return nil
}

// positions validates a per-slot setting string and converts it to indices.
func (m *Machine) positions(what, s string) ([]int, error) {
	if !m.Ready() {
		return nil, fmt.Errorf("%w: no rotors inserted", ErrInvalidConfiguration)
	}
	rs := []rune(s)
	if len(rs) != m.numRotors-1 {
		return nil, fmt.Errorf("%w: %s %q must have %d symbols", ErrInvalidConfiguration, what, s, m.numRotors-1)
	}
	posns := make([]int, len(rs))
	for i, r := range rs {
		p, err := m.alphabet.Index(r)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", what, s, err)
		}
		posns[i] = p
	}
	return posns, nil
}

// SetPlugboard installs plugboard. A nil plugboard removes it.
func (m *Machine) SetPlugboard(plugboard *Permutation) error {
	if plugboard != nil && plugboard.Alphabet() != m.alphabet {
		return fmt.Errorf("%w: plugboard uses a different alphabet", ErrInvalidConfiguration)
	}
	m.plugboard = plugboard
	return nil
}

// Settings returns the current positions of the non-reflector rotors as
// symbols, leftmost first.
func (m *Machine) Settings() string {
	return m.symbols(Rotor.Setting)
}

// Rings returns the ring offsets of the non-reflector rotors as symbols.
func (m *Machine) Rings() string {
	return m.symbols(Rotor.Ring)
}

func (m *Machine) symbols(get func(Rotor) int) string {
	if !m.Ready() {
		return ""
	}
	rs := make([]rune, 0, len(m.slots)-1)
	for _, r := range m.slots[1:] {
		rs = append(rs, m.alphabet.symbols[get(r)])
	}
	return string(rs)
}

// Convert advances the rotors and returns the encoding of index c. The
// machine must have rotors inserted.
func (m *Machine) Convert(c int) int {
	if !m.Ready() {
		panic("machine: Convert called before InsertRotors")
	}
	m.step()

	c = m.alphabet.wrap(c)
	if m.plugboard != nil {
		c = m.plugboard.Permute(c)
	}
	for i := len(m.slots) - 1; i >= 0; i-- {
		c = m.slots[i].ConvertForward(c)
	}
	for i := 1; i < len(m.slots); i++ {
		c = m.slots[i].ConvertBackward(c)
	}
	if m.plugboard != nil {
		c = m.plugboard.Permute(c)
	}
	return c
}

// step advances the rotors for one key stroke. Which rotors move is decided
// from the notch positions before any of them moves.
func (m *Machine) step() {
	for i, move := range m.stepping() {
		if move && m.slots[i].Rotates() {
			m.slots[i].Advance()
		}
	}
}

// stepping returns, per slot, whether the stroke drives that slot. The
// pawls sit on the rightmost numPawls slots. The rightmost pawl always
// engages. Any other pawl engages when the slot to its right is at a notch,
// and then pushes both its own slot and that neighbour, which is how a rotor
// standing at its notch ends up stepping twice in a row. Motion comes only
// from pawls, so the rightmost slot always steps only when there is at least
// one pawl; a machine without pawls never steps.
func (m *Machine) stepping() []bool {
	n := len(m.slots)
	move := make([]bool, n)
	if m.numPawls == 0 {
		return move
	}
	move[n-1] = true
	for i := n - m.numPawls; i < n-1; i++ {
		if m.slots[i+1].AtNotch() {
			move[i] = true
			move[i+1] = true
		}
	}
	return move
}

// ConvertString encodes msg one symbol at a time. Whitespace that is not
// part of the alphabet is dropped. A
// rune that is not in the alphabet is tried in upper case before being
// rejected. msg is checked in full before any rotor moves.
func (m *Machine) ConvertString(msg string) (string, error) {
	if !m.Ready() {
		return "", fmt.Errorf("%w: no rotors inserted", ErrInvalidConfiguration)
	}
	idx := make([]int, 0, len(msg))
	for _, r := range msg {
		if unicode.IsSpace(r) && !m.alphabet.Contains(r) {
			continue
		}
		if !m.alphabet.Contains(r) {
			r = unicode.ToUpper(r)
		}
		i, err := m.alphabet.Index(r)
		if err != nil {
			return "", err
		}
		idx = append(idx, i)
	}

	var b strings.Builder
	b.Grow(len(idx))
	for _, i := range idx {
		b.WriteRune(m.alphabet.symbols[m.Convert(i)])
	}
	return b.String(), nil
}
