package machine

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is the set of rotors available to a machine, looked up by name
// without regard to case. Rotor instances are shared by every machine built
// on the same catalog, so a catalog must serve one machine at a time.
type Catalog struct {
	alphabet *Alphabet
	rotors   map[string]Rotor
}

// NewCatalog returns an empty catalog for rotors over alpha.
func NewCatalog(alpha *Alphabet) *Catalog {
	return &Catalog{alphabet: alpha, rotors: make(map[string]Rotor)}
}

func catalogKey(name string) string {
	return strings.ToUpper(name)
}

// Add puts r in the catalog.
func (c *Catalog) Add(r Rotor) error {
	if r == nil {
		return fmt.Errorf("%w: cannot add nil rotor", ErrInvalidConfiguration)
	}
	if r.Name() == "" {
		return fmt.Errorf("%w: rotor name cannot be empty", ErrInvalidConfiguration)
	}
	if r.Alphabet() != c.alphabet {
		return fmt.Errorf("%w: rotor %s uses a different alphabet", ErrInvalidConfiguration, r.Name())
	}
	key := catalogKey(r.Name())
	if _, exists := c.rotors[key]; exists {
		return fmt.Errorf("%w: rotor %s is already in the catalog", ErrInvalidConfiguration, r.Name())
	}
	c.rotors[key] = r
	return nil
}

// Get returns the rotor called name.
func (c *Catalog) Get(name string) (Rotor, bool) {
	r, ok := c.rotors[catalogKey(name)]
	return r, ok
}

// Alphabet returns the alphabet every rotor in the catalog uses.
func (c *Catalog) Alphabet() *Alphabet {
	return c.alphabet
}

// Len returns the number of rotors.
func (c *Catalog) Len() int {
	return len(c.rotors)
}

// Rotors returns every rotor, sorted by name.
func (c *Catalog) Rotors() []Rotor {
	rs := make([]Rotor, 0, len(c.rotors))
	for _, r := range c.rotors {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].Name() < rs[j].Name()
	})
	return rs
}
