package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Raw YAML structures for unmarshaling.

type rawFile struct {
	Machine rawMachine `yaml:"machine"`
}

type rawMachine struct {
	Name     string              `yaml:"name"`
	Alphabet string              `yaml:"alphabet"`
	Slots    int                 `yaml:"slots"`
	Pawls    int                 `yaml:"pawls"`
	Rotors   map[string]rawRotor `yaml:"rotors"`
}

type rawRotor struct {
	Type    string `yaml:"type"`
	Notches string `yaml:"notches"`
	Cycles  string `yaml:"cycles"`
}

// LoadFile reads a registry from disk. Files ending in .yaml or .yml are
// parsed as YAML; anything else is read in the classic line format. A
// registry without a name is named after the file.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var reg *Registry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		reg, err = Parse(data)
	default:
		reg, err = ParseConf(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if reg.Name == "" {
		reg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return reg, nil
}

// Parse parses registry YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}
	m := &raw.Machine
	if m.Name == "" {
		return nil, fmt.Errorf("machine must have a name")
	}

	reg := &Registry{
		Name:     m.Name,
		Alphabet: m.Alphabet,
		Slots:    m.Slots,
		Pawls:    m.Pawls,
	}

	// Catalog order is the file order, so re-read the rotors as a node.
	var ordered struct {
		Machine struct {
			Rotors yaml.Node `yaml:"rotors"`
		} `yaml:"machine"`
	}
	if err := yaml.Unmarshal(data, &ordered); err != nil {
		return nil, err
	}

	rotorsNode := &ordered.Machine.Rotors
	if rotorsNode.Kind == yaml.MappingNode {
		for i := 0; i < len(rotorsNode.Content)-1; i += 2 {
			name := rotorsNode.Content[i].Value
			rr, ok := m.Rotors[name]
			if !ok {
				return nil, fmt.Errorf("rotor %q not found", name)
			}
			rd, err := parseRotorDef(name, rr)
			if err != nil {
				return nil, err
			}
			reg.Rotors = append(reg.Rotors, rd)
		}
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

func parseRotorDef(name string, rr rawRotor) (RotorDef, error) {
	kind, err := ParseRotorKind(rr.Type)
	if err != nil {
		return RotorDef{}, fmt.Errorf("rotor %q: %w", name, err)
	}
	return RotorDef{
		Name:    name,
		Kind:    kind,
		Notches: strings.TrimSpace(rr.Notches),
		Cycles:  rr.Cycles,
	}, nil
}
