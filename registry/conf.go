package registry

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ParseConf parses the classic line-oriented machine description:
//
//	ABCDEFGHIJKLMNOPQRSTUVWXYZ
//	5 3
//	I MQ      (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
//	Beta N    (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
//	B R       (AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP)
//	          (RX) (SZ) (TV)
//
// The first line is the alphabet. Then come the slot and pawl counts,
// followed by rotor descriptions: a name, a type code (M with its notch
// symbols, N, or R), and cycles, which may run over several lines.
func ParseConf(data []byte) (*Registry, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	var alphabet string
	var rest []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if alphabet == "" {
			if line == "" {
				continue
			}
			if strings.ContainsAny(line, "()*") || strings.ContainsFunc(line, isSpace) {
				return nil, fmt.Errorf("bad alphabet line %q", line)
			}
			alphabet = line
			continue
		}
		rest = append(rest, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if alphabet == "" {
		return nil, fmt.Errorf("configuration is empty")
	}
	if len(rest) < 2 {
		return nil, fmt.Errorf("configuration truncated: missing slot and pawl counts")
	}
	slots, err := strconv.Atoi(rest[0])
	if err != nil {
		return nil, fmt.Errorf("bad slot count %q", rest[0])
	}
	pawls, err := strconv.Atoi(rest[1])
	if err != nil {
		return nil, fmt.Errorf("bad pawl count %q", rest[1])
	}

	reg := &Registry{Alphabet: alphabet, Slots: slots, Pawls: pawls}
	toks := rest[2:]
	for len(toks) > 0 {
		rd, n, err := parseConfRotor(toks)
		if err != nil {
			return nil, err
		}
		reg.Rotors = append(reg.Rotors, rd)
		toks = toks[n:]
	}

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// parseConfRotor reads one rotor description from the head of toks and
// reports how many tokens it used.
func parseConfRotor(toks []string) (RotorDef, int, error) {
	name := toks[0]
	if strings.ContainsAny(name, "()") {
		return RotorDef{}, 0, fmt.Errorf("bad rotor name %q", name)
	}
	if len(toks) < 2 {
		return RotorDef{}, 0, fmt.Errorf("rotor %q: missing type", name)
	}
	code := toks[1]
	kind, err := ParseRotorKind(code[:1])
	if err != nil {
		return RotorDef{}, 0, fmt.Errorf("rotor %q: %w", name, err)
	}
	rd := RotorDef{Name: name, Kind: kind, Notches: code[1:]}

	// Cycles continue while the next token opens a cycle or one is still open.
	var cycles []string
	depth := 0
	n := 2
	for ; n < len(toks); n++ {
		tok := toks[n]
		if depth == 0 && !strings.HasPrefix(tok, "(") {
			break
		}
		depth += strings.Count(tok, "(") - strings.Count(tok, ")")
		cycles = append(cycles, tok)
	}
	if depth != 0 {
		return RotorDef{}, 0, fmt.Errorf("rotor %q: unbalanced cycles", name)
	}
	rd.Cycles = strings.Join(cycles, " ")
	return rd, n, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
