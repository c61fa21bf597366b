package session

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/blackwell-systems/rotorsim/machine"
)

// GroupSize is the number of symbols per output group.
const GroupSize = 5

// Processor converts a stream of setup and message lines.
type Processor struct {
	machine *machine.Machine
	logger  *slog.Logger
}

// NewProcessor returns a processor driving m. A nil logger discards.
func NewProcessor(m *machine.Machine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{machine: m, logger: logger}
}

// Process reads lines from in and writes converted messages to out. The
// first non-blank line must be a setup line. Blank lines after it are
// copied through as blank lines. Lines converted before an error are still
// written to out.
func (p *Processor) Process(in io.Reader, out io.Writer) (err error) {
	sc := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer func() {
		if ferr := w.Flush(); err == nil && ferr != nil {
			err = fmt.Errorf("write output: %w", ferr)
		}
	}()
	configured := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "*"):
			if err := p.setup(trimmed); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			configured = true
		case !configured:
			if trimmed == "" {
				continue
			}
			return fmt.Errorf("line %d: %w: message before the first setup line", lineNo, ErrBadSetup)
		case trimmed == "":
			if _, err := w.WriteString("\n"); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		default:
			converted, err := p.machine.ConvertString(line)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			if _, err := fmt.Fprintln(w, FormatGroups(converted, GroupSize)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (p *Processor) setup(line string) error {
	s, err := ParseSetup(line, p.machine.NumRotors())
	if err != nil {
		return err
	}
	if err := Apply(p.machine, s); err != nil {
		return err
	}
	plugboard := "none"
	if pb := p.machine.Plugboard(); pb != nil {
		plugboard = pb.String()
	}
	p.logger.Debug("machine configured",
		"rotors", strings.Join(s.Rotors, " "),
		"setting", p.machine.Settings(),
		"rings", p.machine.Rings(),
		"plugboard", plugboard)
	return nil
}

// FormatGroups splits s into groups of n symbols separated by single
// spaces. The last group may be shorter.
func FormatGroups(s string, n int) string {
	rs := []rune(s)
	var b strings.Builder
	for i := 0; i < len(rs); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(rs[i:min(i+n, len(rs))]))
	}
	return b.String()
}
