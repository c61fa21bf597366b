package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rotorsim/machine"
	"github.com/blackwell-systems/rotorsim/registry"
	"github.com/blackwell-systems/rotorsim/session"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose, describe bool

	cmd := &cobra.Command{
		Use:   "rotorsim CONFIG [INPUT [OUTPUT]]",
		Short: "Encrypt and decrypt messages on a simulated rotor machine",
		Long: `rotorsim reads a machine description (CONFIG, YAML or classic format),
then converts the messages in INPUT (default stdin) and writes them to
OUTPUT (default stdout) in groups of five.

Input lines starting with '*' configure the machine:

  * B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)

names the reflector and rotors left to right, the rotor settings, an
optional ring setting and the plugboard. Every other line is a message.`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return run(cmd, args, logger, describe)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log machine configuration changes to stderr")
	cmd.Flags().BoolVar(&describe, "describe", false, "Print the machine description and exit")
	return cmd
}

func run(cmd *cobra.Command, args []string, logger *slog.Logger, describe bool) (err error) {
	reg, err := registry.LoadFile(args[0])
	if err != nil {
		return err
	}
	m, err := machine.Build(reg)
	if err != nil {
		return err
	}
	logger.Debug("machine loaded",
		"name", reg.Name,
		"slots", m.NumRotors(),
		"pawls", m.NumPawls(),
		"rotors", m.Catalog().Len())

	if describe {
		return printDescription(cmd.OutOrStdout(), reg, m)
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) > 1 {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[1], err)
		}
		defer f.Close()
		in = f
	}

	var out io.Writer = cmd.OutOrStdout()
	if len(args) > 2 {
		f, err := os.Create(args[2])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[2], err)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("could not write %s: %w", args[2], cerr)
			}
		}()
		out = f
	}

	return session.NewProcessor(m, logger).Process(in, out)
}

func printDescription(w io.Writer, reg *registry.Registry, m *machine.Machine) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Machine:   %s\n", reg.Name)
	fmt.Fprintf(&b, "Alphabet:  %s (%d symbols)\n", m.Alphabet(), m.Alphabet().Size())
	fmt.Fprintf(&b, "Slots:     %d\n", m.NumRotors())
	fmt.Fprintf(&b, "Pawls:     %d\n\n", m.NumPawls())

	fmt.Fprintf(&b, "Rotors\n")
	for _, rd := range reg.Rotors {
		r, _ := m.Catalog().Get(rd.Name)
		kind := rd.Kind.String()
		if mr, ok := r.(*machine.MovingRotor); ok {
			kind += " [" + mr.Notches() + "]"
		}
		fmt.Fprintf(&b, "  %-8s %-16s %s\n", rd.Name, kind, r.Permutation())
	}
	_, err := io.WriteString(w, b.String())
	return err
}
