package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"mcasm/pkg/asm"
	"mcasm/pkg/config"
	"mcasm/pkg/isa"
	"mcasm/pkg/listing"
	"mcasm/pkg/logging"
	"mcasm/pkg/mcode"
)

type options struct {
	out        string
	configPath string
	cfg        config.Config
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		opts  options
		flags config.Config
	)

	cmd := &cobra.Command{
		Use:   "mcasm [flags] sourceFile",
		Short: "Assembler for the 4-bit field, 11 opcode register machine",
		Long: `mcasm translates assembly source into machine code text, one line of
four space separated 4-bit binary fields per instruction.

Lines look like "[$LABEL] MNEMONIC OPERAND ..." with "#" comments, or
"` + "`REGISTER NAME" + `" to declare a register alias. The output path defaults to
the input path with every "assembly" replaced by "mcode".`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			opts.cfg = cfg
			return run(args[0], opts, stdout, stderr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.out, "out", "o", "", "output machine code path")
	f.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	f.BoolVar(&flags.Listing, "listing", false, "print a listing of the program and its symbols")
	f.BoolVar(&flags.StrictLabels, "strict-labels", false, "treat label redefinition as an error")
	f.BoolVar(&flags.CollectAll, "all-errors", false, "report every diagnostic instead of stopping at the first")
	f.BoolVar(&flags.TrimTrailing, "trim", false, "omit the trailing space after the last field")
	f.IntVar(&flags.GPRCount, "gpr", isa.DefaultGPRCount, "number of general purpose registers")
	f.StringVar(&flags.LogLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	f.StringVar(&flags.LogFormat, "log-format", logging.FormatAuto, "log format: auto, text, json")

	return cmd
}

// applyFlags copies only the flags given on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags config.Config) {
	changed := cmd.Flags().Changed
	if changed("listing") {
		cfg.Listing = flags.Listing
	}
	if changed("strict-labels") {
		cfg.StrictLabels = flags.StrictLabels
	}
	if changed("all-errors") {
		cfg.CollectAll = flags.CollectAll
	}
	if changed("trim") {
		cfg.TrimTrailing = flags.TrimTrailing
	}
	if changed("gpr") {
		cfg.GPRCount = flags.GPRCount
	}
	if changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if changed("log-format") {
		cfg.LogFormat = flags.LogFormat
	}
}

func run(inPath string, opts options, stdout, stderr io.Writer) error {
	cfg := opts.cfg

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New(stderr, level, cfg.LogFormat)

	regs, err := isa.NewRegisterFile(cfg.GPRCount)
	if err != nil {
		return err
	}

	source, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file %q: %w", inPath, err)
	}

	assembler := asm.NewAssembler(
		asm.WithRegisters(regs),
		asm.WithStrictLabels(cfg.StrictLabels),
		asm.WithCollectAll(cfg.CollectAll),
		asm.WithLogger(logger),
	)
	res, err := assembler.Assemble(string(source))
	if err != nil {
		return err
	}

	output := mcode.OutputPath(inPath, opts.out)
	logger.Debug("writing machine code", "input", inPath, "output", output)

	_, statErr := os.Stat(output)
	existed := statErr == nil
	if err := mcode.WriteFile(output, res.Encoded, cfg.TrimTrailing); err != nil {
		// Only a file this run created is removed.
		if !existed {
			if rmErr := os.Remove(output); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Error("failed to remove partial output", "path", output, "err", rmErr)
			}
		}
		return fmt.Errorf("failed to write machine code file %q: %w", output, err)
	}

	if cfg.Listing {
		if err := listing.Write(stdout, res); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "assembled %d instructions -> %s\n", len(res.Encoded), output)
	return nil
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
