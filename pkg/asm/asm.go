package asm

import (
	"fmt"
	"log/slog"
	"strings"

	"mcasm/pkg/isa"
	"mcasm/pkg/logging"
)

type Assembler struct {
	regs         *isa.RegisterFile
	strictLabels bool
	collectAll   bool
	log          *slog.Logger
}

type Option func(*Assembler)

func WithRegisters(regs *isa.RegisterFile) Option {
	return func(a *Assembler) { a.regs = regs }
}

// WithStrictLabels turns label redefinitions into DuplicateLabel errors.
func WithStrictLabels(strict bool) Option {
	return func(a *Assembler) { a.strictLabels = strict }
}

// WithCollectAll keeps going after the first diagnostic and returns Errors.
func WithCollectAll(all bool) Option {
	return func(a *Assembler) { a.collectAll = all }
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) { a.log = logger }
}

// Result holds everything produced by one run.
type Result struct {
	Program Program
	Labels  LabelTable
	Aliases AliasTable
	Encoded []Encoded
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		regs: isa.DefaultRegisters(),
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func Assemble(code string) (*Result, error) {
	return NewAssembler().Assemble(code)
}

func (a *Assembler) Assemble(code string) (*Result, error) {
	lines := strings.Split(code, "\n")

	res, errs := a.pass1(lines)
	if len(errs) > 0 && !a.collectAll {
		return nil, errs[0]
	}

	encoded, err := a.pass2(res.Program, res.Labels)
	if err != nil {
		if !a.collectAll {
			return nil, err
		}
		errs = append(errs, err.(Errors)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &Result{
		Program: res.Program,
		Labels:  res.Labels,
		Aliases: res.Aliases,
		Encoded: encoded,
	}, nil
}

// Translate runs pass 2 alone over a program and a complete label table.
func (a *Assembler) Translate(program Program, labels LabelTable) ([]Encoded, error) {
	return a.pass2(program, labels)
}

func (a *Assembler) pass1(lines []string) (*Resolution, Errors) {
	res := Resolve(lines)

	for _, ins := range res.Program {
		logging.Trace(a.log, "instruction",
			"line", ins.Line,
			"address", ins.Address,
			"tokens", append([]string{ins.Mnemonic}, ins.Operands...))
	}

	var errs Errors
	for _, rd := range res.Redefinitions {
		if a.strictLabels {
			errs = append(errs, &Error{
				Kind:   DuplicateLabel,
				Line:   rd.Line,
				Token:  rd.Label,
				Detail: fmt.Sprintf("already defined at address %d", rd.Previous),
			})
			continue
		}
		a.log.Warn("label redefined",
			"label", rd.Label, "line", rd.Line,
			"previous", rd.Previous, "address", rd.Address)
	}

	a.log.Debug("pass 1 complete",
		"instructions", len(res.Program),
		"labels", len(res.Labels),
		"aliases", len(res.Aliases))

	return res, errs
}

// pass2 returns the first *Error, or Errors when collecting all diagnostics.
func (a *Assembler) pass2(program Program, labels LabelTable) ([]Encoded, error) {
	v := &validator{regs: a.regs, labels: labels}
	encoded := make([]Encoded, 0, len(program))
	var errs Errors

	for _, ins := range program {
		c, err := v.check(ins)
		if err == nil {
			var w Word
			w, err = Encode(c)
			if err == nil {
				encoded = append(encoded, Encoded{Instruction: ins, Class: c.Opcode.Class(), Word: w})
				continue
			}
		}

		if !a.collectAll {
			return nil, err
		}
		errs = append(errs, err.(*Error))
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return encoded, nil
}
