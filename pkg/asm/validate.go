package asm

import (
	"fmt"
	"sort"
	"strconv"

	"mcasm/pkg/isa"
)

// Immediate literals are 8-bit: negatives wrap to two's complement.
const (
	minImmediate = -128
	maxImmediate = 255
)

type OperandKind int

const (
	OperandRegister OperandKind = iota
	OperandImmediate
	OperandLabel
)

func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandImmediate:
		return "immediate"
	case OperandLabel:
		return "label"
	}
	return fmt.Sprintf("OperandKind(%d)", int(k))
}

// Operand is a classified operand. Value holds the literal for immediates
// and the resolved address for labels.
type Operand struct {
	Kind     OperandKind
	Text     string
	Register isa.Register
	Value    int
}

// Checked is an instruction that passed validation.
type Checked struct {
	Instruction
	Opcode   isa.Opcode
	Operands []Operand
}

type validator struct {
	regs   *isa.RegisterFile
	labels LabelTable
}

func (v *validator) check(ins Instruction) (Checked, error) {
	c := Checked{Instruction: ins}

	op, ok := isa.LookupOpcode(ins.Mnemonic)
	if !ok {
		if isAliasDecl(ins.Mnemonic) {
			return c, &Error{
				Kind:   MalformedAlias,
				Line:   ins.Line,
				Token:  ins.Mnemonic,
				Detail: fmt.Sprintf("expected `REGISTER NAME, got %d tokens", len(ins.Operands)+1),
			}
		}
		return c, &Error{Kind: UnknownOpcode, Line: ins.Line, Token: ins.Mnemonic, Valid: isa.Opcodes()}
	}
	c.Opcode = op

	class := op.Class()
	if len(ins.Operands) != class.Arity() {
		return c, &Error{
			Kind:   OperandArityMismatch,
			Line:   ins.Line,
			Token:  ins.Mnemonic,
			Detail: fmt.Sprintf("need %d operands, got %d", class.Arity(), len(ins.Operands)),
		}
	}

	regOperands := ins.Operands
	if class == isa.ClassImmediate {
		regOperands = ins.Operands[:1]
	}

	c.Operands = make([]Operand, 0, len(ins.Operands))
	for _, text := range regOperands {
		reg, ok := v.regs.Lookup(text)
		if !ok {
			return c, &Error{Kind: UnknownRegister, Line: ins.Line, Token: text, Valid: v.regs.Names()}
		}
		c.Operands = append(c.Operands, Operand{Kind: OperandRegister, Text: text, Register: reg})
	}

	if class == isa.ClassImmediate {
		imm, err := v.immediate(ins.Operands[1], ins.Line)
		if err != nil {
			return c, err
		}
		c.Operands = append(c.Operands, imm)
	}

	return c, nil
}

func (v *validator) immediate(text string, lineNo int) (Operand, error) {
	if isNumeric(text) {
		value, err := strconv.Atoi(text)
		if err != nil || value < minImmediate || value > maxImmediate {
			return Operand{}, &Error{
				Kind:   ImmediateOutOfRange,
				Line:   lineNo,
				Token:  text,
				Detail: fmt.Sprintf("must be within %d..%d", minImmediate, maxImmediate),
			}
		}
		return Operand{Kind: OperandImmediate, Text: text, Value: value}, nil
	}

	addr, ok := v.labels[normalizeLabel(text)]
	if !ok {
		return Operand{}, &Error{Kind: UndefinedLabel, Line: lineNo, Token: text, Valid: v.labelNames()}
	}
	return Operand{Kind: OperandLabel, Text: text, Value: addr}, nil
}

func (v *validator) labelNames() []string {
	names := make([]string, 0, len(v.labels))
	for name := range v.labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isNumeric accepts an optional leading minus followed by decimal digits.
func isNumeric(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
