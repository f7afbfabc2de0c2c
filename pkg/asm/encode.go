package asm

import (
	"fmt"
	"strings"

	"mcasm/pkg/isa"
)

// Word is one machine instruction: four 4-bit fields, most significant first.
type Word [isa.Fields]uint8

func (w Word) String() string {
	fields := make([]string, len(w))
	for i, f := range w {
		fields[i] = fmt.Sprintf("%04b", f)
	}
	return strings.Join(fields, " ")
}

// Encoded pairs an instruction with its machine word.
type Encoded struct {
	Instruction
	Class isa.Class
	Word  Word
}

// Encode lays out the fields of a validated instruction.
func Encode(c Checked) (Word, error) {
	var w Word
	w[0] = uint8(c.Opcode)

	ops := c.Operands
	switch c.Opcode.Class() {
	case isa.ClassThreeReg:
		w[1], w[2], w[3] = reg(ops[0]), reg(ops[1]), reg(ops[2])
	case isa.ClassBranch:
		w[2], w[3] = reg(ops[0]), reg(ops[1])
	case isa.ClassTwoReg:
		w[1], w[2] = reg(ops[0]), reg(ops[1])
	case isa.ClassStore:
		w[2] = reg(ops[0])
	case isa.ClassImmediate:
		w[1] = reg(ops[0])
		imm := ops[1]
		if imm.Kind == OperandLabel {
			if imm.Value < 0 || imm.Value > isa.FieldMax {
				return w, &Error{
					Kind:   LabelOutOfRange,
					Line:   c.Line,
					Token:  imm.Text,
					Detail: fmt.Sprintf("address %d does not fit in %d bits", imm.Value, isa.FieldBits),
				}
			}
			w[3] = uint8(imm.Value)
			break
		}
		value := imm.Value
		if value < 0 {
			value += 256
		}
		w[2], w[3] = uint8(value/16), uint8(value%16)
	}

	return w, nil
}

func reg(op Operand) uint8 {
	return uint8(op.Register)
}
