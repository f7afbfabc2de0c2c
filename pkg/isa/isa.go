package isa

import (
	"fmt"
	"strings"
)

// Every encoded instruction is four fields of FieldBits bits each.
const (
	FieldBits = 4
	FieldMax  = 1<<FieldBits - 1
	Fields    = 4
)

type Opcode uint8

const (
	OpEND Opcode = iota
	OpADD
	OpSUB
	OpMUL
	OpDV2
	OpLDM
	OpSTM
	OpMVR
	OpMVI
	OpBEQ
	OpBLT
)

var opcodeNames = [...]string{
	OpEND: "END",
	OpADD: "ADD",
	OpSUB: "SUB",
	OpMUL: "MUL",
	OpDV2: "DV2",
	OpLDM: "LDM",
	OpSTM: "STM",
	OpMVR: "MVR",
	OpMVI: "MVI",
	OpBEQ: "BEQ",
	OpBLT: "BLT",
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for i, name := range opcodeNames {
		m[name] = Opcode(i)
	}
	return m
}()

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// LookupOpcode matches an already uppercased mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// Opcodes returns the mnemonics in encoding order.
func Opcodes() []string {
	out := make([]string, len(opcodeNames))
	copy(out, opcodeNames[:])
	return out
}

// Class is the encoding shape shared by a group of opcodes.
type Class int

const (
	ClassNone      Class = iota // END LDM
	ClassThreeReg               // ADD SUB MUL
	ClassBranch                 // BEQ BLT
	ClassTwoReg                 // MVR DV2
	ClassImmediate              // MVI
	ClassStore                  // STM
)

var classNames = [...]string{
	ClassNone:      "zero-operand",
	ClassThreeReg:  "three-register",
	ClassBranch:    "branch",
	ClassTwoReg:    "two-register",
	ClassImmediate: "immediate-move",
	ClassStore:     "store",
}

func (c Class) String() string {
	if int(c) >= 0 && int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

// Arity is the exact number of operands the class takes.
func (c Class) Arity() int {
	switch c {
	case ClassThreeReg:
		return 3
	case ClassBranch, ClassTwoReg, ClassImmediate:
		return 2
	case ClassStore:
		return 1
	default:
		return 0
	}
}

func (o Opcode) Class() Class {
	switch o {
	case OpADD, OpSUB, OpMUL:
		return ClassThreeReg
	case OpBEQ, OpBLT:
		return ClassBranch
	case OpMVR, OpDV2:
		return ClassTwoReg
	case OpMVI:
		return ClassImmediate
	case OpSTM:
		return ClassStore
	default:
		return ClassNone
	}
}

const DefaultGPRCount = 8

// The literal and special registers precede R0..Rn-1.
var fixedRegisters = []string{"0", "1", "DI", "IM", "AR", "JR"}

// MaxGPRCount keeps the last register index inside one field.
const MaxGPRCount = FieldMax + 1 - 6

type Register uint8

type RegisterFile struct {
	names []string
	index map[string]Register
}

func NewRegisterFile(gprCount int) (*RegisterFile, error) {
	if gprCount < 1 || gprCount > MaxGPRCount {
		return nil, fmt.Errorf("general purpose register count %d out of range 1-%d", gprCount, MaxGPRCount)
	}

	names := make([]string, 0, len(fixedRegisters)+gprCount)
	names = append(names, fixedRegisters...)
	for i := 0; i < gprCount; i++ {
		names = append(names, fmt.Sprintf("R%d", i))
	}

	f := &RegisterFile{names: names, index: make(map[string]Register, len(names))}
	for i, name := range names {
		f.index[name] = Register(i)
	}
	return f, nil
}

// DefaultRegisters is the eight register machine.
func DefaultRegisters() *RegisterFile {
	f, err := NewRegisterFile(DefaultGPRCount)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *RegisterFile) Lookup(name string) (Register, bool) {
	r, ok := f.index[name]
	return r, ok
}

func (f *RegisterFile) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *RegisterFile) Len() int {
	return len(f.names)
}

func (f *RegisterFile) String() string {
	return "[" + strings.Join(f.names, " ") + "]"
}
