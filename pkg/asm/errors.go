package asm

import (
	"fmt"
	"strings"
)

// Kind classifies a diagnostic. A Kind is itself an error so callers can
// test with errors.Is(err, asm.UnknownRegister).
type Kind int

const (
	UnknownOpcode Kind = iota + 1
	OperandArityMismatch
	UnknownRegister
	UndefinedLabel
	LabelOutOfRange
	ImmediateOutOfRange
	MalformedAlias
	DuplicateLabel
)

var kindNames = map[Kind]string{
	UnknownOpcode:        "unknown opcode",
	OperandArityMismatch: "operand count mismatch",
	UnknownRegister:      "unknown register",
	UndefinedLabel:       "undefined label",
	LabelOutOfRange:      "label address out of range",
	ImmediateOutOfRange:  "immediate out of range",
	MalformedAlias:       "malformed alias declaration",
	DuplicateLabel:       "duplicate label",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string {
	return k.String()
}

// Error is a single diagnostic tied to a 1-based source line.
type Error struct {
	Kind   Kind
	Line   int
	Token  string
	Detail string
	Valid  []string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error, line %d: %s", e.Line, e.Kind)
	if e.Token != "" {
		fmt.Fprintf(&b, " '%s'", e.Token)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.Valid) > 0 {
		fmt.Fprintf(&b, " (valid: %s)", strings.Join(e.Valid, " "))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errors is returned when the assembler collects every diagnostic.
type Errors []*Error

func (l Errors) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func (l Errors) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}
