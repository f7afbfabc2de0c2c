// Package mcode renders encoded instructions as machine-code text: one line
// per instruction, four space separated 4-bit binary fields.
package mcode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mcasm/pkg/asm"
	"mcasm/pkg/isa"
)

const Extension = ".mcode"

// FormatLine renders one instruction. Instructions with operands keep a
// trailing separator after the last field unless trim is set.
func FormatLine(e asm.Encoded, trim bool) string {
	line := e.Word.String()
	if !trim && e.Class != isa.ClassNone {
		line += " "
	}
	return line
}

type Emitter interface {
	Emit(e asm.Encoded) error
}

// Writer emits lines to an underlying io.Writer through a buffer; call
// Flush when done.
type Writer struct {
	w    *bufio.Writer
	trim bool
}

func NewWriter(w io.Writer, trim bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), trim: trim}
}

func (w *Writer) Emit(e asm.Encoded) error {
	if _, err := w.w.WriteString(FormatLine(e, w.trim)); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

// EmitAll emits in program order and stops at the first failure.
func EmitAll(em Emitter, encoded []asm.Encoded) error {
	for _, e := range encoded {
		if err := em.Emit(e); err != nil {
			return fmt.Errorf("emit line %d: %w", e.Line, err)
		}
	}
	return nil
}

// Format returns the complete output text.
func Format(encoded []asm.Encoded, trim bool) string {
	var b strings.Builder
	w := NewWriter(&b, trim)
	_ = EmitAll(w, encoded)
	_ = w.Flush()
	return b.String()
}

// OutputPath picks where machine code goes. An explicit path wins. Otherwise
// every "assembly" in the input path becomes "mcode"; when that changes
// nothing the extension is swapped for .mcode so the input is never
// overwritten.
func OutputPath(input, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if out := strings.ReplaceAll(input, "assembly", "mcode"); out != input {
		return out
	}
	ext := filepath.Ext(input)
	if ext == Extension {
		return input + Extension
	}
	return strings.TrimSuffix(input, ext) + Extension
}

func WriteFile(path string, encoded []asm.Encoded, trim bool) error {
	return os.WriteFile(path, []byte(Format(encoded, trim)), 0o644)
}
