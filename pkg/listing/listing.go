// Package listing renders an assembled program side by side with its
// machine code, plus the label and alias tables.
package listing

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"mcasm/pkg/asm"
)

func Program(encoded []asm.Encoded) string {
	t := table.NewWriter()
	t.SetTitle("Program")
	t.AppendHeader(table.Row{"Addr", "Line", "Source", "Machine Code"})
	for _, e := range encoded {
		t.AppendRow(table.Row{e.Address, e.Line, e.Source, e.Word.String()})
	}
	t.AppendFooter(table.Row{"", "", "Instructions", len(encoded)})
	return t.Render()
}

func Labels(labels asm.LabelTable) string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetTitle("Labels")
	t.AppendHeader(table.Row{"Label", "Addr", "Field"})
	for _, name := range names {
		t.AppendRow(table.Row{name, labels[name], fmt.Sprintf("%04b", labels[name])})
	}
	return t.Render()
}

func Aliases(aliases asm.AliasTable) string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	t.SetTitle("Aliases")
	t.AppendHeader(table.Row{"Alias", "Register"})
	for _, name := range names {
		t.AppendRow(table.Row{name, aliases[name]})
	}
	return t.Render()
}

// Write prints the program table and whichever symbol tables are non-empty.
func Write(w io.Writer, res *asm.Result) error {
	if _, err := fmt.Fprintln(w, Program(res.Encoded)); err != nil {
		return err
	}
	if len(res.Labels) > 0 {
		if _, err := fmt.Fprintln(w, Labels(res.Labels)); err != nil {
			return err
		}
	}
	if len(res.Aliases) > 0 {
		if _, err := fmt.Fprintln(w, Aliases(res.Aliases)); err != nil {
			return err
		}
	}
	return nil
}
