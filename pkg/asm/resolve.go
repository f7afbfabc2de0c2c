package asm

import "strings"

// Instruction is one emitted line of the program, as scanned in pass 1.
// Mnemonic and operands are uppercased with aliases already substituted.
type Instruction struct {
	Line     int
	Address  int
	Mnemonic string
	Operands []string
	Source   string
}

type Program []Instruction

// LabelTable maps an uppercased label name to the address of the
// instruction that follows its definition.
type LabelTable map[string]int

// AliasTable maps an alias name, case as declared, to a register name.
type AliasTable map[string]string

// Redefinition records a label defined more than once; the later address wins.
type Redefinition struct {
	Line     int
	Label    string
	Previous int
	Address  int
}

// Resolution is the outcome of pass 1.
type Resolution struct {
	Program       Program
	Labels        LabelTable
	Aliases       AliasTable
	Redefinitions []Redefinition
}

// Resolve scans every line once, collecting labels and aliases and building
// the program. Aliases apply only to lines after their declaration; labels
// are looked up later, so forward references to them work.
func Resolve(lines []string) *Resolution {
	r := &Resolution{
		Labels:  make(LabelTable),
		Aliases: make(AliasTable),
	}

	for i, raw := range lines {
		lineNo := i + 1
		tokens := Normalize(raw)
		if len(tokens) == 0 {
			continue
		}

		if isLabelDef(tokens[0]) {
			r.defineLabel(normalizeLabel(tokens[0]), lineNo)
			tokens = tokens[1:]
			if len(tokens) == 0 {
				continue
			}
		}

		if len(tokens) == 2 && isAliasDecl(tokens[0]) {
			r.Aliases[tokens[1]] = tokens[0][1:]
			continue
		}

		words := make([]string, len(tokens))
		for j, tok := range tokens {
			if reg, ok := r.Aliases[tok]; ok {
				tok = reg
			}
			words[j] = strings.ToUpper(tok)
		}

		r.Program = append(r.Program, Instruction{
			Line:     lineNo,
			Address:  len(r.Program),
			Mnemonic: words[0],
			Operands: words[1:],
			Source:   strings.TrimSpace(stripComment(raw)),
		})
	}

	return r
}

func (r *Resolution) defineLabel(name string, lineNo int) {
	addr := len(r.Program)
	if prev, exists := r.Labels[name]; exists {
		r.Redefinitions = append(r.Redefinitions, Redefinition{
			Line:     lineNo,
			Label:    name,
			Previous: prev,
			Address:  addr,
		})
	}
	r.Labels[name] = addr
}
